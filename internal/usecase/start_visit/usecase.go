package start_visit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
)

// UseCase use case открытия страницы: снимок, IP, личность, визит
type UseCase struct {
	snapshotRepo SnapshotRepository
	ipChain      IPDiscoverer
	resolver     IdentityResolver
	visitStore   VisitStore
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	snapshotRepo SnapshotRepository,
	ipChain IPDiscoverer,
	resolver IdentityResolver,
	visitStore VisitStore,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		snapshotRepo: snapshotRepo,
		ipChain:      ipChain,
		resolver:     resolver,
		visitStore:   visitStore,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case открытия страницы.
// Ошибки определения IP и поиска личности не прерывают визит.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	query := normalizeQuery(req.Query)

	// 1. Загружаем снимок занятых слотов (один раз на визит)
	snapshot, err := uc.snapshotRepo.ListBooked(ctx)
	if err != nil {
		uc.logger.Error("StartVisit: failed to load booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to load booked slots: %v", ErrInternal, err)
	}

	// 2. Определяем IP посетителя
	var (
		ipAddress *string
		found     *domain.Identity
	)
	if ip, ok := uc.ipChain.Discover(ctx, req.Hints); ok {
		ipAddress = ptr.Ptr(ip)

		// 3. Ищем ранее оставленные контакты по IP
		found = uc.resolver.Resolve(ctx, ip)
	}

	// 4. Сохраняем визит
	now := uc.timeProvider.Now()
	visit := &domain.Visit{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.TTL),
		IPAddress: ipAddress,
		Identity:  found,
		Query:     query,
		Snapshot:  snapshot,
	}
	if err := uc.visitStore.Save(ctx, visit); err != nil {
		uc.logger.Error("StartVisit: failed to save visit: %v", err)
		return nil, fmt.Errorf("%w: failed to save visit: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.IncVisitStarted(found != nil)
	}
	uc.logger.Info("StartVisit: visit=%s, booked=%d, ip_found=%t, identity_found=%t",
		visit.ID, len(snapshot), ipAddress != nil, found != nil)

	return &Response{
		VisitID:       visit.ID,
		ExpiresAt:     visit.ExpiresAt,
		IPAddress:     ipAddress,
		Contact:       visit.Prefill(uc.cfg.GuestName),
		IdentityFound: found != nil,
		BookedCount:   len(snapshot),
	}, nil
}

// normalizeQuery пустые параметры ссылки считаются отсутствующими
func normalizeQuery(q domain.ContactHint) domain.ContactHint {
	return domain.ContactHint{
		Name:  ptr.NonEmpty(ptr.Value(q.Name)),
		Phone: ptr.NonEmpty(ptr.Value(q.Phone)),
		Email: ptr.NonEmpty(ptr.Value(q.Email)),
	}
}
