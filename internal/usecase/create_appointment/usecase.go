package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/events"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/visitstore"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
)

// Этапы, на которых обнаружен занятый слот
const (
	conflictStageSnapshot = "snapshot"
	conflictStageStorage  = "storage"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	visitStore      VisitStore
	activityLog     ActivityLog
	publisher       EventPublisher
	txManager       TransactionManager
	metrics         Metrics
	cfg             Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	visitStore VisitStore,
	activityLog ActivityLog,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		visitStore:      visitStore,
		activityLog:     activityLog,
		publisher:       publisher,
		txManager:       txManager,
		metrics:         metrics,
		cfg:             cfg,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости оптимистичная: одновременные записи на один слот не исключаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: visit=%s, date=%s, time=%s",
		req.VisitID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем визит со снимком
	visit, err := uc.visitStore.Get(ctx, req.VisitID)
	if err != nil {
		if errors.Is(err, visitstore.ErrVisitNotFound) {
			uc.logger.Warn("CreateAppointment: visit %s not found", req.VisitID)
			return nil, ErrVisitNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get visit %s: %v", req.VisitID, err)
		return nil, fmt.Errorf("%w: failed to get visit: %v", ErrInternal, err)
	}

	// 3. Повторная проверка даты и слота по снимку визита
	date := domain.Day(req.Date)
	today := uc.timeProvider.Now().In(uc.cfg.Location)
	if err := domain.CheckSlot(date, req.Time, today, visit.Snapshot); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.conflict(conflictStageSnapshot)
		}
		uc.logger.Warn("CreateAppointment: slot %s %s rejected: %v", date.Format(domain.DateFormat), req.Time, err)
		return nil, mapSlotError(err)
	}

	// 4. Контакт: форма, затем параметры ссылки, затем личность по IP, затем гость
	contact := visit.ResolveContact(domain.ContactHint{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}, uc.cfg.GuestName)

	appointment := &domain.Appointment{
		Name:      contact.Name,
		Phone:     contact.Phone,
		Email:     contact.Email,
		Date:      date,
		Time:      req.Time,
		IPAddress: visit.IPAddress,
		UserID:    visit.UserID(),
		Status:    domain.StatusScheduled,
		Notes:     ptr.NonEmpty(ptr.Value(req.Notes)),
	}

	// 5. Проверка по хранилищу и вставка
	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if uc.cfg.RecheckStorage {
			count, err := uc.appointmentRepo.CountActiveAt(txCtx, date, req.Time)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to count appointments: %v", err)
				return fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
			}
			if count > 0 {
				uc.conflict(conflictStageStorage)
				uc.logger.Warn("CreateAppointment: slot %s %s already taken in storage",
					date.Format(domain.DateFormat), req.Time)
				return ErrSlotTaken
			}
		}

		var err error
		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: appointment id=%s created for %s %s",
		created.ID, date.Format(domain.DateFormat), req.Time)
	if uc.metrics != nil {
		uc.metrics.IncAppointmentCreated()
	}

	// 6. Добавляем слот в снимок визита без перечитывания
	if err := uc.visitStore.AppendBooked(ctx, visit.ID, created.Slot()); err != nil {
		uc.logger.Warn("CreateAppointment: failed to update visit %s snapshot: %v", visit.ID, err)
	}

	// 7. Журнал и событие не влияют на результат
	uc.recordActivity(ctx, created, visit, req.UserAgent)
	uc.publishBooked(ctx, created, visit)

	return &Response{
		ID:        created.ID,
		Name:      created.Name,
		Phone:     created.Phone,
		Email:     created.Email,
		Date:      created.Date,
		Time:      created.Time,
		Status:    string(created.Status),
		Notes:     created.Notes,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (uc *UseCase) conflict(stage string) {
	if uc.metrics != nil {
		uc.metrics.IncSlotConflict(stage)
	}
}

func (uc *UseCase) recordActivity(ctx context.Context, a *domain.Appointment, visit *domain.Visit, userAgent *string) {
	if uc.activityLog == nil {
		return
	}

	details := map[string]interface{}{
		"appointment_id": a.ID,
		"date":           a.Date.Format(domain.DateFormat),
		"time":           a.Time.String(),
		"visit_id":       visit.ID,
	}
	if visit.Identity != nil {
		details["identity_source"] = string(visit.Identity.Source)
	}

	err := uc.activityLog.Create(ctx, &domain.ActivityEntry{
		Action:    domain.ActionAppointmentCreated,
		TableName: "appointments",
		IPAddress: a.IPAddress,
		UserAgent: userAgent,
		UserID:    a.UserID,
		Details:   details,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to write activity log for id=%s: %v", a.ID, err)
	}
}

func (uc *UseCase) publishBooked(ctx context.Context, a *domain.Appointment, visit *domain.Visit) {
	if uc.publisher == nil {
		return
	}

	event := events.AppointmentBooked{
		AppointmentID: a.ID,
		Date:          a.Date.Format(domain.DateFormat),
		Time:          a.Time.String(),
		Name:          a.Name,
		Phone:         a.Phone,
		Email:         a.Email,
		UserID:        a.UserID,
		CreatedAt:     a.CreatedAt,
	}
	if visit.Identity != nil {
		event.IdentitySource = string(visit.Identity.Source)
	}

	if err := uc.publisher.PublishAppointmentBooked(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for id=%s: %v", a.ID, err)
	}
}
