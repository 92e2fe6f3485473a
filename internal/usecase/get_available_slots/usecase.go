package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/visitstore"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	visitStore   VisitStore
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; location задаёт, что считать "сегодня"
func NewUseCase(visitStore VisitStore, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		visitStore:   visitStore,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Занятые слоты скрываются полностью, а не помечаются недоступными.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: visit=%s, date=%s", req.VisitID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем визит со снимком занятых слотов
	visit, err := uc.visitStore.Get(ctx, req.VisitID)
	if err != nil {
		if errors.Is(err, visitstore.ErrVisitNotFound) {
			uc.logger.Warn("GetAvailableSlots: visit %s not found", req.VisitID)
			return nil, ErrVisitNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get visit %s: %v", req.VisitID, err)
		return nil, fmt.Errorf("%w: failed to get visit: %v", ErrInternal, err)
	}

	// 3. Проверяем дату: прошлое, выходной, заполненный день
	date := domain.Day(req.Date)
	today := uc.timeProvider.Now().In(uc.location)
	if err := domain.CheckDate(date, today, visit.Snapshot); err != nil {
		uc.logger.Info("GetAvailableSlots: date %s is not selectable: %v", date.Format(domain.DateFormat), err)
		return nil, mapDateError(err)
	}

	// 4. Сетка слотов без занятых
	slots := domain.FreeSlots(date, visit.Snapshot)

	uc.logger.Info("GetAvailableSlots: %d free slots on %s", len(slots), date.Format(domain.DateFormat))

	return &Response{
		Date:  date,
		Slots: slots,
	}, nil
}
