package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/visitstore"
)

// UseCase use case календаря: какие даты диапазона можно выбрать
type UseCase struct {
	visitStore   VisitStore
	location     *time.Location
	calendarDays int
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(visitStore VisitStore, location *time.Location, calendarDays int, logger Logger) *UseCase {
	return &UseCase{
		visitStore:   visitStore,
		location:     location,
		calendarDays: calendarDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет каждую дату диапазона по снимку визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Диапазон по умолчанию: сегодня + calendarDays
	now := uc.timeProvider.Now().In(uc.location)
	from := domain.Day(now)
	if req.From != nil {
		from = domain.Day(*req.From)
	}
	to := from.AddDate(0, 0, uc.calendarDays)
	if req.To != nil {
		to = domain.Day(*req.To)
	}
	if err := validateRange(from, to); err != nil {
		uc.logger.Warn("GetAvailableDates: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableDates: visit=%s, from=%s, to=%s",
		req.VisitID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 3. Получаем визит со снимком
	visit, err := uc.visitStore.Get(ctx, req.VisitID)
	if err != nil {
		if errors.Is(err, visitstore.ErrVisitNotFound) {
			uc.logger.Warn("GetAvailableDates: visit %s not found", req.VisitID)
			return nil, ErrVisitNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get visit %s: %v", req.VisitID, err)
		return nil, fmt.Errorf("%w: failed to get visit: %v", ErrInternal, err)
	}

	// 4. Проверяем каждую дату
	dates := make([]DateAvailability, 0, int(to.Sub(from).Hours()/24)+1)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		err := domain.CheckDate(day, now, visit.Snapshot)
		dates = append(dates, DateAvailability{
			Date:       day,
			Selectable: err == nil,
			Reason:     domain.ReasonOf(err),
		})
	}

	return &Response{Dates: dates}, nil
}
