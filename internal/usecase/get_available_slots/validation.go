package get_available_slots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VisitID) == "" {
		return fmt.Errorf("%w: visitId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// mapDateError переводит доменную ошибку даты в ошибку use case
func mapDateError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDateInPast):
		return ErrDateInPast
	case errors.Is(err, domain.ErrDayBlackedOut):
		return ErrDayBlackedOut
	case errors.Is(err, domain.ErrDayFull):
		return ErrDayFull
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
