package create_appointment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Поля формы проверяются, только если они явно заполнены.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VisitID) == "" {
		return fmt.Errorf("%w: visitId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if name := filled(req.Name); name != "" && utf8.RuneCountInString(name) < domain.MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}

	if phone := filled(req.Phone); phone != "" && utf8.RuneCountInString(phone) < domain.MinPhoneLength {
		return fmt.Errorf("%w: phone must be at least %d characters", ErrInvalidInput, domain.MinPhoneLength)
	}

	if email := filled(req.Email); email != "" && !isValidEmail(email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	if notes := filled(req.Notes); utf8.RuneCountInString(notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isValidEmail принимает только голый адрес без отображаемого имени
func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(addr.Address, "@")
}

// mapSlotError переводит доменную ошибку проверки слота в ошибку use case
func mapSlotError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDateInPast):
		return ErrDateInPast
	case errors.Is(err, domain.ErrDayBlackedOut):
		return ErrDayBlackedOut
	case errors.Is(err, domain.ErrDayFull):
		return ErrDayFull
	case errors.Is(err, domain.ErrUnknownSlot):
		return ErrInvalidTimeSlot
	case errors.Is(err, domain.ErrSlotTaken):
		return ErrSlotTaken
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func filled(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
