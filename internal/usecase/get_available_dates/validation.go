package get_available_dates

import (
	"fmt"
	"strings"
	"time"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VisitID) == "" {
		return fmt.Errorf("%w: visitId is required", ErrInvalidInput)
	}
	return nil
}

// validateRange проверяет, что from <= to и диапазон не длиннее MaxRangeDays
func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: to %s is before from %s", ErrInvalidRange, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrInvalidRange, days, MaxRangeDays)
	}
	return nil
}
