package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// MaxRangeDays максимальная длина запрашиваемого диапазона
const MaxRangeDays = domain.MaxCalendarRangeDays

// Request модель запроса календаря
type Request struct {
	VisitID string
	From    *time.Time // по умолчанию сегодня
	To      *time.Time // по умолчанию From + calendarDays
}

// Response модель ответа календаря
type Response struct {
	Dates []DateAvailability
}

// DateAvailability доступность одной даты
type DateAvailability struct {
	Date       time.Time
	Selectable bool
	Reason     domain.DayReason // пусто для доступной даты
}
