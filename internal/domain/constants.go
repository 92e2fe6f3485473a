package domain

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// Правила записи
const (
	MaxAppointmentsPerDay = 5
	MinNameLength         = 2
	MinPhoneLength        = 9
	MaxNotesLength        = 500

	// MaxCalendarRangeDays самый длинный диапазон календаря, включая обе границы
	MaxCalendarRangeDays = 92
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// availableSlots фиксированная сетка: десять часовых слотов с 09:00 до 18:00
var availableSlots = []types.TimeString{
	types.MustTimeString("09:00"),
	types.MustTimeString("10:00"),
	types.MustTimeString("11:00"),
	types.MustTimeString("12:00"),
	types.MustTimeString("13:00"),
	types.MustTimeString("14:00"),
	types.MustTimeString("15:00"),
	types.MustTimeString("16:00"),
	types.MustTimeString("17:00"),
	types.MustTimeString("18:00"),
}

// BlackoutWeekdays дни недели без приёма
var BlackoutWeekdays = []time.Weekday{time.Friday, time.Saturday}

// AvailableSlots возвращает копию сетки слотов
func AvailableSlots() []types.TimeString {
	out := make([]types.TimeString, len(availableSlots))
	copy(out, availableSlots)
	return out
}

// IsKnownSlot true, если время входит в сетку слотов
func IsKnownSlot(t types.TimeString) bool {
	for _, s := range availableSlots {
		if s.Equal(t) {
			return true
		}
	}
	return false
}
