package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// DayReason причина, по которой дату нельзя выбрать
type DayReason string

const (
	ReasonNone     DayReason = ""
	ReasonPast     DayReason = "past"
	ReasonBlackout DayReason = "blackout"
	ReasonFull     DayReason = "full"
)

// IsBlackout true для пятницы и субботы
func IsBlackout(date time.Time) bool {
	wd := date.Weekday()
	for _, b := range BlackoutWeekdays {
		if wd == b {
			return true
		}
	}
	return false
}

// CheckDate проверяет дату по порядку: прошлое, выходной, заполненный день.
// today берётся в часовом поясе приёма; время суток отбрасывается.
func CheckDate(date, today time.Time, snapshot Snapshot) error {
	d := Day(date)
	if d.Before(Day(today)) {
		return ErrDateInPast
	}
	if IsBlackout(d) {
		return ErrDayBlackedOut
	}
	if snapshot.IsDayFull(d) {
		return ErrDayFull
	}
	return nil
}

// FreeSlots сетка слотов без занятых на дату; порядок сохраняется
func FreeSlots(date time.Time, snapshot Snapshot) []types.TimeString {
	out := make([]types.TimeString, 0, len(availableSlots))
	for _, s := range availableSlots {
		if !snapshot.IsSlotTaken(date, s) {
			out = append(out, s)
		}
	}
	return out
}

// CheckSlot повторная проверка выбранной пары (дата, время) перед записью
func CheckSlot(date time.Time, t types.TimeString, today time.Time, snapshot Snapshot) error {
	if err := CheckDate(date, today, snapshot); err != nil {
		return err
	}
	if !IsKnownSlot(t) {
		return ErrUnknownSlot
	}
	if snapshot.IsSlotTaken(date, t) {
		return ErrSlotTaken
	}
	return nil
}

// ReasonOf переводит ошибку CheckDate в причину для календаря
func ReasonOf(err error) DayReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrDateInPast):
		return ReasonPast
	case errors.Is(err, ErrDayBlackedOut):
		return ReasonBlackout
	case errors.Is(err, ErrDayFull):
		return ReasonFull
	default:
		return ReasonNone
	}
}
