package domain

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// BookedSlot занятая пара (дата, время) из неотменённой записи
type BookedSlot struct {
	Date time.Time        `json:"date"`
	Time types.TimeString `json:"time"`
}

// Snapshot занятые слоты, загруженные один раз при открытии страницы
type Snapshot []BookedSlot

// CountOn число занятых слотов на дату
func (s Snapshot) CountOn(date time.Time) int {
	n := 0
	for _, b := range s {
		if SameDay(b.Date, date) {
			n++
		}
	}
	return n
}

// IsDayFull true, если на дату уже MaxAppointmentsPerDay записей
func (s Snapshot) IsDayFull(date time.Time) bool {
	return s.CountOn(date) >= MaxAppointmentsPerDay
}

// IsSlotTaken true при точном совпадении даты и времени
func (s Snapshot) IsSlotTaken(date time.Time, t types.TimeString) bool {
	for _, b := range s {
		if SameDay(b.Date, date) && b.Time.Equal(t) {
			return true
		}
	}
	return false
}

// Append возвращает снимок с добавленным слотом (после успешной записи, без перечитывания)
func (s Snapshot) Append(slot BookedSlot) Snapshot {
	out := make(Snapshot, len(s), len(s)+1)
	copy(out, s)
	return append(out, BookedSlot{Date: Day(slot.Date), Time: slot.Time})
}
