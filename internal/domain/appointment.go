package domain

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись на приём. Сервис только создаёт записи и никогда их не меняет.
type Appointment struct {
	ID        string
	Name      string
	Phone     string
	Email     *string
	Date      time.Time
	Time      types.TimeString
	IPAddress *string
	UserID    *string
	Status    AppointmentStatus
	Notes     *string
	CreatedAt time.Time
}

// Slot занимаемая записью пара (дата, время)
func (a *Appointment) Slot() BookedSlot {
	return BookedSlot{Date: Day(a.Date), Time: a.Time}
}
