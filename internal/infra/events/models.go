package events

import "time"

// EventTypeAppointmentBooked тип события о новой записи
const EventTypeAppointmentBooked = "appointment.booked"

// AppointmentBooked тело события о новой записи
type AppointmentBooked struct {
	AppointmentID  string    `json:"appointmentId"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          *string   `json:"email,omitempty"`
	UserID         *string   `json:"userId,omitempty"`
	IdentitySource string    `json:"identitySource,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
