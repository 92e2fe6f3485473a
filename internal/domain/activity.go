package domain

// Действия журнала
const (
	ActionAppointmentCreated = "appointment_created"
)

// ActivityEntry строка журнала действий посетителей
type ActivityEntry struct {
	Action    string
	TableName string
	IPAddress *string
	UserAgent *string
	UserID    *string
	Details   map[string]interface{}
}
