package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// Config параметры записи
type Config struct {
	GuestName      string
	RecheckStorage bool           // дополнительно считать занятость слота в хранилище перед вставкой
	Location       *time.Location // часовой пояс, в котором считается "сегодня"
}

// Request модель запроса на создание записи
type Request struct {
	VisitID   string
	Date      time.Time        // Дата записи (без времени)
	Time      types.TimeString // Время слота, например "10:00"
	Name      *string          // Поля формы; пустые берутся из визита
	Phone     *string
	Email     *string
	Notes     *string
	UserAgent *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID        string
	Name      string
	Phone     string
	Email     *string
	Date      time.Time
	Time      types.TimeString
	Status    string
	Notes     *string
	CreatedAt time.Time
}
