package start_visit

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/identity"
)

// Config параметры визита
type Config struct {
	TTL       time.Duration
	GuestName string
}

// Request модель запроса открытия страницы
type Request struct {
	Query domain.ContactHint // параметры ссылки name, phone, email
	Hints identity.Hints     // заголовки прокси для определения IP
}

// Response модель ответа с новым визитом
type Response struct {
	VisitID       string
	ExpiresAt     time.Time
	IPAddress     *string
	Contact       domain.Contact // предзаполнение формы
	IdentityFound bool
	BookedCount   int
}
