package start_visit

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/identity"
	startVisit "github.com/m04kA/SMC-LandingBooking/internal/usecase/start_visit"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
)

// VisitResponse HTTP response model
type VisitResponse struct {
	VisitID       string          `json:"visitId"`
	ExpiresAt     string          `json:"expiresAt"`
	IPAddress     *string         `json:"ipAddress,omitempty"`
	Contact       ContactResponse `json:"contact"`
	IdentityFound bool            `json:"identityFound"`
	BookedCount   int             `json:"bookedCount"`
}

// ContactResponse значения для предзаполнения формы
type ContactResponse struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ToUseCaseRequest собирает запрос из параметров ссылки, адреса соединения и заголовков прокси
func ToUseCaseRequest(r *http.Request) *startVisit.Request {
	query := r.URL.Query()
	return &startVisit.Request{
		Query: domain.ContactHint{
			Name:  ptr.NonEmpty(query.Get("name")),
			Phone: ptr.NonEmpty(query.Get("phone")),
			Email: ptr.NonEmpty(query.Get("email")),
		},
		Hints: identity.Hints{
			ForwardedFor: r.Header.Get("X-Forwarded-For"),
			RealIP:       r.Header.Get("X-Real-IP"),
			RemoteAddr:   r.RemoteAddr,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startVisit.Response) *VisitResponse {
	return &VisitResponse{
		VisitID:   resp.VisitID,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
		IPAddress: resp.IPAddress,
		Contact: ContactResponse{
			Name:  resp.Contact.Name,
			Phone: resp.Contact.Phone,
			Email: resp.Contact.Email,
		},
		IdentityFound: resp.IdentityFound,
		BookedCount:   resp.BookedCount,
	}
}
