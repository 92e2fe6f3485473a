package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-LandingBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date  string  `json:"date"` // "2025-06-10"
	Time  string  `json:"time"` // "10:00"
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest(visitID string, userAgent *string) (*createAppointment.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createAppointment.Request{
		VisitID:   visitID,
		Date:      date,
		Time:      t,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Notes:     r.Notes,
		UserAgent: userAgent,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		Name:      resp.Name,
		Phone:     resp.Phone,
		Email:     resp.Email,
		Date:      domain.FormatDate(resp.Date),
		Time:      resp.Time.String(),
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
