package get_available_dates

import (
	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Dates []AvailableDate `json:"dates"`
}

// AvailableDate доступность даты в календаре
type AvailableDate struct {
	Date       string `json:"date"`
	Selectable bool   `json:"selectable"`
	Reason     string `json:"reason,omitempty"` // past | blackout | full
}

// ToUseCaseRequest создает запрос use case из query параметров; пустые границы берутся по умолчанию
func ToUseCaseRequest(visitID, fromStr, toStr string) (*getAvailableDates.Request, error) {
	req := &getAvailableDates.Request{VisitID: visitID}

	if fromStr != "" {
		from, err := domain.ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := domain.ParseDate(toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = AvailableDate{
			Date:       domain.FormatDate(d.Date),
			Selectable: d.Selectable,
			Reason:     string(d.Reason),
		}
	}
	return &AvailableDatesResponse{Dates: dates}
}
