package get_available_slots

import (
	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"` // "09:00", "10:00", ...
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:  domain.FormatDate(resp.Date),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(visitID, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		VisitID: visitID,
		Date:    date,
	}, nil
}
