package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	VisitID string    // ID визита
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date  time.Time          // Дата, на которую запрашивались слоты
	Slots []types.TimeString // Свободные слоты в порядке сетки
}
