package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidVisitID = "некорректный ID визита"
	msgVisitNotFound  = "сессия не найдена или истекла, обновите страницу"
	msgDateInPast     = "нельзя записаться на прошедшую дату"
	msgDayBlackedOut  = "в пятницу и субботу запись не ведётся"
	msgDayFull        = "на эту дату свободных мест нет"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/visits/{visitId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID := mux.Vars(r)["visitId"]

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /visits/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(visitID, dateStr)
	if err != nil {
		h.logger.Warn("GET /visits/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrVisitNotFound):
			h.logger.Warn("GET /visits/{id}/slots - Visit not found: visit_id=%s", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /visits/{id}/slots - Date in past: visit_id=%s, date=%s", visitID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDayBlackedOut):
			h.logger.Warn("GET /visits/{id}/slots - Blackout day: visit_id=%s, date=%s", visitID, dateStr)
			handlers.RespondBadRequest(w, msgDayBlackedOut)

		case errors.Is(err, getAvailableSlots.ErrDayFull):
			h.logger.Warn("GET /visits/{id}/slots - Day full: visit_id=%s, date=%s", visitID, dateStr)
			handlers.RespondBadRequest(w, msgDayFull)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /visits/{id}/slots - Invalid input: visit_id=%s, error=%v", visitID, err)
			handlers.RespondBadRequest(w, msgInvalidVisitID)

		default:
			h.logger.Error("GET /visits/{id}/slots - Failed to get slots: visit_id=%s, date=%s, error=%v",
				visitID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /visits/{id}/slots - Slots retrieved successfully: visit_id=%s, date=%s, slots_count=%d",
		visitID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
