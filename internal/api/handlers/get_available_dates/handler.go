package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_dates"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange   = "некорректный диапазон дат"
	msgVisitNotFound  = "сессия не найдена или истекла, обновите страницу"
	msgInvalidVisitID = "некорректный ID визита"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/visits/{visitId}/dates
// Query params: from, to (необязательные, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID := mux.Vars(r)["visitId"]

	useCaseReq, err := ToUseCaseRequest(visitID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /visits/{id}/dates - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrVisitNotFound):
			h.logger.Warn("GET /visits/{id}/dates - Visit not found: visit_id=%s", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidRange):
			h.logger.Warn("GET /visits/{id}/dates - Invalid range: visit_id=%s, error=%v", visitID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /visits/{id}/dates - Invalid input: visit_id=%s, error=%v", visitID, err)
			handlers.RespondBadRequest(w, msgInvalidVisitID)

		default:
			h.logger.Error("GET /visits/{id}/dates - Failed to get dates: visit_id=%s, error=%v", visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /visits/{id}/dates - Dates retrieved: visit_id=%s, days=%d", visitID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
