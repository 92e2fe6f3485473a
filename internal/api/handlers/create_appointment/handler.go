package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-LandingBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "проверьте правильность заполнения формы"
	msgVisitNotFound      = "сессия не найдена или истекла, обновите страницу"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
	msgDayBlackedOut      = "в пятницу и субботу запись не ведётся"
	msgDayFull            = "на эту дату свободных мест нет"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotTaken          = "это время уже занято, выберите другое"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits/{visitId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID := mux.Vars(r)["visitId"]

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(visitID, ptr.NonEmpty(r.UserAgent()))
	if err != nil {
		h.logger.Warn("POST /visits/{id}/appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /visits/{id}/appointments - Slot taken: visit_id=%s, date=%s, time=%s",
				visitID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrVisitNotFound):
			h.logger.Warn("POST /visits/{id}/appointments - Visit not found: visit_id=%s", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /visits/{id}/appointments - Date in past: visit_id=%s, date=%s", visitID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDayBlackedOut):
			h.logger.Warn("POST /visits/{id}/appointments - Blackout day: visit_id=%s, date=%s", visitID, req.Date)
			handlers.RespondBadRequest(w, msgDayBlackedOut)

		case errors.Is(err, createAppointment.ErrDayFull):
			h.logger.Warn("POST /visits/{id}/appointments - Day full: visit_id=%s, date=%s", visitID, req.Date)
			handlers.RespondBadRequest(w, msgDayFull)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /visits/{id}/appointments - Invalid time slot: visit_id=%s, time=%s", visitID, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /visits/{id}/appointments - Invalid input: visit_id=%s, error=%v", visitID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /visits/{id}/appointments - Failed to create appointment: visit_id=%s, error=%v",
				visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /visits/{id}/appointments - Appointment created successfully: id=%s, visit_id=%s, date=%s, time=%s",
		result.ID, visitID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
