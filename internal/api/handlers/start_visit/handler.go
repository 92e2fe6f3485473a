package start_visit

import (
	"net/http"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers"
)

type Handler struct {
	useCase StartVisitUseCase
	logger  Logger
}

func NewHandler(useCase StartVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits
// Query params: name, phone, email (необязательные, из ссылки на лендинг)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq := ToUseCaseRequest(r)

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("POST /visits - Failed to start visit: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /visits - Visit started: visit_id=%s, identity_found=%t, booked=%d",
		result.VisitID, result.IdentityFound, result.BookedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
