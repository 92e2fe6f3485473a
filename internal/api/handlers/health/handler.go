package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Response HTTP response model
type Response struct {
	Status string            `json:"status"` // ok | degraded
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks []Check
	logger Logger
}

func NewHandler(logger Logger, checks ...Check) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Live GET /health
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}

// Ready GET /ready, 503 при недоступности хотя бы одной зависимости
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, c := range h.checks {
		if c.Check == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Check(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("GET /ready - %s check failed: %v", c.Name, err)
			resp.Checks[c.Name] = "fail"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	handlers.RespondJSON(w, status, resp)
}
