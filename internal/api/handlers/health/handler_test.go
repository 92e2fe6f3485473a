package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LandingBooking/pkg/logger"
)

func TestLive(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(logger.Discard()).Live(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReady(t *testing.T) {
	ok := Check{Name: "database", Check: func(ctx context.Context) error { return nil }}
	failing := Check{Name: "redis", Check: func(ctx context.Context) error { return errors.New("refused") }}

	w := httptest.NewRecorder()
	NewHandler(logger.Discard(), ok).Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok"}}`, w.Body.String())

	w = httptest.NewRecorder()
	NewHandler(logger.Discard(), ok, failing).Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"database":"ok","redis":"fail"}}`, w.Body.String())
}
