package get_available_dates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-LandingBooking/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-LandingBooking/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/visits/{visitId}/dates", h.Handle).Methods(http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{Dates: []getAvailableDates.DateAvailability{
		{Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), Selectable: true},
		{Date: time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), Reason: domain.ReasonBlackout},
	}}}
	w := serve(NewHandler(uc, logger.Discard()), "/api/v1/visits/v1/dates?from=2025-06-12&to=2025-06-13")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1", uc.got.VisitID)
	require.NotNil(t, uc.got.From)
	require.NotNil(t, uc.got.To)
	assert.JSONEq(t, `{"dates":[
		{"date":"2025-06-12","selectable":true},
		{"date":"2025-06-13","selectable":false,"reason":"blackout"}
	]}`, w.Body.String())
}

func TestHandle_DefaultRange(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{}}
	w := serve(NewHandler(uc, logger.Discard()), "/api/v1/visits/v1/dates")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.got.From)
	assert.Nil(t, uc.got.To)
	assert.JSONEq(t, `{"dates":[]}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad date", "/api/v1/visits/v1/dates?from=12.06.2025", nil, http.StatusBadRequest},
		{"not found", "/api/v1/visits/v1/dates", getAvailableDates.ErrVisitNotFound, http.StatusNotFound},
		{"range", "/api/v1/visits/v1/dates", getAvailableDates.ErrInvalidRange, http.StatusBadRequest},
		{"internal", "/api/v1/visits/v1/dates", getAvailableDates.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err, resp: &getAvailableDates.Response{}}
			w := serve(NewHandler(uc, logger.Discard()), tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
