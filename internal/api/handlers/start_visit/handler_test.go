package start_visit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/identity"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/visitstore"
	"github.com/m04kA/SMC-LandingBooking/internal/integrations/ipprovider"
	startVisit "github.com/m04kA/SMC-LandingBooking/internal/usecase/start_visit"
	"github.com/m04kA/SMC-LandingBooking/pkg/logger"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
)

type stubUseCase struct {
	got  *startVisit.Request
	resp *startVisit.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *startVisit.Request) (*startVisit.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &startVisit.Response{
		VisitID:       "v1",
		ExpiresAt:     time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC),
		IPAddress:     ptr.Ptr("203.0.113.7"),
		Contact:       domain.Contact{Name: "Анна", Phone: "0501234567"},
		IdentityFound: true,
		BookedCount:   3,
	}}
	h := NewHandler(uc, logger.Discard())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/visits?name=%D0%90%D0%BD%D0%BD%D0%B0&phone=&email=a@example.com", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	h.Handle(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "Анна", *uc.got.Query.Name)
	assert.Nil(t, uc.got.Query.Phone)
	assert.Equal(t, "a@example.com", *uc.got.Query.Email)
	assert.Equal(t, "203.0.113.7, 10.0.0.1", uc.got.Hints.ForwardedFor)
	assert.Equal(t, r.RemoteAddr, uc.got.Hints.RemoteAddr)

	var body VisitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "v1", body.VisitID)
	assert.Equal(t, "2025-06-09T14:00:00Z", body.ExpiresAt)
	assert.Equal(t, "Анна", body.Contact.Name)
	assert.True(t, body.IdentityFound)
	assert.Equal(t, 3, body.BookedCount)
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&stubUseCase{err: startVisit.ErrInternal}, logger.Discard())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/visits", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type emptySnapshot struct{}

func (emptySnapshot) ListBooked(ctx context.Context) (domain.Snapshot, error) {
	return nil, nil
}

type contactsByIP map[string]*domain.Identity

func (c contactsByIP) FindLatestByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	found, ok := c[ip]
	if !ok {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

// newWiredHandler handler с настоящими цепочками IP и поиска личности
func newWiredHandler(t *testing.T, contacts contactsByIP, trustForwarded bool) *Handler {
	t.Helper()

	// Внешний сервис всегда отвечает адресом сервера
	egress := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"198.51.100.77"}`))
	}))
	t.Cleanup(egress.Close)

	log := logger.Discard()
	ipChain := identity.NewIPChain([]identity.IPProvider{
		ipprovider.NewClient(ipprovider.NameIpify, egress.URL, time.Second, nil, log),
	}, trustForwarded, nil, log)
	resolver := identity.NewLookupChain([]identity.Lookup{
		{Source: domain.SourceAppointments, Find: contacts.FindLatestByIP},
	}, nil, log)

	uc := startVisit.NewUseCase(emptySnapshot{}, ipChain, resolver, visitstore.NewMemoryStore(), nil,
		startVisit.Config{TTL: time.Hour, GuestName: "אורח"}, log)
	return NewHandler(uc, log)
}

func startVisitFrom(t *testing.T, h *Handler, remoteAddr string, headers map[string]string) VisitResponse {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/visits", nil)
	r.RemoteAddr = remoteAddr
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	var body VisitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandle_IdentityFollowsClientAddress(t *testing.T) {
	contacts := contactsByIP{
		"198.51.100.77": {Name: ptr.Ptr("Сервер"), Phone: ptr.Ptr("0500000000")},
		"203.0.113.10":  {Name: ptr.Ptr("Анна"), Phone: ptr.Ptr("0501112233"), Email: ptr.Ptr("a@example.com")},
		"203.0.113.50":  {Name: ptr.Ptr("Борис"), Phone: ptr.Ptr("0504445566")},
	}
	h := newWiredHandler(t, contacts, false)

	first := startVisitFrom(t, h, "203.0.113.10:51000", nil)
	second := startVisitFrom(t, h, "203.0.113.50:41000", nil)

	require.NotNil(t, first.IPAddress)
	assert.Equal(t, "203.0.113.10", *first.IPAddress)
	assert.Equal(t, "Анна", first.Contact.Name)

	require.NotNil(t, second.IPAddress)
	assert.Equal(t, "203.0.113.50", *second.IPAddress)
	assert.Equal(t, "Борис", second.Contact.Name)
	assert.Nil(t, second.Contact.Email)
}

func TestHandle_UnknownClientGetsNoForeignContact(t *testing.T) {
	contacts := contactsByIP{
		"198.51.100.77": {Name: ptr.Ptr("Сервер"), Phone: ptr.Ptr("0500000000")},
		"203.0.113.10":  {Name: ptr.Ptr("Анна"), Phone: ptr.Ptr("0501112233")},
	}
	h := newWiredHandler(t, contacts, false)

	// Заголовки прокси без доверия игнорируются
	body := startVisitFrom(t, h, "203.0.113.99:40000", map[string]string{"X-Forwarded-For": "203.0.113.10"})

	require.NotNil(t, body.IPAddress)
	assert.Equal(t, "203.0.113.99", *body.IPAddress)
	assert.False(t, body.IdentityFound)
	assert.Equal(t, "אורח", body.Contact.Name)
	assert.Empty(t, body.Contact.Phone)
}

func TestHandle_TrustedForwardedHeader(t *testing.T) {
	contacts := contactsByIP{
		"203.0.113.10": {Name: ptr.Ptr("Анна"), Phone: ptr.Ptr("0501112233")},
	}
	h := newWiredHandler(t, contacts, true)

	body := startVisitFrom(t, h, "10.0.0.5:40000", map[string]string{"X-Forwarded-For": "203.0.113.10, 10.0.0.5"})

	require.NotNil(t, body.IPAddress)
	assert.Equal(t, "203.0.113.10", *body.IPAddress)
	assert.Equal(t, "Анна", body.Contact.Name)
}

func TestHandle_PrivateProxyAddressIsNotAnIdentity(t *testing.T) {
	contacts := contactsByIP{
		"10.0.0.5": {Name: ptr.Ptr("Анна"), Phone: ptr.Ptr("0501112233")},
	}
	h := newWiredHandler(t, contacts, false)

	body := startVisitFrom(t, h, "10.0.0.5:40000", nil)

	assert.False(t, body.IdentityFound)
	assert.Equal(t, "אורח", body.Contact.Name)
}
