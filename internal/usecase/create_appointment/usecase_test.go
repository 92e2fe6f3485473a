package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/events"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/visitstore"
	"github.com/m04kA/SMC-LandingBooking/pkg/logger"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
	"github.com/m04kA/SMC-LandingBooking/pkg/txmanager"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubRepo struct {
	count     int
	countErr  error
	createErr error
	created   []*domain.Appointment
}

func (r *stubRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	a.ID = "a-1"
	a.CreatedAt = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	r.created = append(r.created, a)
	return a, nil
}

func (r *stubRepo) CountActiveAt(ctx context.Context, date time.Time, t types.TimeString) (int, error) {
	return r.count, r.countErr
}

// visits хранит визит в памяти и применяет AppendBooked к снимку
type visits struct {
	visit *domain.Visit
	err   error
}

func (v *visits) Get(ctx context.Context, id string) (*domain.Visit, error) {
	if v.err != nil {
		return nil, v.err
	}
	cp := *v.visit
	return &cp, nil
}

func (v *visits) AppendBooked(ctx context.Context, id string, slot domain.BookedSlot) error {
	v.visit.Snapshot = v.visit.Snapshot.Append(slot)
	return nil
}

type recordingLog struct {
	entries []*domain.ActivityEntry
	err     error
}

func (l *recordingLog) Create(ctx context.Context, e *domain.ActivityEntry) error {
	l.entries = append(l.entries, e)
	return l.err
}

type recordingPublisher struct {
	events []events.AppointmentBooked
	err    error
}

func (p *recordingPublisher) PublishAppointmentBooked(ctx context.Context, e events.AppointmentBooked) error {
	p.events = append(p.events, e)
	return p.err
}

type recordingMetrics struct {
	created   int
	conflicts []string
}

func (m *recordingMetrics) IncAppointmentCreated()       { m.created++ }
func (m *recordingMetrics) IncSlotConflict(stage string) { m.conflicts = append(m.conflicts, stage) }

type fixture struct {
	repo      *stubRepo
	visits    *visits
	log       *recordingLog
	publisher *recordingPublisher
	metrics   *recordingMetrics
	uc        *UseCase
}

func d(s string) time.Time {
	t, _ := domain.ParseDate(s)
	return t
}

func newFixture(visit *domain.Visit, recheck bool) *fixture {
	f := &fixture{
		repo:      &stubRepo{},
		visits:    &visits{visit: visit},
		log:       &recordingLog{},
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
	}
	f.uc = NewUseCase(f.repo, f.visits, f.log, f.publisher, txmanager.NoopManager{}, f.metrics, Config{
		GuestName:      "Гость",
		RecheckStorage: recheck,
		Location:       time.UTC,
	}, logger.Discard())
	// понедельник 2025-06-09
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)}
	return f
}

func baseVisit() *domain.Visit {
	return &domain.Visit{
		ID:        "v1",
		IPAddress: ptr.Ptr("203.0.113.1"),
		Identity: &domain.Identity{
			Name:   ptr.Ptr("Анна"),
			Phone:  ptr.Ptr("0501234567"),
			UserID: ptr.Ptr("u-1"),
			Source: domain.SourceAppointments,
		},
		Snapshot: domain.Snapshot{{Date: d("2025-06-10"), Time: types.MustTimeString("10:00")}},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(baseVisit(), true)

	resp, err := f.uc.Execute(context.Background(), &Request{
		VisitID:   "v1",
		Date:      d("2025-06-10"),
		Time:      types.MustTimeString("11:00"),
		Email:     ptr.Ptr("anna@example.com"),
		Notes:     ptr.Ptr("  "),
		UserAgent: ptr.Ptr("Mozilla/5.0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "a-1", resp.ID)
	assert.Equal(t, "Анна", resp.Name)
	assert.Equal(t, "0501234567", resp.Phone)
	assert.Equal(t, "anna@example.com", *resp.Email)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Nil(t, resp.Notes)

	require.Len(t, f.repo.created, 1)
	created := f.repo.created[0]
	assert.Equal(t, "u-1", *created.UserID)
	assert.Equal(t, "203.0.113.1", *created.IPAddress)

	assert.True(t, f.visits.visit.Snapshot.IsSlotTaken(d("2025-06-10"), types.MustTimeString("11:00")))
	require.Len(t, f.log.entries, 1)
	assert.Equal(t, domain.ActionAppointmentCreated, f.log.entries[0].Action)
	assert.Equal(t, "Mozilla/5.0", *f.log.entries[0].UserAgent)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "appointments", f.publisher.events[0].IdentitySource)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_GuestFallback(t *testing.T) {
	visit := baseVisit()
	visit.Identity = nil
	visit.IPAddress = nil
	f := newFixture(visit, false)

	resp, err := f.uc.Execute(context.Background(), &Request{
		VisitID: "v1",
		Date:    d("2025-06-10"),
		Time:    types.MustTimeString("09:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Гость", resp.Name)
	assert.Equal(t, "", resp.Phone)
	assert.Nil(t, resp.Email)
	assert.Nil(t, f.repo.created[0].UserID)
}

func TestExecute_StaleSnapshotRejected(t *testing.T) {
	f := newFixture(baseVisit(), true)
	req := &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("12:00")}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// повторная отправка того же слота с тем же визитом
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, f.repo.created, 1)
	assert.Equal(t, []string{"snapshot"}, f.metrics.conflicts)
}

func TestExecute_TakenInSnapshot(t *testing.T) {
	f := newFixture(baseVisit(), true)

	_, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("10:00")})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.repo.created)
}

func TestExecute_TakenInStorage(t *testing.T) {
	f := newFixture(baseVisit(), true)
	f.repo.count = 1

	_, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("15:00")})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.repo.created)
	assert.Equal(t, []string{"storage"}, f.metrics.conflicts)
}

func TestExecute_StorageRecheckDisabled(t *testing.T) {
	f := newFixture(baseVisit(), false)
	f.repo.count = 1

	_, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("15:00")})
	assert.NoError(t, err)
}

func TestExecute_DateAndSlotErrors(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{"past", "2025-06-06", "10:00", ErrDateInPast},
		{"friday", "2025-06-13", "10:00", ErrDayBlackedOut},
		{"saturday", "2025-06-14", "10:00", ErrDayBlackedOut},
		{"off grid", "2025-06-10", "10:30", ErrInvalidTimeSlot},
		{"after hours", "2025-06-10", "19:00", ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(baseVisit(), true)
			_, err := f.uc.Execute(context.Background(), &Request{
				VisitID: "v1",
				Date:    d(tt.date),
				Time:    types.MustTimeString(tt.time),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_DayFull(t *testing.T) {
	visit := baseVisit()
	visit.Snapshot = nil
	for _, tm := range []string{"09:00", "10:00", "11:00", "12:00", "13:00"} {
		visit.Snapshot = append(visit.Snapshot, domain.BookedSlot{Date: d("2025-06-12"), Time: types.MustTimeString(tm)})
	}
	f := newFixture(visit, true)

	_, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-12"), Time: types.MustTimeString("14:00")})
	assert.ErrorIs(t, err, ErrDayFull)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"no visit", Request{Date: d("2025-06-10"), Time: types.MustTimeString("10:00")}},
		{"no date", Request{VisitID: "v1", Time: types.MustTimeString("10:00")}},
		{"no time", Request{VisitID: "v1", Date: d("2025-06-10")}},
		{"short name", Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00"), Name: ptr.Ptr("А")}},
		{"short phone", Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00"), Phone: ptr.Ptr("12345")}},
		{"bad email", Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00"), Email: ptr.Ptr("not-an-email")}},
		{"display name email", Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00"), Email: ptr.Ptr("Anna <a@example.com>")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(baseVisit(), true)
			req := tt.req
			_, err := f.uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_VisitErrors(t *testing.T) {
	f := newFixture(baseVisit(), true)
	f.visits.err = visitstore.ErrVisitNotFound
	_, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00")})
	assert.ErrorIs(t, err, ErrVisitNotFound)

	f.visits.err = errors.New("redis down")
	_, err = f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00")})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_StorageFailures(t *testing.T) {
	f := newFixture(baseVisit(), true)
	f.repo.countErr = errors.New("timeout")
	_, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00")})
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture(baseVisit(), true)
	f.repo.createErr = errors.New("insert failed")
	_, err = f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00")})
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, f.visits.visit.Snapshot.IsSlotTaken(d("2025-06-10"), types.MustTimeString("11:00")))
}

func TestExecute_SideEffectFailuresDoNotFail(t *testing.T) {
	f := newFixture(baseVisit(), true)
	f.log.err = errors.New("activity_log missing")
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), &Request{VisitID: "v1", Date: d("2025-06-10"), Time: types.MustTimeString("11:00")})
	require.NoError(t, err)
	assert.Equal(t, "a-1", resp.ID)
}
