package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/ptr"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	createdAt := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO appointments \(name,phone,email,date,time,ip_address,user_id,status,notes\)`).
		WithArgs("Анна", "0501234567", nil, "2025-06-10", "10:00", "203.0.113.1", nil, "scheduled", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("a-1", createdAt))

	a, err := repo.Create(context.Background(), &domain.Appointment{
		Name:      "Анна",
		Phone:     "0501234567",
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:      types.MustTimeString("10:00"),
		IPAddress: ptr.Ptr("203.0.113.1"),
		Status:    domain.StatusScheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, "a-1", a.ID)
	assert.Equal(t, createdAt, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExecError(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO appointments`).WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), &domain.Appointment{Time: types.MustTimeString("10:00")})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestListBooked(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT date, time FROM appointments WHERE status <> \$1 ORDER BY date, time`).
		WithArgs("cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"date", "time"}).
			AddRow(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "10:00:00").
			AddRow(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "11:00"))

	snapshot, err := repo.ListBooked(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "10:00", snapshot[0].Time.String())
	assert.Equal(t, "11:00", snapshot[1].Time.String())
	assert.Equal(t, 2, snapshot.CountOn(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBooked_Empty(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT date, time FROM appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"date", "time"}))

	snapshot, err := repo.ListBooked(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
}

func TestCountActiveAt(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE date = \$1 AND time = \$2 AND status <> \$3`).
		WithArgs("2025-06-10", "10:00", "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountActiveAt(context.Background(), time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), types.MustTimeString("10:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLatestByIP(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT name, phone, email, user_id FROM appointments WHERE ip_address = \$1 ORDER BY created_at DESC LIMIT 1`).
		WithArgs("203.0.113.1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone", "email", "user_id"}).
			AddRow("Анна", "0501234567", nil, "u-1"))

	found, err := repo.FindLatestByIP(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Анна", *found.Name)
	assert.Nil(t, found.Email)
	assert.Equal(t, "u-1", *found.UserID)
	assert.Equal(t, domain.SourceAppointments, found.Source)
}

func TestFindLatestByIP_NoRows(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM appointments WHERE ip_address`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone", "email", "user_id"}))

	found, err := repo.FindLatestByIP(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	assert.Nil(t, found)
}
