package contact

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"
)

var columns = []string{"user_id", "name", "phone", "email"}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestFindRegistrationByIP(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT user_id, name, phone, email FROM registration_data WHERE metadata->>'ip_address' = $1 ORDER BY created_at DESC LIMIT 1`,
	)).
		WithArgs("203.0.113.1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("u-1", "Анна", "0501234567", "a@example.com"))

	found, err := repo.FindRegistrationByIP(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.SourceRegistration, found.Source)
	assert.Equal(t, "u-1", *found.UserID)
	assert.Equal(t, "a@example.com", *found.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindQuestionnaireByIP(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM questionnaire_data WHERE contact_info IS NOT NULL AND contact_info->>'ip_address' = $1 ORDER BY created_at DESC LIMIT 1`,
	)).
		WithArgs("203.0.113.1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(nil, "Борис", nil, nil))

	found, err := repo.FindQuestionnaireByIP(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.SourceQuestionnaire, found.Source)
	assert.Nil(t, found.UserID)
	assert.Equal(t, "Борис", *found.Name)
}

func TestFindQuestionnaireByIP_NoRows(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM questionnaire_data`).WillReturnRows(sqlmock.NewRows(columns))

	found, err := repo.FindQuestionnaireByIP(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRPCLookups(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryUserDataByIP)).
		WithArgs("203.0.113.1").
		WillReturnError(errors.New("function get_user_data_by_ip does not exist"))
	mock.ExpectQuery(regexp.QuoteMeta(queryConsolidateByIP)).
		WithArgs("203.0.113.1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("u-2", "Вера", "0509876543", nil))

	_, err := repo.FindUserDataByIP(context.Background(), "203.0.113.1")
	assert.ErrorIs(t, err, ErrScanRow)

	found, err := repo.ConsolidateByIP(context.Background(), "203.0.113.1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.SourceRPCConsolidated, found.Source)
	assert.Equal(t, "Вера", *found.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
