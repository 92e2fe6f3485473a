package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LandingBooking/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT date, time FROM appointments"))
	assert.Equal(t, "insert", operation("INSERT INTO activity_log"))
	assert.Equal(t, "unknown", operation(""))
}

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, metrics.NewWithRegistry("test", prometheus.NewRegistry()))

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ExecRecordsQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)

	mock.ExpectExec("DELETE FROM appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = db.ExecContext(context.Background(), "DELETE FROM appointments WHERE id = $1", 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
