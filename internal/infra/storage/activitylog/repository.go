package activitylog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/psqlbuilder"
)

// Repository запись в журнал действий activity_log
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var details interface{}
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("%w: Create - marshal details: %v", ErrBuildQuery, err)
		}
		details = string(raw)
	}

	query, args, err := psqlbuilder.Insert("activity_log").
		Columns("action", "table_name", "ip_address", "user_agent", "user_id", "details").
		Values(entry.Action, entry.TableName, entry.IPAddress, entry.UserAgent, entry.UserID, details).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
