package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

const table = "appointments"

// Repository репозиторий записей на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет запись. Использует транзакцию из контекста, если она есть.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"phone",
			"email",
			"date",
			"time",
			"ip_address",
			"user_id",
			"status",
			"notes",
		).
		Values(
			a.Name,
			a.Phone,
			a.Email,
			domain.FormatDate(a.Date),
			a.Time,
			a.IPAddress,
			a.UserID,
			string(a.Status),
			a.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time

	return a, nil
}

// ListBooked возвращает занятые слоты: дата и время всех неотменённых записей
func (r *Repository) ListBooked(ctx context.Context) (domain.Snapshot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "time").
		From(table).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("date", "time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBooked - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBooked - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	snapshot := make(domain.Snapshot, 0)
	for rows.Next() {
		var (
			date time.Time
			tm   types.TimeString
		)
		if err := rows.Scan(&date, &tm); err != nil {
			return nil, fmt.Errorf("%w: ListBooked - scan row: %v", ErrScanRow, err)
		}
		snapshot = append(snapshot, domain.BookedSlot{Date: domain.Day(date), Time: tm})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBooked - iterate rows: %v", ErrScanRow, err)
	}

	return snapshot, nil
}

// CountActiveAt число неотменённых записей на пару (дата, время)
func (r *Repository) CountActiveAt(ctx context.Context, date time.Time, t types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"date": domain.FormatDate(date), "time": t}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// FindLatestByIP контакты из самой свежей записи с этого IP; nil, если записей нет
func (r *Repository) FindLatestByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name", "phone", "email", "user_id").
		From(table).
		Where(squirrel.Eq{"ip_address": ip}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindLatestByIP - build select query: %v", ErrBuildQuery, err)
	}

	found := domain.Identity{Source: domain.SourceAppointments}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&found.Name,
		&found.Phone,
		&found.Email,
		&found.UserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindLatestByIP - scan row: %v", ErrScanRow, err)
	}

	return &found, nil
}
