package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LandingBooking/pkg/psqlbuilder"
)

// Функции БД, возвращающие строки (id, name, phone, email).
// squirrel не параметризует вызов функции во FROM, поэтому запросы заданы строками.
const (
	queryUserDataByIP    = `SELECT id, name, phone, email FROM get_user_data_by_ip($1) LIMIT 1`
	queryConsolidateByIP = `SELECT id, name, phone, email FROM consolidate_user_data_by_ip($1) LIMIT 1`
)

// Repository поиск ранее оставленных контактов по IP
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindRegistrationByIP последняя регистрация с IP в metadata
func (r *Repository) FindRegistrationByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	query, args, err := psqlbuilder.Select("user_id", "name", "phone", "email").
		From("registration_data").
		Where(squirrel.Eq{"metadata->>'ip_address'": ip}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindRegistrationByIP - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(ctx, "FindRegistrationByIP", domain.SourceRegistration, query, args...)
}

// FindQuestionnaireByIP последняя анкета с IP в contact_info
func (r *Repository) FindQuestionnaireByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	query, args, err := psqlbuilder.Select(
		"user_id",
		"contact_info->>'name'",
		"contact_info->>'phone'",
		"contact_info->>'email'",
	).
		From("questionnaire_data").
		Where("contact_info IS NOT NULL").
		Where(squirrel.Eq{"contact_info->>'ip_address'": ip}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindQuestionnaireByIP - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(ctx, "FindQuestionnaireByIP", domain.SourceQuestionnaire, query, args...)
}

// FindUserDataByIP вызов функции get_user_data_by_ip
func (r *Repository) FindUserDataByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	return r.scanOne(ctx, "FindUserDataByIP", domain.SourceRPCUserData, queryUserDataByIP, ip)
}

// ConsolidateByIP вызов функции consolidate_user_data_by_ip
func (r *Repository) ConsolidateByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	return r.scanOne(ctx, "ConsolidateByIP", domain.SourceRPCConsolidated, queryConsolidateByIP, ip)
}

// scanOne читает строку (user_id, name, phone, email); nil, если строк нет
func (r *Repository) scanOne(ctx context.Context, op string, source domain.IdentitySource, query string, args ...interface{}) (*domain.Identity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	found := domain.Identity{Source: source}
	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&found.UserID,
		&found.Name,
		&found.Phone,
		&found.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
	}

	return &found, nil
}
