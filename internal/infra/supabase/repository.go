package supabase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// Repository реализация хранилища поверх PostgREST (Supabase).
// PostgREST не даёт транзакций; вызовы выполняются по одному.
type Repository struct {
	client *supa.Client
}

// NewClient создает клиента Supabase по URL проекта и ключу
func NewClient(url, key string) (*supa.Client, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrRequest, err)
	}
	return client, nil
}

func NewRepository(client *supa.Client) *Repository {
	return &Repository{client: client}
}

// Create вставляет запись и возвращает её вместе с id и created_at
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	row := appointmentRow{
		Name:      a.Name,
		Phone:     a.Phone,
		Email:     a.Email,
		Date:      domain.FormatDate(a.Date),
		Time:      a.Time.String(),
		IPAddress: a.IPAddress,
		UserID:    a.UserID,
		Status:    string(a.Status),
		Notes:     a.Notes,
	}

	data, _, err := r.client.From("appointments").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrRequest, err)
	}

	var inserted []appointmentRow
	if err := decodeRows("Create", data, &inserted); err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("%w: Create - empty representation", ErrDecode)
	}

	a.ID = inserted[0].ID
	if inserted[0].CreatedAt != nil {
		a.CreatedAt = *inserted[0].CreatedAt
	} else {
		a.CreatedAt = time.Now().UTC()
	}
	return a, nil
}

// ListBooked дата и время всех неотменённых записей
func (r *Repository) ListBooked(ctx context.Context) (domain.Snapshot, error) {
	data, _, err := r.client.From("appointments").
		Select("date,time", "", false).
		Neq("status", string(domain.StatusCancelled)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBooked: %v", ErrRequest, err)
	}

	var rows []bookedRow
	if err := decodeRows("ListBooked", data, &rows); err != nil {
		return nil, err
	}

	snapshot := make(domain.Snapshot, 0, len(rows))
	for _, row := range rows {
		slot, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: ListBooked - %v", ErrDecode, err)
		}
		snapshot = append(snapshot, slot)
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		if !snapshot[i].Date.Equal(snapshot[j].Date) {
			return snapshot[i].Date.Before(snapshot[j].Date)
		}
		return snapshot[i].Time.IsBefore(snapshot[j].Time)
	})
	return snapshot, nil
}

// CountActiveAt число неотменённых записей на пару (дата, время)
func (r *Repository) CountActiveAt(ctx context.Context, date time.Time, t types.TimeString) (int, error) {
	data, _, err := r.client.From("appointments").
		Select("id", "", false).
		Eq("date", domain.FormatDate(date)).
		Eq("time", t.String()).
		Neq("status", string(domain.StatusCancelled)).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt: %v", ErrRequest, err)
	}

	var rows []struct {
		ID interface{} `json:"id"`
	}
	if err := decodeRows("CountActiveAt", data, &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// FindLatestByIP контакты из самой свежей записи с этого IP
func (r *Repository) FindLatestByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	return r.latestContact(
		"FindLatestByIP",
		r.client.From("appointments").
			Select("name,phone,email,user_id", "", false).
			Eq("ip_address", ip),
		domain.SourceAppointments,
	)
}

// FindRegistrationByIP последняя регистрация с IP в metadata
func (r *Repository) FindRegistrationByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	return r.latestContact(
		"FindRegistrationByIP",
		r.client.From("registration_data").
			Select("user_id,name,phone,email", "", false).
			Eq("metadata->>ip_address", ip),
		domain.SourceRegistration,
	)
}

// FindQuestionnaireByIP последняя анкета с IP в contact_info
func (r *Repository) FindQuestionnaireByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	data, _, err := r.client.From("questionnaire_data").
		Select("user_id,contact_info", "", false).
		Not("contact_info", "is", "null").
		Eq("contact_info->>ip_address", ip).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: FindQuestionnaireByIP: %v", ErrRequest, err)
	}

	var rows []questionnaireRow
	if err := decodeRows("FindQuestionnaireByIP", data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].ContactInfo == nil {
		return nil, nil
	}

	info := rows[0].ContactInfo
	return &domain.Identity{
		Name:   info.Name,
		Phone:  info.Phone,
		Email:  info.Email,
		UserID: rows[0].UserID,
		Source: domain.SourceQuestionnaire,
	}, nil
}

// FindUserDataByIP вызов функции get_user_data_by_ip
func (r *Repository) FindUserDataByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	return r.rpcContact("get_user_data_by_ip", ip, domain.SourceRPCUserData)
}

// ConsolidateByIP вызов функции consolidate_user_data_by_ip
func (r *Repository) ConsolidateByIP(ctx context.Context, ip string) (*domain.Identity, error) {
	return r.rpcContact("consolidate_user_data_by_ip", ip, domain.SourceRPCConsolidated)
}

// CreateActivity запись в activity_log
func (r *Repository) CreateActivity(ctx context.Context, entry *domain.ActivityEntry) error {
	row := activityRow{
		Action:    entry.Action,
		TableName: entry.TableName,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		UserID:    entry.UserID,
		Details:   entry.Details,
	}

	if _, _, err := r.client.From("activity_log").Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("%w: CreateActivity: %v", ErrRequest, err)
	}
	return nil
}

func (r *Repository) latestContact(op string, query *postgrest.FilterBuilder, source domain.IdentitySource) (*domain.Identity, error) {
	data, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRequest, op, err)
	}

	var rows []contactRow
	if err := decodeRows(op, data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(source), nil
}

func (r *Repository) rpcContact(name, ip string, source domain.IdentitySource) (*domain.Identity, error) {
	body := r.client.Rpc(name, "", map[string]string{"ip_param": ip})
	if body == "" {
		return nil, fmt.Errorf("%w: %s - empty response", ErrRequest, name)
	}

	var rows []contactRow
	if err := decodeRows(name, []byte(body), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(source), nil
}
