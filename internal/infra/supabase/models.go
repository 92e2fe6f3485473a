package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// appointmentRow строка appointments в JSON PostgREST
type appointmentRow struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     *string    `json:"email"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	IPAddress *string    `json:"ip_address"`
	UserID    *string    `json:"user_id"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type bookedRow struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (r bookedRow) toDomain() (domain.BookedSlot, error) {
	d, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.BookedSlot{}, fmt.Errorf("date %q: %v", r.Date, err)
	}
	t, err := types.ParseStoredTimeString(r.Time)
	if err != nil {
		return domain.BookedSlot{}, fmt.Errorf("time %q: %v", r.Time, err)
	}
	return domain.BookedSlot{Date: d, Time: t}, nil
}

// contactRow общий вид строк с контактами (записи, регистрации, функции БД)
type contactRow struct {
	ID     *string `json:"id"`
	UserID *string `json:"user_id"`
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
}

func (r contactRow) toDomain(source domain.IdentitySource) *domain.Identity {
	userID := r.UserID
	if userID == nil {
		userID = r.ID
	}
	return &domain.Identity{
		Name:   r.Name,
		Phone:  r.Phone,
		Email:  r.Email,
		UserID: userID,
		Source: source,
	}
}

type questionnaireRow struct {
	UserID      *string `json:"user_id"`
	ContactInfo *struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		Email *string `json:"email"`
	} `json:"contact_info"`
}

type activityRow struct {
	Action    string                 `json:"action"`
	TableName string                 `json:"table_name"`
	IPAddress *string                `json:"ip_address"`
	UserAgent *string                `json:"user_agent"`
	UserID    *string                `json:"user_id"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// decodeRows разбирает массив строк; ответ не-массив считается ошибкой
func decodeRows(op string, data []byte, dst interface{}) error {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "[") {
		return fmt.Errorf("%w: %s - unexpected payload: %.200s", ErrDecode, op, trimmed)
	}
	if err := json.Unmarshal([]byte(trimmed), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}
	return nil
}
