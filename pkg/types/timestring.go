package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout       = "15:04"
	storedTimeLayout = "15:04:05" // формат Postgres time
)

// ErrInvalidTimeString возвращается, когда строка не является временем HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток с точностью до минуты ("09:00")
// Хранится в минутах от полуночи, нулевое значение означает "не задано"
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromString парсит строго "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// ParseStoredTimeString парсит значение из БД: "HH:MM:SS" или "HH:MM"
func ParseStoredTimeString(s string) (TimeString, error) {
	if t, err := time.Parse(storedTimeLayout, s); err == nil {
		return NewTimeString(t), nil
	}
	return NewTimeStringFromString(s)
}

// MustTimeString используется для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes >= 24*60 {
		return fmt.Errorf("%w: out of range", ErrInvalidTimeString)
	}
	return nil
}

func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner: pq отдает time как []byte/string, иногда как time.Time
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := ParseStoredTimeString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = TimeString{}
		return nil
	}
	return t.scanString(s)
}
