package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/infra/events"
	"github.com/m04kA/SMC-LandingBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	CountActiveAt(ctx context.Context, date time.Time, t types.TimeString) (int, error)
}

// VisitStore интерфейс хранилища визитов
type VisitStore interface {
	Get(ctx context.Context, id string) (*domain.Visit, error)
	AppendBooked(ctx context.Context, id string, slot domain.BookedSlot) error
}

// ActivityLog журнал действий
type ActivityLog interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
}

// EventPublisher публикация событий о записи
type EventPublisher interface {
	PublishAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncAppointmentCreated()
	IncSlotConflict(stage string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
