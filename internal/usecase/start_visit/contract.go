package start_visit

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
	"github.com/m04kA/SMC-LandingBooking/internal/identity"
)

// SnapshotRepository загрузка занятых слотов
type SnapshotRepository interface {
	ListBooked(ctx context.Context) (domain.Snapshot, error)
}

// IPDiscoverer цепочка источников IP
type IPDiscoverer interface {
	Discover(ctx context.Context, hints identity.Hints) (string, bool)
}

// IdentityResolver цепочка поиска личности по IP
type IdentityResolver interface {
	Resolve(ctx context.Context, ip string) *domain.Identity
}

// VisitStore интерфейс хранилища визитов
type VisitStore interface {
	Save(ctx context.Context, visit *domain.Visit) error
}

type Metrics interface {
	IncVisitStarted(identityFound bool)
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

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
