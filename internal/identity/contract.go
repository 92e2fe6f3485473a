package identity

import (
	"context"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// IPProvider внешний сервис определения IP
type IPProvider interface {
	Name() string
	DiscoverIP(ctx context.Context) (string, error)
}

// AppointmentFinder поиск последней записи по IP
type AppointmentFinder interface {
	FindLatestByIP(ctx context.Context, ip string) (*domain.Identity, error)
}

// ContactFinder поиск в таблицах регистраций и анкет и через функции БД
type ContactFinder interface {
	FindRegistrationByIP(ctx context.Context, ip string) (*domain.Identity, error)
	FindQuestionnaireByIP(ctx context.Context, ip string) (*domain.Identity, error)
	FindUserDataByIP(ctx context.Context, ip string) (*domain.Identity, error)
	ConsolidateByIP(ctx context.Context, ip string) (*domain.Identity, error)
}

type Metrics interface {
	ObserveIPDiscovery(provider, result string)
	ObserveIdentityLookup(source, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) ObserveIPDiscovery(string, string)    {}
func (noopMetrics) ObserveIdentityLookup(string, string) {}
