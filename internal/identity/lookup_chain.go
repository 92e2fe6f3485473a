package identity

import (
	"context"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// Lookup одна стратегия поиска личности по IP; (nil, nil) означает отсутствие совпадения
type Lookup struct {
	Source domain.IdentitySource
	Find   func(ctx context.Context, ip string) (*domain.Identity, error)
}

// LookupChain перебирает стратегии по порядку; побеждает первое совпадение
type LookupChain struct {
	lookups []Lookup
	metrics Metrics
	log     Logger
}

func NewLookupChain(lookups []Lookup, metrics Metrics, log Logger) *LookupChain {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &LookupChain{
		lookups: lookups,
		metrics: metrics,
		log:     log,
	}
}

// DefaultLookups порядок поиска: функции БД (если включены), записи, регистрации, анкеты
func DefaultLookups(appointments AppointmentFinder, contacts ContactFinder, useRPC bool) []Lookup {
	var lookups []Lookup
	if useRPC {
		lookups = append(lookups,
			Lookup{Source: domain.SourceRPCUserData, Find: contacts.FindUserDataByIP},
			Lookup{Source: domain.SourceRPCConsolidated, Find: contacts.ConsolidateByIP},
		)
	}
	return append(lookups,
		Lookup{Source: domain.SourceAppointments, Find: appointments.FindLatestByIP},
		Lookup{Source: domain.SourceRegistration, Find: contacts.FindRegistrationByIP},
		Lookup{Source: domain.SourceQuestionnaire, Find: contacts.FindQuestionnaireByIP},
	)
}

// Resolve ищет личность по IP. Ошибка стратегии логируется и не прерывает перебор.
func (c *LookupChain) Resolve(ctx context.Context, ip string) *domain.Identity {
	if ip == "" {
		return nil
	}
	if !Routable(ip) {
		c.log.Info("LookupChain: address %s is not routable, lookup skipped", ip)
		return nil
	}

	for _, l := range c.lookups {
		found, err := l.Find(ctx, ip)
		if err != nil {
			c.metrics.ObserveIdentityLookup(string(l.Source), resultError)
			c.log.Warn("LookupChain: %s lookup failed: %v", l.Source, err)
			continue
		}
		if found == nil {
			c.metrics.ObserveIdentityLookup(string(l.Source), resultMiss)
			continue
		}

		c.metrics.ObserveIdentityLookup(string(l.Source), resultMatch)
		if found.Source == "" {
			found.Source = l.Source
		}
		c.log.Info("LookupChain: identity found in %s", found.Source)
		return found
	}
	return nil
}
