package supabase

import (
	"context"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// ActivityLog адаптер Repository к интерфейсу журнала действий
type ActivityLog struct {
	repo *Repository
}

func NewActivityLog(repo *Repository) *ActivityLog {
	return &ActivityLog{repo: repo}
}

func (a *ActivityLog) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	return a.repo.CreateActivity(ctx, entry)
}
