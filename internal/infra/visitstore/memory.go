package visitstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// MemoryStore хранит визиты в памяти процесса; подходит для одного экземпляра сервиса
type MemoryStore struct {
	mu     sync.RWMutex
	visits map[string][]byte
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		visits: make(map[string][]byte),
		now:    time.Now,
	}
}

// Save сохраняет копию визита и заодно удаляет истёкшие
func (s *MemoryStore) Save(ctx context.Context, visit *domain.Visit) error {
	raw, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal visit: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked()
	s.visits[visit.ID] = raw
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Visit, error) {
	s.mu.RLock()
	raw, ok := s.visits[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrVisitNotFound
	}

	visit, err := decodeVisit(raw)
	if err != nil {
		return nil, err
	}
	if visit.IsExpired(s.now()) {
		return nil, ErrVisitNotFound
	}
	return visit, nil
}

// AppendBooked добавляет занятый слот в снимок визита
func (s *MemoryStore) AppendBooked(ctx context.Context, id string, slot domain.BookedSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.visits[id]
	if !ok {
		return ErrVisitNotFound
	}
	visit, err := decodeVisit(raw)
	if err != nil {
		return err
	}
	if visit.IsExpired(s.now()) {
		delete(s.visits, id)
		return ErrVisitNotFound
	}

	visit.Snapshot = visit.Snapshot.Append(slot)
	updated, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("%w: AppendBooked - marshal visit: %v", ErrStore, err)
	}
	s.visits[id] = updated
	return nil
}

func (s *MemoryStore) evictExpiredLocked() {
	now := s.now()
	for id, raw := range s.visits {
		var head struct {
			ExpiresAt time.Time `json:"expiresAt"`
		}
		if err := json.Unmarshal(raw, &head); err != nil || !now.Before(head.ExpiresAt) {
			delete(s.visits, id)
		}
	}
}

func decodeVisit(raw []byte) (*domain.Visit, error) {
	var visit domain.Visit
	if err := json.Unmarshal(raw, &visit); err != nil {
		return nil, fmt.Errorf("%w: decode visit: %v", ErrStore, err)
	}
	return &visit, nil
}
