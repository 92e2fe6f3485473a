package visitstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

// maxAppendRetries попытки оптимистичного обновления при конкурентной записи ключа
const maxAppendRetries = 3

// RedisStore хранит визиты в Redis как JSON с TTL до ExpiresAt
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Save(ctx context.Context, visit *domain.Visit) error {
	ttl := visit.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: Save - visit %s already expired", ErrStore, visit.ID)
	}

	raw, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal visit: %v", ErrStore, err)
	}

	if err := s.client.Set(ctx, s.key(visit.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set: %v", ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Visit, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", ErrStore, err)
	}
	return decodeVisit(raw)
}

// AppendBooked обновляет снимок под WATCH, сохраняя оставшийся TTL ключа
func (s *RedisStore) AppendBooked(ctx context.Context, id string, slot domain.BookedSlot) error {
	key := s.key(id)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrVisitNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: AppendBooked - get: %v", ErrStore, err)
		}

		visit, err := decodeVisit(raw)
		if err != nil {
			return err
		}
		visit.Snapshot = visit.Snapshot.Append(slot)

		updated, err := json.Marshal(visit)
		if err != nil {
			return fmt.Errorf("%w: AppendBooked - marshal visit: %v", ErrStore, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		return err
	}

	for i := 0; i < maxAppendRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: AppendBooked - too many concurrent updates for %s", ErrStore, id)
}
