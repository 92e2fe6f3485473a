package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LandingBooking/internal/api/handlers"
)

const (
	msgRateLimited        = "слишком много запросов, попробуйте позже"
	msgRateLimiterFailure = "сервис временно недоступен"
)

// Counter считает запросы клиента в текущем окне
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// RateLimit ограничивает число запросов с одного адреса за окно
type RateLimit struct {
	counter        Counter
	limit          int64
	trustForwarded bool
	failOpen       bool
	log            Logger
}

func NewRateLimit(counter Counter, limit int, trustForwarded, failOpen bool, log Logger) *RateLimit {
	if limit <= 0 {
		limit = 30
	}
	return &RateLimit{
		counter:        counter,
		limit:          int64(limit),
		trustForwarded: trustForwarded,
		failOpen:       failOpen,
		log:            log,
	}
}

func (rl *RateLimit) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r, rl.trustForwarded)
			count, err := rl.counter.Incr(r.Context(), key)
			if err != nil {
				rl.log.Warn("RateLimit: counter failed for %s: %v", key, err)
				if rl.failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimiterFailure)
				return
			}
			if count > rl.limit {
				rl.log.Warn("RateLimit: limit exceeded for %s: %d", key, count)
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			return strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// RedisCounter фиксированное окно в Redis, общее для всех экземпляров сервиса
type RedisCounter struct {
	client *redis.Client
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisCounter(client *redis.Client, window time.Duration, prefix string) *RedisCounter {
	if window <= 0 {
		window = time.Minute
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "landing:rl"
	}
	return &RedisCounter{client: client, window: window, prefix: prefix}
}

func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.client, []string{c.prefix + ":" + key}, c.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// MemoryCounter фиксированное окно в памяти одного процесса
type MemoryCounter struct {
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	nextSweep time.Time
}

type window struct {
	count   int64
	resetAt time.Time
}

func NewMemoryCounter(w time.Duration) *MemoryCounter {
	if w <= 0 {
		w = time.Minute
	}
	return &MemoryCounter{
		window:  w,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (c *MemoryCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !now.Before(c.nextSweep) {
		c.evictExpiredLocked(now)
		c.nextSweep = now.Add(c.window)
	}

	w := c.windows[key]
	if w == nil || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(c.window)}
		c.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// evictExpiredLocked удаляет закрытые окна
func (c *MemoryCounter) evictExpiredLocked(now time.Time) {
	for key, w := range c.windows {
		if !now.Before(w.resetAt) {
			delete(c.windows, key)
		}
	}
}
