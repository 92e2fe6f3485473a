package identity

import (
	"context"
	"net"
	"strings"
)

// Источники IP из самого запроса
const (
	ProviderForwarded  = "forwarded"
	ProviderRemoteAddr = "remote_addr"
)

// Результаты для метрик
const (
	resultSuccess = "success"
	resultError   = "error"
	resultMatch   = "match"
	resultMiss    = "miss"
)

// Hints сведения о клиенте из входящего запроса
type Hints struct {
	ForwardedFor string // X-Forwarded-For
	RealIP       string // X-Real-IP
	RemoteAddr   string // http.Request.RemoteAddr
}

// IPChain перебирает источники IP строго по порядку до первого успеха:
// заголовки прокси (если им доверяем), адрес соединения, внешние сервисы
type IPChain struct {
	providers      []IPProvider
	trustForwarded bool
	metrics        Metrics
	log            Logger
}

func NewIPChain(providers []IPProvider, trustForwarded bool, metrics Metrics, log Logger) *IPChain {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &IPChain{
		providers:      providers,
		trustForwarded: trustForwarded,
		metrics:        metrics,
		log:            log,
	}
}

// Discover возвращает IP посетителя; false, если ни один источник не ответил
func (c *IPChain) Discover(ctx context.Context, hints Hints) (string, bool) {
	if c.trustForwarded {
		if ip, ok := ForwardedIP(hints); ok {
			c.metrics.ObserveIPDiscovery(ProviderForwarded, resultSuccess)
			return ip, true
		}
	}

	if ip, ok := RemoteIP(hints); ok {
		c.metrics.ObserveIPDiscovery(ProviderRemoteAddr, resultSuccess)
		return ip, true
	}

	// Внешние сервисы только если в запросе нет адреса клиента
	for _, p := range c.providers {
		ip, err := p.DiscoverIP(ctx)
		if err != nil {
			c.metrics.ObserveIPDiscovery(p.Name(), resultError)
			c.log.Warn("IPChain: provider %s failed: %v", p.Name(), err)
			continue
		}
		c.metrics.ObserveIPDiscovery(p.Name(), resultSuccess)
		return ip, true
	}

	c.log.Warn("IPChain: all providers failed, identity resolution skipped")
	return "", false
}

// ForwardedIP первый корректный адрес из X-Forwarded-For, затем X-Real-IP
func ForwardedIP(h Hints) (string, bool) {
	for _, part := range strings.Split(h.ForwardedFor, ",") {
		if ip := strings.TrimSpace(part); net.ParseIP(ip) != nil {
			return ip, true
		}
	}
	if ip := strings.TrimSpace(h.RealIP); net.ParseIP(ip) != nil {
		return ip, true
	}
	return "", false
}

// RemoteIP адрес из RemoteAddr ("host:port" или голый IP)
func RemoteIP(h Hints) (string, bool) {
	host := strings.TrimSpace(h.RemoteAddr)
	if hostOnly, _, err := net.SplitHostPort(host); err == nil {
		host = hostOnly
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), true
	}
	return "", false
}

// Routable адрес пригоден для поиска личности (не loopback и не частная сеть)
func Routable(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified() &&
		!parsed.IsLinkLocalUnicast()
}
