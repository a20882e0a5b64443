package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/medicaps/clubs-portal/internal/api/metrics"
)

const (
	visitorIdle = 10 * time.Minute
	maxVisitors = 4096
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle keeps one token bucket per client IP. The client IP is whatever
// the echo instance's IPExtractor reports, so forwarded headers only count
// when the router trusts them.
type Throttle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	capacity int
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewThrottle allows perSecond requests per IP with bursts of up to burst.
func NewThrottle(perSecond float64, burst int) *Throttle {
	return &Throttle{
		visitors: make(map[string]*visitor),
		capacity: maxVisitors,
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (t *Throttle) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !t.allow(c.RealIP()) {
				metrics.LoginsThrottledTotal.Inc()
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}

func (t *Throttle) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	v, ok := t.visitors[ip]
	if !ok {
		if len(t.visitors) >= t.capacity {
			t.evictIdle(now)
		}
		if len(t.visitors) >= t.capacity {
			t.evictOldest()
		}
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (t *Throttle) evictIdle(now time.Time) {
	for ip, v := range t.visitors {
		if now.Sub(v.lastSeen) > visitorIdle {
			delete(t.visitors, ip)
		}
	}
}

// evictOldest drops the least recently seen visitor to keep the map bounded.
func (t *Throttle) evictOldest() {
	var (
		oldestIP string
		oldest   time.Time
	)
	for ip, v := range t.visitors {
		if oldestIP == "" || v.lastSeen.Before(oldest) {
			oldestIP, oldest = ip, v.lastSeen
		}
	}
	delete(t.visitors, oldestIP)
}
