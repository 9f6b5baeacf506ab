package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"panda-server/internal/config"
	"panda-server/internal/localisation"
	"panda-server/internal/models"
	"panda-server/internal/utils"
)

const defaultIdleTTL = 3 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters hands out one token bucket per client IP. Buckets idle for
// longer than ttl are swept at most once per ttl, so the map only holds
// clients seen in the last two ttl windows.
type clientLimiters struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientBucket
}

func newClientLimiters(cfg config.RateLimitConfig, now func() time.Time) *clientLimiters {
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	return &clientLimiters{
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     burst,
		ttl:       ttl,
		now:       now,
		lastSweep: now(),
		clients:   make(map[string]*clientBucket),
	}
}

func (l *clientLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		for key, b := range l.clients {
			if now.Sub(b.lastSeen) >= l.ttl {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.clients[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware rejects clients that exceed cfg with 429. A zero rate
// disables the check. Clients are keyed by gin's ClientIP, which only honours
// forwarding headers from the engine's trusted proxies.
func RateLimitMiddleware(cfg config.RateLimitConfig, tr *localisation.Translator) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := newClientLimiters(cfg, time.Now)

	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			utils.Error(c, tr, http.StatusTooManyRequests, models.NewMessage(models.KeyTooManyRequests))
			c.Abort()
			return
		}
		c.Next()
	}
}
