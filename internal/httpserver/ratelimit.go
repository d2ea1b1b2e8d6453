package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters хранит token bucket на каждый IP
type clientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(rps, burst int) *clientLimiters {
	return &clientLimiters{
		clients:   make(map[string]*clientLimiter),
		rps:       rate.Limit(rps),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (c *clientLimiters) allow(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) > limiterIdleTTL {
		c.sweep(now)
	}

	cl, ok := c.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(c.rps, c.burst)}
		c.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// sweep drops clients idle for longer than limiterIdleTTL. Caller holds mu.
func (c *clientLimiters) sweep(now time.Time) {
	for ip, cl := range c.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(c.clients, ip)
		}
	}
	c.lastSweep = now
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// RateLimitMiddleware enforces a per-IP token bucket. RATE_LIMIT_RPS <= 0 disables it.
func RateLimitMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	if cfg.RateLimitRPS <= 0 {
		return next
	}

	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = cfg.RateLimitRPS
	}
	limiters := newClientLimiters(cfg.RateLimitRPS, burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// preflight не тратит токены
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !limiters.allow(ip) {
			logger.L().Debug("rate limited", zap.String("ip", ip), zap.String("path", r.URL.Path))
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":    "rate_limited",
					"message": "Too many requests",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
