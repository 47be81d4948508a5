package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"contentcraft-api/internal/config"
	"contentcraft-api/internal/metrics"
	apperrors "contentcraft-api/internal/pkg/errors"
)

// RateLimiter bounds requests per client key inside a rolling window.
// The in-memory implementation is the single-instance default; the
// Redis-backed one shares the counters across replicas.
type RateLimiter interface {
	Allow(key string) bool
}

type windowState struct {
	count   int
	resetAt time.Time
}

type MemoryRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowState
	max     int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryRateLimiter(cfg *config.RateLimitConfig) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		clients: make(map[string]*windowState),
		max:     cfg.MaxRequests,
		window:  cfg.Window,
		now:     time.Now,
	}
}

func (rl *MemoryRateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	state, ok := rl.clients[key]
	if !ok || now.After(state.resetAt) {
		rl.clients[key] = &windowState{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if state.count >= rl.max {
		return false
	}

	state.count++
	return true
}

// RateLimit rejects requests exceeding the per-client limit before any
// quota or pipeline work happens.
func RateLimit(limiter RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if !limiter.Allow(clientKey(r)) {
			metrics.HttpRateLimitRejectionsTotal.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": apperrors.Sanitize(apperrors.ErrRateLimited),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller by address: the first forwarded hop
// when behind a proxy, the socket peer otherwise.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
