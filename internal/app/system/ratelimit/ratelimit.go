// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	wafflerl "github.com/dalemusser/waffle/pantry/ratelimit"
)

// Limiter throttles writes per client IP: limit requests per window, with a
// full window's worth available as a burst.
type Limiter struct {
	keys       *wafflerl.KeyLimiter
	retryAfter int
}

// New creates a limiter allowing limit requests per key per window.
func New(limit int, window time.Duration) *Limiter {
	rate := float64(limit) / window.Seconds()
	return &Limiter{
		keys:       wafflerl.NewKeyLimiter(rate, limit, 2*window),
		retryAfter: int(math.Ceil(window.Seconds() / float64(limit))),
	}
}

// Allow consumes one request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	return l.keys.Allow(key)
}

// WriteMiddleware limits POST/PUT/PATCH/DELETE requests per client IP.
// Reads pass through untouched. Rejections answer 429 with a JSON error.
func (l *Limiter) WriteMiddleware(next http.Handler) http.Handler {
	return wafflerl.MiddlewareWithLimiter(l.keys, wafflerl.Config{
		KeyFunc:   ClientIP,
		Skip:      isRead,
		OnLimited: l.reject,
	})(next)
}

func (l *Limiter) reject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
}

func isRead(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ClientIP is the host part of RemoteAddr. Forwarded headers are ignored
// here; when the service runs behind a trusted proxy, chi's RealIP
// middleware rewrites RemoteAddr before this is called.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
