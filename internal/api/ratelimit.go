// Per-client rate limiting for the stream endpoint.
package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter counts requests per client over a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	seen    map[string]windowCount
	limit   int
	window  time.Duration
	lastGC  time.Time
}

type windowCount struct {
	n     int
	since time.Time
}

// NewRateLimiter allows up to limit requests per client per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string]windowCount),
		limit:  limit,
		window: window,
		lastGC: time.Now(),
	}
}

// Allow records a request from the client and reports whether it is
// within the limit. Stale clients are pruned opportunistically.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastGC) > rl.window {
		for key, wc := range rl.seen {
			if now.Sub(wc.since) > rl.window {
				delete(rl.seen, key)
			}
		}
		rl.lastGC = now
	}

	wc, ok := rl.seen[client]
	if !ok || now.Sub(wc.since) >= rl.window {
		rl.seen[client] = windowCount{n: 1, since: now}
		return true
	}
	if wc.n >= rl.limit {
		return false
	}
	wc.n++
	rl.seen[client] = wc
	return true
}

// RetryAfter returns the seconds left in the client's current window.
func (rl *RateLimiter) RetryAfter(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	wc, ok := rl.seen[client]
	if !ok {
		return 0
	}
	left := rl.window - time.Since(wc.since)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// clientKey identifies the caller: the first X-Forwarded-For hop when
// present, otherwise the connection's remote host.
func clientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware rejects over-limit clients with 429.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.Allow(key) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(key)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
