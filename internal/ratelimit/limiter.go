package ratelimit

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Limiter throttles API requests with a token bucket.
// A nil *Limiter allows everything.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter refilling rps tokens per second with a burst of 2*rps.
// It returns nil when rps <= 0.
func New(rps int) *Limiter {
	if rps <= 0 {
		return nil
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), rps*2),
	}
}

// Allow checks if an action is allowed without blocking
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Middleware rejects requests with 429 once the bucket is empty.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
