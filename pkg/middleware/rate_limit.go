package middleware

import (
	"net/http"
	"sync"
	"time"

	"suitestay/pkg/identity"
	"suitestay/pkg/logger"
)

// KeyExtractor picks the rate-limiting key for a request. The default
// keys by the authenticated customer so one caller hammering the
// booking form cannot starve everyone behind the same proxy.
type KeyExtractor func(r *http.Request) string

type CustomerRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor KeyExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewCustomerRateLimiter(limit int, window time.Duration, extractor KeyExtractor, log *logger.Logger) *CustomerRateLimiter {
	limiter := &CustomerRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *CustomerRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *CustomerRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *CustomerRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := make([]time.Time, 0, len(rl.requests[key]))
	for _, ts := range rl.requests[key] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

func CustomerRateLimit(limiter *CustomerRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if limiter.extractor != nil {
				key = limiter.extractor(r)
			} else {
				key = DefaultCustomerExtractor(r)
			}

			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(key) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", requestIDFrom(r.Context()),
					"customer_id", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func DefaultCustomerExtractor(r *http.Request) string {
	return r.Header.Get(identity.HeaderCustomerID)
}
