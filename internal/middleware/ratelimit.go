package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig sets the sustained rate and burst allowance enforced
// independently for each client address.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleExpiry    = 10 * time.Minute
)

// limiterStore hands out one token bucket per client address. Idle entries
// are swept periodically so the map does not grow with every address seen
// over the process lifetime.
type limiterStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	rps     rate.Limit
	burst   int
}

type bucketEntry struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(cfg RateLimitConfig) *limiterStore {
	s := &limiterStore{
		buckets: make(map[string]*bucketEntry),
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
	}
	go s.sweep()
	return s
}

func (s *limiterStore) get(addr string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.buckets[addr]
	if !ok {
		e = &bucketEntry{bucket: rate.NewLimiter(s.rps, s.burst)}
		s.buckets[addr] = e
	}
	e.lastSeen = time.Now()
	return e.bucket
}

func (s *limiterStore) sweep() {
	for {
		time.Sleep(limiterSweepInterval)
		s.mu.Lock()
		for addr, e := range s.buckets {
			if time.Since(e.lastSeen) > limiterIdleExpiry {
				delete(s.buckets, addr)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimiter enforces a per-client token bucket keyed by remote address.
// Rejected requests get a 429 with the usual JSON error envelope and a
// Retry-After hint when the limiter can say how long to wait.
func RateLimiter(cfg RateLimitConfig) func(http.Handler) http.Handler {
	store := newLimiterStore(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bucket := store.get(clientAddr(r))

			res := bucket.Reserve()
			if !res.OK() {
				rejectRateLimited(w, 0)
				return
			}
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				rejectRateLimited(w, int(delay.Seconds())+1)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(bucket.Tokens())))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr keys the limiter by the RemoteAddr host only. X-Forwarded-For
// is client-controlled; honoring it would let callers dodge the limit.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rejectRateLimited(w http.ResponseWriter, retryAfterSecs int) {
	if retryAfterSecs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    http.StatusTooManyRequests,
		"message": "rate limit exceeded",
	})
}
