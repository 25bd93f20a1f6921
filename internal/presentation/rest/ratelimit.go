package rest

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// Tracked client entries are dropped after this much inactivity.
	staleClientAfter = 3 * time.Minute
	// Pruning kicks in once the client map grows past this size.
	pruneThreshold = 1024
)

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter enforces a per-client token bucket over incoming requests.
// Each client gets an independent bucket keyed by its address, so one
// noisy caller cannot starve the rest of the API.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rate    float64 // tokens replenished per second
	burst   float64 // bucket capacity
	now     func() time.Time
}

// NewRateLimiter allows rps sustained requests per second per client,
// with a burst capacity of the same size.
func NewRateLimiter(rps float64) *RateLimiter {
	burst := rps
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientBucket),
		rate:    rps,
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether the given client may make one more request.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, ok := rl.clients[client]
	if !ok {
		bucket = &clientBucket{tokens: rl.burst}
		rl.clients[client] = bucket
		if len(rl.clients) > pruneThreshold {
			rl.prune(now)
		}
	} else {
		bucket.tokens += now.Sub(bucket.lastSeen).Seconds() * rl.rate
		if bucket.tokens > rl.burst {
			bucket.tokens = rl.burst
		}
	}
	bucket.lastSeen = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

func (rl *RateLimiter) prune(now time.Time) {
	for key, bucket := range rl.clients {
		if now.Sub(bucket.lastSeen) > staleClientAfter {
			delete(rl.clients, key)
		}
	}
}

// RateLimitMiddleware rejects over-limit requests with 429 and a
// Retry-After hint.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller. Behind the API gateway the first
// X-Forwarded-For hop is the client; otherwise the remote address is.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
