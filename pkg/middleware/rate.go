// Package middleware provides the HTTP middleware chain of the API.
package middleware

import (
	"maps"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bilemo/api/pkg/logger"
	"github.com/bilemo/api/pkg/response"
)

// RateLimiter limits each client IP to max requests per window with a
// token bucket of burst max. Idle buckets are pruned every window until
// Close is called.
//
//	l := middleware.NewRateLimiter(config.RateLimit(), time.Minute)
//	defer l.Close()
//	r.Use(l.Middleware)
type RateLimiter struct {
	every rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	ticker *time.Ticker
	doneCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewRateLimiter starts a limiter allowing max requests per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		every:    rate.Every(window / time.Duration(max)),
		burst:    max,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
		ticker:   time.NewTicker(window),
		doneCh:   make(chan struct{}),
	}
	l.wg.Add(1)
	go l.runBackground()
	return l
}

func (l *RateLimiter) runBackground() {
	defer l.wg.Done()
	defer l.ticker.Stop()
	for {
		select {
		case <-l.ticker.C:
			l.prune()
		case <-l.doneCh:
			return
		}
	}
}

// Close stops the pruning goroutine and waits for it to exit. It is safe
// to call more than once.
func (l *RateLimiter) Close() {
	l.once.Do(func() { close(l.doneCh) })
	l.wg.Wait()
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()

	return lim.AllowN(l.now(), 1)
}

// prune drops the limiters whose bucket has refilled, which is the state a
// new limiter would start in anyway.
func (l *RateLimiter) prune() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.limiters)
	maps.DeleteFunc(l.limiters, func(_ string, lim *rate.Limiter) bool {
		return int(lim.TokensAt(now)) >= lim.Burst()
	})
	if pruned := before - len(l.limiters); pruned > 0 {
		logger.Debug("pruned ip rate limiters",
			zap.Int("pruned", pruned),
			zap.Int("remaining", len(l.limiters)))
	}
}

// retryAfter is the number of seconds until one more request is allowed.
func (l *RateLimiter) retryAfter() string {
	secs := math.Ceil(1 / float64(l.every))
	return strconv.Itoa(int(secs))
}

// Middleware answers 429 once the caller's bucket is empty.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(ClientIP(r)) {
			w.Header().Set("Retry-After", l.retryAfter())
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
