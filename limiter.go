package pubfront

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per key, refilled at max tokens per
// window. It guards the public tag count endpoint against polling loops.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	window  time.Duration
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter that allows max requests per window.
// Call Stop to release its cleanup goroutine.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Every(window / time.Duration(max)),
		burst:   max,
		window:  window,
		stop:    make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// cleanup forgets keys idle for a whole window; their bucket is full again anyway.
func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, c := range l.clients {
				if now.Sub(c.lastSeen) >= l.window {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Allow reports whether key is under the limit and, if so, spends a token.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	l.mu.Unlock()
	return c.limiter.Allow()
}

// Stop ends the background cleanup.
func (l *RateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
