package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter enforces a per-client requests-per-minute limit with a fixed
// one-minute window per client.
type RateLimiter struct {
	mu sync.Mutex

	requestsPerMinute int
	clients           map[string]*clientWindow
}

type clientWindow struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a rate limiter allowing requestsPerMinute requests
// per client per minute.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		clients:           make(map[string]*clientWindow),
	}
}

// Allow reports whether a request from clientID is within the limit, counting
// it if so.
func (rl *RateLimiter) Allow(clientID string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.clients[clientID]
	if !ok || now.Sub(win.windowStart) >= time.Minute {
		rl.clients[clientID] = &clientWindow{count: 1, windowStart: now}
		return nil
	}

	if win.count >= rl.requestsPerMinute {
		return &RateLimitError{
			Limit:      rl.requestsPerMinute,
			RetryAfter: time.Minute - now.Sub(win.windowStart),
		}
	}
	win.count++
	return nil
}

// Usage returns how many requests clientID has made in its current window.
func (rl *RateLimiter) Usage(clientID string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.clients[clientID]
	if !ok || time.Since(win.windowStart) >= time.Minute {
		return 0
	}
	return win.count
}

// RateLimitError represents a rate limit violation.
type RateLimitError struct {
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded (limit: %d/min, retry after: %v)", e.Limit, e.RetryAfter)
}
