package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter is a token bucket backed by a buffered channel. A full bucket
// allows a burst of requestsPerMinute calls.
type rateLimiter struct {
	tokens chan struct{}
	stop   chan struct{}
	once   sync.Once
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 15
	}

	rl := &rateLimiter{
		tokens: make(chan struct{}, requestsPerMinute),
		stop:   make(chan struct{}),
	}
	for i := 0; i < requestsPerMinute; i++ {
		rl.tokens <- struct{}{}
	}

	go rl.refill(time.Minute / time.Duration(requestsPerMinute))

	return rl
}

// wait takes a token, blocking until one is free or ctx ends.
func (rl *rateLimiter) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
	case <-rl.tokens:
		return nil
	}
}

func (rl *rateLimiter) refill(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			select {
			case rl.tokens <- struct{}{}:
			default: // bucket full
			}
		}
	}
}

// Close stops the refill goroutine.
func (rl *rateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}
