package handlers

import (
	"fmt"
	"sync"
	"time"

	config "github.com/inference-gateway/desktop-mcp/config"
)

// RateLimiter is a sliding-window limit on input-mutating tools
type RateLimiter struct {
	cfg         config.RateLimitConfig
	actionTimes []time.Time
	mu          sync.Mutex
	now         func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:         cfg,
		actionTimes: make([]time.Time, 0),
		now:         time.Now,
	}
}

// CheckAndRecord checks if the action is within rate limits and records it.
// Returns an error if the rate limit is exceeded.
func (rl *RateLimiter) CheckAndRecord(toolName string) error {
	if !rl.cfg.Enabled {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)

	if len(rl.actionTimes) >= rl.cfg.MaxActionsPerMinute {
		return fmt.Errorf("rate limit exceeded for %s: maximum %d actions per %d seconds (current: %d actions in window)",
			toolName, rl.cfg.MaxActionsPerMinute, rl.cfg.WindowSeconds, len(rl.actionTimes))
	}

	rl.actionTimes = append(rl.actionTimes, now)
	return nil
}

// Count returns the number of actions in the current window
func (rl *RateLimiter) Count() int {
	if !rl.cfg.Enabled {
		return 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.prune(rl.now())
	return len(rl.actionTimes)
}

// Reset clears all recorded actions
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.actionTimes = make([]time.Time, 0)
}

func (rl *RateLimiter) prune(now time.Time) {
	windowStart := now.Add(-time.Duration(rl.cfg.WindowSeconds) * time.Second)

	valid := rl.actionTimes[:0]
	for _, t := range rl.actionTimes {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	rl.actionTimes = valid
}
