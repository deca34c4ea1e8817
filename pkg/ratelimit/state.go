// Package ratelimit implements upstream rate-limit tracking and request gating.
// A 429 response puts every client sharing the Redis instance into a
// cool-down; repeated 429s lengthen it, and the first success clears it.
package ratelimit

import (
	"time"
)

// Redis keys for rate limit state storage.
const (
	RedisKeyBlockedUntil = "arcivia:rate_limit:blocked_until"
	RedisKeyStreak       = "arcivia:rate_limit:streak"
	RedisKeyLastUpdate   = "arcivia:rate_limit:last_update"
)

// Cool-down tuning.
const (
	// BaseCooldown is the cool-down after the first 429 without Retry-After.
	BaseCooldown = 2 * time.Second

	// MaxCooldown caps the escalated cool-down.
	MaxCooldown = 60 * time.Second

	// ThrottleDelay is the pause applied to each request while a 429 streak
	// has not yet been cleared by a successful response.
	ThrottleDelay = 500 * time.Millisecond

	// stateTTL bounds how long state lingers in Redis after the last update.
	stateTTL = 10 * time.Minute
)

// RateLimitState is the shared rate-limit state.
type RateLimitState struct {
	// BlockedUntil is the end of the current cool-down (zero when none).
	BlockedUntil time.Time `json:"blocked_until"`

	// Streak counts consecutive 429 responses.
	Streak int `json:"streak"`

	// LastUpdate is when this state was last written.
	LastUpdate time.Time `json:"last_update"`
}

// IsStale returns true if the state is older than maxAge.
func (s *RateLimitState) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsCriticalBlock returns true while the cool-down is running.
func (s *RateLimitState) NeedsCriticalBlock() bool {
	return time.Now().Before(s.BlockedUntil)
}

// NeedsThrottling returns true after a cool-down ended but before a
// successful response reset the streak.
func (s *RateLimitState) NeedsThrottling() bool {
	return s.Streak > 0 && !s.NeedsCriticalBlock()
}

// IsHealthy reports a state with no outstanding 429s.
func (s *RateLimitState) IsHealthy() bool {
	return s.Streak == 0
}

// TimeUntilReset returns the remaining cool-down, or 0.
func (s *RateLimitState) TimeUntilReset() time.Duration {
	duration := time.Until(s.BlockedUntil)
	if duration < 0 {
		return 0
	}
	return duration
}

// CooldownFor returns the cool-down for the given streak length:
// BaseCooldown doubled per additional 429, capped at MaxCooldown.
func CooldownFor(streak int) time.Duration {
	if streak < 1 {
		return 0
	}
	cooldown := BaseCooldown
	for i := 1; i < streak; i++ {
		cooldown *= 2
		if cooldown >= MaxCooldown {
			return MaxCooldown
		}
	}
	return cooldown
}
