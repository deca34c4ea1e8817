package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	rateLimitStreak = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcivia_rate_limit_streak",
		Help: "Consecutive 429 responses from the collection API",
	})

	rateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcivia_rate_limit_blocks_total",
		Help: "Total number of requests blocked during a cool-down",
	})

	rateLimitThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcivia_rate_limit_throttles_total",
		Help: "Total number of requests delayed while a 429 streak is open",
	})
)

// Tracker records 429 responses and gates requests.
type Tracker struct {
	redis  *redis.Client
	logger zerolog.Logger

	// throttle is the delay applied while throttling; tests shorten it.
	throttle time.Duration
}

// NewTracker creates a new rate limit tracker.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	return &Tracker{
		redis:    redisClient,
		logger:   logger,
		throttle: ThrottleDelay,
	}
}

// GetState retrieves the current rate limit state from Redis.
// Returns a healthy state if nothing has been recorded.
func (t *Tracker) GetState(ctx context.Context) (*RateLimitState, error) {
	vals, err := t.redis.MGet(ctx, RedisKeyBlockedUntil, RedisKeyStreak, RedisKeyLastUpdate).Result()
	if err != nil {
		return nil, fmt.Errorf("get rate limit state: %w", err)
	}

	state := &RateLimitState{}
	if vals[0] == nil && vals[1] == nil {
		t.logger.Debug().Msg("No rate limit state in Redis, returning healthy state")
		state.LastUpdate = time.Now()
		return state, nil
	}

	blockedUntil, err := parseUnixMilli(vals[0])
	if err != nil {
		return nil, fmt.Errorf("parse blocked until: %w", err)
	}
	lastUpdate, err := parseUnixMilli(vals[2])
	if err != nil {
		return nil, fmt.Errorf("parse last update: %w", err)
	}
	if s, ok := vals[1].(string); ok && s != "" {
		streak, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("parse streak: %w", err)
		}
		state.Streak = streak
	}

	state.BlockedUntil = blockedUntil
	state.LastUpdate = lastUpdate
	return state, nil
}

// RecordResponse updates the shared state from an upstream response.
// A 429 opens or extends a cool-down; any 2xx closes an open streak.
func (t *Tracker) RecordResponse(ctx context.Context, statusCode int, headers http.Header) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return t.recordRateLimited(ctx, headers)
	case statusCode >= 200 && statusCode < 300:
		return t.recordSuccess(ctx)
	default:
		return nil
	}
}

func (t *Tracker) recordRateLimited(ctx context.Context, headers http.Header) error {
	streak, err := t.redis.Incr(ctx, RedisKeyStreak).Result()
	if err != nil {
		return fmt.Errorf("increment streak: %w", err)
	}

	cooldown := CooldownFor(int(streak))
	if retryAfter, ok := parseRetryAfter(headers.Get("Retry-After")); ok {
		cooldown = retryAfter
	}

	now := time.Now()
	blockedUntil := now.Add(cooldown)

	pipe := t.redis.TxPipeline()
	pipe.Expire(ctx, RedisKeyStreak, stateTTL)
	pipe.Set(ctx, RedisKeyBlockedUntil, blockedUntil.UnixMilli(), stateTTL)
	pipe.Set(ctx, RedisKeyLastUpdate, now.UnixMilli(), stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store rate limit state in redis: %w", err)
	}

	rateLimitStreak.Set(float64(streak))

	t.logger.Warn().
		Int64("streak", streak).
		Dur("cooldown", cooldown).
		Time("blocked_until", blockedUntil).
		Msg("Collection API rate limited - cooling down")

	return nil
}

func (t *Tracker) recordSuccess(ctx context.Context) error {
	deleted, err := t.redis.Del(ctx, RedisKeyStreak, RedisKeyBlockedUntil).Result()
	if err != nil {
		return fmt.Errorf("clear rate limit state: %w", err)
	}
	if deleted > 0 {
		rateLimitStreak.Set(0)
		t.logger.Info().Msg("Collection API rate limit cleared")
	}
	return nil
}

// ShouldAllowRequest checks whether a request may be sent now.
// Returns false during a cool-down. While a streak is open the call sleeps
// for the throttle delay (or until ctx is done) and then allows the request.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, fmt.Errorf("get rate limit state: %w", err)
	}

	if state.NeedsCriticalBlock() {
		t.logger.Warn().
			Int("streak", state.Streak).
			Dur("wait_duration", state.TimeUntilReset()).
			Msg("Rate limit cool-down active - blocking request")

		rateLimitBlocksTotal.Inc()
		return false, nil
	}

	if state.NeedsThrottling() {
		t.logger.Debug().
			Int("streak", state.Streak).
			Msg("Rate limit streak open - throttling request")

		rateLimitThrottlesTotal.Inc()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(t.throttle):
		}
	}

	return true, nil
}

func parseUnixMilli(v interface{}) (time.Time, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// parseRetryAfter accepts both delta-seconds and HTTP-date forms.
func parseRetryAfter(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
