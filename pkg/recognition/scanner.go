// Package recognition implements live recognition: frames are captured,
// described by a vision model and the latest description is published to
// subscribers.
package recognition

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arcivia/arcivia-explore/pkg/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcivia_recognition_scans_total",
		Help: "Recognition scans by outcome",
	}, []string{"outcome"})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arcivia_recognition_scan_duration_seconds",
		Help:    "Duration of capture plus describe",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10},
	})
)

// Status texts shown to users.
const (
	MsgRateLimited = "Rate limited — waiting 15s..."
	MsgNoResult    = "No result"
	msgErrorPrefix = "Error: "
)

var (
	// ErrRateLimited is returned by a Describer when the model rejects the
	// request with HTTP 429.
	ErrRateLimited = errors.New("recognition rate limited")

	// ErrNoFrame is returned by a Capturer that produced no image.
	ErrNoFrame = errors.New("no image captured")
)

// Frame is one captured image.
type Frame struct {
	Data     []byte
	MIMEType string
}

// Capturer produces frames. The camera device itself lives outside this
// package.
type Capturer interface {
	Capture(ctx context.Context) (Frame, error)
}

// Describer turns a frame into a short description.
type Describer interface {
	Describe(ctx context.Context, frame Frame) (string, error)
}

// Config holds scanner timing.
type Config struct {
	// Interval is the gap between the end of one scan and the start of the next.
	Interval time.Duration
	// RateLimitPause replaces Interval after a rate-limited scan.
	RateLimitPause time.Duration
}

// DefaultConfig returns 5s scans with a 15s rate-limit pause, which keeps a
// free-tier key at 12 requests per minute.
func DefaultConfig() Config {
	return Config{
		Interval:       5 * time.Second,
		RateLimitPause: 15 * time.Second,
	}
}

// Status is the latest recognition state.
type Status struct {
	Text        string    `json:"text"`
	Scanning    bool      `json:"scanning"`
	RateLimited bool      `json:"rateLimited"`
	Scans       int       `json:"scans"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Scanner runs capture and describe in a completion-gated loop: the next
// scan is scheduled only after the previous one has finished.
type Scanner struct {
	capturer  Capturer
	describer Describer
	config    Config
	logger    zerolog.Logger

	running sync.Mutex

	mu          sync.Mutex
	status      Status
	subscribers map[int]func(Status)
	nextSubID   int
}

// NewScanner creates a scanner. Zero config fields take their defaults.
func NewScanner(c Capturer, d Describer, cfg Config) *Scanner {
	defaults := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.RateLimitPause <= 0 {
		cfg.RateLimitPause = defaults.RateLimitPause
	}

	return &Scanner{
		capturer:    c,
		describer:   d,
		config:      cfg,
		logger:      logging.NewLogger("recognition"),
		subscribers: make(map[int]func(Status)),
	}
}

// Run scans until ctx is done and returns ctx.Err(). The first scan starts
// after one Interval.
func (s *Scanner) Run(ctx context.Context) error {
	timer := time.NewTimer(s.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		next := s.config.Interval
		if st, err := s.Scan(ctx); err == nil && st.RateLimited {
			next = s.config.RateLimitPause
		}
		timer.Reset(next)
	}
}

// Scan performs one capture and describe pass and returns the resulting
// status. Only a cancelled ctx produces an error; that pass leaves the
// previous text in place.
func (s *Scanner) Scan(ctx context.Context) (Status, error) {
	s.running.Lock()
	defer s.running.Unlock()

	scanID := uuid.NewString()
	start := time.Now()

	s.update(func(st *Status) { st.Scanning = true })

	text, err := s.describe(ctx)
	if ctx.Err() != nil {
		s.update(func(st *Status) { st.Scanning = false })
		scansTotal.WithLabelValues("cancelled").Inc()
		return s.Status(), ctx.Err()
	}

	elapsed := time.Since(start)
	scanDuration.Observe(elapsed.Seconds())

	var outcome string
	rateLimited := false
	switch {
	case errors.Is(err, ErrRateLimited):
		outcome = "rate_limited"
		rateLimited = true
		text = MsgRateLimited
		s.logger.Warn().Str("scan_id", scanID).Dur("pause", s.config.RateLimitPause).Msg("Recognition rate limited")
	case err != nil:
		outcome = "error"
		text = msgErrorPrefix + err.Error()
		s.logger.Error().Err(err).Str("scan_id", scanID).Msg("Recognition scan failed")
	case text == "":
		outcome = "empty"
		text = MsgNoResult
	default:
		outcome = "ok"
		s.logger.Debug().Str("scan_id", scanID).Dur("duration", elapsed).Str("text", text).Msg("Recognition scan complete")
	}
	scansTotal.WithLabelValues(outcome).Inc()

	s.update(func(st *Status) {
		st.Text = text
		st.Scanning = false
		st.RateLimited = rateLimited
		st.Scans++
	})
	return s.Status(), nil
}

func (s *Scanner) describe(ctx context.Context) (string, error) {
	frame, err := s.capturer.Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if len(frame.Data) == 0 {
		return "", ErrNoFrame
	}
	return s.describer.Describe(ctx, frame)
}

// Status returns the latest status.
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Subscribe registers fn for status changes and returns a function that
// removes it. fn must not call Scan.
func (s *Scanner) Subscribe(fn func(Status)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// update mutates the status and notifies subscribers. Calls are serialized
// by s.running, so notifications arrive in order.
func (s *Scanner) update(mutate func(*Status)) {
	s.mu.Lock()
	mutate(&s.status)
	s.status.UpdatedAt = time.Now()
	snapshot := s.status
	subs := make([]func(Status), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
