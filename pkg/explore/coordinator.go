// Package explore implements the explore data coordinator: a cancellable,
// paginated view over a page source with derived featured and trending lists.
package explore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arcivia/arcivia-explore/pkg/client"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/arcivia/arcivia-explore/pkg/logging"
	"github.com/arcivia/arcivia-explore/pkg/pagination"
	"github.com/arcivia/arcivia-explore/pkg/resolver"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for coordinator loads.
var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcivia_explore_loads_total",
		Help: "Explore page loads by kind and outcome",
	}, []string{"kind", "outcome"})

	loadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arcivia_explore_load_duration_seconds",
		Help:    "Duration of explore page loads that were applied",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"kind"})
)

// User-facing error strings.
const (
	MsgRateLimited = "The collection is busy right now. Please try again in a moment."
	MsgUnavailable = "The collection could not be reached. Pull to refresh to try again."
	MsgLoadFailed  = "Failed to load"
)

// Config holds coordinator configuration.
type Config struct {
	// PageSize is the identifier count at which another page is assumed.
	PageSize int
	// FeaturedCount is the length of the featured prefix.
	FeaturedCount int
	// TrendingCount is the length of the trending prefix.
	TrendingCount int
}

// DefaultConfig returns the standard explore configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:      resolver.PageSize,
		FeaturedCount: 3,
		TrendingCount: 8,
	}
}

// State is a snapshot of the coordinator. Slices are owned by the caller.
type State struct {
	Query heritage.Query

	Items    []heritage.Item
	Featured []heritage.Item
	Trending []heritage.Item

	// Loading is set while the first page of a query loads.
	Loading bool
	// Refreshing is set while a refresh loads.
	Refreshing bool
	// Paginating is set while a follow-up page loads.
	Paginating bool

	// Error is the user-facing message of the last failed load, or "".
	Error string

	HasMore bool
	// Page is the page cursor; it points at the in-flight page while one loads.
	Page int
}

// Busy reports whether a load is in flight.
func (s State) Busy() bool {
	return s.Loading || s.Refreshing || s.Paginating
}

type loadKind string

const (
	kindInitial loadKind = "initial"
	kindNext    loadKind = "next"
	kindRefresh loadKind = "refresh"
)

// Coordinator owns the explore state for one consumer.
//
// Every load cancels its predecessor. A completion is applied only if its
// generation is still current, so superseded loads never touch state.
type Coordinator struct {
	source PageSource
	config Config
	logger zerolog.Logger

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu         sync.Mutex
	state      State
	lastPage   int
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	closed     bool
	seq        uint64

	notifyMu    sync.Mutex
	delivered   uint64
	subscribers map[int]func(State)
	nextSubID   int
}

// NewCoordinator creates a coordinator and starts loading page 1 of q.
func NewCoordinator(source PageSource, q heritage.Query, cfg Config) *Coordinator {
	defaults := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.FeaturedCount <= 0 {
		cfg.FeaturedCount = defaults.FeaturedCount
	}
	if cfg.TrendingCount <= 0 {
		cfg.TrendingCount = defaults.TrendingCount
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		source:      source,
		config:      cfg,
		logger:      logging.NewLogger("explore"),
		baseCtx:     ctx,
		baseCancel:  cancel,
		subscribers: make(map[int]func(State)),
	}

	c.mu.Lock()
	c.state = State{Query: q, HasMore: true}
	c.startLocked(1, kindInitial)
	c.publishLocked()
	return c
}

// SetQuery switches to a new query. Equal queries are ignored; otherwise the
// in-flight load is cancelled, the list is cleared and page 1 loads.
func (c *Coordinator) SetQuery(q heritage.Query) {
	c.mu.Lock()
	if c.closed || c.state.Query.Equal(q) {
		c.mu.Unlock()
		return
	}

	c.state = State{Query: q, HasMore: true}
	c.lastPage = 0
	c.startLocked(1, kindInitial)
	c.publishLocked()
}

// FetchNextPage loads the next page. It is a no-op, returning false, when
// there is no next page or a load is already in flight.
func (c *Coordinator) FetchNextPage() bool {
	c.mu.Lock()
	if c.closed || !c.state.HasMore || c.state.Busy() {
		c.mu.Unlock()
		return false
	}

	c.startLocked(c.state.Page+1, kindNext)
	c.publishLocked()
	return true
}

// Refresh reloads the query from page 1, clearing the list first.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.state.Items = nil
	c.lastPage = 0
	c.startLocked(1, kindRefresh)
	c.publishLocked()
}

// State returns a snapshot of the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until no load is in flight or ctx is done.
func (c *Coordinator) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		done := c.done
		c.mu.Unlock()

		if done == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
		}
	}
}

// Subscribe registers fn to receive state changes and returns a function
// that removes it. fn runs synchronously on the goroutine that changed the
// state; it may call State but must not call SetQuery, FetchNextPage or
// Refresh. States are delivered in order, intermediate ones may be skipped.
func (c *Coordinator) Subscribe(fn func(State)) (unsubscribe func()) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.notifyMu.Lock()
		defer c.notifyMu.Unlock()
		delete(c.subscribers, id)
	}
}

// Close cancels any in-flight load and waits for it to return.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.baseCancel()
	c.wg.Wait()
}

// startLocked supersedes any in-flight load and starts loading page.
// c.mu must be held.
func (c *Coordinator) startLocked(page int, kind loadKind) {
	if c.cancel != nil {
		c.cancel()
	}

	c.generation++
	gen := c.generation

	ctx, cancel := context.WithCancel(c.baseCtx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	c.state.Page = page
	c.state.Loading = kind == kindInitial
	c.state.Refreshing = kind == kindRefresh
	c.state.Paginating = kind == kindNext

	req := PageRequest{Query: c.state.Query, Page: page}
	loadID := uuid.NewString()

	c.logger.Debug().
		Str("load_id", loadID).
		Str("kind", string(kind)).
		Str("category", req.Query.Category).
		Int("page", page).
		Msg("Starting explore load")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		defer cancel()

		start := time.Now()
		result, err := c.source.LoadPage(ctx, req)
		c.finish(gen, kind, loadID, req, result, err, time.Since(start))
	}()
}

// finish applies a completed load if it is still current.
func (c *Coordinator) finish(gen uint64, kind loadKind, loadID string, req PageRequest, result Page, err error, elapsed time.Duration) {
	c.mu.Lock()

	if gen != c.generation {
		c.mu.Unlock()
		loadsTotal.WithLabelValues(string(kind), "superseded").Inc()
		c.logger.Debug().
			Str("load_id", loadID).
			Int("page", req.Page).
			Msg("Discarding superseded explore load")
		return
	}

	c.done = nil
	c.cancel = nil
	c.state.Loading = false
	c.state.Refreshing = false
	c.state.Paginating = false

	switch {
	case err != nil && errors.Is(err, context.Canceled):
		// shut down while current; leave the data as it was
		loadsTotal.WithLabelValues(string(kind), "cancelled").Inc()
		c.state.Page = c.lastPage

	case err != nil:
		loadsTotal.WithLabelValues(string(kind), "error").Inc()
		c.state.Error = ErrorMessage(err)
		c.state.Page = c.lastPage
		c.logger.Warn().
			Err(err).
			Str("load_id", loadID).
			Str("kind", string(kind)).
			Int("page", req.Page).
			Msg("Explore load failed")

	default:
		loadsTotal.WithLabelValues(string(kind), "ok").Inc()
		loadDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())

		if req.Page == 1 {
			c.state.Items = append([]heritage.Item(nil), result.Items...)
		} else {
			c.state.Items = append(c.state.Items, result.Items...)
		}
		c.state.HasMore = result.Resolved >= c.config.PageSize
		c.state.Error = ""
		c.lastPage = req.Page

		c.logger.Info().
			Str("load_id", loadID).
			Str("kind", string(kind)).
			Int("page", req.Page).
			Int("resolved", result.Resolved).
			Int("items", len(result.Items)).
			Bool("has_more", c.state.HasMore).
			Dur("duration", elapsed).
			Msg("Explore page loaded")
	}

	c.publishLocked()
}

// publishLocked releases c.mu and delivers the current state to subscribers.
// A snapshot older than one already delivered is skipped.
func (c *Coordinator) publishLocked() {
	c.seq++
	seq := c.seq
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	if seq <= c.delivered {
		return
	}
	c.delivered = seq

	for _, fn := range c.subscribers {
		fn(snapshot)
	}
}

func (c *Coordinator) snapshotLocked() State {
	s := c.state
	s.Items = append([]heritage.Item(nil), c.state.Items...)
	s.Featured = prefix(s.Items, c.config.FeaturedCount)
	s.Trending = prefix(s.Items, c.config.TrendingCount)
	return s
}

func prefix(items []heritage.Item, n int) []heritage.Item {
	if len(items) < n {
		n = len(items)
	}
	return items[:n:n]
}

// ErrorMessage converts a load error into the message shown to users.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, client.ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, client.ErrRetryExhausted):
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorClass == client.ErrorClassRateLimit {
			return MsgRateLimited
		}
		return MsgUnavailable
	case errors.Is(err, pagination.ErrAllFailed):
		return MsgUnavailable
	default:
		return MsgLoadFailed
	}
}
