package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Prometheus metrics for batch fetching.
var (
	batchRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcivia_batch_records_total",
		Help: "Object records requested by the batch fetcher by outcome",
	}, []string{"outcome"})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arcivia_batch_duration_seconds",
		Help:    "Duration of a complete batch fetch",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})
)

// ErrAllFailed is returned when every record fetch of a batch failed. It
// wraps the last fetch error. Records dropped for lacking an image do not
// count as failures.
var ErrAllFailed = errors.New("every record fetch failed")

// Config holds batch fetcher configuration
type Config struct {
	// ChunkSize is the number of concurrent requests per wave
	ChunkSize int
	// Pacing is the pause between waves
	Pacing time.Duration
	// Timeout per record fetch
	Timeout time.Duration
}

// DefaultConfig returns safe default configuration for the collection API
func DefaultConfig() Config {
	return Config{
		ChunkSize: 10,
		Pacing:    250 * time.Millisecond,
		Timeout:   15 * time.Second,
	}
}

// RecordFetcher is the interface the collection client implements for single-record fetching
type RecordFetcher interface {
	GetObject(ctx context.Context, id int) (heritage.Record, error)
}

// BatchFetcher fetches object records in paced waves
type BatchFetcher struct {
	fetcher RecordFetcher
	config  Config
	logger  zerolog.Logger
}

// NewBatchFetcher creates a new batch fetcher
func NewBatchFetcher(fetcher RecordFetcher, config Config) *BatchFetcher {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 10
	}
	if config.Pacing < 0 {
		config.Pacing = 0
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}

	return &BatchFetcher{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "batch-fetcher").Logger(),
	}
}

// FetchRecords fetches every ID and returns the image-bearing records.
// Individual failures are dropped. It fails with ctx.Err() when the batch
// was cancelled and with ErrAllFailed when no fetch succeeded at all.
// Order within a wave follows completion order.
func (bf *BatchFetcher) FetchRecords(ctx context.Context, ids []int) ([]heritage.Record, error) {
	start := time.Now()
	defer func() {
		batchDuration.Observe(time.Since(start).Seconds())
	}()

	records := make([]heritage.Record, 0, len(ids))
	var (
		noImage, failed int
		lastErr         error
	)

	for offset := 0; offset < len(ids); offset += bf.config.ChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if offset > 0 && bf.config.Pacing > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(bf.config.Pacing):
			}
		}

		end := offset + bf.config.ChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		wave := bf.fetchWave(ctx, ids[offset:end])
		records = append(records, wave.records...)
		noImage += wave.noImage
		failed += wave.failed
		if wave.lastErr != nil {
			lastErr = wave.lastErr
		}
	}

	// a wave cut short by cancellation must not be reported as a partial result
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bf.logger.Debug().
		Int("requested", len(ids)).
		Int("fetched", len(records)).
		Int("no_image", noImage).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Batch fetch complete")

	if len(ids) > 0 && failed == len(ids) {
		bf.logger.Warn().Int("requested", len(ids)).Err(lastErr).Msg("Every record fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrAllFailed, lastErr)
	}
	return records, nil
}

// waveResult is the outcome of one wave.
type waveResult struct {
	records []heritage.Record
	noImage int
	failed  int
	lastErr error
}

// fetchWave fetches one chunk concurrently. Fetch errors never abort the
// wave, so the group's derived context is only cancelled by the parent.
func (bf *BatchFetcher) fetchWave(ctx context.Context, ids []int) waveResult {
	var (
		mu  sync.Mutex
		res = waveResult{records: make([]heritage.Record, 0, len(ids))}
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		eg.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(egCtx, bf.config.Timeout)
			defer cancel()

			rec, err := bf.fetcher.GetObject(fetchCtx, id)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				res.failed++
				res.lastErr = err
				outcome := "failed"
				if egCtx.Err() != nil {
					outcome = "cancelled"
				}
				batchRecordsTotal.WithLabelValues(outcome).Inc()
				bf.logger.Debug().Err(err).Int("id", id).Msg("Dropping record - fetch failed")
			case !rec.HasImage():
				res.noImage++
				batchRecordsTotal.WithLabelValues("no_image").Inc()
				bf.logger.Debug().Int("id", id).Msg("Dropping record - no image")
			default:
				batchRecordsTotal.WithLabelValues("ok").Inc()
				res.records = append(res.records, rec)
			}
			return nil
		})
	}
	_ = eg.Wait()

	return res
}
