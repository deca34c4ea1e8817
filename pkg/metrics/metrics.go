// Package metrics provides the Prometheus registry and exposition for
// ARCIVIA. Metrics are defined in their own packages (client, cache,
// ratelimit, pagination, explore, recognition) and registered via promauto.
package metrics

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prefix is shared by every ARCIVIA metric name.
const Prefix = "arcivia_"

// Registry is the default Prometheus registry used by ARCIVIA.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Total is the sum of a counter family across all label values.
type Total struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Totals sums every ARCIVIA counter family in g, sorted by name. Gauges and
// histograms are skipped.
func Totals(g prometheus.Gatherer) ([]Total, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var totals []Total
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), Prefix) {
			continue
		}
		var sum float64
		counter := false
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				sum += c.GetValue()
				counter = true
			}
		}
		if counter {
			totals = append(totals, Total{Name: mf.GetName(), Value: sum})
		}
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].Name < totals[j].Name })
	return totals, nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - arcivia_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - arcivia_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - arcivia_errors_total{class} (Counter): Errors by class (client, not_found, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - arcivia_retries_total{error_class} (Counter): Retry attempts by error class
//   - arcivia_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - arcivia_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - arcivia_cache_hits_total{freshness} (Counter): Cache hits, fresh or stale
//   - arcivia_cache_misses_total (Counter): Cache misses
//   - arcivia_cache_stored_bytes_total (Counter): Bytes written to the cache
//   - arcivia_cache_conditional_requests_total (Counter): Revalidations sent with If-None-Match
//   - arcivia_cache_304_responses_total (Counter): 304 Not Modified responses
//   - arcivia_cache_errors_total{operation} (Counter): Cache operation errors
//
// Rate Limit Metrics (pkg/ratelimit):
//   - arcivia_rate_limit_streak (Gauge): Consecutive 429 responses
//   - arcivia_rate_limit_blocks_total (Counter): Requests blocked during a cool-down
//   - arcivia_rate_limit_throttles_total (Counter): Requests delayed while a streak is open
//
// Batch Metrics (pkg/pagination):
//   - arcivia_batch_records_total{outcome} (Counter): Records by outcome (ok, no_image, failed, cancelled)
//   - arcivia_batch_duration_seconds (Histogram): Duration of a whole batch
//
// Explore Metrics (pkg/explore):
//   - arcivia_explore_loads_total{kind, outcome} (Counter): Page loads (initial, next, refresh)
//   - arcivia_explore_load_duration_seconds{kind} (Histogram): Duration of applied loads
//
// Recognition Metrics (pkg/recognition):
//   - arcivia_recognition_scans_total{outcome} (Counter): Scans by outcome
//   - arcivia_recognition_scan_duration_seconds (Histogram): Capture plus describe duration
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(arcivia_cache_hits_total[5m])) /
//   (sum(rate(arcivia_cache_hits_total[5m])) + sum(rate(arcivia_cache_misses_total[5m])))
//
//   # Superseded loads (pagination abandoned by query changes)
//   rate(arcivia_explore_loads_total{outcome="superseded"}[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(arcivia_request_duration_seconds_bucket[5m]))
//
//   # Rate-limited scans
//   rate(arcivia_recognition_scans_total{outcome="rate_limited"}[5m])
