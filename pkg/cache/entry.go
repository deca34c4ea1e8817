package cache

import (
	"net/http"
	"time"
)

// StaleGrace is how long an expired entry is kept for revalidation.
const StaleGrace = 24 * time.Hour

// Entry represents a cached collection API response.
type Entry struct {
	// Data is the response body
	Data []byte `json:"data"`

	// ETag for conditional requests (If-None-Match)
	ETag string `json:"etag"`

	// Expires is when the entry becomes stale
	Expires time.Time `json:"expires"`

	// LastModified is when the data was last modified upstream
	LastModified time.Time `json:"last_modified"`

	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`

	// CachedAt is when we cached this response
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired returns true if the entry is stale.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until the entry is stale, or 0.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// CanRevalidate reports whether a stale entry carries a validator.
func (e *Entry) CanRevalidate() bool {
	return e.ETag != "" || !e.LastModified.IsZero()
}

// storageTTL is how long Redis keeps the entry: fresh lifetime plus the
// stale grace when the entry can be revalidated.
func (e *Entry) storageTTL() time.Duration {
	ttl := e.TTL()
	if e.CanRevalidate() {
		ttl += StaleGrace
	}
	return ttl
}
