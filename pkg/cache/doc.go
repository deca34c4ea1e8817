// Package cache caches collection API responses in Redis.
//
// Entries are fresh until the response's Cache-Control max-age or Expires
// deadline (DefaultTTL when neither is present). Stale entries that carry an
// ETag or Last-Modified validator are kept for StaleGrace so the client can
// revalidate them with a conditional request instead of refetching.
//
// # Basic Usage
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Path:  "/search",
//		Query: url.Values{"q": []string{"mask"}, "hasImages": []string{"true"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	switch {
//	case errors.Is(err, cache.ErrCacheMiss):
//		// fetch upstream
//	case entry.IsExpired() && entry.CanRevalidate():
//		cache.AddConditionalHeaders(req, entry)
//	}
//
// # Metrics
//
//   - arcivia_cache_hits_total{freshness} - hits by fresh/stale
//   - arcivia_cache_misses_total - misses
//   - arcivia_cache_stored_bytes_total - bytes written
//   - arcivia_cache_conditional_requests_total - revalidations sent
//   - arcivia_cache_304_responses_total - revalidations answered 304
//   - arcivia_cache_errors_total{operation} - Redis errors
package cache
