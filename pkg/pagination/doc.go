// Package pagination provides bounded-concurrency batch fetching of
// collection object records.
//
// The upstream API has no bulk endpoint, so every object on a page costs one
// request. The fetcher issues them in fixed-size waves and pauses between
// waves to stay under the upstream rate limit.
//
// Example usage:
//
//	fetcher := pagination.NewBatchFetcher(metClient, pagination.DefaultConfig())
//	records, err := fetcher.FetchRecords(ctx, ids)
//
// The batch fetcher:
//   - Splits the IDs into waves of ChunkSize (default 10)
//   - Fetches each wave concurrently, each fetch bounded by Timeout
//   - Drops IDs whose fetch fails or whose record has no image
//   - Fails with ErrAllFailed only when every fetch failed
//   - Sleeps Pacing (default 250ms) between waves
//   - Stops promptly when ctx is cancelled and returns ctx.Err()
package pagination
