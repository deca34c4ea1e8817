package explore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/arcivia/arcivia-explore/pkg/logging"
	"github.com/arcivia/arcivia-explore/pkg/resolver"
	"github.com/rs/zerolog"
)

// PageRequest identifies one page of one query.
type PageRequest struct {
	Query heritage.Query
	// Page is 1-based.
	Page int
}

// Page is the result of loading one page.
type Page struct {
	Items []heritage.Item
	// Resolved is the number of identifiers resolved for the page before
	// records were fetched and filtered. It drives the has-more heuristic.
	Resolved int
}

// PageSource loads pages for the coordinator.
// Implementations must return promptly with ctx.Err() once ctx is done.
type PageSource interface {
	LoadPage(ctx context.Context, req PageRequest) (Page, error)
}

// IDResolver resolves a page request to object IDs.
type IDResolver interface {
	Resolve(ctx context.Context, req resolver.Request) ([]int, error)
}

// RecordBatcher fetches object records, dropping failures.
type RecordBatcher interface {
	FetchRecords(ctx context.Context, ids []int) ([]heritage.Record, error)
}

// UpstreamSource loads pages from the collection API.
type UpstreamSource struct {
	resolver IDResolver
	fetcher  RecordBatcher
	logger   zerolog.Logger
}

// NewUpstreamSource creates a page source over a resolver and batch fetcher.
func NewUpstreamSource(r IDResolver, f RecordBatcher) *UpstreamSource {
	return &UpstreamSource{
		resolver: r,
		fetcher:  f,
		logger:   logging.NewLogger("upstream-source"),
	}
}

// LoadPage resolves, fetches and normalizes one page. The AR-only filter is
// enforced here as well because the department listing cannot apply it.
func (s *UpstreamSource) LoadPage(ctx context.Context, req PageRequest) (Page, error) {
	category := categoryLabel(req.Query.Category)

	ids, err := s.resolver.Resolve(ctx, resolver.Request{
		Category: category,
		Search:   req.Query.Search,
		Filters:  req.Query.Filters,
		Page:     req.Page,
	})
	if err != nil {
		return Page{}, err
	}
	if len(ids) == 0 {
		return Page{Items: []heritage.Item{}}, nil
	}

	records, err := s.fetcher.FetchRecords(ctx, ids)
	if err != nil {
		return Page{}, fmt.Errorf("fetch records: %w", err)
	}

	items := make([]heritage.Item, 0, len(records))
	for _, rec := range records {
		item, ok := heritage.Normalize(rec, category)
		if !ok {
			continue
		}
		if req.Query.Filters.AROnly && !item.IsAR {
			continue
		}
		items = append(items, item)
	}
	heritage.SortItems(items, req.Query.Filters.SortBy)

	s.logger.Debug().
		Str("category", category).
		Int("page", req.Page).
		Int("ids", len(ids)).
		Int("items", len(items)).
		Msg("Loaded upstream page")

	return Page{Items: items, Resolved: len(ids)}, nil
}

// SampleSource serves the built-in offline catalog, filtered the same way
// as the live listing.
type SampleSource struct {
	// Latency simulates network delay; it honours cancellation.
	Latency time.Duration
}

// LoadPage filters the catalog and returns the requested page window.
func (s SampleSource) LoadPage(ctx context.Context, req PageRequest) (Page, error) {
	if s.Latency > 0 {
		select {
		case <-ctx.Done():
			return Page{}, ctx.Err()
		case <-time.After(s.Latency):
		}
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	filtered := FilterSamples(heritage.SampleItems(), req.Query)

	page := req.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * resolver.PageSize
	if start >= len(filtered) {
		return Page{Items: []heritage.Item{}}, nil
	}
	end := start + resolver.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	items := filtered[start:end]
	heritage.SortItems(items, req.Query.Filters.SortBy)
	return Page{Items: items, Resolved: len(items)}, nil
}

// FilterSamples applies a query to catalog items: exact category (except
// "all" and "trending"), AR only, then case-insensitive substring matches
// on era, culture and search text.
func FilterSamples(items []heritage.Item, q heritage.Query) []heritage.Item {
	category := categoryLabel(q.Category)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]heritage.Item, 0, len(items))
	for _, it := range items {
		if category != "all" && category != "trending" && it.Category != category {
			continue
		}
		if q.Filters.AROnly && !it.IsAR {
			continue
		}
		if len(q.Filters.Era) > 0 && !containsAny(it.Era, q.Filters.Era) {
			continue
		}
		if len(q.Filters.Culture) > 0 && !containsAny(it.Culture, q.Filters.Culture) {
			continue
		}
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func containsAny(field string, needles []string) bool {
	field = strings.ToLower(field)
	for _, n := range needles {
		if strings.Contains(field, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func matchesSearch(it heritage.Item, search string) bool {
	fields := append([]string{it.Title, it.Subtitle, it.Culture}, it.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func categoryLabel(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "all"
	}
	return category
}
