// Package resolver turns an explore query and page number into the list of
// collection object IDs to fetch for that page.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcivia/arcivia-explore/pkg/client"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// PageSize is the target number of items per page.
	PageSize = 20

	// Oversample is the ID multiplier per page; many upstream objects lack
	// an image and are dropped after fetching.
	Oversample = 3

	// WindowSize is the number of IDs resolved per page.
	WindowSize = PageSize * Oversample
)

// Upstream is the subset of the collection client the resolver needs.
type Upstream interface {
	Search(ctx context.Context, p client.SearchParams) ([]int, error)
	ListObjectIDs(ctx context.Context, departmentID int) ([]int, error)
}

// Request identifies one page of one query.
type Request struct {
	Category string
	Search   string
	Filters  heritage.Filters
	// Page is 1-based.
	Page int
}

// Resolver resolves page requests to object IDs.
type Resolver struct {
	upstream Upstream
	logger   zerolog.Logger
}

// New creates a resolver over upstream.
func New(upstream Upstream) *Resolver {
	return &Resolver{
		upstream: upstream,
		logger:   log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve returns at most WindowSize IDs for req. An empty result is not an
// error; callers treat it as the end of the listing.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]int, error) {
	if req.Page < 1 {
		req.Page = 1
	}

	if strings.TrimSpace(req.Search) != "" {
		return r.resolveSearch(ctx, req)
	}
	return r.resolveDepartment(ctx, req)
}

func (r *Resolver) resolveSearch(ctx context.Context, req Request) ([]int, error) {
	params := SearchParamsFor(req)

	ids, err := r.upstream.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("resolve search: %w", err)
	}

	window := searchWindow(ids, req.Page)

	r.logger.Debug().
		Str("q", params.Query).
		Int("page", req.Page).
		Int("matches", len(ids)).
		Int("ids", len(window)).
		Msg("Resolved search page")

	return window, nil
}

func (r *Resolver) resolveDepartment(ctx context.Context, req Request) ([]int, error) {
	departments := DepartmentsFor(req.Category)
	department := departments[(req.Page-1)%len(departments)]

	ids, err := r.upstream.ListObjectIDs(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("resolve department %d: %w", department, err)
	}

	window := departmentWindow(ids, req.Page)

	r.logger.Debug().
		Str("category", req.Category).
		Int("department", department).
		Int("page", req.Page).
		Int("listed", len(ids)).
		Int("ids", len(window)).
		Msg("Resolved department page")

	return window, nil
}

// SearchParamsFor builds the upstream search parameters for req.
// A culture filter replaces the search text; only the first culture is used.
// The date range is applied only when exactly one known era is selected.
func SearchParamsFor(req Request) client.SearchParams {
	params := client.SearchParams{
		Query:         strings.TrimSpace(req.Search),
		HighlightOnly: req.Filters.AROnly,
	}

	if len(req.Filters.Culture) > 0 {
		params.Query = req.Filters.Culture[0]
		params.ArtistOrCulture = true
	}

	if len(req.Filters.Era) == 1 {
		if begin, end, ok := EraRange(req.Filters.Era[0]); ok {
			params.DateRange = &client.DateRange{Begin: begin, End: end}
		}
	}

	return params
}

// searchWindow slices [(page-1)*WindowSize, page*WindowSize) out of ids.
func searchWindow(ids []int, page int) []int {
	start := (page - 1) * WindowSize
	if start >= len(ids) {
		return []int{}
	}
	end := start + WindowSize
	if end > len(ids) {
		end = len(ids)
	}
	return append([]int(nil), ids[start:end]...)
}

// departmentWindow takes WindowSize IDs starting at a page-dependent offset,
// wrapping past the end of the listing.
func departmentWindow(ids []int, page int) []int {
	if len(ids) == 0 {
		return []int{}
	}

	n := WindowSize
	if n > len(ids) {
		n = len(ids)
	}

	start := ((page - 1) * WindowSize) % len(ids)
	window := make([]int, 0, n)
	for i := 0; i < n; i++ {
		window = append(window, ids[(start+i)%len(ids)])
	}
	return window
}
