// Package heritage defines the canonical heritage item model, the query
// identity used by the explore coordinator, and the normalizer that maps
// upstream collection records onto items.
package heritage

import (
	"sort"
	"strings"
)

// MaxTags caps the number of tags carried by an item.
const MaxTags = 6

// Item is the canonical, display-ready description of one artifact.
// Items are never mutated after construction.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Era         string   `json:"era"`
	Culture     string   `json:"culture"`
	ImageURL    string   `json:"imageUrl"`
	Views       int      `json:"views"`
	Likes       int      `json:"likes"`
	IsAR        bool     `json:"isAR"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// Year is the upstream begin year (negative for BC), 0 when unknown.
	Year int `json:"year,omitempty"`
}

// SortOrder selects how items within a page are ordered.
type SortOrder string

const (
	// SortPopular orders by views, highest first.
	SortPopular SortOrder = "popular"

	// SortNewest orders by year, most recent first.
	SortNewest SortOrder = "newest"

	// SortOldest orders by year, oldest first.
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder maps a user-supplied string to a SortOrder.
// Unknown values fall back to SortPopular.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortNewest:
		return SortNewest
	case SortOldest:
		return SortOldest
	default:
		return SortPopular
	}
}

// Filters narrows a query. The value is treated as immutable once it has
// been handed to a coordinator.
type Filters struct {
	Era     []string  `json:"era"`
	Culture []string  `json:"culture"`
	AROnly  bool      `json:"arOnly"`
	SortBy  SortOrder `json:"sortBy"`
}

// Equal reports whether two filter values select the same results.
// Era and culture are compared as sets.
func (f Filters) Equal(o Filters) bool {
	return f.AROnly == o.AROnly &&
		f.sortOrder() == o.sortOrder() &&
		sameSet(f.Era, o.Era) &&
		sameSet(f.Culture, o.Culture)
}

func (f Filters) sortOrder() SortOrder {
	if f.SortBy == "" {
		return SortPopular
	}
	return f.SortBy
}

// Query is the identity of a logical explore request.
type Query struct {
	Category string  `json:"category"`
	Filters  Filters `json:"filters"`
	Search   string  `json:"search"`
}

// Equal reports whether q and o are the same logical query.
func (q Query) Equal(o Query) bool {
	return q.Category == o.Category &&
		strings.TrimSpace(q.Search) == strings.TrimSpace(o.Search) &&
		q.Filters.Equal(o.Filters)
}

func sameSet(a, b []string) bool {
	as, bs := dedupe(a), dedupe(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SortItems orders items in place according to order. The sort is stable
// so equal keys keep their fetch order.
func SortItems(items []Item, order SortOrder) {
	switch order {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Year > items[j].Year })
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Year < items[j].Year })
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Views > items[j].Views })
	}
}
