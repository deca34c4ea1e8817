package explore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/arcivia/arcivia-explore/pkg/client"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/arcivia/arcivia-explore/pkg/logging"
	"github.com/rs/zerolog"
)

// MaxRelated caps the related items returned with a detail.
const MaxRelated = 4

// ErrItemNotFound is returned when an item cannot be found or has no image.
var ErrItemNotFound = errors.New("item not found")

// ObjectSource fetches single records and searches the collection.
type ObjectSource interface {
	GetObject(ctx context.Context, id int) (heritage.Record, error)
	Search(ctx context.Context, p client.SearchParams) ([]int, error)
}

// Detail is one item with its related items.
type Detail struct {
	Item    heritage.Item   `json:"item"`
	Related []heritage.Item `json:"related"`
}

// DetailLoader loads item details. Without an ObjectSource it serves the
// pool only, which is how the offline catalog is browsed.
type DetailLoader struct {
	objects ObjectSource
	fetcher RecordBatcher
	logger  zerolog.Logger
}

// NewDetailLoader creates a detail loader. objects and fetcher may be nil.
func NewDetailLoader(objects ObjectSource, fetcher RecordBatcher) *DetailLoader {
	return &DetailLoader{
		objects: objects,
		fetcher: fetcher,
		logger:  logging.NewLogger("detail"),
	}
}

// Load returns the item with the given ID and up to MaxRelated items that
// share its culture or category. Related items come from pool first and
// are topped up from a culture search when the pool is short.
func (d *DetailLoader) Load(ctx context.Context, id string, pool []heritage.Item) (Detail, error) {
	item, err := d.item(ctx, id, pool)
	if err != nil {
		return Detail{}, err
	}

	related := RelatedFromPool(item, pool, MaxRelated)
	if len(related) < MaxRelated && d.objects != nil && d.fetcher != nil && item.Culture != heritage.UnknownCulture {
		related = d.topUp(ctx, item, related)
	}

	return Detail{Item: item, Related: related}, nil
}

func (d *DetailLoader) item(ctx context.Context, id string, pool []heritage.Item) (heritage.Item, error) {
	var pooled *heritage.Item
	for i := range pool {
		if pool[i].ID == id {
			pooled = &pool[i]
			break
		}
	}

	if d.objects == nil {
		if pooled == nil {
			return heritage.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		return *pooled, nil
	}

	objectID, err := strconv.Atoi(id)
	if err != nil {
		return heritage.Item{}, fmt.Errorf("%w: invalid id %q", ErrItemNotFound, id)
	}

	rec, err := d.objects.GetObject(ctx, objectID)
	if err != nil {
		if client.IsNotFound(err) {
			return heritage.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		return heritage.Item{}, fmt.Errorf("load item %s: %w", id, err)
	}

	category := "all"
	if pooled != nil {
		category = pooled.Category
	}
	item, ok := heritage.Normalize(rec, category)
	if !ok {
		return heritage.Item{}, fmt.Errorf("%w: %s has no image", ErrItemNotFound, id)
	}
	return item, nil
}

// RelatedFromPool returns up to limit pool items, other than item itself,
// that share its culture or category.
func RelatedFromPool(item heritage.Item, pool []heritage.Item, limit int) []heritage.Item {
	related := make([]heritage.Item, 0, limit)
	for _, candidate := range pool {
		if len(related) == limit {
			break
		}
		if candidate.ID == item.ID {
			continue
		}
		if candidate.Culture == item.Culture || candidate.Category == item.Category {
			related = append(related, candidate)
		}
	}
	return related
}

// topUp fills related from a culture search. Failures are logged and the
// pool-only list is kept.
func (d *DetailLoader) topUp(ctx context.Context, item heritage.Item, related []heritage.Item) []heritage.Item {
	ids, err := d.objects.Search(ctx, client.SearchParams{Query: item.Culture, ArtistOrCulture: true})
	if err != nil {
		d.logger.Warn().Err(err).Str("culture", item.Culture).Msg("Related items search failed")
		return related
	}

	seen := map[string]bool{item.ID: true}
	for _, r := range related {
		seen[r.ID] = true
	}

	need := MaxRelated - len(related)
	candidates := make([]int, 0, need*2)
	for _, id := range ids {
		if len(candidates) == need*2 {
			break
		}
		if !seen[strconv.Itoa(id)] {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return related
	}

	records, err := d.fetcher.FetchRecords(ctx, candidates)
	if err != nil {
		d.logger.Debug().Err(err).Msg("Related items fetch failed")
		return related
	}

	for _, rec := range records {
		if len(related) == MaxRelated {
			break
		}
		if r, ok := heritage.Normalize(rec, item.Category); ok && !seen[r.ID] {
			seen[r.ID] = true
			related = append(related, r)
		}
	}
	return related
}
