// Package catalog serves the inventory catalog: a cached snapshot of food
// items ingested from an external product database, with filtered, ranked and
// paginated search over it.
package catalog

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

const (
	DefaultFreshness   = 5 * time.Minute
	DefaultFetchLimit  = 500
	DefaultSearchDelay = 300 * time.Millisecond
)

// Catalog amortizes ingestion behind a freshness-bounded snapshot cache.
type Catalog struct {
	src         Source
	store       SnapshotStore
	synth       *synth
	now         func() time.Time
	freshness   time.Duration
	fetchLimit  int
	searchDelay time.Duration
	pageSize    int

	sf    singleflight.Group
	stats counters
}

type counters struct {
	hits       atomic.Uint64
	misses     atomic.Uint64
	ingestions atomic.Uint64
	fallbacks  atomic.Uint64
}

// Stats is a point-in-time view of the catalog counters.
type Stats struct {
	Hits       uint64  `json:"hits"`
	Misses     uint64  `json:"misses"`
	Ingestions uint64  `json:"ingestions"`
	Fallbacks  uint64  `json:"fallbacks"`
	HitRate    float64 `json:"hit_rate"`
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(c *Catalog) { c.now = now } }

// WithRand sets the source of the synthetic stock fields.
func WithRand(r *rand.Rand) Option { return func(c *Catalog) { c.synth = &synth{rng: r} } }

// WithFreshness sets how long a snapshot is served before re-ingestion.
func WithFreshness(d time.Duration) Option { return func(c *Catalog) { c.freshness = d } }

// WithFetchLimit sets how many records ingestion requests.
func WithFetchLimit(n int) Option { return func(c *Catalog) { c.fetchLimit = n } }

// WithSearchDelay sets the latency inserted before search results return.
func WithSearchDelay(d time.Duration) Option { return func(c *Catalog) { c.searchDelay = d } }

// WithPageSize sets the page size used when a search asks for none.
func WithPageSize(n int) Option { return func(c *Catalog) { c.pageSize = n } }

// New builds a Catalog reading from src and caching in store.
func New(src Source, store SnapshotStore, opts ...Option) *Catalog {
	c := &Catalog{
		src:         src,
		store:       store,
		now:         time.Now,
		freshness:   DefaultFreshness,
		fetchLimit:  DefaultFetchLimit,
		searchDelay: DefaultSearchDelay,
		pageSize:    DefaultPageSize,
	}
	for _, o := range opts {
		o(c)
	}
	if c.synth == nil {
		c.synth = &synth{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	if c.pageSize < 1 {
		c.pageSize = DefaultPageSize
	}
	return c
}

// Snapshot returns the cached item list while it is fresh, otherwise ingests
// a new one. On ingestion failure it returns the fallback list and leaves the
// cache as it was.
func (c *Catalog) Snapshot(ctx context.Context) []model.InventoryItem {
	if s, ok := c.fresh(ctx); ok {
		c.stats.hits.Add(1)
		return s.Items
	}
	c.stats.misses.Add(1)
	v, _, _ := c.sf.Do("snapshot", func() (any, error) {
		// a flight that finished between the miss and Do already refreshed the slot
		if s, ok := c.fresh(ctx); ok {
			return s.Items, nil
		}
		return c.ingest(ctx), nil
	})
	return v.([]model.InventoryItem)
}

func (c *Catalog) fresh(ctx context.Context) (Snapshot, bool) {
	s, ok, err := c.store.Load(ctx)
	if err != nil {
		obs.Logger.Warnw("catalog_cache_load_failed", "error", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}
	return s, c.now().Sub(s.Timestamp) < c.freshness
}

func (c *Catalog) ingest(ctx context.Context) []model.InventoryItem {
	raw, err := c.src.Fetch(ctx, c.fetchLimit)
	if err != nil {
		c.stats.fallbacks.Add(1)
		obs.Logger.Warnw("catalog_ingest_failed", "error", err)
		return Fallback()
	}
	items := c.synth.transform(raw)
	if err := c.store.Save(ctx, Snapshot{Items: items, Timestamp: c.now()}); err != nil {
		obs.Logger.Warnw("catalog_cache_save_failed", "error", err)
	}
	c.stats.ingestions.Add(1)
	obs.Logger.Infow("catalog_ingested", "item_count", len(items))
	return items
}

// Search filters, ranks and paginates the current snapshot. The only error
// is the context ending during the simulated latency.
func (c *Catalog) Search(ctx context.Context, query string, f model.SearchFilters, p model.Pagination) (model.Page[model.InventoryItem], error) {
	if c.searchDelay > 0 {
		t := time.NewTimer(c.searchDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return model.Page[model.InventoryItem]{}, ctx.Err()
		case <-t.C:
		}
	}
	if p.PageSize < 1 {
		p.PageSize = c.pageSize
	}
	q := NormalizeQuery(query)
	items := ApplyFilters(c.Snapshot(ctx), f)
	if q == "" {
		return Paginate(items, p), nil
	}
	return Paginate(Rank(items, q), p), nil
}

// Invalidate drops the cached snapshot so the next call re-ingests.
func (c *Catalog) Invalidate(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Stats reports cache and ingestion counters.
func (c *Catalog) Stats() Stats {
	hits := c.stats.hits.Load()
	misses := c.stats.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return Stats{
		Hits:       hits,
		Misses:     misses,
		Ingestions: c.stats.ingestions.Load(),
		Fallbacks:  c.stats.fallbacks.Load(),
		HitRate:    rate,
	}
}

// Item looks up one item of the current snapshot by ID.
func (c *Catalog) Item(ctx context.Context, id string) (model.InventoryItem, bool) {
	for _, it := range c.Snapshot(ctx) {
		if it.ID == id {
			return it, true
		}
	}
	return model.InventoryItem{}, false
}
