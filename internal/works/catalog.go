package works

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ehsanpg/mazzehabi/pkg/cache"
	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

const DefaultTTL = 15 * time.Minute

// Catalog serves the sorted works list from a cache backed by a Source.
type Catalog struct {
	source Source
	cache  cache.Cache[[]Item]
	ttl    time.Duration
	key    string
	logger *slog.Logger

	mu   sync.RWMutex
	last []Item
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithTTL sets how long a loaded list is served before the source is read
// again.
func WithTTL(d time.Duration) CatalogOption {
	return func(c *Catalog) {
		if d > 0 {
			c.ttl = d
		}
	}
}

func WithLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCatalog creates a Catalog. A nil cache means an in-memory one.
func NewCatalog(source Source, c cache.Cache[[]Item], opts ...CatalogOption) *Catalog {
	if c == nil {
		c = cache.NewMemory[[]Item]()
	}
	cat := &Catalog{
		source: source,
		cache:  c,
		ttl:    DefaultTTL,
		key:    "works:catalog:" + source.String(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(cat)
	}
	return cat
}

// Source returns the configured source.
func (c *Catalog) Source() Source {
	return c.source
}

// Load returns the items sorted by id descending. Concurrent cache misses
// share one fetch. When the source fails after an earlier successful load,
// the last good list is served and cached again for another TTL. The
// returned slice is the caller's to modify.
func (c *Catalog) Load(ctx context.Context) ([]Item, error) {
	items, err := cache.GetOrSet(ctx, c.cache, c.key, c.ttl, c.fetch)
	if err != nil {
		prev, ok := c.keepLast(ctx, err)
		if !ok {
			return nil, err
		}
		items = prev
	}
	return slices.Clone(items), nil
}

// Find returns the item with id.
func (c *Catalog) Find(ctx context.Context, id int) (Item, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Refresh reads the source and replaces the cached list. On failure the
// last good list stays cached for another TTL and the error is returned.
func (c *Catalog) Refresh(ctx context.Context) error {
	items, err := c.fetch(ctx)
	if err != nil {
		c.keepLast(ctx, err)
		return err
	}
	if err := c.cache.Set(ctx, c.key, items, c.ttl); err != nil {
		return fmt.Errorf("works: cache: %w", err)
	}
	c.logger.InfoContext(ctx, "works catalog refreshed",
		slog.String("source", c.source.String()),
		slog.Int("items", len(items)),
	)
	return nil
}

// Healthcheck reports whether the catalog can be loaded.
func (c *Catalog) Healthcheck(ctx context.Context) error {
	_, err := c.Load(ctx)
	return err
}

func (c *Catalog) fetch(ctx context.Context) ([]Item, error) {
	data, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, c.source, err)
	}
	items, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, c.source, err)
	}

	c.mu.Lock()
	c.last = items
	c.mu.Unlock()
	return items, nil
}

// keepLast re-caches the last good list after a failed load. It reports
// false when nothing was ever loaded.
func (c *Catalog) keepLast(ctx context.Context, cause error) ([]Item, bool) {
	c.mu.RLock()
	prev := c.last
	c.mu.RUnlock()
	if prev == nil {
		return nil, false
	}

	if err := c.cache.Set(ctx, c.key, prev, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "works: re-caching previous list failed", slog.Any("error", err))
	}
	c.logger.WarnContext(ctx, "works source unavailable, serving previous list",
		slog.String("source", c.source.String()),
		slog.Int("items", len(prev)),
		slog.Any("error", cause),
	)
	return prev, true
}
