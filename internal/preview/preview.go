// Package preview caches the current-snapshot preview behind a short TTL so
// repeated mounts serve instantly without a backend round trip.
package preview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/netinv-mcp/internal/store"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// CacheKey is the session-store key the preview entry is persisted under.
const CacheKey = "preview_cache"

// Backend is the slice of the inventory API the preview cache consumes.
type Backend interface {
	Preview(ctx context.Context, limit int) (*types.PreviewResult, error)
	Info(ctx context.Context) (*types.SnapshotInfo, error)
}

// entry is one cached preview response with its fetch time.
type entry struct {
	Data      *types.PreviewResult `json:"data"`
	Timestamp time.Time            `json:"timestamp"`
}

// Config holds the cache's tunables.
type Config struct {
	TTL            time.Duration
	Limit          int // row limit passed to the preview endpoint
	PreviewTimeout time.Duration
	InfoTimeout    time.Duration
}

// Cache is a read-through TTL cache over the preview endpoint. Concurrent
// readers share a single in-flight fetch; overlapping mount cycles never
// produce duplicate network calls.
type Cache struct {
	backend Backend
	kv      store.Store
	cfg     Config
	now     func() time.Time

	sf singleflight.Group

	mu      sync.Mutex
	current *entry
	info    *types.SnapshotInfo
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a preview cache, rehydrating any persisted entry that is still
// within its TTL. Corrupted persisted entries are silently discarded.
func New(backend Backend, kv store.Store, cfg Config, opts ...Option) *Cache {
	c := &Cache{
		backend: backend,
		kv:      kv,
		cfg:     cfg,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	var e entry
	ok, err := kv.Get(CacheKey, &e)
	if err != nil {
		slog.Warn("discarding persisted preview cache", slog.String("error", err.Error()))
	} else if ok && e.Data != nil && c.fresh(&e) {
		c.current = &e
	}
	return c
}

// Fetch returns the cached preview when fresh, otherwise fetches, caches and
// returns a new one. force clears the entry first, guaranteeing a network
// read.
func (c *Cache) Fetch(ctx context.Context, force bool) (*types.PreviewResult, error) {
	if force {
		c.Invalidate()
	} else {
		c.mu.Lock()
		if c.current != nil && c.fresh(c.current) {
			data := c.current.Data
			c.mu.Unlock()
			return data, nil
		}
		c.mu.Unlock()
	}

	v, err, _ := c.sf.Do("preview", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.PreviewTimeout)
		defer cancel()

		pr, err := c.backend.Preview(fetchCtx, c.cfg.Limit)
		if err != nil {
			return nil, err
		}
		c.storeEntry(pr)
		return pr, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.PreviewResult), nil
}

// Invalidate clears the cached entry, e.g. after an administrative reindex
// changed the underlying data. The next Fetch observes fresh data.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.info = nil
	c.mu.Unlock()

	if err := c.kv.Delete(CacheKey); err != nil {
		slog.Warn("failed to clear persisted preview cache", slog.String("error", err.Error()))
	}
}

// Availability reports whether the current snapshot is usable, fetching the
// snapshot info if nothing cached answers the question. An info failure is
// treated as a missing snapshot rather than an error: the caller's fallback
// (forcing historical scope) is the right behavior either way.
func (c *Cache) Availability(ctx context.Context) types.SnapshotAvailability {
	c.mu.Lock()
	if c.info != nil {
		info := c.info
		c.mu.Unlock()
		return types.ClassifySnapshot(info)
	}
	if c.current != nil && c.fresh(c.current) {
		info := c.current.Data.Info()
		c.mu.Unlock()
		return types.ClassifySnapshot(&info)
	}
	c.mu.Unlock()

	v, err, _ := c.sf.Do("info", func() (any, error) {
		infoCtx, cancel := context.WithTimeout(ctx, c.cfg.InfoTimeout)
		defer cancel()
		return c.backend.Info(infoCtx)
	})
	if err != nil {
		slog.Warn("snapshot info fetch failed", slog.String("error", err.Error()))
		return types.SnapshotMissing
	}

	info := v.(*types.SnapshotInfo)
	c.mu.Lock()
	c.info = info
	c.mu.Unlock()
	return types.ClassifySnapshot(info)
}

// Warm primes the preview and snapshot info concurrently, as on mount.
// Either fetch failing fails the warm-up; callers treat that as advisory.
func (c *Cache) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.Fetch(ctx, false)
		return err
	})
	g.Go(func() error {
		c.Availability(ctx)
		return nil
	})
	return g.Wait()
}

// storeEntry overwrites the cache entry unconditionally after a successful
// fetch and persists it best-effort.
func (c *Cache) storeEntry(pr *types.PreviewResult) {
	e := &entry{Data: pr, Timestamp: c.now()}
	info := pr.Info()

	c.mu.Lock()
	c.current = e
	c.info = &info
	c.mu.Unlock()

	if err := c.kv.Set(CacheKey, e); err != nil {
		slog.Warn("failed to persist preview cache", slog.String("error", err.Error()))
	}
}

func (c *Cache) fresh(e *entry) bool {
	return c.now().Sub(e.Timestamp) < c.cfg.TTL
}
