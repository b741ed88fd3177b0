package cellatlas

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// AtlasCache holds the current atlas for one font and rebuilds it when the
// cell metrics change. Readers call Current, which never blocks; rebuilds
// run on background goroutines and are published with an atomic swap.
//
// Each rebuild is stamped with a generation. Only a build whose generation
// is still the latest when it finishes is published, so a build that was
// overtaken by a newer metrics change is discarded and readers never see an
// older atlas after a newer one.
type AtlasCache struct {
	// OnBuildError, if set, is called with every failed build. It runs on
	// the build goroutine.
	OnBuildError func(error)

	builder Builder
	font    FontDescriptor

	current atomic.Pointer[Atlas]

	mu         sync.Mutex
	pending    *CellMetrics
	generation uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats CacheStats
}

// CacheStats counts rebuild outcomes.
type CacheStats struct {
	Started   atomic.Uint64
	Published atomic.Uint64
	Discarded atomic.Uint64
	Failed    atomic.Uint64
}

// NewAtlasCache returns an empty cache building atlases for fd with b.
func NewAtlasCache(b Builder, fd FontDescriptor) *AtlasCache {
	ctx, cancel := context.WithCancel(context.Background())
	return &AtlasCache{
		builder: b,
		font:    fd,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Font returns the font the cache builds atlases for.
func (c *AtlasCache) Font() FontDescriptor {
	return c.font
}

// Current returns the latest published atlas, or nil before the first
// build completes. It is safe to call concurrently with a rebuild.
func (c *AtlasCache) Current() *Atlas {
	return c.current.Load()
}

// Pending returns the metrics of the build the cache is waiting on, if any.
func (c *AtlasCache) Pending() (CellMetrics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return CellMetrics{}, false
	}
	return *c.pending, true
}

// OnMetricsChanged requests an atlas for m. A build is started unless the
// current atlas already has m or a build for m is already in flight; it
// reports whether one was started. m must be valid.
func (c *AtlasCache) OnMetricsChanged(m CellMetrics) bool {
	if !m.Valid() {
		panic("cellatlas: OnMetricsChanged with " + m.String())
	}

	c.mu.Lock()
	if cur := c.current.Load(); cur != nil && cur.metrics == m {
		if c.pending != nil {
			// back to what is already current; whatever is in flight is stale
			c.pending = nil
			c.generation++
		}
		c.mu.Unlock()
		return false
	}
	if c.pending != nil && *c.pending == m {
		c.mu.Unlock()
		return false
	}
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return false
	}

	c.generation++
	gen := c.generation
	c.pending = &m
	c.wg.Add(1)
	c.mu.Unlock()

	c.stats.Started.Add(1)
	logger().Info("building atlas", "font", c.font.String(), "metrics", m.String(), "generation", gen)
	go c.build(gen, m)
	return true
}

func (c *AtlasCache) build(gen uint64, m CellMetrics) {
	defer c.wg.Done()

	start := time.Now()
	atlas, err := c.builder.Build(c.ctx, c.font, m)

	c.mu.Lock()
	latest := gen == c.generation
	if latest && c.pending != nil && *c.pending == m {
		c.pending = nil
	}
	closed := c.ctx.Err() != nil
	publish := err == nil && latest && !closed
	if publish {
		c.current.Store(atlas)
	}
	c.mu.Unlock()

	switch {
	case err != nil && closed && errors.Is(err, context.Canceled):
		// closed; nobody is waiting for this atlas
		c.stats.Discarded.Add(1)
	case err != nil:
		c.stats.Failed.Add(1)
		logger().Error("atlas build failed", "font", c.font.String(), "metrics", m.String(), "err", err)
		if c.OnBuildError != nil {
			c.OnBuildError(err)
		}
	case !publish:
		c.stats.Discarded.Add(1)
		logger().Warn("discarding stale atlas", "metrics", m.String(), "generation", gen)
	default:
		c.stats.Published.Add(1)
		logger().Info("atlas published", "metrics", m.String(), "generation", gen, "took", time.Since(start))
	}
}

// Wait blocks until every build started so far has finished.
func (c *AtlasCache) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight builds and waits for them. The current atlas
// stays readable; no further builds are started.
func (c *AtlasCache) Close() {
	c.cancel()
	c.wg.Wait()
}

// Stats returns the rebuild counters.
func (c *AtlasCache) Stats() (started, published, discarded, failed uint64) {
	return c.stats.Started.Load(),
		c.stats.Published.Load(),
		c.stats.Discarded.Load(),
		c.stats.Failed.Load()
}
