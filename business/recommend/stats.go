package recommend

import (
	"context"
	"fmt"
	"pickwise/domain"
	"pickwise/pkg/logger"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// catalog attribute columns aggregated into scoring ranges
const (
	AttrPrice   = "price_rm"
	AttrCPU     = "cpu_benchmark"
	AttrGPU     = "gpu_benchmark"
	AttrWeight  = "weight_kg"
	AttrBattery = "battery_capacity_wh"
)

// StatsRepository aggregates min/max for one catalog attribute.
// ok=false means the catalog holds no value for that attribute.
type StatsRepository interface {
	AggregateMinMax(ctx context.Context, attribute string) (domain.StatRange, bool, error)
}

// RangeCache holds the catalog-wide min/max ranges behind a TTL. It is
// the only state shared across requests; the cached value is replaced
// wholesale, never mutated in place.
type RangeCache struct {
	repo StatsRepository
	ttl  time.Duration

	mu        sync.Mutex
	cached    *domain.StatRanges
	fetchedAt time.Time
}

func NewRangeCache(repo StatsRepository, ttl time.Duration) *RangeCache {
	if ttl <= 0 {
		ttl = defaultRangeTTL
	}
	return &RangeCache{
		repo: repo,
		ttl:  ttl,
	}
}

// Ranges returns the cached ranges, refreshing them when the TTL has
// expired. A failed refresh falls back to the last good value when one
// exists; only a cold cache surfaces the error.
func (c *RangeCache) Ranges(ctx context.Context) (domain.StatRanges, error) {
	if err := ctx.Err(); err != nil {
		return domain.StatRanges{}, fmt.Errorf("context error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		return *c.cached, nil
	}

	fresh, err := c.compute(ctx)
	if err != nil {
		if c.cached != nil {
			logger.Warn("range refresh failed, serving stale ranges", "error", err)
			return *c.cached, nil
		}
		return domain.StatRanges{}, fmt.Errorf("compute statistical ranges: %w", err)
	}

	c.cached = &fresh
	c.fetchedAt = time.Now()
	RangeCacheRefreshes.Inc()

	return fresh, nil
}

// Invalidate drops the cached value so the next call recomputes.
func (c *RangeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}

// compute aggregates all five ranges in parallel.
func (c *RangeCache) compute(ctx context.Context) (domain.StatRanges, error) {
	var ranges domain.StatRanges

	targets := []struct {
		attribute string
		dst       *domain.StatRange
	}{
		{AttrPrice, &ranges.Price},
		{AttrCPU, &ranges.CPU},
		{AttrGPU, &ranges.GPU},
		{AttrWeight, &ranges.Weight},
		{AttrBattery, &ranges.Battery},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		g.Go(func() error {
			r, ok, err := c.repo.AggregateMinMax(gctx, t.attribute)
			if err != nil {
				return fmt.Errorf("aggregate %s: %w", t.attribute, err)
			}
			if !ok {
				// empty catalog; keep max > min so normalization stays safe
				r = domain.StatRange{Min: 0, Max: 1}
			}
			*t.dst = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.StatRanges{}, err
	}

	return ranges, nil
}
