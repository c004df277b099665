package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"pickwise/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeCache_ServesFromCacheWithinTTL(t *testing.T) {
	repo := &fakeStatsRepo{ranges: testRanges()}
	cache := NewRangeCache(repo, time.Minute)
	ctx := context.Background()

	first, err := cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatRange{Min: 2000, Max: 6000}, first.Price)
	assert.Equal(t, 5, repo.callCount())

	// second call inside the TTL must not touch the repository
	second, err := cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 5, repo.callCount())
}

func TestRangeCache_RefreshAfterTTL(t *testing.T) {
	repo := &fakeStatsRepo{ranges: testRanges()}
	cache := NewRangeCache(repo, 10*time.Millisecond)
	ctx := context.Background()

	_, err := cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.callCount())

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.callCount())
}

func TestRangeCache_StaleOnRefreshError(t *testing.T) {
	repo := &fakeStatsRepo{ranges: testRanges()}
	cache := NewRangeCache(repo, 10*time.Millisecond)
	ctx := context.Background()

	good, err := cache.Ranges(ctx)
	require.NoError(t, err)

	// expire the entry, then break the repository
	time.Sleep(20 * time.Millisecond)
	repo.mu.Lock()
	repo.err = errors.New("db down")
	repo.mu.Unlock()

	stale, err := cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, good, stale)
}

func TestRangeCache_ColdCacheSurfacesError(t *testing.T) {
	repo := &fakeStatsRepo{err: errors.New("db down")}
	cache := NewRangeCache(repo, time.Minute)

	_, err := cache.Ranges(context.Background())
	require.Error(t, err)
}

func TestRangeCache_EmptyCatalogDefaults(t *testing.T) {
	// no rows for any attribute: every range becomes {0,1}
	repo := &fakeStatsRepo{ranges: map[string]domain.StatRange{}}
	cache := NewRangeCache(repo, time.Minute)

	ranges, err := cache.Ranges(context.Background())
	require.NoError(t, err)

	expected := domain.StatRange{Min: 0, Max: 1}
	assert.Equal(t, expected, ranges.Price)
	assert.Equal(t, expected, ranges.CPU)
	assert.Equal(t, expected, ranges.GPU)
	assert.Equal(t, expected, ranges.Weight)
	assert.Equal(t, expected, ranges.Battery)
}

func TestRangeCache_InvalidateForcesRecompute(t *testing.T) {
	repo := &fakeStatsRepo{ranges: testRanges()}
	cache := NewRangeCache(repo, time.Hour)
	ctx := context.Background()

	_, err := cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.callCount())

	cache.Invalidate()

	_, err = cache.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.callCount())
}

func TestRangeCache_CancelledContext(t *testing.T) {
	repo := &fakeStatsRepo{ranges: testRanges()}
	cache := NewRangeCache(repo, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Ranges(ctx)
	require.Error(t, err)
}
