package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pickwise/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStatsRepo serves fixed ranges and counts aggregation calls.
type fakeStatsRepo struct {
	mu     sync.Mutex
	ranges map[string]domain.StatRange
	calls  int
	err    error
}

func (f *fakeStatsRepo) AggregateMinMax(_ context.Context, attribute string) (domain.StatRange, bool, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return domain.StatRange{}, false, f.err
	}

	r, ok := f.ranges[attribute]
	return r, ok, nil
}

func (f *fakeStatsRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testRanges() map[string]domain.StatRange {
	return map[string]domain.StatRange{
		AttrPrice:   {Min: 2000, Max: 6000},
		AttrCPU:     {Min: 10000, Max: 30000},
		AttrGPU:     {Min: 2000, Max: 18000},
		AttrWeight:  {Min: 1.0, Max: 3.0},
		AttrBattery: {Min: 40, Max: 100},
	}
}

func newTestEngine(policy UnknownFactorPolicy) *ScoreEngine {
	cache := NewRangeCache(&fakeStatsRepo{ranges: testRanges()}, time.Minute)
	return NewScoreEngine(cache, policy)
}

func TestScore_DefaultPriorities(t *testing.T) {
	engine := newTestEngine(UnknownFactorIgnore)
	ctx := context.Background()

	// best-in-catalog on every axis, neutral brand: (100*20 + 50)/21
	best := domain.Laptop{
		PriceRM:           2000,
		CPUBenchmark:      30000,
		GPUBenchmark:      18000,
		WeightKg:          1.0,
		BatteryCapacityWh: 100,
	}
	score, err := engine.Score(ctx, best, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 98, score)

	// worst on every axis: (0*20 + 50)/21
	worst := domain.Laptop{
		PriceRM:           6000,
		CPUBenchmark:      10000,
		GPUBenchmark:      2000,
		WeightKg:          3.0,
		BatteryCapacityWh: 40,
	}
	score, err = engine.Score(ctx, worst, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	// dead middle on every axis lands exactly on 50
	mid := domain.Laptop{
		PriceRM:           4000,
		CPUBenchmark:      20000,
		GPUBenchmark:      10000,
		WeightKg:          2.0,
		BatteryCapacityWh: 70,
	}
	score, err = engine.Score(ctx, mid, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, score)
}

func TestScore_PriorityOrderIsDecisive(t *testing.T) {
	engine := newTestEngine(UnknownFactorIgnore)
	ctx := context.Background()
	brands := []string{"Lenovo"}

	// X: preferred brand, middling price. Y: wrong brand, best price.
	x := domain.Laptop{Brand: "Lenovo", PriceRM: 4000}
	y := domain.Laptop{Brand: "Asus", PriceRM: 2000}

	brandFirst := []string{FactorBrand, FactorPrice}
	xScore, err := engine.Score(ctx, x, brandFirst, brands)
	require.NoError(t, err)
	yScore, err := engine.Score(ctx, y, brandFirst, brands)
	require.NoError(t, err)
	assert.Equal(t, 83, xScore)
	assert.Equal(t, 67, yScore)
	assert.Greater(t, xScore, yScore)

	// flipping the priority order flips the winner
	priceFirst := []string{FactorPrice, FactorBrand}
	xScore, err = engine.Score(ctx, x, priceFirst, brands)
	require.NoError(t, err)
	yScore, err = engine.Score(ctx, y, priceFirst, brands)
	require.NoError(t, err)
	assert.Equal(t, 67, xScore)
	assert.Equal(t, 83, yScore)
	assert.Greater(t, yScore, xScore)
}

func TestScore_MissingAttributeScoresZero(t *testing.T) {
	engine := newTestEngine(UnknownFactorIgnore)

	// CPU benchmark absent: that sub-score is 0, not skipped
	l := domain.Laptop{PriceRM: 2000, CPUBenchmark: 0}
	withCPU := domain.Laptop{PriceRM: 2000, CPUBenchmark: 30000}

	missing, err := engine.Score(context.Background(), l, []string{FactorPrice, FactorCPU}, nil)
	require.NoError(t, err)
	present, err := engine.Score(context.Background(), withCPU, []string{FactorPrice, FactorCPU}, nil)
	require.NoError(t, err)

	assert.Less(t, missing, present)
}

func TestScore_DegenerateRange(t *testing.T) {
	// all laptops share one price: inverse metric maxes out, direct zeroes
	repo := &fakeStatsRepo{ranges: map[string]domain.StatRange{
		AttrPrice: {Min: 3000, Max: 3000},
		AttrCPU:   {Min: 15000, Max: 15000},
	}}
	engine := NewScoreEngine(NewRangeCache(repo, time.Minute), UnknownFactorIgnore)

	l := domain.Laptop{PriceRM: 3000, CPUBenchmark: 15000}

	score, err := engine.Score(context.Background(), l, []string{FactorPrice}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	score, err = engine.Score(context.Background(), l, []string{FactorCPU}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestScore_UnknownFactorPolicies(t *testing.T) {
	ignore := newTestEngine(UnknownFactorIgnore)
	reject := newTestEngine(UnknownFactorReject)
	ctx := context.Background()

	l := domain.Laptop{PriceRM: 2000}

	// ignore: unknown factor contributes neither weight nor score
	score, err := ignore.Score(ctx, l, []string{"Keyboard Feel", FactorPrice}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	// all factors unknown leaves nothing to weigh: neutral 50
	score, err = ignore.Score(ctx, l, []string{"Keyboard Feel", "Vibes"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, score)

	// reject: the request fails loudly
	_, err = reject.Score(ctx, l, []string{"Keyboard Feel", FactorPrice}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFactor))
}

func TestScore_AlwaysInBounds(t *testing.T) {
	engine := newTestEngine(UnknownFactorIgnore)
	ctx := context.Background()

	laptops := []domain.Laptop{
		{},
		{PriceRM: 999999, CPUBenchmark: 999999, GPUBenchmark: 999999, WeightKg: 99, BatteryCapacityWh: 9999},
		{PriceRM: 1, CPUBenchmark: 1, GPUBenchmark: 1, WeightKg: 0.1, BatteryCapacityWh: 1},
	}

	for _, l := range laptops {
		score, err := engine.Score(ctx, l, nil, []string{"Lenovo", "Asus"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestBrandScore(t *testing.T) {
	assert.Equal(t, float64(50), brandScore("Lenovo", nil))
	assert.Equal(t, float64(100), brandScore("Lenovo", []string{"Asus", "Lenovo"}))
	assert.Equal(t, float64(50), brandScore("MSI", []string{"Asus", "Lenovo"}))
}
