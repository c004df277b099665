package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pickwise/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]domain.Laptop
	filtered []domain.Laptop
	fallback []domain.Laptop

	filterErr   error
	fallbackErr error

	// captured filters, in call order
	filters []domain.LaptopFilter
}

func (f *fakeCatalog) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Laptop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Laptop, 0, len(ids))
	for _, id := range ids {
		if l, ok := f.byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByFilter(_ context.Context, filter domain.LaptopFilter, _ int) ([]domain.Laptop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filters = append(f.filters, filter)
	if len(f.filters) == 1 {
		return f.filtered, f.filterErr
	}
	return f.fallback, f.fallbackErr
}

type fakeIndex struct {
	hits []domain.SemanticHit
	err  error
}

func (f *fakeIndex) SimilaritySearch(_ context.Context, _ string, _ int) ([]domain.SemanticHit, error) {
	return f.hits, f.err
}

func makeLaptop(name string) domain.Laptop {
	return domain.Laptop{ID: uuid.New(), ProductName: name}
}

func TestRetrieve_UnionFirstSeenWins(t *testing.T) {
	shared := makeLaptop("shared")
	semOnly := makeLaptop("semantic-only")
	filterOnly := makeLaptop("filter-only")

	catalog := &fakeCatalog{
		byID: map[uuid.UUID]domain.Laptop{
			shared.ID:  shared,
			semOnly.ID: semOnly,
		},
		filtered: []domain.Laptop{shared, filterOnly},
	}
	index := &fakeIndex{hits: []domain.SemanticHit{
		{LaptopID: shared.ID.String(), Similarity: 0.9},
		{LaptopID: semOnly.ID.String(), Similarity: 0.8},
	}}

	merger := NewMerger(catalog, index, DefaultConfig())

	candidates, err := merger.Retrieve(context.Background(), "thin gaming laptop", domain.LaptopFilter{}, domain.Intent{})
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	bySource := map[uuid.UUID]string{}
	for _, c := range candidates {
		bySource[c.Laptop.ID] = c.Source
	}

	// the shared laptop keeps its semantic provenance
	assert.Equal(t, domain.SourceSemantic, bySource[shared.ID])
	assert.Equal(t, domain.SourceSemantic, bySource[semOnly.ID])
	assert.Equal(t, domain.SourceFilter, bySource[filterOnly.ID])
}

func TestRetrieve_SemanticFailureIsNonFatal(t *testing.T) {
	l := makeLaptop("survivor")
	catalog := &fakeCatalog{filtered: []domain.Laptop{l}}
	index := &fakeIndex{err: errors.New("index down")}

	merger := NewMerger(catalog, index, DefaultConfig())

	candidates, err := merger.Retrieve(context.Background(), "anything", domain.LaptopFilter{}, domain.Intent{})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.SourceFilter, candidates[0].Source)
}

func TestRetrieve_FilterErrorPropagates(t *testing.T) {
	catalog := &fakeCatalog{filterErr: errors.New("db down")}
	merger := NewMerger(catalog, &fakeIndex{}, DefaultConfig())

	_, err := merger.Retrieve(context.Background(), "anything", domain.LaptopFilter{}, domain.Intent{})
	require.Error(t, err)
}

func TestRetrieve_FallbackWhenBothEmpty(t *testing.T) {
	l := makeLaptop("fallback-pick")
	catalog := &fakeCatalog{fallback: []domain.Laptop{l}}
	merger := NewMerger(catalog, &fakeIndex{}, DefaultConfig())

	candidates, err := merger.Retrieve(context.Background(), "anything", domain.LaptopFilter{}, domain.Intent{})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.SourceFallback, candidates[0].Source)

	// the fallback query uses the default budget window
	require.Len(t, catalog.filters, 2)
	fb := catalog.filters[1]
	require.NotNil(t, fb.PriceMin)
	require.NotNil(t, fb.PriceMax)
	assert.Equal(t, float64(defaultFallbackBudgetMin), *fb.PriceMin)
	assert.Equal(t, float64(defaultFallbackBudgetMax), *fb.PriceMax)
}

func TestRetrieve_EmptyAfterFallbackIsNotAnError(t *testing.T) {
	catalog := &fakeCatalog{}
	merger := NewMerger(catalog, &fakeIndex{}, DefaultConfig())

	candidates, err := merger.Retrieve(context.Background(), "impossible ask", domain.LaptopFilter{}, domain.Intent{})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRetrieve_IntentBudgetOverridesFilter(t *testing.T) {
	catalog := &fakeCatalog{filtered: []domain.Laptop{makeLaptop("x")}}
	merger := NewMerger(catalog, &fakeIndex{}, DefaultConfig())

	filterMin, filterMax := 1000.0, 9000.0
	intentMin, intentMax := 3000.0, 5000.0
	intent := domain.Intent{BudgetMin: &intentMin, BudgetMax: &intentMax}

	_, err := merger.Retrieve(context.Background(), "anything",
		domain.LaptopFilter{PriceMin: &filterMin, PriceMax: &filterMax}, intent)
	require.NoError(t, err)

	require.Len(t, catalog.filters, 1)
	applied := catalog.filters[0]
	assert.Equal(t, intentMin, *applied.PriceMin)
	assert.Equal(t, intentMax, *applied.PriceMax)
}

func TestRetrieve_GamingGPUFloor(t *testing.T) {
	catalog := &fakeCatalog{filtered: []domain.Laptop{makeLaptop("x")}}
	cfg := DefaultConfig()
	merger := NewMerger(catalog, &fakeIndex{}, cfg)

	_, err := merger.Retrieve(context.Background(), "gaming rig",
		domain.LaptopFilter{}, domain.Intent{Purpose: "gaming"})
	require.NoError(t, err)

	require.Len(t, catalog.filters, 1)
	applied := catalog.filters[0]
	require.NotNil(t, applied.GPUBenchmarkMin)
	assert.Equal(t, cfg.GamingGPUMin, *applied.GPUBenchmarkMin)

	// an already-stricter GPU floor is kept
	strict := cfg.GamingGPUMin + 5000
	catalog2 := &fakeCatalog{filtered: []domain.Laptop{makeLaptop("y")}}
	merger2 := NewMerger(catalog2, &fakeIndex{}, cfg)

	_, err = merger2.Retrieve(context.Background(), "gaming rig",
		domain.LaptopFilter{GPUBenchmarkMin: &strict}, domain.Intent{Purpose: "gaming"})
	require.NoError(t, err)
	assert.Equal(t, strict, *catalog2.filters[0].GPUBenchmarkMin)
}

func TestRetrieve_IgnoresUnparseableSemanticIDs(t *testing.T) {
	l := makeLaptop("good")
	catalog := &fakeCatalog{byID: map[uuid.UUID]domain.Laptop{l.ID: l}}
	index := &fakeIndex{hits: []domain.SemanticHit{
		{LaptopID: "not-a-uuid", Similarity: 0.99},
		{LaptopID: l.ID.String(), Similarity: 0.9},
	}}

	merger := NewMerger(catalog, index, DefaultConfig())

	candidates, err := merger.Retrieve(context.Background(), "anything", domain.LaptopFilter{}, domain.Intent{})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, l.ID, candidates[0].Laptop.ID)
}
