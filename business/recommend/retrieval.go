package recommend

import (
	"context"
	"fmt"
	"pickwise/domain"
	"pickwise/pkg/logger"

	"github.com/google/uuid"
)

// CatalogRepository is the structured lookup side of retrieval.
type CatalogRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Laptop, error)
	FindByFilter(ctx context.Context, filter domain.LaptopFilter, limit int) ([]domain.Laptop, error)
}

// SemanticIndex is the similarity-search side of retrieval.
type SemanticIndex interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]domain.SemanticHit, error)
}

// Merger runs the semantic and structured-filter retrieval paths in
// parallel and unions their results by laptop identity. It does not rank;
// ordering candidates is the score engine's job.
type Merger struct {
	catalog CatalogRepository
	index   SemanticIndex
	cfg     Config
}

func NewMerger(catalog CatalogRepository, index SemanticIndex, cfg Config) *Merger {
	return &Merger{
		catalog: catalog,
		index:   index,
		cfg:     cfg,
	}
}

// Retrieve returns the deduplicated candidate set for a query. An empty
// result after the fallback query is a valid terminal outcome, not an
// error.
func (m *Merger) Retrieve(ctx context.Context, query string, filter domain.LaptopFilter, intent domain.Intent) ([]domain.RankedCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// semantic path; failures here are logged and treated as empty
	semCh := make(chan []domain.Laptop, 1)
	go func() {
		semCh <- m.semanticLookup(ctx, query)
	}()

	filtered, err := m.catalog.FindByFilter(ctx, m.mergeFilter(filter, intent), m.cfg.FilterLimit)
	semantic := <-semCh
	if err != nil {
		return nil, fmt.Errorf("filter retrieval: %w", err)
	}

	// union by id, first-seen-wins; both paths return full records
	seen := make(map[uuid.UUID]struct{}, len(semantic)+len(filtered))
	candidates := make([]domain.RankedCandidate, 0, len(semantic)+len(filtered))

	appendUnseen := func(laptops []domain.Laptop, source string) {
		for _, l := range laptops {
			if _, ok := seen[l.ID]; ok {
				continue
			}
			seen[l.ID] = struct{}{}
			candidates = append(candidates, domain.RankedCandidate{Laptop: l, Source: source})
		}
	}

	appendUnseen(semantic, domain.SourceSemantic)
	appendUnseen(filtered, domain.SourceFilter)

	if len(candidates) == 0 {
		fallback, err := m.catalog.FindByFilter(ctx, m.fallbackFilter(intent), m.cfg.FallbackLimit)
		if err != nil {
			return nil, fmt.Errorf("fallback retrieval: %w", err)
		}
		appendUnseen(fallback, domain.SourceFallback)
	}

	for _, c := range candidates {
		RetrievalCandidates.WithLabelValues(c.Source).Inc()
	}

	return candidates, nil
}

// semanticLookup maps similarity hits back to full catalog records.
func (m *Merger) semanticLookup(ctx context.Context, query string) []domain.Laptop {
	hits, err := m.index.SimilaritySearch(ctx, query, m.cfg.SemanticK)
	if err != nil {
		logger.Warn("semantic retrieval failed", "error", err)
		return nil
	}
	if len(hits) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		id, err := uuid.Parse(h.LaptopID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	laptops, err := m.catalog.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn("semantic hit lookup failed", "error", err)
		return nil
	}

	return laptops
}

// mergeFilter layers the derived intent on top of the caller-supplied
// filter: budget bounds and the gaming GPU floor.
func (m *Merger) mergeFilter(filter domain.LaptopFilter, intent domain.Intent) domain.LaptopFilter {
	merged := filter

	if intent.BudgetMin != nil {
		merged.PriceMin = intent.BudgetMin
	}
	if intent.BudgetMax != nil {
		merged.PriceMax = intent.BudgetMax
	}

	if intent.Purpose == "gaming" {
		if merged.GPUBenchmarkMin == nil || *merged.GPUBenchmarkMin < m.cfg.GamingGPUMin {
			gpuMin := m.cfg.GamingGPUMin
			merged.GPUBenchmarkMin = &gpuMin
		}
	}

	return merged
}

// fallbackFilter is a budget-only query used when both paths come back
// empty: the intent's bounds when present, default bounds otherwise.
func (m *Merger) fallbackFilter(intent domain.Intent) domain.LaptopFilter {
	priceMin := m.cfg.FallbackBudgetMin
	priceMax := m.cfg.FallbackBudgetMax
	if intent.BudgetMin != nil {
		priceMin = *intent.BudgetMin
	}
	if intent.BudgetMax != nil {
		priceMax = *intent.BudgetMax
	}

	return domain.LaptopFilter{
		PriceMin: &priceMin,
		PriceMax: &priceMax,
	}
}
