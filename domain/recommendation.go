package domain

// Intent is the structured extraction of the user's goals from free text,
// produced by the reasoning service. Any missing field stays at its zero
// value; callers must treat the whole struct as best-effort.
type Intent struct {
	IntentSummary         string   `json:"intent_summary"`
	BudgetMin             *float64 `json:"budget_min"`
	BudgetMax             *float64 `json:"budget_max"`
	Purpose               string   `json:"purpose"`
	Brands                []string `json:"brands"`
	MustHave              []string `json:"must_have"`
	Avoid                 []string `json:"avoid"`
	ClarificationRequired bool     `json:"clarification_required"`
	Clarification         string   `json:"clarification"`
}

// LaptopFilter is a structured catalog query. Nil bounds are absent.
type LaptopFilter struct {
	Brands          []string `json:"brands"`
	PriceMin        *float64 `json:"price_min"`
	PriceMax        *float64 `json:"price_max"`
	CPUBenchmarkMin *float64 `json:"cpu_benchmark_min"`
	GPUBenchmarkMin *float64 `json:"gpu_benchmark_min"`
	RAMGBMin        *int     `json:"ram_gb_min"`
	WeightKgMax     *float64 `json:"weight_kg_max"`
}

// Retrieval provenance for a candidate.
const (
	SourceSemantic = "semantic"
	SourceFilter   = "filter"
	SourceFallback = "fallback"
)

// RankedCandidate is a laptop with its computed pick score; only lives
// for the duration of one recommendation request.
type RankedCandidate struct {
	Laptop    Laptop `json:"laptop"`
	PickScore int    `json:"pick_score"`
	Source    string `json:"source"`
}

type ChatReply struct {
	Answer     string            `json:"answer"`
	Candidates []RankedCandidate `json:"candidates"`
}

// SemanticHit is one similarity-search result from the vector index.
type SemanticHit struct {
	LaptopID   string  `json:"laptop_id"`
	Similarity float64 `json:"similarity"`
}

// StatRange is the min/max of one numeric catalog attribute.
type StatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// StatRanges holds the cached ranges used to normalize raw attributes
// into 0-100 sub-scores.
type StatRanges struct {
	Price   StatRange `json:"price"`
	CPU     StatRange `json:"cpu"`
	GPU     StatRange `json:"gpu"`
	Weight  StatRange `json:"weight"`
	Battery StatRange `json:"battery"`
}
