package recommend

import "time"

// UnknownFactorPolicy controls what happens when a stored priority factor
// is not one of the canonical scoring dimensions.
type UnknownFactorPolicy int

const (
	// UnknownFactorIgnore skips the factor: it contributes neither weight
	// nor score.
	UnknownFactorIgnore UnknownFactorPolicy = iota
	// UnknownFactorReject fails the scoring call.
	UnknownFactorReject
)

type Config struct {
	// ranked list size returned to the user
	TopN int

	// top-K for the similarity search path
	SemanticK int

	// result cap for the structured filter path
	FilterLimit int

	// fallback query bounds when both paths come back empty
	FallbackLimit     int
	FallbackBudgetMin float64
	FallbackBudgetMax float64

	// purpose "gaming" requires at least this GPU benchmark
	GamingGPUMin float64

	// how long cached min/max ranges stay valid
	RangeTTL time.Duration

	// how many long-term memory entries go into the prompt
	MemoryWindow int

	UnknownFactorPolicy UnknownFactorPolicy

	// optional enrichment hooks applied after intent derivation
	IntentRules []IntentRule
}

const (
	defaultTopN              = 3
	defaultSemanticK         = 12
	defaultFilterLimit       = 30
	defaultFallbackLimit     = 10
	defaultFallbackBudgetMin = 2500
	defaultFallbackBudgetMax = 6000
	defaultGamingGPUMin      = 8000
	defaultRangeTTL          = 5 * time.Minute
	defaultMemoryWindow      = 5
)

func DefaultConfig() Config {
	return Config{
		TopN:              defaultTopN,
		SemanticK:         defaultSemanticK,
		FilterLimit:       defaultFilterLimit,
		FallbackLimit:     defaultFallbackLimit,
		FallbackBudgetMin: defaultFallbackBudgetMin,
		FallbackBudgetMax: defaultFallbackBudgetMax,
		GamingGPUMin:      defaultGamingGPUMin,
		RangeTTL:          defaultRangeTTL,
		MemoryWindow:      defaultMemoryWindow,

		UnknownFactorPolicy: UnknownFactorIgnore,
	}
}
