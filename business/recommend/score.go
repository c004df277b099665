package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"pickwise/domain"
)

// Canonical scoring dimensions. Preference records reference these by name.
const (
	FactorPrice       = "Price"
	FactorCPU         = "CPU Performance"
	FactorGPU         = "GPU Performance"
	FactorPortability = "Portability"
	FactorBattery     = "Battery Life"
	FactorBrand       = "Brand"
)

// defaultPriority is used when a user has no stored priority factors.
var defaultPriority = []string{
	FactorPrice,
	FactorCPU,
	FactorGPU,
	FactorPortability,
	FactorBattery,
	FactorBrand,
}

var ErrUnknownFactor = errors.New("unknown priority factor")

// ScoreEngine computes the 0-100 pick score for one laptop against a
// user's ranked priority factors and brand preferences.
type ScoreEngine struct {
	ranges *RangeCache
	policy UnknownFactorPolicy
}

func NewScoreEngine(ranges *RangeCache, policy UnknownFactorPolicy) *ScoreEngine {
	return &ScoreEngine{
		ranges: ranges,
		policy: policy,
	}
}

// Score weights each normalized sub-score by inverse rank position: with N
// factors the first gets weight N, the last weight 1, so ordering is
// strictly decisive.
func (e *ScoreEngine) Score(ctx context.Context, laptop domain.Laptop, priorityFactors, brandPreferences []string) (int, error) {
	ranges, err := e.ranges.Ranges(ctx)
	if err != nil {
		return 0, fmt.Errorf("load ranges: %w", err)
	}

	priorities := priorityFactors
	if len(priorities) == 0 {
		priorities = defaultPriority
	}

	subScores := map[string]float64{
		FactorPrice:       normalize(laptop.PriceRM, ranges.Price.Min, ranges.Price.Max, true),
		FactorCPU:         normalize(laptop.CPUBenchmark, ranges.CPU.Min, ranges.CPU.Max, false),
		FactorGPU:         normalize(laptop.GPUBenchmark, ranges.GPU.Min, ranges.GPU.Max, false),
		FactorPortability: normalize(laptop.WeightKg, ranges.Weight.Min, ranges.Weight.Max, true),
		FactorBattery:     normalize(laptop.BatteryCapacityWh, ranges.Battery.Min, ranges.Battery.Max, false),
		FactorBrand:       brandScore(laptop.Brand, brandPreferences),
	}

	var weightedSum, totalWeight float64
	for i, factor := range priorities {
		sub, known := subScores[factor]
		if !known {
			if e.policy == UnknownFactorReject {
				return 0, fmt.Errorf("%w: %q", ErrUnknownFactor, factor)
			}
			// ignore policy: the factor contributes neither weight nor score
			continue
		}

		weight := float64(len(priorities) - i)
		weightedSum += sub * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 50, nil
	}

	score := int(math.Round(weightedSum / totalWeight))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, nil
}

// brandScore returns 100 on a preference match and a neutral 50 both for
// a non-match and for users with no brand preference at all.
func brandScore(brand string, preferences []string) float64 {
	if len(preferences) == 0 {
		return 50
	}
	for _, p := range preferences {
		if p == brand {
			return 100
		}
	}
	return 50
}

// normalize maps a raw attribute onto [0,100] using the catalog range.
// Missing values (zero or negative) normalize to 0. Inverse metrics
// (price, weight) flip so that lower raw values score higher.
func normalize(value, min, max float64, inverse bool) float64 {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	if max <= min {
		if inverse {
			return 100
		}
		return 0
	}

	score := ((value - min) / (max - min)) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if inverse {
		return 100 - score
	}
	return score
}
