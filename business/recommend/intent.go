package recommend

import (
	"regexp"
	"strconv"
	"strings"

	"pickwise/domain"
)

// budgetRangeRe matches a "NNNN-NNNN" budget range in free text, e.g.
// "around 3000-5000 can?".
var budgetRangeRe = regexp.MustCompile(`(\d{4})\s*[-~]\s*(\d{4})`)

// IntentRule is an optional enrichment hook applied to a derived intent
// after the reasoning service and the budget fallback have run.
type IntentRule func(query string, intent *domain.Intent)

// applyIntentFallbacks fills budget bounds from the raw query when the
// reasoning service left them empty, then runs the configured rules.
func applyIntentFallbacks(query string, intent *domain.Intent, rules []IntentRule) {
	if intent.BudgetMin == nil {
		if lo, hi, ok := extractBudgetRange(query); ok {
			intent.BudgetMin = &lo
			intent.BudgetMax = &hi
		}
	}

	for _, rule := range rules {
		rule(query, intent)
	}
}

func extractBudgetRange(query string) (float64, float64, bool) {
	m := budgetRangeRe.FindStringSubmatch(query)
	if m == nil {
		return 0, 0, false
	}

	lo, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}

	return lo, hi, true
}

// BrandKeywordRule tags an intent with brands when the query mentions one
// of the keywords and no brand was derived. Kept as an opt-in rule rather
// than core behavior.
func BrandKeywordRule(brands ...string) IntentRule {
	return func(query string, intent *domain.Intent) {
		if len(intent.Brands) > 0 {
			return
		}
		q := strings.ToLower(query)
		for _, b := range brands {
			if strings.Contains(q, strings.ToLower(b)) {
				intent.Brands = append(intent.Brands, b)
			}
		}
	}
}
