package recommend

import (
	"testing"

	"pickwise/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIntentFallbacks_BudgetFromQuery(t *testing.T) {
	cases := []struct {
		query    string
		wantMin  float64
		wantMax  float64
		expected bool
	}{
		{"looking for something around 3000-5000 can?", 3000, 5000, true},
		{"budget 2500~4000 lah", 2500, 4000, true},
		{"maybe 3500 - 6000", 3500, 6000, true},
		{"cheap one under 500", 0, 0, false},
		{"no numbers at all", 0, 0, false},
	}

	for _, tc := range cases {
		var intent domain.Intent
		applyIntentFallbacks(tc.query, &intent, nil)

		if !tc.expected {
			assert.Nil(t, intent.BudgetMin, tc.query)
			continue
		}

		require.NotNil(t, intent.BudgetMin, tc.query)
		require.NotNil(t, intent.BudgetMax, tc.query)
		assert.Equal(t, tc.wantMin, *intent.BudgetMin, tc.query)
		assert.Equal(t, tc.wantMax, *intent.BudgetMax, tc.query)
	}
}

func TestApplyIntentFallbacks_KeepsDerivedBudget(t *testing.T) {
	min := 1000.0
	intent := domain.Intent{BudgetMin: &min}

	applyIntentFallbacks("around 3000-5000", &intent, nil)

	// the reasoning service already set a budget; the regex must not override
	assert.Equal(t, 1000.0, *intent.BudgetMin)
	assert.Nil(t, intent.BudgetMax)
}

func TestBrandKeywordRule(t *testing.T) {
	rule := BrandKeywordRule("Lenovo", "Asus", "MSI")

	var intent domain.Intent
	rule("any lenovo or asus around?", &intent)
	assert.Equal(t, []string{"Lenovo", "Asus"}, intent.Brands)

	// derived brands win over keyword matches
	derived := domain.Intent{Brands: []string{"Dell"}}
	rule("any lenovo around?", &derived)
	assert.Equal(t, []string{"Dell"}, derived.Brands)

	var none domain.Intent
	rule("just a laptop", &none)
	assert.Empty(t, none.Brands)
}

func TestApplyIntentFallbacks_RunsRules(t *testing.T) {
	var intent domain.Intent
	applyIntentFallbacks("got msi 3000-5000?", &intent, []IntentRule{BrandKeywordRule("MSI")})

	require.NotNil(t, intent.BudgetMin)
	assert.Equal(t, []string{"MSI"}, intent.Brands)
}
