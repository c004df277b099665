package gemini

import (
	"testing"

	"pickwise/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var intent domain.Intent

	// clean JSON
	err := decodeJSON(`{"intent_summary":"gaming laptop","purpose":"gaming"}`, &intent)
	require.NoError(t, err)
	assert.Equal(t, "gaming", intent.Purpose)

	// markdown-fenced output still parses
	fenced := "```json\n{\"purpose\":\"work\",\"clarification_required\":true}\n```"
	intent = domain.Intent{}
	err = decodeJSON(fenced, &intent)
	require.NoError(t, err)
	assert.Equal(t, "work", intent.Purpose)
	assert.True(t, intent.ClarificationRequired)

	// prose around the object is tolerated
	wrapped := `Sure! Here is the filter: {"price_max": 4000} Hope that helps.`
	var filter domain.LaptopFilter
	err = decodeJSON(wrapped, &filter)
	require.NoError(t, err)
	require.NotNil(t, filter.PriceMax)
	assert.Equal(t, 4000.0, *filter.PriceMax)

	// no object at all is an error
	err = decodeJSON("sorry, cannot help", &intent)
	require.Error(t, err)

	// malformed JSON is an error, not a partial parse
	err = decodeJSON(`{"purpose": "work", "brands": [`, &intent)
	require.Error(t, err)
}
