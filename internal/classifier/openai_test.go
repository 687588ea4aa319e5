package classifier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	res, err := parseClassification(
		`{"amount": 5.50, "merchant": " Starbucks ", "category": "Food", "confidence": 0.92}`)
	require.NoError(t, err)

	assert.True(t, res.Amount.Equal(decimal.RequireFromString("5.50")))
	assert.Equal(t, "Starbucks", res.Merchant)
	assert.Equal(t, "food", res.Category)
	assert.Equal(t, 0.92, res.Confidence)
}

func TestParseClassification_PartialFields(t *testing.T) {
	res, err := parseClassification(`{"category": "transport"}`)
	require.NoError(t, err)

	assert.True(t, res.Amount.IsZero())
	assert.Empty(t, res.Merchant)
	assert.Equal(t, "transport", res.Category)
	assert.Zero(t, res.Confidence)
}

func TestParseClassification_StringAmount(t *testing.T) {
	// Models sometimes quote the number; decimal accepts both forms.
	res, err := parseClassification(`{"amount": "12.25", "category": "food"}`)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(decimal.RequireFromString("12.25")))
}

func TestParseClassification_MalformedJSON(t *testing.T) {
	for _, content := range []string{
		"",
		"not json at all",
		`{"amount": }`,
		`{"amount": "one hundred"}`,
	} {
		_, err := parseClassification(content)
		assert.Error(t, err, "content %q", content)
	}
}
