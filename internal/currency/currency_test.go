package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "€", Symbol("EUR"))
	assert.Equal(t, "XYZ", Symbol("XYZ"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$5.50", Format(decimal.RequireFromString("5.5"), "USD"))
	assert.Equal(t, "₹100.00", Format(decimal.NewFromInt(100), "INR"))
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("$12.50").Equal(decimal.RequireFromString("12.50")))
	assert.True(t, ParseAmount("kr 99").Equal(decimal.NewFromInt(99)))
	assert.True(t, ParseAmount("no number").IsZero())
}

func TestSupported(t *testing.T) {
	codes := Supported()
	assert.Contains(t, codes, "USD")
	assert.Contains(t, codes, "EUR")
	assert.True(t, sortedStrings(codes))
	assert.Len(t, codes, 72)

	// Spot-check the less common regional blocks.
	for _, code := range []string{"MAD", "KWD", "QAR", "MMK", "KZT", "AFN", "YER", "MDL", "HRK"} {
		assert.Contains(t, codes, code)
	}
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
