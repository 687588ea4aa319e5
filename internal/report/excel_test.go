package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/internal/parser"
)

func TestExcelBuilder_Build(t *testing.T) {
	builder := NewExcelBuilder("USD", zap.NewNop())

	expenses := []*models.Expense{
		{
			Amount:    decimal.RequireFromString("5.50"),
			Category:  parser.CategoryFood,
			Merchant:  "Starbucks",
			RawInput:  "Coffee $5.50 at Starbucks",
			Timestamp: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			Amount:    decimal.NewFromInt(12),
			Category:  parser.CategoryTransportation,
			Merchant:  "Uber",
			RawInput:  "12 uber ride",
			Timestamp: time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC),
		},
	}

	buf, err := builder.Build(expenses)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	merchant, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Starbucks", merchant)

	amount, err := f.GetCellValue(sheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "$5.50", amount)

	totalLabel, err := f.GetCellValue(sheetName, "C4")
	require.NoError(t, err)
	assert.Equal(t, "Total", totalLabel)

	total, err := f.GetCellValue(sheetName, "D4")
	require.NoError(t, err)
	assert.Equal(t, "$17.50", total)
}

func TestExcelBuilder_EmptyList(t *testing.T) {
	builder := NewExcelBuilder("USD", zap.NewNop())
	buf, err := builder.Build(nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
