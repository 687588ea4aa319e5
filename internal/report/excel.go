// Package report renders expense exports.
package report

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/currency"
	"github.com/shivam-core/vantage/internal/models"
)

const sheetName = "Expenses"

// ExcelBuilder writes expenses to a spreadsheet for download.
type ExcelBuilder struct {
	currencyCode string
	logger       *zap.Logger
}

// NewExcelBuilder creates a builder that formats amounts in the given
// display currency.
func NewExcelBuilder(currencyCode string, logger *zap.Logger) *ExcelBuilder {
	return &ExcelBuilder{currencyCode: currencyCode, logger: logger}
}

// Build renders the expenses into an xlsx workbook.
func (b *ExcelBuilder) Build(expenses []*models.Expense) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Date", "Merchant", "Category", "Amount", "Confidence", "Raw Input"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	total := decimal.Zero
	for row, e := range expenses {
		values := []interface{}{
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Merchant,
			e.Category,
			currency.Format(e.Amount, b.currencyCode),
			e.Confidence,
			e.RawInput,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
		total = total.Add(e.Amount)
	}

	totalRow := len(expenses) + 2
	labelCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	if err := f.SetCellValue(sheetName, labelCell, "Total"); err != nil {
		return nil, fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellValue(sheetName, valueCell, currency.Format(total, b.currencyCode)); err != nil {
		return nil, fmt.Errorf("failed to write total: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	b.logger.Debug("Expense report built",
		zap.Int("rows", len(expenses)),
		zap.String("total", total.String()))
	return buf, nil
}
