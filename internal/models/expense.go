// Package models holds the persisted domain records shared by the
// repositories, services, and HTTP layer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one logged spend. The parsing engine produces the amount,
// merchant, category, and timestamp; identity is assigned on insert.
type Expense struct {
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Merchant   string          `json:"merchant"`
	RawInput   string          `json:"raw_input"`
	Confidence float64         `json:"confidence"`
	Timestamp  time.Time       `json:"timestamp"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Totals aggregates spending over the standard dashboard timeframes.
type Totals struct {
	Today decimal.Decimal `json:"today"`
	Week  decimal.Decimal `json:"week"`
	Month decimal.Decimal `json:"month"`
}

// Stats breaks spending down by category and by merchant.
type Stats struct {
	Categories map[string]decimal.Decimal `json:"categories"`
	Merchants  map[string]decimal.Decimal `json:"merchants"`
}
