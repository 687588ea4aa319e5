package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget periods. A category may carry one budget per period.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Alert severities.
const (
	AlertWarning = "warning"
	AlertDanger  = "danger"
)

// Budget is a spending limit for one category over one period.
type Budget struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BudgetAlert is raised when a new expense pushes a category past a
// budget threshold.
type BudgetAlert struct {
	Category string          `json:"category"`
	Period   string          `json:"period"`
	Type     string          `json:"type"`
	Message  string          `json:"message"`
	Spent    decimal.Decimal `json:"spent"`
	Budget   decimal.Decimal `json:"budget"`
}

// BudgetStatus reports how far a budget has been consumed.
type BudgetStatus struct {
	Budget
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Status     string          `json:"status"` // good, warning, exceeded
}

// ValidPeriod reports whether period is a supported budget period.
func ValidPeriod(period string) bool {
	return period == PeriodWeekly || period == PeriodMonthly
}
