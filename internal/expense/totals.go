package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shivam-core/vantage/internal/models"
)

// StartOfDay returns midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday starting t's week.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t.AddDate(0, 0, -int(t.Weekday())))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PeriodStart maps a budget period to its current window start.
func PeriodStart(period string, now time.Time) time.Time {
	if period == models.PeriodWeekly {
		return StartOfWeek(now)
	}
	return StartOfMonth(now)
}

// SumTotals computes today/week/month spending from the given expenses.
// Expenses older than every window are ignored, so callers may pass any
// superset of the month-and-week-to-date records.
func SumTotals(expenses []*models.Expense, now time.Time) models.Totals {
	day := StartOfDay(now)
	week := StartOfWeek(now)
	month := StartOfMonth(now)

	totals := models.Totals{
		Today: decimal.Zero,
		Week:  decimal.Zero,
		Month: decimal.Zero,
	}
	for _, e := range expenses {
		if !e.Timestamp.Before(day) {
			totals.Today = totals.Today.Add(e.Amount)
		}
		if !e.Timestamp.Before(week) {
			totals.Week = totals.Week.Add(e.Amount)
		}
		if !e.Timestamp.Before(month) {
			totals.Month = totals.Month.Add(e.Amount)
		}
	}
	return totals
}

// SumStats breaks spending down by category and merchant.
func SumStats(expenses []*models.Expense) models.Stats {
	stats := models.Stats{
		Categories: make(map[string]decimal.Decimal),
		Merchants:  make(map[string]decimal.Decimal),
	}
	for _, e := range expenses {
		stats.Categories[e.Category] = stats.Categories[e.Category].Add(e.Amount)
		stats.Merchants[e.Merchant] = stats.Merchants[e.Merchant].Add(e.Amount)
	}
	return stats
}

// SumForCategory totals the amounts of expenses in one category.
func SumForCategory(expenses []*models.Expense, category string) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		if e.Category == category {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}
