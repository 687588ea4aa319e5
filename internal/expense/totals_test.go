package expense

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/internal/parser"
)

func expenseAt(ts time.Time, amount string, category, merchant string) *models.Expense {
	return &models.Expense{
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Merchant:  merchant,
		Timestamp: ts,
	}
}

func TestSumTotals_Windows(t *testing.T) {
	// Friday 2024-03-15; the week started Sunday 2024-03-10.
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	expenses := []*models.Expense{
		expenseAt(now.Add(-1*time.Hour), "10", parser.CategoryFood, "Cafe"),                              // today
		expenseAt(time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC), "20", parser.CategoryFood, ""),  // this week
		expenseAt(time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC), "40", parser.CategoryFood, ""),   // this month
		expenseAt(time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC), "80", parser.CategoryFood, ""), // prior month
	}

	totals := SumTotals(expenses, now)
	assert.True(t, totals.Today.Equal(decimal.NewFromInt(10)), "today = %s", totals.Today)
	assert.True(t, totals.Week.Equal(decimal.NewFromInt(30)), "week = %s", totals.Week)
	assert.True(t, totals.Month.Equal(decimal.NewFromInt(70)), "month = %s", totals.Month)
}

func TestSumTotals_Empty(t *testing.T) {
	totals := SumTotals(nil, time.Now())
	assert.True(t, totals.Today.IsZero())
	assert.True(t, totals.Week.IsZero())
	assert.True(t, totals.Month.IsZero())
}

func TestStartOfWeek_Sunday(t *testing.T) {
	// Friday
	friday := time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(friday))

	// Sunday is its own week start.
	sunday := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, StartOfWeek(now), PeriodStart(models.PeriodWeekly, now))
	assert.Equal(t, StartOfMonth(now), PeriodStart(models.PeriodMonthly, now))
}

func TestSumStats(t *testing.T) {
	expenses := []*models.Expense{
		expenseAt(time.Now(), "5.50", parser.CategoryFood, "Starbucks"),
		expenseAt(time.Now(), "4.50", parser.CategoryFood, "Starbucks"),
		expenseAt(time.Now(), "12", parser.CategoryTransportation, "Uber"),
	}

	stats := SumStats(expenses)
	assert.True(t, stats.Categories[parser.CategoryFood].Equal(decimal.NewFromInt(10)))
	assert.True(t, stats.Categories[parser.CategoryTransportation].Equal(decimal.NewFromInt(12)))
	assert.True(t, stats.Merchants["Starbucks"].Equal(decimal.NewFromInt(10)))
	assert.True(t, stats.Merchants["Uber"].Equal(decimal.NewFromInt(12)))
}

func TestSumForCategory(t *testing.T) {
	expenses := []*models.Expense{
		expenseAt(time.Now(), "5", parser.CategoryFood, ""),
		expenseAt(time.Now(), "7", parser.CategoryShopping, ""),
	}
	assert.True(t, SumForCategory(expenses, parser.CategoryFood).Equal(decimal.NewFromInt(5)))
	assert.True(t, SumForCategory(expenses, parser.CategoryOther).IsZero())
}
