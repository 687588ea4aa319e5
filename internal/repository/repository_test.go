package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/pkg/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.Run("../../migrations"))
	return db
}

func testExpense(amount string, ts time.Time) *models.Expense {
	return &models.Expense{
		Amount:     decimal.RequireFromString(amount),
		Category:   "Food",
		Merchant:   "Starbucks",
		RawInput:   amount + " coffee at Starbucks",
		Confidence: 0.6,
		Timestamp:  ts,
	}
}

func TestExpenseRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	first := testExpense("5.50", base)
	second := testExpense("12.25", base.Add(time.Hour))

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	listed, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// Most recent first, decimal amounts round-trip exactly.
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, "12.25", listed[0].Amount.String())
	assert.Equal(t, "5.5", listed[1].Amount.String())
	assert.Equal(t, "Starbucks", listed[0].Merchant)
}

func TestExpenseRepository_ListSince(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testExpense("5", base.AddDate(0, 0, -10))))
	require.NoError(t, repo.Create(ctx, testExpense("7", base)))

	recent, err := repo.ListSince(ctx, base.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "7", recent[0].Amount.String())
}

func TestExpenseRepository_GetAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	e := testExpense("9.99", time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "9.99", got.Amount.String())

	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err = repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
}

func TestBudgetRepository_UpsertReplacesByCategoryAndPeriod(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Budget{
		Category: "Food",
		Period:   models.PeriodMonthly,
		Amount:   decimal.NewFromInt(200),
	}))
	require.NoError(t, repo.Upsert(ctx, &models.Budget{
		Category: "Food",
		Period:   models.PeriodMonthly,
		Amount:   decimal.NewFromInt(300),
	}))
	require.NoError(t, repo.Upsert(ctx, &models.Budget{
		Category: "Food",
		Period:   models.PeriodWeekly,
		Amount:   decimal.NewFromInt(80),
	}))

	budgets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)

	monthly, err := repo.ListByCategory(ctx, "Food")
	require.NoError(t, err)
	assert.Len(t, monthly, 2)

	for _, b := range budgets {
		if b.Period == models.PeriodMonthly {
			assert.Equal(t, "300", b.Amount.String())
		}
	}
}

func TestBudgetRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Budget{
		Category: "Food",
		Period:   models.PeriodMonthly,
		Amount:   decimal.NewFromInt(200),
	}))

	require.NoError(t, repo.Delete(ctx, "Food", models.PeriodMonthly))
	assert.ErrorIs(t, repo.Delete(ctx, "Food", models.PeriodMonthly), ErrNotFound)
}
