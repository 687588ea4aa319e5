package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/models"
)

// BudgetRepository handles budget database operations.
type BudgetRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBudgetRepository creates a new budget repository.
func NewBudgetRepository(db *sql.DB, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{db: db, logger: logger}
}

// Upsert saves a budget, replacing any existing budget for the same
// category and period.
func (r *BudgetRepository) Upsert(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (category, period, amount)
		VALUES (?, ?, ?)
		ON CONFLICT(category, period) DO UPDATE SET
			amount = excluded.amount,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query,
		budget.Category,
		budget.Period,
		budget.Amount.String(),
	); err != nil {
		r.logger.Error("Failed to save budget",
			zap.String("category", budget.Category),
			zap.String("period", budget.Period),
			zap.Error(err))
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

// List returns all budgets.
func (r *BudgetRepository) List(ctx context.Context) ([]*models.Budget, error) {
	query := `
		SELECT id, category, period, amount, created_at, updated_at
		FROM budgets
		ORDER BY category, period
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list budgets", zap.Error(err))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		var (
			budget    models.Budget
			amountStr string
		)
		if err := rows.Scan(
			&budget.ID,
			&budget.Category,
			&budget.Period,
			&amountStr,
			&budget.CreatedAt,
			&budget.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amountStr, err)
		}
		budget.Amount = amount
		budgets = append(budgets, &budget)
	}
	return budgets, rows.Err()
}

// ListByCategory returns all budgets for one category.
func (r *BudgetRepository) ListByCategory(ctx context.Context, category string) ([]*models.Budget, error) {
	budgets, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*models.Budget
	for _, b := range budgets {
		if b.Category == category {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// Delete removes the budget for a category and period.
func (r *BudgetRepository) Delete(ctx context.Context, category, period string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE category = ? AND period = ?",
		category, period,
	)
	if err != nil {
		r.logger.Error("Failed to delete budget",
			zap.String("category", category),
			zap.String("period", period),
			zap.Error(err))
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
