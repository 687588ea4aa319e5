// Package repository implements sqlite persistence for expenses and
// budgets.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ExpenseRepository handles expense database operations.
type ExpenseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *sql.DB, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{db: db, logger: logger}
}

// Create inserts a new expense and assigns its identity. Amounts are
// stored as text to keep decimal values exact.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (amount, category, merchant, raw_input, confidence, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		expense.Amount.String(),
		expense.Category,
		expense.Merchant,
		expense.RawInput,
		expense.Confidence,
		expense.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create expense", zap.Error(err))
		return fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	expense.ID = id
	return nil
}

// List returns expenses most-recent-first.
func (r *ExpenseRepository) List(ctx context.Context, limit, offset int) ([]*models.Expense, error) {
	query := `
		SELECT id, amount, category, merchant, raw_input, confidence, timestamp, created_at
		FROM expenses
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListSince returns expenses with a timestamp at or after since,
// most-recent-first. Totals and budget checks are computed from this.
func (r *ExpenseRepository) ListSince(ctx context.Context, since time.Time) ([]*models.Expense, error) {
	query := `
		SELECT id, amount, category, merchant, raw_input, confidence, timestamp, created_at
		FROM expenses
		WHERE timestamp >= ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		r.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListAll returns every expense, most-recent-first.
func (r *ExpenseRepository) ListAll(ctx context.Context) ([]*models.Expense, error) {
	query := `
		SELECT id, amount, category, merchant, raw_input, confidence, timestamp, created_at
		FROM expenses
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// GetByID retrieves a single expense.
func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*models.Expense, error) {
	query := `
		SELECT id, amount, category, merchant, raw_input, confidence, timestamp, created_at
		FROM expenses
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get expense", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// Delete removes an expense by id.
func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete expense", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete expense: %w", err)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		expense   models.Expense
		amountStr string
	)

	if err := row.Scan(
		&expense.ID,
		&amountStr,
		&expense.Category,
		&expense.Merchant,
		&expense.RawInput,
		&expense.Confidence,
		&expense.Timestamp,
		&expense.CreatedAt,
	); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amountStr, err)
	}
	expense.Amount = amount

	return &expense, nil
}

func scanExpenses(rows *sql.Rows) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}
