// Package budget tracks per-category spending limits and raises
// threshold alerts as new expenses come in.
package budget

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/expense"
	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/internal/parser"
)

// Alert thresholds as a fraction of the budget amount.
const (
	warningThreshold = 0.8
	dangerThreshold  = 1.0
)

// ErrInvalidBudget is returned by Save when the budget fails validation.
var ErrInvalidBudget = errors.New("invalid budget")

// Store is the persistence collaborator for budgets.
type Store interface {
	Upsert(ctx context.Context, budget *models.Budget) error
	List(ctx context.Context) ([]*models.Budget, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Budget, error)
	Delete(ctx context.Context, category, period string) error
}

// ExpenseReader supplies the expenses a budget window is measured
// against.
type ExpenseReader interface {
	ListSince(ctx context.Context, since time.Time) ([]*models.Expense, error)
}

// Manager owns budget CRUD, status reporting, and alert checks.
type Manager struct {
	store    Store
	expenses ExpenseReader
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the clock used for period boundaries.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a budget manager.
func NewManager(store Store, expenses ExpenseReader, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		expenses: expenses,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save validates and upserts a budget. One budget may exist per
// category and period.
func (m *Manager) Save(ctx context.Context, budget *models.Budget) error {
	if !parser.ValidCategory(budget.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidBudget, budget.Category)
	}
	if !models.ValidPeriod(budget.Period) {
		return fmt.Errorf("%w: unknown period %q", ErrInvalidBudget, budget.Period)
	}
	if !budget.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidBudget)
	}

	if err := m.store.Upsert(ctx, budget); err != nil {
		return err
	}

	m.logger.Info("Budget saved",
		zap.String("category", budget.Category),
		zap.String("period", budget.Period),
		zap.String("amount", budget.Amount.String()))
	return nil
}

// List returns all budgets.
func (m *Manager) List(ctx context.Context) ([]*models.Budget, error) {
	return m.store.List(ctx)
}

// Delete removes the budget for a category and period.
func (m *Manager) Delete(ctx context.Context, category, period string) error {
	return m.store.Delete(ctx, category, period)
}

// CheckAlert reports whether logging expense pushed its category past a
// budget threshold in the current period. Returns nil when no budget is
// set or spending remains under the warning threshold.
func (m *Manager) CheckAlert(ctx context.Context, logged *models.Expense) (*models.BudgetAlert, error) {
	budgets, err := m.store.ListByCategory(ctx, logged.Category)
	if err != nil {
		return nil, err
	}

	now := m.now()
	for _, budget := range budgets {
		// Save rejects non-positive amounts, but a row written outside
		// the manager must not make Div panic.
		if !budget.Amount.IsPositive() {
			continue
		}

		spent, err := m.spentInPeriod(ctx, budget, now)
		if err != nil {
			return nil, err
		}

		fraction := spent.Div(budget.Amount).InexactFloat64()
		switch {
		case fraction >= dangerThreshold:
			return &models.BudgetAlert{
				Category: budget.Category,
				Period:   budget.Period,
				Type:     models.AlertDanger,
				Message: fmt.Sprintf("You've exceeded your %s %s budget!",
					budget.Period, budget.Category),
				Spent:  spent,
				Budget: budget.Amount,
			}, nil
		case fraction >= warningThreshold:
			return &models.BudgetAlert{
				Category: budget.Category,
				Period:   budget.Period,
				Type:     models.AlertWarning,
				Message: fmt.Sprintf("You're approaching your %s %s budget limit (%d%% used)",
					budget.Period, budget.Category, int(math.Round(fraction*100))),
				Spent:  spent,
				Budget: budget.Amount,
			}, nil
		}
	}
	return nil, nil
}

// Status reports consumption of every budget in its current period.
func (m *Manager) Status(ctx context.Context) ([]*models.BudgetStatus, error) {
	budgets, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	statuses := make([]*models.BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		if !budget.Amount.IsPositive() {
			continue
		}

		spent, err := m.spentInPeriod(ctx, budget, now)
		if err != nil {
			return nil, err
		}

		fraction := spent.Div(budget.Amount).InexactFloat64()

		status := &models.BudgetStatus{
			Budget:     *budget,
			Spent:      spent,
			Remaining:  clampNonNegative(budget.Amount.Sub(spent)),
			Percentage: math.Min(fraction, 1),
		}
		switch {
		case fraction >= dangerThreshold:
			status.Status = "exceeded"
		case fraction >= warningThreshold:
			status.Status = "warning"
		default:
			status.Status = "good"
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (m *Manager) spentInPeriod(ctx context.Context, budget *models.Budget, now time.Time) (decimal.Decimal, error) {
	since := expense.PeriodStart(budget.Period, now)
	expenses, err := m.expenses.ListSince(ctx, since)
	if err != nil {
		return decimal.Zero, err
	}
	return expense.SumForCategory(expenses, budget.Category), nil
}

// clampNonNegative clamps negative remainders to zero.
func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
