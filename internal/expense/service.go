package expense

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/pkg/utils"
)

// Store is the persistence collaborator for expense records.
type Store interface {
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context, limit, offset int) ([]*models.Expense, error)
	ListAll(ctx context.Context) ([]*models.Expense, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.Expense, error)
	Delete(ctx context.Context, id int64) error
}

// Service logs, lists, and aggregates expenses. Every input channel
// (typed text, voice transcript, receipt text) goes through Log.
type Service struct {
	processor *Processor
	store     Store
	now       func() time.Time
	logger    *zap.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClock overrides the clock used for aggregation windows.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates an expense service.
func NewService(processor *Processor, store Store, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		processor: processor,
		store:     store,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Log parses one free-text entry and persists the result.
func (s *Service) Log(ctx context.Context, input string) (*models.Expense, error) {
	expense, err := s.processor.Process(ctx, utils.SanitizeInput(input))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense logged",
		zap.Int64("id", expense.ID),
		zap.String("amount", expense.Amount.String()),
		zap.String("category", expense.Category),
		zap.String("merchant", expense.Merchant))

	return expense, nil
}

// List returns expenses most-recent-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Expense, error) {
	return s.store.List(ctx, limit, offset)
}

// ListAll returns every expense, most-recent-first. Used by exports.
func (s *Service) ListAll(ctx context.Context) ([]*models.Expense, error) {
	return s.store.ListAll(ctx)
}

// Delete removes one expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Totals returns today/week/month spending.
func (s *Service) Totals(ctx context.Context) (models.Totals, error) {
	now := s.now()

	// The week window can start before the month window near the first
	// of a month; fetch from the earlier of the two.
	since := StartOfMonth(now)
	if week := StartOfWeek(now); week.Before(since) {
		since = week
	}

	expenses, err := s.store.ListSince(ctx, since)
	if err != nil {
		return models.Totals{}, err
	}
	return SumTotals(expenses, now), nil
}

// Stats returns all-time per-category and per-merchant spending.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	expenses, err := s.store.ListAll(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return SumStats(expenses), nil
}
