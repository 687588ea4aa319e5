// Package expense turns free-text input into persisted expense records
// and aggregates spending totals.
package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/classifier"
	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/internal/parser"
)

// decimalMax mirrors the parser's upper amount bound; service-supplied
// amounts outside it are discarded the same way.
var decimalMax = decimal.NewFromInt(10000)

// Confidence reported on results. Local extraction is heuristic, so it
// carries a lower fixed score than a successful service classification.
const (
	localConfidence   = 0.6
	serviceConfidence = 0.8
)

// serviceCategories maps labels the classification service may return
// onto the closed category set.
var serviceCategories = map[string]string{
	"food":           parser.CategoryFood,
	"transport":      parser.CategoryTransportation,
	"transportation": parser.CategoryTransportation,
	"shopping":       parser.CategoryShopping,
	"entertainment":  parser.CategoryEntertainment,
	"bills":          parser.CategoryUtilities,
	"utilities":      parser.CategoryUtilities,
	"health":         parser.CategoryHealthcare,
	"healthcare":     parser.CategoryHealthcare,
	"other":          parser.CategoryOther,
}

// Processor combines the optional classification service with the local
// parsing engine. Service results win per-field; the local parse fills
// whatever the service omits, and carries the whole result when the
// service is disabled or fails.
type Processor struct {
	parser     *parser.Parser
	classifier classifier.Classifier
	now        func() time.Time
	logger     *zap.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorClock overrides the clock used when the local parse could
// not supply a timestamp.
func WithProcessorClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) {
		p.now = now
	}
}

// NewProcessor creates a processor. Pass classifier.Disabled{} to run
// purely on local extraction.
func NewProcessor(p *parser.Parser, c classifier.Classifier, logger *zap.Logger, opts ...ProcessorOption) *Processor {
	proc := &Processor{
		parser:     p,
		classifier: c,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(proc)
	}
	return proc
}

// Process converts one free-text entry into an expense ready for
// persistence. It fails only on empty input or when neither the service
// nor the local parse finds a usable amount.
func (p *Processor) Process(ctx context.Context, input string) (*models.Expense, error) {
	if strings.TrimSpace(input) == "" {
		return nil, parser.ErrEmptyInput
	}

	local, localErr := p.parser.Parse(input)

	result, err := p.classifier.Classify(ctx, input)
	if err == nil {
		if merged := p.merge(input, result, local); merged != nil {
			return merged, nil
		}
	} else if !errors.Is(err, classifier.ErrUnavailable) {
		p.logger.Warn("Classification service failed, using local extraction",
			zap.Error(err))
	}

	if localErr != nil {
		return nil, localErr
	}

	return &models.Expense{
		Amount:     local.Amount,
		Category:   local.Category,
		Merchant:   local.Merchant,
		RawInput:   input,
		Confidence: localConfidence,
		Timestamp:  local.Date,
	}, nil
}

// merge combines a service result with the local parse. Returns nil when
// no usable amount exists on either side.
func (p *Processor) merge(input string, svc *classifier.Result, local *parser.ParsedExpense) *models.Expense {
	expense := &models.Expense{
		RawInput:   input,
		Confidence: serviceConfidence,
	}
	if svc.Confidence > 0 {
		expense.Confidence = svc.Confidence
	}

	switch {
	case svc.Amount.IsPositive() && !svc.Amount.GreaterThan(decimalMax):
		expense.Amount = svc.Amount
	case local != nil:
		expense.Amount = local.Amount
	default:
		return nil
	}

	if category, ok := serviceCategories[strings.ToLower(svc.Category)]; ok {
		expense.Category = category
	} else {
		expense.Category = parser.Categorize(input)
	}

	switch {
	case svc.Merchant != "":
		expense.Merchant = svc.Merchant
	case local != nil:
		expense.Merchant = local.Merchant
	default:
		expense.Merchant = "Unknown"
	}

	if local != nil {
		expense.Timestamp = local.Date
	} else {
		expense.Timestamp = p.now()
	}

	return expense
}
