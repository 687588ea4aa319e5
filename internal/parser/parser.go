// Package parser converts informal free-text expense descriptions such as
// "Coffee $5.50 at Starbucks" or "20 at HNM at 10:30" into structured
// expense records. The same engine handles typed text, transcribed speech,
// and text extracted from uploaded receipts.
package parser

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyInput is returned for blank or whitespace-only input.
	ErrEmptyInput = errors.New("input is empty")

	// ErrNoAmount is returned when no numeric token is found, or the
	// first one is outside the accepted (0, 10000] range.
	ErrNoAmount = errors.New("no valid amount found")
)

// ParsedExpense is the structured result of a single parse call.
type ParsedExpense struct {
	Amount   decimal.Decimal
	Merchant string
	Category string
	Date     time.Time
}

// maxAmount bounds accepted amounts; anything above is treated as noise
// (phone numbers, account numbers) rather than a spend.
var maxAmount = decimal.NewFromInt(10000)

var (
	amountPattern = regexp.MustCompile(`\d+\.?\d*`)
	timePattern   = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)
	fillerWords   = regexp.MustCompile(`(?i)dollars?|bucks?`)
	leadingAt     = regexp.MustCompile(`(?i)^\s*at\s+`)
	trailingAt    = regexp.MustCompile(`(?i)\s+at\s*$`)
)

// Parser is the free-text expense parsing engine. It holds no state
// between calls; the injectable clock is the one impurity, kept
// replaceable so results are deterministic under test.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock overrides the wall-clock reference used for timestamps and
// AM/PM disambiguation.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a parser backed by the system clock unless overridden.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// tokens is the output of the tokenizer stage.
type tokens struct {
	amount     decimal.Decimal
	amountSpan string
	timeSpan   string
}

// Parse converts one free-text entry into a ParsedExpense. It fails only
// on empty input or a missing/out-of-bounds amount; every later stage
// has a guaranteed fallback (merchant "Unknown", category "Other",
// current time).
func (p *Parser) Parse(input string) (*ParsedExpense, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	tok, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	residual := residualText(input, tok)

	return &ParsedExpense{
		Amount:   tok.amount,
		Merchant: resolveMerchant(residual, input),
		Category: Categorize(input),
		Date:     resolveTimestamp(p.now(), tok.timeSpan),
	}, nil
}

// tokenize locates the amount and, when present, an explicit time-of-day
// token. The first numeric substring is always taken as the amount.
func tokenize(input string) (tokens, error) {
	span := amountPattern.FindString(input)
	if span == "" {
		return tokens{}, ErrNoAmount
	}

	amount, err := decimal.NewFromString(strings.TrimSuffix(span, "."))
	if err != nil {
		return tokens{}, ErrNoAmount
	}
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return tokens{}, ErrNoAmount
	}

	return tokens{
		amount:     amount,
		amountSpan: span,
		timeSpan:   timePattern.FindString(input),
	}, nil
}

// residualText strips the matched amount and time spans plus filler
// words from the input. The leftover string is what the merchant
// resolver works on. Only the first occurrence of each span is removed,
// so an amount that happens to sit inside the time token does not eat
// unrelated digits elsewhere.
func residualText(input string, tok tokens) string {
	s := strings.Replace(input, tok.amountSpan, "", 1)
	if tok.timeSpan != "" {
		s = strings.Replace(s, tok.timeSpan, "", 1)
	}
	s = fillerWords.ReplaceAllString(s, "")
	s = leadingAt.ReplaceAllString(s, "")
	s = trailingAt.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
