// Package classifier defines the optional external classification
// capability consulted ahead of the local parsing engine. The service is
// best-effort: any failure is recovered by falling back to local
// extraction, never surfaced to the end user.
package classifier

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnavailable means no classification service is configured.
var ErrUnavailable = errors.New("classification service unavailable")

// Result carries the fields the service managed to extract. Zero values
// mean the service omitted the field and the caller should use its own
// extraction.
type Result struct {
	Amount     decimal.Decimal
	Category   string
	Merchant   string
	Confidence float64
}

// Classifier is the capability interface for the external service.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Result, error)
}

// Disabled is the no-op implementation selected when no provider is
// configured; it keeps the deterministic fallback path testable without
// network access.
type Disabled struct{}

// Classify always reports the service as unavailable.
func (Disabled) Classify(context.Context, string) (*Result, error) {
	return nil, ErrUnavailable
}
