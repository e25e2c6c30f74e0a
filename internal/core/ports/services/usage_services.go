package services

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
)

// UsageSvcFacade enforces the counter <= limit invariant and records usage.
type UsageSvcFacade interface {
	// EnsureWithinLimit returns apperrors.ErrQuotaExceeded when the named
	// counter has reached its paired limit on the given account.
	EnsureWithinLimit(account *domain.Account, counter domain.UsageCounter) error

	// Record atomically increments the named counter by one.
	Record(ctx context.Context, accountToken string, counter domain.UsageCounter) error

	// RecordN atomically increments the named counter by delta, used for
	// token-denominated counters.
	RecordN(ctx context.Context, accountToken string, counter domain.UsageCounter, delta int) error
}
