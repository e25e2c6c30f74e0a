package repositories

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
)

// AccountReader defines read operations on the account store.
type AccountReader interface {
	// FindAccountByToken returns the account for the given bearer token, or
	// apperrors.ErrNotFound.
	FindAccountByToken(ctx context.Context, accountToken string) (*domain.Account, error)
	// FindAccountBySiteIdentifier returns the account registered for the given
	// site, or apperrors.ErrNotFound.
	FindAccountBySiteIdentifier(ctx context.Context, siteIdentifier string) (*domain.Account, error)
}

// AccountWriter defines write operations on the account store.
type AccountWriter interface {
	// SaveAccount inserts a new account record. A unique violation (token or
	// site identifier) surfaces as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
	// IncrementCounter atomically adds delta to one usage counter and
	// refreshes updated_at.
	IncrementCounter(ctx context.Context, accountToken string, counter domain.UsageCounter, delta int) error
}

// AccountRepository combines all account store operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
