package services

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByToken retrieves an account by its bearer token.
	GetAccountByToken(ctx context.Context, accountToken string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
}
