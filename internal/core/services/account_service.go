package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portsrepo "github.com/veloxline/reception_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(accountRepo portsrepo.AccountReader) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByToken retrieves an account by its bearer token.
func (s *accountService) GetAccountByToken(ctx context.Context, accountToken string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByToken(ctx, accountToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by token")
		}
		return nil, err
	}

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.String("account_token", account.AccountToken))
	return account, nil
}
