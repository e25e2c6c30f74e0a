package services

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
	"github.com/veloxline/reception_backend/internal/dto"
)

// RegistrationSvcFacade runs the account-provisioning workflow: duplicate
// check, subaccount creation, number provisioning and persistence, with a
// compensating rollback of the subaccount when a later step fails.
type RegistrationSvcFacade interface {
	// RegisterAccount creates a new customer account end to end. Failures map
	// to the apperrors taxonomy: ErrValidation (no side effects),
	// *DuplicateSiteError (no new side effects), ErrProviderUnavailable /
	// ErrNoInventory, ErrPersistence. Any failure after the subaccount exists
	// triggers a best-effort close before the error is returned.
	RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.RegistrationResult, error)
}
