package providers

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
)

// TelephonyProvisioner wraps the external telephony API. One process-wide
// instance serves many concurrent callers; every call is stateless with
// respect to the shared instance.
type TelephonyProvisioner interface {
	// CreateSubaccount creates an isolated provider-side scope for one
	// customer, named after the customer's display name.
	CreateSubaccount(ctx context.Context, friendlyName string) (*domain.Subaccount, error)

	// ProvisionNumber searches the provider's inventory for a local number in
	// the target locality (nationwide when the locality yields nothing) and
	// purchases the first match under the given subaccount. The site
	// identifier is used to build provider-side callback URLs. Exhausted
	// inventory surfaces as apperrors.ErrNoInventory; any other failure as
	// apperrors.ErrProviderUnavailable.
	ProvisionNumber(ctx context.Context, sub *domain.Subaccount, siteIdentifier, locality string) (*domain.ProvisionedNumber, error)

	// CloseSubaccount deactivates a subaccount. Used as the compensating step
	// when a later registration stage fails; callers log the returned error
	// but never propagate it over the original failure.
	CloseSubaccount(ctx context.Context, subaccountID string) error
}
