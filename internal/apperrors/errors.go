package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProviderUnavailable indicates that the telephony provider rejected or
// failed a provisioning call.
var ErrProviderUnavailable = errors.New("telephony provider unavailable")

// ErrNoInventory is the sub-case of ErrProviderUnavailable where the provider
// had no purchasable numbers left, even after the nationwide fallback search.
var ErrNoInventory = fmt.Errorf("%w: no phone numbers available", ErrProviderUnavailable)

// ErrPersistence indicates that the account store rejected a write after the
// provider-side steps had already succeeded.
var ErrPersistence = errors.New("persistence error")

// ErrQuotaExceeded indicates a usage counter has reached its paired limit.
var ErrQuotaExceeded = errors.New("usage quota exceeded")

// DuplicateSiteError reports that a site identifier is already bound to an
// account holding a provisioned number. It carries the existing assignment so
// the caller can recover it instead of retrying. It wraps ErrDuplicate.
type DuplicateSiteError struct {
	SiteIdentifier    string
	AccountToken      string
	ProvisionedNumber string
}

func (e *DuplicateSiteError) Error() string {
	return fmt.Sprintf("site %s is already registered", e.SiteIdentifier)
}

func (e *DuplicateSiteError) Unwrap() error {
	return ErrDuplicate
}
