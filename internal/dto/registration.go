package dto

import (
	"github.com/veloxline/reception_backend/internal/core/domain"
)

// RegisterAccountRequest defines the data needed to register a new customer.
// SiteIdentifier is the uniqueness key and must carry an http(s) scheme;
// ContactPhone is free-form and only used as a locality hint.
type RegisterAccountRequest struct {
	DisplayName    string `json:"display_name" binding:"required"`
	ContactPhone   string `json:"contact_phone"`
	SiteIdentifier string `json:"site_identifier" binding:"required,siteident"`
}

// RegisterAccountResponse is the 201 payload for a successful registration.
type RegisterAccountResponse struct {
	Success           bool   `json:"success"`
	AccountToken      string `json:"account_token"`
	ProvisionedNumber string `json:"provisioned_number"`
	SubaccountID      string `json:"subaccount_id"`
	Message           string `json:"message"`
}

// RegistrationConflictResponse is the 409 payload when the site identifier is
// already bound to an account. It hands back the existing assignment so the
// caller can recover it without re-registering.
type RegistrationConflictResponse struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	AccountToken      string `json:"account_token"`
	ProvisionedNumber string `json:"provisioned_number"`
	Message           string `json:"message"`
}

// ErrorResponse is the generic failure payload. Details carries raw provider
// or store error text and is only populated outside production.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ToRegisterAccountResponse converts a domain.RegistrationResult to its DTO.
func ToRegisterAccountResponse(r *domain.RegistrationResult) RegisterAccountResponse {
	return RegisterAccountResponse{
		Success:           true,
		AccountToken:      r.AccountToken,
		ProvisionedNumber: r.ProvisionedNumber,
		SubaccountID:      r.SubaccountID,
		Message:           "account registered and number provisioned",
	}
}
