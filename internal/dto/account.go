package dto

import (
	"time"

	"github.com/veloxline/reception_backend/internal/core/domain"
)

// AccountResponse defines the data returned for an account lookup.
// The telephony subaccount secret is never exposed.
type AccountResponse struct {
	AccountToken       string               `json:"account_token"`
	DisplayName        string               `json:"display_name"`
	ContactPhone       string               `json:"contact_phone,omitempty"`
	SiteIdentifier     string               `json:"site_identifier,omitempty"`
	ProvisionedNumber  string               `json:"provisioned_number"`
	SubaccountID       string               `json:"subaccount_id"`
	Status             domain.AccountStatus `json:"status"`
	Usage              domain.UsageCounters `json:"usage"`
	BillingPeriodStart time.Time            `json:"billing_period_start"`
	BillingPeriodEnd   time.Time            `json:"billing_period_end"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountToken:       acc.AccountToken,
		DisplayName:        acc.DisplayName,
		ContactPhone:       acc.ContactPhone,
		SiteIdentifier:     acc.SiteIdentifier,
		ProvisionedNumber:  acc.ProvisionedNumber,
		SubaccountID:       acc.TelephonySubaccountID,
		Status:             acc.Status,
		Usage:              acc.Usage,
		BillingPeriodStart: acc.BillingPeriodStart,
		BillingPeriodEnd:   acc.BillingPeriodEnd,
		CreatedAt:          acc.CreatedAt,
		UpdatedAt:          acc.UpdatedAt,
	}
}
