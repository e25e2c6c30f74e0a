package models

import "time"

// AccountStatus mirrors the domain lifecycle states as stored.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusCancelled AccountStatus = "cancelled"
)

// Account represents one customer row in the accounts table.
// ContactPhone and SiteIdentifier are nullable; SiteIdentifier carries a
// partial unique index when present.
type Account struct {
	AccountToken             string        `db:"account_token"`
	DisplayName              string        `db:"display_name"`
	ContactPhone             string        `db:"contact_phone"`   // Nullable
	SiteIdentifier           string        `db:"site_identifier"` // Nullable, unique when set
	ProvisionedNumber        string        `db:"provisioned_number"`
	TelephonySubaccountID    string        `db:"telephony_subaccount_id"`
	TelephonySubaccountToken string        `db:"telephony_subaccount_secret"`
	Status                   AccountStatus `db:"status"`
	BillableCallCount        int           `db:"billable_call_count"`
	BillableCallLimit        int           `db:"billable_call_limit"`
	SpamCallCount            int           `db:"spam_call_count"`
	SpamCallLimit            int           `db:"spam_call_limit"`
	SilentCallCount          int           `db:"silent_call_count"`
	SilentCallLimit          int           `db:"silent_call_limit"`
	OperatorTestCallCount    int           `db:"operator_test_call_count"`
	OperatorTestCallLimit    int           `db:"operator_test_call_limit"`
	TotalCallCount           int           `db:"total_call_count"`
	TotalCallLimit           int           `db:"total_call_limit"`
	TrainingCount            int           `db:"training_count"`
	TrainingLimit            int           `db:"training_limit"`
	TrainingTokenCount       int           `db:"training_token_count"`
	TrainingTokenLimit       int           `db:"training_token_limit"`
	BillingPeriodStart       time.Time     `db:"billing_period_start"`
	BillingPeriodEnd         time.Time     `db:"billing_period_end"`
	AuditFields
}
