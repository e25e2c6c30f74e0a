package domain

import "time"

// AccountStatus defines the lifecycle state of a customer account.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusCancelled AccountStatus = "cancelled"
)

// BillingPeriodDays is the fixed length of the billing window opened at
// registration time. Renewal is handled out of band.
const BillingPeriodDays = 30

// Account represents one customer/tenant within the core domain.
// This is the primary representation used by services; the account token is
// both the primary key and the caller's bearer credential.
type Account struct {
	AccountToken             string        `json:"accountToken"`
	DisplayName              string        `json:"displayName"`
	ContactPhone             string        `json:"contactPhone"`   // free-form, only a locality hint
	SiteIdentifier           string        `json:"siteIdentifier"` // unique across accounts when set
	ProvisionedNumber        string        `json:"provisionedNumber"`
	TelephonySubaccountID    string        `json:"telephonySubaccountID"`
	TelephonySubaccountToken string        `json:"-"` // never serialized outward
	Status                   AccountStatus `json:"status"`
	Usage                    UsageCounters `json:"usage"`
	BillingPeriodStart       time.Time     `json:"billingPeriodStart"`
	BillingPeriodEnd         time.Time     `json:"billingPeriodEnd"`
	AuditFields
}

// UsageCounter names one quota-consuming counter on an account.
type UsageCounter string

const (
	CounterBillableCalls     UsageCounter = "billable_call_count"
	CounterSpamCalls         UsageCounter = "spam_call_count"
	CounterSilentCalls       UsageCounter = "silent_call_count"
	CounterOperatorTestCalls UsageCounter = "operator_test_call_count"
	CounterTotalCalls        UsageCounter = "total_call_count"
	CounterTraining          UsageCounter = "training_count"
	CounterTrainingTokens    UsageCounter = "training_token_count"
)

// UsageCounters holds the per-account usage counters and their paired limits.
// Every count starts at zero; count <= limit is enforced by the usage service
// before any quota-consuming action.
type UsageCounters struct {
	BillableCallCount     int `json:"billableCallCount"`
	BillableCallLimit     int `json:"billableCallLimit"`
	SpamCallCount         int `json:"spamCallCount"`
	SpamCallLimit         int `json:"spamCallLimit"`
	SilentCallCount       int `json:"silentCallCount"`
	SilentCallLimit       int `json:"silentCallLimit"`
	OperatorTestCallCount int `json:"operatorTestCallCount"`
	OperatorTestCallLimit int `json:"operatorTestCallLimit"`
	TotalCallCount        int `json:"totalCallCount"`
	TotalCallLimit        int `json:"totalCallLimit"`
	TrainingCount         int `json:"trainingCount"`
	TrainingLimit         int `json:"trainingLimit"`
	TrainingTokenCount    int `json:"trainingTokenCount"`
	TrainingTokenLimit    int `json:"trainingTokenLimit"`
}

// CountFor returns the current count and paired limit for the named counter.
func (u UsageCounters) CountFor(counter UsageCounter) (count, limit int, ok bool) {
	switch counter {
	case CounterBillableCalls:
		return u.BillableCallCount, u.BillableCallLimit, true
	case CounterSpamCalls:
		return u.SpamCallCount, u.SpamCallLimit, true
	case CounterSilentCalls:
		return u.SilentCallCount, u.SilentCallLimit, true
	case CounterOperatorTestCalls:
		return u.OperatorTestCallCount, u.OperatorTestCallLimit, true
	case CounterTotalCalls:
		return u.TotalCallCount, u.TotalCallLimit, true
	case CounterTraining:
		return u.TrainingCount, u.TrainingLimit, true
	case CounterTrainingTokens:
		return u.TrainingTokenCount, u.TrainingTokenLimit, true
	}
	return 0, 0, false
}
