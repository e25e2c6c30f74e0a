package mapping

import (
	"github.com/veloxline/reception_backend/internal/core/domain"
	"github.com/veloxline/reception_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountToken:             d.AccountToken,
		DisplayName:              d.DisplayName,
		ContactPhone:             d.ContactPhone,
		SiteIdentifier:           d.SiteIdentifier,
		ProvisionedNumber:        d.ProvisionedNumber,
		TelephonySubaccountID:    d.TelephonySubaccountID,
		TelephonySubaccountToken: d.TelephonySubaccountToken,
		Status:                   models.AccountStatus(d.Status),
		BillableCallCount:        d.Usage.BillableCallCount,
		BillableCallLimit:        d.Usage.BillableCallLimit,
		SpamCallCount:            d.Usage.SpamCallCount,
		SpamCallLimit:            d.Usage.SpamCallLimit,
		SilentCallCount:          d.Usage.SilentCallCount,
		SilentCallLimit:          d.Usage.SilentCallLimit,
		OperatorTestCallCount:    d.Usage.OperatorTestCallCount,
		OperatorTestCallLimit:    d.Usage.OperatorTestCallLimit,
		TotalCallCount:           d.Usage.TotalCallCount,
		TotalCallLimit:           d.Usage.TotalCallLimit,
		TrainingCount:            d.Usage.TrainingCount,
		TrainingLimit:            d.Usage.TrainingLimit,
		TrainingTokenCount:       d.Usage.TrainingTokenCount,
		TrainingTokenLimit:       d.Usage.TrainingTokenLimit,
		BillingPeriodStart:       d.BillingPeriodStart,
		BillingPeriodEnd:         d.BillingPeriodEnd,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountToken:             m.AccountToken,
		DisplayName:              m.DisplayName,
		ContactPhone:             m.ContactPhone,
		SiteIdentifier:           m.SiteIdentifier,
		ProvisionedNumber:        m.ProvisionedNumber,
		TelephonySubaccountID:    m.TelephonySubaccountID,
		TelephonySubaccountToken: m.TelephonySubaccountToken,
		Status:                   domain.AccountStatus(m.Status),
		Usage: domain.UsageCounters{
			BillableCallCount:     m.BillableCallCount,
			BillableCallLimit:     m.BillableCallLimit,
			SpamCallCount:         m.SpamCallCount,
			SpamCallLimit:         m.SpamCallLimit,
			SilentCallCount:       m.SilentCallCount,
			SilentCallLimit:       m.SilentCallLimit,
			OperatorTestCallCount: m.OperatorTestCallCount,
			OperatorTestCallLimit: m.OperatorTestCallLimit,
			TotalCallCount:        m.TotalCallCount,
			TotalCallLimit:        m.TotalCallLimit,
			TrainingCount:         m.TrainingCount,
			TrainingLimit:         m.TrainingLimit,
			TrainingTokenCount:    m.TrainingTokenCount,
			TrainingTokenLimit:    m.TrainingTokenLimit,
		},
		BillingPeriodStart: m.BillingPeriodStart,
		BillingPeriodEnd:   m.BillingPeriodEnd,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
