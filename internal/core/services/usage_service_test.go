package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	"github.com/veloxline/reception_backend/internal/core/services"
)

func accountWithTraining(count, limit int) *domain.Account {
	return &domain.Account{
		AccountToken: "acct-1",
		Usage: domain.UsageCounters{
			TrainingCount: count,
			TrainingLimit: limit,
		},
	}
}

func TestEnsureWithinLimit(t *testing.T) {
	svc := services.NewUsageService(new(MockAccountRepository))

	t.Run("below limit passes", func(t *testing.T) {
		err := svc.EnsureWithinLimit(accountWithTraining(199, 200), domain.CounterTraining)
		assert.NoError(t, err)
	})

	t.Run("at limit is rejected", func(t *testing.T) {
		err := svc.EnsureWithinLimit(accountWithTraining(200, 200), domain.CounterTraining)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("above limit is rejected", func(t *testing.T) {
		err := svc.EnsureWithinLimit(accountWithTraining(201, 200), domain.CounterTraining)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("zero limit blocks", func(t *testing.T) {
		err := svc.EnsureWithinLimit(accountWithTraining(0, 0), domain.CounterTraining)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("unknown counter", func(t *testing.T) {
		err := svc.EnsureWithinLimit(accountWithTraining(0, 200), domain.UsageCounter("bogus"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestRecord(t *testing.T) {
	t.Run("delegates with delta one", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTotalCalls, 1).
			Return(nil).Once()

		svc := services.NewUsageService(repo)
		err := svc.Record(context.Background(), "acct-1", domain.CounterTotalCalls)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTrainingTokens, 1234).
			Return(apperrors.ErrNotFound).Once()

		svc := services.NewUsageService(repo)
		err := svc.RecordN(context.Background(), "acct-1", domain.CounterTrainingTokens, 1234)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		repo.AssertExpectations(t)
	})
}
