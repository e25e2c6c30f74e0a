package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portsrepo "github.com/veloxline/reception_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
)

// usageService implements the UsageSvcFacade interface
type usageService struct {
	BaseService
	accountRepo portsrepo.AccountWriter
}

// NewUsageService creates a new usage service with the provided dependencies
func NewUsageService(accountRepo portsrepo.AccountWriter) portssvc.UsageSvcFacade {
	return &usageService{accountRepo: accountRepo}
}

// Ensure usageService implements the UsageSvcFacade interface
var _ portssvc.UsageSvcFacade = (*usageService)(nil)

// EnsureWithinLimit checks that the counter has headroom before a
// quota-consuming action. A limit of zero blocks the action outright.
func (s *usageService) EnsureWithinLimit(account *domain.Account, counter domain.UsageCounter) error {
	count, limit, ok := account.Usage.CountFor(counter)
	if !ok {
		return fmt.Errorf("%w: unknown usage counter %q", apperrors.ErrValidation, counter)
	}
	if count >= limit {
		return fmt.Errorf("%w: %s at %d/%d", apperrors.ErrQuotaExceeded, counter, count, limit)
	}
	return nil
}

// Record atomically increments the named counter by one.
func (s *usageService) Record(ctx context.Context, accountToken string, counter domain.UsageCounter) error {
	return s.RecordN(ctx, accountToken, counter, 1)
}

// RecordN atomically increments the named counter by delta.
func (s *usageService) RecordN(ctx context.Context, accountToken string, counter domain.UsageCounter, delta int) error {
	if err := s.accountRepo.IncrementCounter(ctx, accountToken, counter, delta); err != nil {
		s.LogError(ctx, err, "Failed to record usage",
			slog.String("counter", string(counter)),
			slog.Int("delta", delta))
		return err
	}

	s.LogDebug(ctx, "Usage recorded",
		slog.String("counter", string(counter)),
		slog.Int("delta", delta))
	return nil
}
