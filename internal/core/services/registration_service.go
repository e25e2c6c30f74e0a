package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portsprov "github.com/veloxline/reception_backend/internal/core/ports/providers"
	portsrepo "github.com/veloxline/reception_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/dto"
	"github.com/veloxline/reception_backend/internal/utils"
)

// UsageDefaults carries the limit values stamped onto every new account.
// Counts always start at zero.
type UsageDefaults struct {
	BillableCallLimit  int
	FreeCallLimit      int
	TotalCallLimit     int
	TrainingLimit      int
	TrainingTokenLimit int
}

// registrationService implements the RegistrationSvcFacade interface.
//
// The workflow mutates two external systems plus the local store and none of
// them share a transaction, so every failure after the subaccount exists runs
// a compensating close of that subaccount before the error propagates.
type registrationService struct {
	BaseService
	accountRepo     portsrepo.AccountRepository
	telephony       portsprov.TelephonyProvisioner
	defaultLocality string
	usageDefaults   UsageDefaults
	opTimeout       time.Duration
}

// NewRegistrationService creates a new registration service with the provided
// dependencies.
func NewRegistrationService(
	accountRepo portsrepo.AccountRepository,
	telephony portsprov.TelephonyProvisioner,
	defaultLocality string,
	usageDefaults UsageDefaults,
	opTimeout time.Duration,
) portssvc.RegistrationSvcFacade {
	if opTimeout <= 0 {
		opTimeout = 15 * time.Second
	}
	return &registrationService{
		accountRepo:     accountRepo,
		telephony:       telephony,
		defaultLocality: defaultLocality,
		usageDefaults:   usageDefaults,
		opTimeout:       opTimeout,
	}
}

// Ensure registrationService implements the RegistrationSvcFacade interface
var _ portssvc.RegistrationSvcFacade = (*registrationService)(nil)

// RegisterAccount runs the provisioning workflow end to end.
func (s *registrationService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.RegistrationResult, error) {
	// Validation fails fast, before any external call.
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, fmt.Errorf("%w: display_name is required", apperrors.ErrValidation)
	}
	siteIdentifier := strings.TrimSpace(req.SiteIdentifier)
	if siteIdentifier == "" {
		return nil, fmt.Errorf("%w: site_identifier is required", apperrors.ErrValidation)
	}
	if !strings.HasPrefix(siteIdentifier, "http") {
		return nil, fmt.Errorf("%w: site_identifier must be an http(s) URL", apperrors.ErrValidation)
	}

	// Duplicate check before any external mutation.
	existing, err := s.findBySite(ctx, siteIdentifier)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Duplicate check failed", slog.String("site_identifier", siteIdentifier))
		return nil, fmt.Errorf("%w: duplicate check: %v", apperrors.ErrPersistence, err)
	}
	if existing != nil && existing.ProvisionedNumber != "" {
		s.LogInfo(ctx, "Registration conflict, site already provisioned",
			slog.String("site_identifier", siteIdentifier))
		return nil, &apperrors.DuplicateSiteError{
			SiteIdentifier:    siteIdentifier,
			AccountToken:      existing.AccountToken,
			ProvisionedNumber: existing.ProvisionedNumber,
		}
	}

	accountToken := uuid.NewString()

	locality, ok := utils.ExtractLocality(req.ContactPhone)
	if !ok {
		locality = s.defaultLocality
	}

	// First external mutation. Failing here leaves nothing to undo.
	sub, err := s.createSubaccount(ctx, displayName)
	if err != nil {
		s.LogError(ctx, err, "Subaccount creation failed", slog.String("site_identifier", siteIdentifier))
		return nil, err
	}

	logger := s.GetLogger(ctx).With(slog.String("subaccount_id", sub.SID))

	// From here on every failure, classified or not, must release the
	// subaccount before propagating.
	defer func() {
		if r := recover(); r != nil {
			s.compensate(ctx, sub.SID)
			panic(r)
		}
	}()

	number, err := s.provisionNumber(ctx, sub, siteIdentifier, locality)
	if err != nil {
		logger.Error("Number provisioning failed", slog.String("error", err.Error()), slog.String("locality", locality))
		s.compensate(ctx, sub.SID)
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountToken:             accountToken,
		DisplayName:              displayName,
		ContactPhone:             strings.TrimSpace(req.ContactPhone),
		SiteIdentifier:           siteIdentifier,
		ProvisionedNumber:        number.Number,
		TelephonySubaccountID:    sub.SID,
		TelephonySubaccountToken: sub.AuthToken,
		Status:                   domain.StatusActive,
		Usage: domain.UsageCounters{
			BillableCallLimit:     s.usageDefaults.BillableCallLimit,
			SpamCallLimit:         s.usageDefaults.FreeCallLimit,
			SilentCallLimit:       s.usageDefaults.FreeCallLimit,
			OperatorTestCallLimit: s.usageDefaults.FreeCallLimit,
			TotalCallLimit:        s.usageDefaults.TotalCallLimit,
			TrainingLimit:         s.usageDefaults.TrainingLimit,
			TrainingTokenLimit:    s.usageDefaults.TrainingTokenLimit,
		},
		BillingPeriodStart: now,
		BillingPeriodEnd:   now.AddDate(0, 0, domain.BillingPeriodDays),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.saveAccount(ctx, account); err != nil {
		s.compensate(ctx, sub.SID)

		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the write-time race for this site: another registration
			// persisted first. Hand back the winner's assignment.
			winner, lookupErr := s.findBySite(ctx, siteIdentifier)
			if lookupErr == nil && winner != nil {
				logger.Warn("Registration lost site uniqueness race", slog.String("site_identifier", siteIdentifier))
				return nil, &apperrors.DuplicateSiteError{
					SiteIdentifier:    siteIdentifier,
					AccountToken:      winner.AccountToken,
					ProvisionedNumber: winner.ProvisionedNumber,
				}
			}
		}

		logger.Error("Account persistence failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	logger.Info("Account registered",
		slog.String("account_token", accountToken),
		slog.String("provisioned_number", number.Number))

	return &domain.RegistrationResult{
		AccountToken:      accountToken,
		ProvisionedNumber: number.Number,
		SubaccountID:      sub.SID,
	}, nil
}

// compensate is the best-effort undo of the subaccount created earlier in the
// same request. Its outcome is logged and never replaces the original error.
func (s *registrationService) compensate(ctx context.Context, subaccountID string) {
	// The original failure may have cancelled ctx; cleanup still runs.
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opTimeout)
	defer cancel()

	if err := s.telephony.CloseSubaccount(cleanupCtx, subaccountID); err != nil {
		s.LogError(ctx, err, "Compensating subaccount close failed",
			slog.String("subaccount_id", subaccountID))
		return
	}
	s.LogInfo(ctx, "Compensating subaccount close succeeded",
		slog.String("subaccount_id", subaccountID))
}

func (s *registrationService) findBySite(ctx context.Context, siteIdentifier string) (*domain.Account, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.accountRepo.FindAccountBySiteIdentifier(opCtx, siteIdentifier)
}

func (s *registrationService) createSubaccount(ctx context.Context, displayName string) (*domain.Subaccount, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.telephony.CreateSubaccount(opCtx, displayName)
}

func (s *registrationService) provisionNumber(ctx context.Context, sub *domain.Subaccount, siteIdentifier, locality string) (*domain.ProvisionedNumber, error) {
	// Two searches plus a purchase can run back to back.
	opCtx, cancel := context.WithTimeout(ctx, 3*s.opTimeout)
	defer cancel()
	return s.telephony.ProvisionNumber(opCtx, sub, siteIdentifier, locality)
}

func (s *registrationService) saveAccount(ctx context.Context, account domain.Account) error {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.accountRepo.SaveAccount(opCtx, account)
}
