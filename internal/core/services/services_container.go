package services

import (
	portsprov "github.com/veloxline/reception_backend/internal/core/ports/providers"
	portsrepo "github.com/veloxline/reception_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	accountRepo portsrepo.AccountRepository,
	telephony portsprov.TelephonyProvisioner,
	responder portsprov.TextResponder,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(accountRepo)
	container.Usage = NewUsageService(accountRepo)

	container.Registration = NewRegistrationService(
		accountRepo,
		telephony,
		cfg.DefaultLocality,
		UsageDefaults{
			BillableCallLimit:  cfg.BillableCallLimit,
			FreeCallLimit:      cfg.FreeCallLimit,
			TotalCallLimit:     cfg.TotalCallLimit,
			TrainingLimit:      cfg.TrainingLimit,
			TrainingTokenLimit: cfg.TrainingTokenLimit,
		},
		cfg.TelephonyTimeout,
	)

	container.Chat = NewChatService(responder, container.Usage, cfg.DefaultChatModel)

	return container
}
