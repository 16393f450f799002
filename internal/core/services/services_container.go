package services

import (
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The converter is shared so balances and transfers use the same rate table
	container.Currency = NewConversionService()
	container.Ledger = NewLedgerService(repos, WithConverter(container.Currency))
	container.User = NewUserService(repos.UserRepo,
		WithJWTConfig(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade = (*conversionService)(nil)
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.UserSvcFacade     = (*userService)(nil)
)
