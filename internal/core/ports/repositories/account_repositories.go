package repositories

import (
	"context"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByUserID retrieves the account owned by userID, or apperrors.ErrNotFound.
	FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
}
