package repositories

import (
	"context"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

// TransactionReader defines read operations for ledger rows
type TransactionReader interface {
	// ListTransactionsByUserID retrieves a page of rows where userID is sender or receiver,
	// newest first, using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsByUserID retrieves every row involving userID.
	FindTransactionsByUserID(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
}
