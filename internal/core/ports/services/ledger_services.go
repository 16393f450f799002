package services

import (
	"context"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyMovementSvc defines the balance-changing operations.
// Each call is a single atomic unit: it either commits fully or leaves no trace.
type MoneyMovementSvc interface {
	// Deposit credits the user's account, creating it in the preferred currency if needed.
	Deposit(ctx context.Context, userID string, amount decimal.Decimal, sourceLabel string) (*domain.Receipt, error)

	// Withdraw debits the user's existing account.
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal, destinationLabel string) (*domain.Receipt, error)

	// Transfer moves amount, in the sender's currency, to the recipient identified by selector.
	Transfer(ctx context.Context, senderID string, selector domain.RecipientSelector, amount decimal.Decimal, description string) (*domain.TransferReceipt, error)
}

// LedgerReaderSvc defines the read-only views over accounts and their history.
type LedgerReaderSvc interface {
	// GetDisplayBalance returns the user's balance converted to displayCurrency and formatted.
	// An empty displayCurrency renders the balance in the account's own currency.
	GetDisplayBalance(ctx context.Context, userID string, displayCurrency string) (string, error)

	// GetAccountSummary returns balance, income and expenses formatted in displayCurrency.
	GetAccountSummary(ctx context.Context, userID string, displayCurrency string) (*domain.AccountSummary, error)

	// ListTransactions returns a page of the user's transaction history, newest first.
	ListTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionView, *string, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	MoneyMovementSvc
	LedgerReaderSvc
}
