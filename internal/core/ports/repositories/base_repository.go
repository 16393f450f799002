package repositories

import (
	"context"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

// LedgerTx is the set of writes a money movement may perform inside one atomic unit.
// Nothing written through it is visible to other callers until the unit commits.
type LedgerTx interface {
	// LockAccounts acquires exclusive locks for the given owners in ascending user ID order
	// and returns the accounts that exist, keyed by user ID. Owners without an account are
	// still locked so a lazily created account cannot race. Call it once per unit.
	LockAccounts(ctx context.Context, userIDs []string) (map[string]domain.Account, error)

	// CreateAccount persists a new account for an owner locked in this unit.
	CreateAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountBalance stores the new balance of a locked account.
	UpdateAccountBalance(ctx context.Context, account domain.Account) error

	// InsertTransactions appends ledger rows.
	InsertTransactions(ctx context.Context, txns []domain.Transaction) error
}

// UnitOfWork runs fn atomically. If fn returns an error every write made through the
// LedgerTx is discarded and the error is returned unchanged; otherwise all writes commit together.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
