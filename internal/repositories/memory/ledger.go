package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
)

// ledgerTx stages writes until RunInTx decides to commit them.
type ledgerTx struct {
	store   *Store
	locked  []string
	held    map[string]bool
	created map[string]bool
	staged  map[string]domain.Account
	txns    []domain.Transaction
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

// RunInTx runs fn and applies its staged writes only if fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx := &ledgerTx{
		store:   s,
		held:    make(map[string]bool),
		created: make(map[string]bool),
		staged:  make(map[string]domain.Account),
	}
	defer tx.unlockAll()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

func (t *ledgerTx) LockAccounts(ctx context.Context, userIDs []string) (map[string]domain.Account, error) {
	if t.locked != nil {
		return nil, apperrors.NewAppError(500, "accounts already locked in this unit of work", apperrors.ErrInternal)
	}

	ids := uniqueSorted(userIDs)
	t.locked = ids
	for _, id := range ids {
		t.store.accountLock(id).Lock()
		t.held[id] = true
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	found := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		if acc, ok := t.store.accounts[id]; ok {
			found[id] = acc
		}
	}
	return found, nil
}

func (t *ledgerTx) CreateAccount(ctx context.Context, account domain.Account) error {
	if !t.held[account.UserID] {
		return apperrors.NewAppError(500, "account "+account.UserID+" created without holding its lock", apperrors.ErrInternal)
	}
	if err := account.Validate(); err != nil {
		return err
	}
	t.store.mu.RLock()
	_, exists := t.store.accounts[account.UserID]
	_, ownerExists := t.store.users[account.UserID]
	t.store.mu.RUnlock()
	if !ownerExists {
		return fmt.Errorf("owner %s of new account: %w", account.UserID, apperrors.ErrNotFound)
	}
	if exists || t.created[account.UserID] {
		return fmt.Errorf("%w: account for user %s already exists", apperrors.ErrDuplicate, account.UserID)
	}
	t.created[account.UserID] = true
	t.staged[account.UserID] = account
	return nil
}

func (t *ledgerTx) UpdateAccountBalance(ctx context.Context, account domain.Account) error {
	if !t.held[account.UserID] {
		return apperrors.NewAppError(500, "account "+account.UserID+" updated without holding its lock", apperrors.ErrInternal)
	}
	if err := account.Validate(); err != nil {
		return err
	}
	if _, ok := t.staged[account.UserID]; !ok {
		t.store.mu.RLock()
		_, exists := t.store.accounts[account.UserID]
		t.store.mu.RUnlock()
		if !exists {
			return fmt.Errorf("account for user %s: %w", account.UserID, apperrors.ErrNotFound)
		}
	}
	t.staged[account.UserID] = account
	return nil
}

func (t *ledgerTx) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	for _, txn := range txns {
		if err := txn.Validate(); err != nil {
			return err
		}
	}
	t.txns = append(t.txns, txns...)
	return nil
}

func (t *ledgerTx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id := range t.created {
		if _, exists := t.store.accounts[id]; exists {
			return fmt.Errorf("%w: account for user %s already exists", apperrors.ErrDuplicate, id)
		}
	}
	for id, acc := range t.staged {
		t.store.accounts[id] = acc
	}
	t.store.transactions = append(t.store.transactions, t.txns...)
	return nil
}

func (t *ledgerTx) unlockAll() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		if t.held[t.locked[i]] {
			t.store.accountLock(t.locked[i]).Unlock()
		}
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
