package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/p2p_ledger/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerStore runs money movements inside one database transaction.
type PgxLedgerStore struct {
	BaseRepository
}

func newPgxLedgerStore(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxLedgerStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxLedgerStore)(nil)

// RunInTx commits when fn returns nil and rolls back otherwise.
func (s *PgxLedgerStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Rollback(ctx, tx) }()

	if err := fn(ctx, &pgLedgerTx{tx: tx, held: make(map[string]bool)}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

type pgLedgerTx struct {
	tx     pgx.Tx
	locked bool
	held   map[string]bool
}

var _ portsrepo.LedgerTx = (*pgLedgerTx)(nil)

// LockAccounts takes a transaction-scoped advisory lock per user ID in ascending order,
// then reads whichever accounts exist with FOR UPDATE. The advisory lock also covers
// IDs that have no account row yet, so two transfers racing to open the same account
// serialise instead of colliding.
func (t *pgLedgerTx) LockAccounts(ctx context.Context, userIDs []string) (map[string]domain.Account, error) {
	if t.locked {
		return nil, apperrors.NewAppError(500, "accounts already locked in this unit of work", apperrors.ErrInternal)
	}
	t.locked = true

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != "" && !t.held[id] {
			t.held[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, id); err != nil {
			return nil, fmt.Errorf("failed to lock account %s: %w", id, err)
		}
	}

	// an ID that is not a UUID owns no account; leave it out so it reads as missing
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if uuid.Validate(id) == nil {
			keys = append(keys, id)
		}
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = ANY($1) ORDER BY user_id FOR UPDATE;`
	rows, err := t.tx.Query(ctx, query, keys)
	if err != nil {
		if isMalformedKey(err) {
			return nil, fmt.Errorf("account owner: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query accounts for update: %w", err)
	}
	defer rows.Close()

	found := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		found[acc.UserID] = acc
	}
	if err := rows.Err(); err != nil {
		if isMalformedKey(err) {
			return nil, fmt.Errorf("account owner: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}
	return found, nil
}

func (t *pgLedgerTx) CreateAccount(ctx context.Context, account domain.Account) error {
	if !t.held[account.UserID] {
		return apperrors.NewAppError(500, "account "+account.UserID+" created without holding its lock", apperrors.ErrInternal)
	}
	if err := account.Validate(); err != nil {
		return err
	}
	m := mapping.ToModelAccount(account)
	_, err := t.tx.Exec(ctx,
		`INSERT INTO accounts (user_id, balance, currency_code, updated_at) VALUES ($1, $2, $3, $4);`,
		m.UserID, m.Balance, m.CurrencyCode, m.UpdatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation, pgInvalidTextRep:
			return fmt.Errorf("owner %s of new account: %w", account.UserID, apperrors.ErrNotFound)
		case pgUniqueViolation:
			return fmt.Errorf("%w: account for user %s already exists", apperrors.ErrDuplicate, account.UserID)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (t *pgLedgerTx) UpdateAccountBalance(ctx context.Context, account domain.Account) error {
	if !t.held[account.UserID] {
		return apperrors.NewAppError(500, "account "+account.UserID+" updated without holding its lock", apperrors.ErrInternal)
	}
	if err := account.Validate(); err != nil {
		return err
	}
	m := mapping.ToModelAccount(account)
	cmdTag, err := t.tx.Exec(ctx,
		`UPDATE accounts SET balance = $1, updated_at = $2 WHERE user_id = $3;`,
		m.Balance, m.UpdatedAt, m.UserID)
	if err != nil {
		if isMalformedKey(err) {
			return fmt.Errorf("account for user %s: %w", account.UserID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to update balance for account %s: %w", account.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account for user %s: %w", account.UserID, apperrors.ErrNotFound)
	}
	return nil
}

// InsertTransactions appends all legs in one batch.
func (t *pgLedgerTx) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	query := `
		INSERT INTO transactions (transaction_id, group_id, sender_id, receiver_id, amount, currency_code, description, "timestamp", status, transaction_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, txn := range txns {
		if err := txn.Validate(); err != nil {
			return err
		}
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query, m.TransactionID, m.GroupID, m.SenderID, m.ReceiverID, m.Amount,
			m.CurrencyCode, m.Description, m.Timestamp, m.Status, m.TransactionType)
	}

	br := t.tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert transaction %s: %w", txns[i].TransactionID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close transaction insert batch: %w", err)
	}
	return batchErr
}
