package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/p2p_ledger/internal/models"
	"github.com/SscSPs/p2p_ledger/internal/utils/mapping"
	"github.com/SscSPs/p2p_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, group_id, sender_id, receiver_id, amount, currency_code, description, "timestamp", status, transaction_type`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	results := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.TransactionID,
			&t.GroupID,
			&t.SenderID,
			&t.ReceiverID,
			&t.Amount,
			&t.CurrencyCode,
			&t.Description,
			&t.Timestamp,
			&t.Status,
			&t.TransactionType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

// ListTransactionsByUserID retrieves rows where the user is sender or receiver, newest first,
// using keyset pagination on (timestamp, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// one extra row tells us whether another page exists
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE (sender_id = $1 OR receiver_id = $1)`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		lastTS, lastID, decodeErr := pagination.DecodeTransactionCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, decodeErr))
		}
		query += ` AND ("timestamp", transaction_id) < ($2, $3)`
		args = append(args, lastTS, lastID)
	}
	query += ` ORDER BY "timestamp" DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	// a user ID that is not a UUID cannot appear in any row
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		if isMalformedKey(err) {
			return []domain.Transaction{}, nil, nil
		}
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	txns, err := scanTransactions(rows)
	if err != nil {
		if isMalformedKey(err) {
			return []domain.Transaction{}, nil, nil
		}
		return nil, nil, apperrors.NewAppError(500, "failed to read transactions for user "+userID, err)
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeTransactionCursor(last.Timestamp, last.TransactionID)
		next = &token
	}
	return txns, next, nil
}

// FindTransactionsByUserID returns the user's full history, oldest first.
func (r *PgxTransactionRepository) FindTransactionsByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY "timestamp" ASC, transaction_id ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		if isMalformedKey(err) {
			return []domain.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	txns, err := scanTransactions(rows)
	if isMalformedKey(err) {
		return []domain.Transaction{}, nil
	}
	return txns, err
}
