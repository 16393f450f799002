package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/SscSPs/p2p_ledger/internal/utils/pagination"
)

// ListTransactionsByUserID pages through rows newest first, ordered by (timestamp, transaction ID) descending.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.FindTransactionsByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return after(rows[i], rows[j])
	})

	if nextToken != nil && *nextToken != "" {
		lastTS, lastID, decodeErr := pagination.DecodeTransactionCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, decodeErr))
		}
		cursor := domain.Transaction{Timestamp: lastTS, TransactionID: lastID}
		start := sort.Search(len(rows), func(i int) bool {
			return after(cursor, rows[i])
		})
		rows = rows[start:]
	}

	var next *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		token := pagination.EncodeTransactionCursor(last.Timestamp, last.TransactionID)
		next = &token
	}
	return rows, next, nil
}

func (s *Store) FindTransactionsByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.Involves(userID) {
			out = append(out, txn)
		}
	}
	return out, nil
}

// after reports whether a sorts strictly before b in newest-first order.
func after(a, b domain.Transaction) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.TransactionID > b.TransactionID
}
