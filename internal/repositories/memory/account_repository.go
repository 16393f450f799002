package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

func (s *Store) FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("account for user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &acc, nil
}
