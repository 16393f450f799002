package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
}

// FindUserByEmailOrPhone prefers an email match over a phone match.
func (s *Store) FindUserByEmailOrPhone(ctx context.Context, selector domain.RecipientSelector) (*domain.User, error) {
	sel := selector.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sel.Email != "" {
		for _, u := range s.users {
			if u.Email == sel.Email {
				return &u, nil
			}
		}
	}
	if sel.Phone != "" {
		for _, u := range s.users {
			if u.Phone == sel.Phone {
				return &u, nil
			}
		}
	}
	return nil, fmt.Errorf("user by email or phone: %w", apperrors.ErrNotFound)
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: user with ID %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	if err := s.checkUniqueLocked(user); err != nil {
		return err
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.UserID]; !exists {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	if err := s.checkUniqueLocked(user); err != nil {
		return err
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[userID]
	if !exists {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	u.LastLogin = &at
	s.users[userID] = u
	return nil
}

// DeleteUser waits for any in-flight money movement on the user's account before removing it.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	lock := s.accountLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[userID]; !exists {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	delete(s.users, userID)
	delete(s.accounts, userID)
	return nil
}

func (s *Store) checkUniqueLocked(user domain.User) error {
	for id, other := range s.users {
		if id == user.UserID {
			continue
		}
		switch {
		case other.Username == user.Username:
			return fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, user.Username)
		case other.Email == user.Email:
			return fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)
		case user.Phone != "" && other.Phone == user.Phone:
			return fmt.Errorf("%w: phone is already registered", apperrors.ErrDuplicate)
		}
	}
	return nil
}
