package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/p2p_ledger/internal/models"
	"github.com/SscSPs/p2p_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, email, phone, first_name, last_name, password_hash, preferred_currency, created_at, last_login`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1;`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.Phone,
		&m.FirstName,
		&m.LastName,
		&m.PasswordHash,
		&m.PreferredCurrency,
		&m.CreatedAt,
		&m.LastLogin,
	)
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `username = $1`, username)
}

// FindUserByEmailOrPhone looks up by email when one is given and falls back to phone.
func (r *PgxUserRepository) FindUserByEmailOrPhone(ctx context.Context, selector domain.RecipientSelector) (*domain.User, error) {
	selector = selector.Normalize()
	if selector.Email != "" {
		user, err := r.findOne(ctx, `email = $1`, selector.Email)
		if err == nil || !errors.Is(err, apperrors.ErrNotFound) || selector.Phone == "" {
			return user, err
		}
	}
	if selector.Phone != "" {
		return r.findOne(ctx, `phone = $1`, selector.Phone)
	}
	return nil, apperrors.ErrNotFound
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, username, email, phone, first_name, last_name, password_hash, preferred_currency, created_at, last_login)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.Phone,
		m.FirstName,
		m.LastName,
		m.PasswordHash,
		m.PreferredCurrency,
		m.CreatedAt,
		m.LastLogin,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: username, email or phone already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET email = $1, phone = $2, first_name = $3, last_name = $4, preferred_currency = $5
        WHERE user_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, m.Email, m.Phone, m.FirstName, m.LastName, m.PreferredCurrency, m.UserID)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: email or phone already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE users SET last_login = $1 WHERE user_id = $2;`, at, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteUser removes the user row; the account row goes with it through ON DELETE CASCADE.
// Ledger rows reference users by value and are kept. The row lock taken by the delete
// waits for any in-flight money movement holding the account.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, userID); err != nil {
		return fmt.Errorf("failed to lock user %s for deletion: %w", userID, err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}
