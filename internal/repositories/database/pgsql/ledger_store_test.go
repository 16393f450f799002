package pgsql_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/p2p_ledger/internal/core/services"
	"github.com/SscSPs/p2p_ledger/internal/repositories/database/pgsql"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDB migrates a scratch database named by PGSQL_TEST_URL and truncates it.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set; skipping PostgreSQL tests")
	}

	migrationDB, err := sql.Open("pgx", url)
	require.NoError(t, err)
	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	_, _ = m.Close()

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE transactions, accounts, users;`)
	require.NoError(t, err)
	return pool
}

func saveUser(t *testing.T, repos portsrepo.RepositoryProvider, username, phone string, currency domain.CurrencyCode) domain.User {
	t.Helper()
	user, err := domain.NewUser(domain.NewUserParams{
		UserID:            uuid.NewString(),
		Username:          username,
		Email:             username + "@example.com",
		Phone:             phone,
		PasswordHash:      "hash",
		PreferredCurrency: currency.String(),
		CreatedAt:         time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, repos.UserRepo.SaveUser(context.Background(), user))
	return user
}

func TestPgxUserRepository(t *testing.T) {
	repos := pgsql.NewRepositoryProvider(setupDB(t))
	ctx := context.Background()

	alice := saveUser(t, repos, "alice", "+15551234567", domain.EUR)

	byPhone, err := repos.UserRepo.FindUserByEmailOrPhone(ctx, domain.RecipientSelector{Phone: "+15551234567"})
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, byPhone.UserID)
	assert.Equal(t, domain.EUR, byPhone.PreferredCurrency)

	byEmail, err := repos.UserRepo.FindUserByEmailOrPhone(ctx, domain.RecipientSelector{Email: "ALICE@example.com"})
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, byEmail.UserID)

	dup := alice
	dup.UserID = uuid.NewString()
	dup.Username = "alice2"
	assert.ErrorIs(t, repos.UserRepo.SaveUser(ctx, dup), apperrors.ErrDuplicate)

	_, err = repos.UserRepo.FindUserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repos.UserRepo.DeleteUser(ctx, alice.UserID))
	_, err = repos.UserRepo.FindUserByID(ctx, alice.UserID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPgxLedgerStore_TransfersAndHistory(t *testing.T) {
	repos := pgsql.NewRepositoryProvider(setupDB(t))
	ledger := services.NewLedgerService(repos)
	ctx := context.Background()

	sender := saveUser(t, repos, "sender", "", domain.USD)
	recipient := saveUser(t, repos, "recipient", "", domain.EUR)

	_, err := ledger.Deposit(ctx, sender.UserID, decimal.RequireFromString("1000.00"), "card")
	require.NoError(t, err)

	receipt, err := ledger.Transfer(ctx, sender.UserID, domain.RecipientSelector{Email: "recipient@example.com"}, decimal.RequireFromString("100.00"), "rent")
	require.NoError(t, err)
	assert.Len(t, receipt.TransactionIDs, 2)

	acc, err := repos.AccountRepo.FindAccountByUserID(ctx, recipient.UserID)
	require.NoError(t, err)
	assert.Equal(t, "91.00", acc.Balance.StringFixed(2))
	assert.Equal(t, domain.EUR, acc.Currency)

	_, err = ledger.Transfer(ctx, sender.UserID, domain.RecipientSelector{Email: "recipient@example.com"}, decimal.RequireFromString("5000.00"), "")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	page, next, err := repos.TransactionRepo.ListTransactionsByUserID(ctx, sender.UserID, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	rest, next, err := repos.TransactionRepo.ListTransactionsByUserID(ctx, sender.UserID, 2, next)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
	assert.Nil(t, next)
	assert.Equal(t, domain.TypeDeposit, rest[0].TransactionType)

	// deleting the recipient keeps the sender's history intact
	require.NoError(t, repos.UserRepo.DeleteUser(ctx, recipient.UserID))
	history, err := repos.TransactionRepo.FindTransactionsByUserID(ctx, sender.UserID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	_, err = repos.AccountRepo.FindAccountByUserID(ctx, recipient.UserID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPgxLedgerStore_ConcurrentOverdraft(t *testing.T) {
	repos := pgsql.NewRepositoryProvider(setupDB(t))
	ledger := services.NewLedgerService(repos)
	ctx := context.Background()

	sender := saveUser(t, repos, "sender", "", domain.USD)
	saveUser(t, repos, "recipient", "", domain.USD)
	_, err := ledger.Deposit(ctx, sender.UserID, decimal.RequireFromString("1000.00"), "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Transfer(ctx, sender.UserID, domain.RecipientSelector{Email: "recipient@example.com"}, decimal.RequireFromString("600.00"), "")
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	acc, err := repos.AccountRepo.FindAccountByUserID(ctx, sender.UserID)
	require.NoError(t, err)
	assert.Equal(t, "400.00", acc.Balance.StringFixed(2))
}

func TestPgxLedgerStore_MalformedUserID(t *testing.T) {
	repos := pgsql.NewRepositoryProvider(setupDB(t))
	ledger := services.NewLedgerService(repos)
	ctx := context.Background()

	_, err := ledger.Withdraw(ctx, "not-a-uuid", decimal.RequireFromString("1.00"), "")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotProvisioned)

	_, err = ledger.Deposit(ctx, "not-a-uuid", decimal.RequireFromString("1.00"), "")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotProvisioned)

	_, err = ledger.GetDisplayBalance(ctx, "not-a-uuid", "USD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	page, next, err := repos.TransactionRepo.ListTransactionsByUserID(ctx, "not-a-uuid", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Nil(t, next)

	history, err := repos.TransactionRepo.FindTransactionsByUserID(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, history)
}
