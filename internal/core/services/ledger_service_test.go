package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/core/services"
	"github.com/SscSPs/p2p_ledger/internal/repositories/memory"
	"github.com/SscSPs/p2p_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// tickingClock hands out strictly increasing timestamps so history order is deterministic.
type tickingClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

// failingRowsUnitOfWork runs the wrapped unit of work but fails every row insert,
// after the balances have already been written through the same LedgerTx.
type failingRowsUnitOfWork struct {
	portsrepo.UnitOfWork
	balanceWrites int
}

type failingRowsTx struct {
	portsrepo.LedgerTx
	owner *failingRowsUnitOfWork
}

var errRowsUnavailable = errors.New("disk full")

func (u *failingRowsUnitOfWork) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return u.UnitOfWork.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return fn(ctx, &failingRowsTx{LedgerTx: tx, owner: u})
	})
}

func (t *failingRowsTx) UpdateAccountBalance(ctx context.Context, account domain.Account) error {
	t.owner.balanceWrites++
	return t.LedgerTx.UpdateAccountBalance(ctx, account)
}

func (t *failingRowsTx) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	return errRowsUnavailable
}

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	service portssvc.LedgerSvcFacade
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	clock := &tickingClock{cur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	suite.service = services.NewLedgerService(memory.NewRepositoryProvider(suite.store), services.WithClock(clock.Now))
}

func (suite *LedgerServiceTestSuite) seedUser(username, phone string, currency domain.CurrencyCode) domain.User {
	user, err := domain.NewUser(domain.NewUserParams{
		UserID:            uuid.NewString(),
		Username:          username,
		Email:             username + "@example.com",
		Phone:             phone,
		PasswordHash:      "hash",
		PreferredCurrency: currency.String(),
		CreatedAt:         time.Now(),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.SaveUser(suite.ctx, user))
	return user
}

// seedFunded creates a user whose account holds balance, via a deposit.
func (suite *LedgerServiceTestSuite) seedFunded(username string, currency domain.CurrencyCode, balance string) domain.User {
	user := suite.seedUser(username, "", currency)
	_, err := suite.service.Deposit(suite.ctx, user.UserID, amt(balance), "seed")
	suite.Require().NoError(err)
	return user
}

func (suite *LedgerServiceTestSuite) balanceOf(userID string) decimal.Decimal {
	acc, err := suite.store.FindAccountByUserID(suite.ctx, userID)
	suite.Require().NoError(err)
	return acc.Balance
}

func (suite *LedgerServiceTestSuite) historyOf(userID string) []domain.Transaction {
	txns, err := suite.store.FindTransactionsByUserID(suite.ctx, userID)
	suite.Require().NoError(err)
	return txns
}

// assertConserved checks that replaying the user's legs reproduces the stored balance.
func (suite *LedgerServiceTestSuite) assertConserved(userID string) {
	acc, err := suite.store.FindAccountByUserID(suite.ctx, userID)
	suite.Require().NoError(err)
	totals := accounting.Summarize(suite.historyOf(userID), userID, acc.Currency)
	suite.True(totals.Net().Equal(acc.Balance), "net %s != balance %s", totals.Net(), acc.Balance)
}

func (suite *LedgerServiceTestSuite) TestDeposit_AddsToBalance() {
	alice := suite.seedFunded("alice", domain.USD, "1000.00")
	before := len(suite.historyOf(alice.UserID))

	receipt, err := suite.service.Deposit(suite.ctx, alice.UserID, amt("50.00"), "card")

	suite.Require().NoError(err)
	suite.Equal("1050.00", receipt.NewBalance.StringFixed(2))
	suite.Equal(domain.USD, receipt.Currency)
	suite.Equal(domain.StateCommitted, receipt.State)
	suite.Equal("1050.00", suite.balanceOf(alice.UserID).StringFixed(2))

	history := suite.historyOf(alice.UserID)
	suite.Require().Len(history, before+1)
	var deposit domain.Transaction
	for _, txn := range history {
		if txn.TransactionID == receipt.TransactionID {
			deposit = txn
		}
	}
	suite.Equal(domain.TypeDeposit, deposit.TransactionType)
	suite.Equal("50.00", deposit.Amount.StringFixed(2))
	suite.Equal("Added money via card", deposit.Description)
	suite.Equal(alice.UserID, deposit.SenderID)
	suite.Equal(alice.UserID, deposit.ReceiverID)
	suite.assertConserved(alice.UserID)
}

func (suite *LedgerServiceTestSuite) TestDeposit_OpensAccountInPreferredCurrency() {
	bob := suite.seedUser("bob", "", domain.GBP)
	_, err := suite.store.FindAccountByUserID(suite.ctx, bob.UserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	receipt, err := suite.service.Deposit(suite.ctx, bob.UserID, amt("12.34"), "")

	suite.Require().NoError(err)
	suite.Equal(domain.GBP, receipt.Currency)
	suite.Equal("12.34", suite.balanceOf(bob.UserID).StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestDeposit_IsAdditive() {
	alice := suite.seedUser("alice", "", domain.USD)
	for _, a := range []string{"0.10", "0.20", "19.70"} {
		_, err := suite.service.Deposit(suite.ctx, alice.UserID, amt(a), "")
		suite.Require().NoError(err)
	}
	suite.Equal("20.00", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.assertConserved(alice.UserID)
}

func (suite *LedgerServiceTestSuite) TestDeposit_UnknownUser() {
	_, err := suite.service.Deposit(suite.ctx, uuid.NewString(), amt("5"), "")
	suite.ErrorIs(err, apperrors.ErrAccountNotProvisioned)
}

func (suite *LedgerServiceTestSuite) TestMoneyMovement_InvalidAmounts() {
	alice := suite.seedFunded("alice", domain.USD, "100.00")
	suite.seedUser("bob", "", domain.USD)

	for _, a := range []string{"0", "-1.00", "0.001", "100000000.00"} {
		suite.Run(a, func() {
			_, err := suite.service.Deposit(suite.ctx, alice.UserID, amt(a), "")
			suite.ErrorIs(err, apperrors.ErrInvalidAmount)
			_, err = suite.service.Withdraw(suite.ctx, alice.UserID, amt(a), "")
			suite.ErrorIs(err, apperrors.ErrInvalidAmount)
			_, err = suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: "bob@example.com"}, amt(a), "")
			suite.ErrorIs(err, apperrors.ErrInvalidAmount)
		})
	}
	suite.Equal("100.00", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.Len(suite.historyOf(alice.UserID), 1)
}

func (suite *LedgerServiceTestSuite) TestWithdraw() {
	alice := suite.seedFunded("alice", domain.EUR, "80.00")

	receipt, err := suite.service.Withdraw(suite.ctx, alice.UserID, amt("30.50"), "bank")
	suite.Require().NoError(err)
	suite.Equal("49.50", receipt.NewBalance.StringFixed(2))

	_, err = suite.service.Withdraw(suite.ctx, alice.UserID, amt("49.51"), "bank")
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal("49.50", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.Len(suite.historyOf(alice.UserID), 2)
	suite.assertConserved(alice.UserID)

	carol := suite.seedUser("carol", "", domain.EUR)
	_, err = suite.service.Withdraw(suite.ctx, carol.UserID, amt("1.00"), "")
	suite.ErrorIs(err, apperrors.ErrAccountNotProvisioned)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameCurrency() {
	alice := suite.seedFunded("alice", domain.USD, "100.00")
	bob := suite.seedFunded("bob", domain.USD, "5.00")

	receipt, err := suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: " BOB@example.com "}, amt("40.00"), "lunch")

	suite.Require().NoError(err)
	suite.Equal(domain.StateCommitted, receipt.State)
	suite.Equal(bob.UserID, receipt.RecipientID)
	suite.Equal("60.00", receipt.SenderNewBalance.StringFixed(2))
	suite.Equal("40.00", receipt.CreditedAmount.StringFixed(2))
	suite.Len(receipt.TransactionIDs, 1)
	suite.Equal("60.00", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.Equal("45.00", suite.balanceOf(bob.UserID).StringFixed(2))
	suite.assertConserved(alice.UserID)
	suite.assertConserved(bob.UserID)
}

func (suite *LedgerServiceTestSuite) TestTransfer_CrossCurrency() {
	sender := suite.seedFunded("sender", domain.USD, "1000.00")
	recipient := suite.seedUser("recipient", "+491701234567", domain.EUR)

	receipt, err := suite.service.Transfer(suite.ctx, sender.UserID, domain.RecipientSelector{Phone: "+491701234567"}, amt("100.00"), "rent")

	suite.Require().NoError(err)
	suite.Equal("900.00", suite.balanceOf(sender.UserID).StringFixed(2))
	suite.Equal("91.00", suite.balanceOf(recipient.UserID).StringFixed(2))
	suite.Equal(domain.EUR, receipt.RecipientCurrency)
	suite.Equal("91.00", receipt.CreditedAmount.StringFixed(2))
	suite.Require().Len(receipt.TransactionIDs, 2)

	// both legs are visible to both parties and share one group
	recipientHistory := suite.historyOf(recipient.UserID)
	suite.Require().Len(recipientHistory, 2)
	suite.Equal(recipientHistory[0].GroupID, recipientHistory[1].GroupID)
	legs := map[domain.CurrencyCode]domain.Transaction{}
	for _, txn := range recipientHistory {
		legs[txn.Currency] = txn
	}
	suite.Equal("100.00", legs[domain.USD].Amount.StringFixed(2))
	suite.Equal("rent", legs[domain.USD].Description)
	suite.Equal("91.00", legs[domain.EUR].Amount.StringFixed(2))
	suite.Equal("Received $100.00 (converted to €91.00)", legs[domain.EUR].Description)
	suite.Len(suite.historyOf(sender.UserID), 3)

	suite.assertConserved(sender.UserID)
	suite.assertConserved(recipient.UserID)
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	sender := suite.seedFunded("sender", domain.USD, "10.00")
	recipient := suite.seedFunded("recipient", domain.USD, "1.00")

	_, err := suite.service.Transfer(suite.ctx, sender.UserID, domain.RecipientSelector{Email: "recipient@example.com"}, amt("50.00"), "")

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal("10.00", suite.balanceOf(sender.UserID).StringFixed(2))
	suite.Equal("1.00", suite.balanceOf(recipient.UserID).StringFixed(2))
	suite.Len(suite.historyOf(sender.UserID), 1)
	suite.Len(suite.historyOf(recipient.UserID), 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ToSelf() {
	alice := suite.seedFunded("alice", domain.USD, "10.00")

	_, err := suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: "alice@example.com"}, amt("1.00"), "")

	suite.ErrorIs(err, apperrors.ErrSelfTransferNotAllowed)
	suite.Equal("10.00", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.Len(suite.historyOf(alice.UserID), 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_RecipientResolution() {
	alice := suite.seedFunded("alice", domain.USD, "10.00")
	suite.seedUser("bob", "+15551234567", domain.USD)
	carol := suite.seedUser("carol", "+15557654321", domain.USD)

	_, err := suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: "nobody@example.com"}, amt("1.00"), "")
	suite.ErrorIs(err, apperrors.ErrRecipientNotFound)

	_, err = suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{}, amt("1.00"), "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	// email wins over phone when both are given
	receipt, err := suite.service.Transfer(suite.ctx, alice.UserID,
		domain.RecipientSelector{Email: "carol@example.com", Phone: "+15551234567"}, amt("1.00"), "")
	suite.Require().NoError(err)
	suite.Equal(carol.UserID, receipt.RecipientID)
}

func (suite *LedgerServiceTestSuite) TestTransfer_DescriptionTooLong() {
	alice := suite.seedFunded("alice", domain.USD, "10.00")
	suite.seedUser("bob", "", domain.USD)

	_, err := suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: "bob@example.com"},
		amt("1.00"), strings.Repeat("x", domain.MaxDescriptionLength+1))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("10.00", suite.balanceOf(alice.UserID).StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestTransfer_SenderWithoutAccount() {
	alice := suite.seedUser("alice", "", domain.USD)
	bob := suite.seedUser("bob", "", domain.USD)

	_, err := suite.service.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: "bob@example.com"}, amt("1.00"), "")

	suite.ErrorIs(err, apperrors.ErrAccountNotProvisioned)
	_, err = suite.store.FindAccountByUserID(suite.ctx, bob.UserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConversionTooSmallRollsBack() {
	sender := suite.seedFunded("sender", domain.USD, "10.00")
	recipient := suite.seedUser("recipient", "", domain.EUR)

	// 0.01 USD is 0.0091 EUR, which rounds back to 0.01
	_, err := suite.service.Transfer(suite.ctx, sender.UserID, domain.RecipientSelector{Email: "recipient@example.com"}, amt("0.01"), "")

	suite.ErrorIs(err, apperrors.ErrConversionFailed)
	suite.Equal("10.00", suite.balanceOf(sender.UserID).StringFixed(2))
	// the lazily opened recipient account is discarded with the rest of the unit of work
	_, err = suite.store.FindAccountByUserID(suite.ctx, recipient.UserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.historyOf(recipient.UserID))
}

func (suite *LedgerServiceTestSuite) TestTransfer_RowInsertFailureRollsBackBalances() {
	alice := suite.seedFunded("alice", domain.USD, "100.00")
	bob := suite.seedUser("bob", "", domain.EUR)

	repos := memory.NewRepositoryProvider(suite.store)
	uow := &failingRowsUnitOfWork{UnitOfWork: repos.Ledger}
	repos.Ledger = uow
	failing := services.NewLedgerService(repos)

	_, err := failing.Transfer(suite.ctx, alice.UserID, domain.RecipientSelector{Email: "bob@example.com"}, amt("40.00"), "rent")

	suite.ErrorIs(err, errRowsUnavailable)
	suite.Equal(2, uow.balanceWrites, "both balances are written before the rows")
	suite.Equal("100.00", suite.balanceOf(alice.UserID).StringFixed(2))
	_, err = suite.store.FindAccountByUserID(suite.ctx, bob.UserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.historyOf(bob.UserID))
	suite.Len(suite.historyOf(alice.UserID), 1, "only the seeding deposit remains")
	suite.assertConserved(alice.UserID)
}

func (suite *LedgerServiceTestSuite) TestDeposit_RowInsertFailureRollsBackBalance() {
	alice := suite.seedFunded("alice", domain.GBP, "10.00")

	repos := memory.NewRepositoryProvider(suite.store)
	repos.Ledger = &failingRowsUnitOfWork{UnitOfWork: repos.Ledger}
	failing := services.NewLedgerService(repos)

	_, err := failing.Deposit(suite.ctx, alice.UserID, amt("5.00"), "card")

	suite.ErrorIs(err, errRowsUnavailable)
	suite.Equal("10.00", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.Len(suite.historyOf(alice.UserID), 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConcurrentOverdraft() {
	sender := suite.seedFunded("sender", domain.USD, "1000.00")
	suite.seedUser("recipient", "", domain.USD)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.service.Transfer(context.Background(), sender.UserID,
				domain.RecipientSelector{Email: "recipient@example.com"}, amt("600.00"), "")
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			insufficient++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, insufficient)
	suite.Equal("400.00", suite.balanceOf(sender.UserID).StringFixed(2))
	suite.assertConserved(sender.UserID)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConcurrentOppositeDirections() {
	alice := suite.seedFunded("alice", domain.USD, "500.00")
	bob := suite.seedFunded("bob", domain.USD, "500.00")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = suite.service.Transfer(context.Background(), alice.UserID, domain.RecipientSelector{Email: "bob@example.com"}, amt("3.00"), "")
		}()
		go func() {
			defer wg.Done()
			_, _ = suite.service.Transfer(context.Background(), bob.UserID, domain.RecipientSelector{Email: "alice@example.com"}, amt("2.00"), "")
		}()
	}
	wg.Wait()

	suite.Equal("450.00", suite.balanceOf(alice.UserID).StringFixed(2))
	suite.Equal("550.00", suite.balanceOf(bob.UserID).StringFixed(2))
	suite.Equal("1000.00", suite.balanceOf(alice.UserID).Add(suite.balanceOf(bob.UserID)).StringFixed(2))
	suite.assertConserved(alice.UserID)
	suite.assertConserved(bob.UserID)
}

func (suite *LedgerServiceTestSuite) TestDisplayBalanceAndSummary() {
	sender := suite.seedFunded("sender", domain.USD, "1000.00")
	recipient := suite.seedUser("recipient", "", domain.EUR)
	_, err := suite.service.Transfer(suite.ctx, sender.UserID, domain.RecipientSelector{Email: "recipient@example.com"}, amt("100.00"), "")
	suite.Require().NoError(err)

	balance, err := suite.service.GetDisplayBalance(suite.ctx, sender.UserID, "eur")
	suite.Require().NoError(err)
	suite.Equal("€819.00", balance)

	balance, err = suite.service.GetDisplayBalance(suite.ctx, recipient.UserID, "USD")
	suite.Require().NoError(err)
	suite.Equal("$100.00", balance)

	balance, err = suite.service.GetDisplayBalance(suite.ctx, recipient.UserID, "")
	suite.Require().NoError(err)
	suite.Equal("€91.00", balance)

	_, err = suite.service.GetDisplayBalance(suite.ctx, sender.UserID, "XYZ")
	suite.ErrorIs(err, apperrors.ErrUnsupportedCurrency)

	summary, err := suite.service.GetAccountSummary(suite.ctx, sender.UserID, "USD")
	suite.Require().NoError(err)
	suite.Equal(domain.USD, summary.AccountCurrency)
	suite.Equal("$900.00", summary.FormattedBalance)
	suite.Equal("$1,000.00", summary.FormattedIncome)
	suite.Equal("$100.00", summary.FormattedExpenses)

	summary, err = suite.service.GetAccountSummary(suite.ctx, recipient.UserID, "EUR")
	suite.Require().NoError(err)
	suite.Equal("€91.00", summary.FormattedBalance)
	suite.Equal("€91.00", summary.FormattedIncome)
	suite.Equal("€0.00", summary.FormattedExpenses)
}

func (suite *LedgerServiceTestSuite) TestSummaryWithoutAccount() {
	dave := suite.seedUser("dave", "", domain.JPY)

	balance, err := suite.service.GetDisplayBalance(suite.ctx, dave.UserID, "JPY")
	suite.Require().NoError(err)
	suite.Equal("¥0", balance)

	summary, err := suite.service.GetAccountSummary(suite.ctx, dave.UserID, "INR")
	suite.Require().NoError(err)
	suite.Equal(domain.JPY, summary.AccountCurrency)
	suite.Equal("₹0.00", summary.FormattedBalance)

	summary, err = suite.service.GetAccountSummary(suite.ctx, dave.UserID, "")
	suite.Require().NoError(err)
	suite.Equal(domain.JPY, summary.DisplayCurrency)
	suite.Equal("¥0", summary.FormattedExpenses)
}

func (suite *LedgerServiceTestSuite) TestReadViews_UnknownUser() {
	missing := uuid.NewString()

	_, err := suite.service.GetDisplayBalance(suite.ctx, missing, "USD")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetDisplayBalance(suite.ctx, missing, "")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetAccountSummary(suite.ctx, missing, "EUR")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_Pagination() {
	alice := suite.seedUser("alice", "", domain.USD)
	for i := 0; i < 5; i++ {
		_, err := suite.service.Deposit(suite.ctx, alice.UserID, amt("1.00"), "")
		suite.Require().NoError(err)
	}

	var (
		seen  []domain.TransactionView
		token *string
		pages int
	)
	for {
		page, next, err := suite.service.ListTransactions(suite.ctx, alice.UserID, 2, token)
		suite.Require().NoError(err)
		seen = append(seen, page...)
		pages++
		if next == nil {
			break
		}
		token = next
	}

	suite.Equal(3, pages)
	suite.Require().Len(seen, 5)
	ids := map[string]bool{}
	for i, view := range seen {
		ids[view.TransactionID] = true
		suite.Equal("$1.00", view.FormattedAmount)
		if i > 0 {
			suite.True(view.Timestamp.Before(seen[i-1].Timestamp), "history must be newest first")
		}
	}
	suite.Len(ids, 5)

	bad := "%%%"
	_, _, err := suite.service.ListTransactions(suite.ctx, alice.UserID, 2, &bad)
	suite.ErrorIs(err, apperrors.ErrValidation)
}
