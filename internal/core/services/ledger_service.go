package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ledgerService is the transfer engine. Every balance change runs inside one
// UnitOfWork call, so a failure at any step leaves no partial state behind.
type ledgerService struct {
	BaseService
	userRepo        portsrepo.UserReader
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
	uow             portsrepo.UnitOfWork
	converter       portssvc.ConverterSvc
	now             func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithConverter replaces the default static-table converter.
func WithConverter(converter portssvc.ConverterSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.converter = converter
	}
}

// WithClock sets the time source used for balances and ledger rows.
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates the transfer engine over the given repositories.
func NewLedgerService(repos portsrepo.RepositoryProvider, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		userRepo:        repos.UserRepo,
		accountRepo:     repos.AccountRepo,
		transactionRepo: repos.TransactionRepo,
		uow:             repos.Ledger,
		converter:       NewConversionService(),
		now:             func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// operation carries the log attributes of one money movement through its states.
type operation struct {
	name  string
	attrs []any
}

func (s *ledgerService) transition(ctx context.Context, op operation, state domain.OperationState) {
	s.LogDebug(ctx, "Ledger operation state changed", append([]any{slog.String("operation", op.name), slog.String("state", string(state))}, op.attrs...)...)
}

// reject ends an operation that failed before anything was applied.
func (s *ledgerService) reject(ctx context.Context, op operation, err error) error {
	s.LogWarn(ctx, err, "Ledger operation rejected", append([]any{slog.String("operation", op.name), slog.String("state", string(domain.StateRejected))}, op.attrs...)...)
	return err
}

// rollback ends an operation whose unit of work was discarded.
func (s *ledgerService) rollback(ctx context.Context, op operation, err error) error {
	args := append([]any{slog.String("operation", op.name), slog.String("state", string(domain.StateRolledBack))}, op.attrs...)
	if isBusinessError(err) {
		s.LogWarn(ctx, err, "Ledger operation rolled back", args...)
	} else {
		s.LogError(ctx, err, "Ledger operation rolled back", args...)
	}
	return err
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		apperrors.ErrValidation,
		apperrors.ErrAccountNotProvisioned,
		apperrors.ErrInsufficientFunds,
		apperrors.ErrRecipientNotFound,
		apperrors.ErrSelfTransferNotAllowed,
		apperrors.ErrConversionFailed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *ledgerService) Deposit(ctx context.Context, userID string, amount decimal.Decimal, sourceLabel string) (*domain.Receipt, error) {
	op := operation{name: "deposit", attrs: []any{slog.String("user_id", userID), slog.String("amount", amount.String())}}
	s.transition(ctx, op, domain.StateInitiated)

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, s.reject(ctx, op, err)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, op, fmt.Errorf("%w: user %s does not exist", apperrors.ErrAccountNotProvisioned, userID))
		}
		return nil, s.reject(ctx, op, fmt.Errorf("failed to load user %s: %w", userID, err))
	}
	s.transition(ctx, op, domain.StateValidated)

	description := "Added money"
	if label := strings.TrimSpace(sourceLabel); label != "" {
		description = "Added money via " + label
	}

	var receipt domain.Receipt
	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		now := s.now()
		locked, err := tx.LockAccounts(ctx, []string{userID})
		if err != nil {
			return err
		}
		account, ok := locked[userID]
		if !ok {
			if account, err = s.openAccount(ctx, tx, userID, user.PreferredCurrency, now); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: user %s was removed", apperrors.ErrAccountNotProvisioned, userID)
				}
				return err
			}
		}

		credited, err := account.Credit(amount, now)
		if err != nil {
			return err
		}
		txn, err := domain.NewTransaction(domain.NewTransactionParams{
			SenderID:        userID,
			ReceiverID:      userID,
			Amount:          amount,
			Currency:        credited.Currency,
			Description:     domain.TruncateDescription(description),
			Timestamp:       now,
			TransactionType: domain.TypeDeposit,
		})
		if err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, credited); err != nil {
			return err
		}
		if err := tx.InsertTransactions(ctx, []domain.Transaction{txn}); err != nil {
			return err
		}
		s.transition(ctx, op, domain.StateApplied)

		receipt = domain.Receipt{NewBalance: credited.Balance, Currency: credited.Currency, TransactionID: txn.TransactionID}
		return nil
	})
	if err != nil {
		return nil, s.rollback(ctx, op, err)
	}

	receipt.State = domain.StateCommitted
	s.LogInfo(ctx, "Deposit committed", slog.String("user_id", userID), slog.String("transaction_id", receipt.TransactionID),
		slog.String("amount", amount.StringFixed(domain.MoneyScale)), slog.String("currency", receipt.Currency.String()))
	return &receipt, nil
}

func (s *ledgerService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal, destinationLabel string) (*domain.Receipt, error) {
	op := operation{name: "withdrawal", attrs: []any{slog.String("user_id", userID), slog.String("amount", amount.String())}}
	s.transition(ctx, op, domain.StateInitiated)

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, s.reject(ctx, op, err)
	}
	s.transition(ctx, op, domain.StateValidated)

	description := "Withdrawal"
	if label := strings.TrimSpace(destinationLabel); label != "" {
		description = "Withdrawn to " + label
	}

	var receipt domain.Receipt
	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		now := s.now()
		locked, err := tx.LockAccounts(ctx, []string{userID})
		if err != nil {
			return err
		}
		account, ok := locked[userID]
		if !ok {
			return fmt.Errorf("%w: user %s has no account", apperrors.ErrAccountNotProvisioned, userID)
		}

		debited, err := account.Debit(amount, now)
		if err != nil {
			return err
		}
		txn, err := domain.NewTransaction(domain.NewTransactionParams{
			SenderID:        userID,
			ReceiverID:      userID,
			Amount:          amount,
			Currency:        debited.Currency,
			Description:     domain.TruncateDescription(description),
			Timestamp:       now,
			TransactionType: domain.TypeWithdrawal,
		})
		if err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, debited); err != nil {
			return err
		}
		if err := tx.InsertTransactions(ctx, []domain.Transaction{txn}); err != nil {
			return err
		}
		s.transition(ctx, op, domain.StateApplied)

		receipt = domain.Receipt{NewBalance: debited.Balance, Currency: debited.Currency, TransactionID: txn.TransactionID}
		return nil
	})
	if err != nil {
		return nil, s.rollback(ctx, op, err)
	}

	receipt.State = domain.StateCommitted
	s.LogInfo(ctx, "Withdrawal committed", slog.String("user_id", userID), slog.String("transaction_id", receipt.TransactionID),
		slog.String("amount", amount.StringFixed(domain.MoneyScale)), slog.String("currency", receipt.Currency.String()))
	return &receipt, nil
}

func (s *ledgerService) Transfer(ctx context.Context, senderID string, selector domain.RecipientSelector, amount decimal.Decimal, description string) (*domain.TransferReceipt, error) {
	op := operation{name: "transfer", attrs: []any{slog.String("user_id", senderID), slog.String("amount", amount.String())}}
	s.transition(ctx, op, domain.StateInitiated)

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, s.reject(ctx, op, err)
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return nil, s.reject(ctx, op, fmt.Errorf("%w: description longer than %d characters", apperrors.ErrValidation, domain.MaxDescriptionLength))
	}
	if selector.IsEmpty() {
		return nil, s.reject(ctx, op, fmt.Errorf("%w: recipient email or phone is required", apperrors.ErrValidation))
	}

	recipient, err := s.userRepo.FindUserByEmailOrPhone(ctx, selector.Normalize())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, op, fmt.Errorf("%w: no user matches the given email or phone", apperrors.ErrRecipientNotFound))
		}
		return nil, s.reject(ctx, op, fmt.Errorf("failed to resolve recipient: %w", err))
	}
	if recipient.UserID == senderID {
		return nil, s.reject(ctx, op, apperrors.ErrSelfTransferNotAllowed)
	}
	op.attrs = append(op.attrs, slog.String("recipient_id", recipient.UserID))
	s.transition(ctx, op, domain.StateValidated)

	var receipt domain.TransferReceipt
	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		now := s.now()
		locked, err := tx.LockAccounts(ctx, []string{senderID, recipient.UserID})
		if err != nil {
			return err
		}

		senderAcc, ok := locked[senderID]
		if !ok {
			return fmt.Errorf("%w: user %s has no account", apperrors.ErrAccountNotProvisioned, senderID)
		}
		debited, err := senderAcc.Debit(amount, now)
		if err != nil {
			return err
		}

		recipientAcc, ok := locked[recipient.UserID]
		if !ok {
			if recipientAcc, err = s.openAccount(ctx, tx, recipient.UserID, recipient.PreferredCurrency, now); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: recipient was removed", apperrors.ErrRecipientNotFound)
				}
				return err
			}
		}

		creditAmount := amount
		crossCurrency := senderAcc.Currency != recipientAcc.Currency
		if crossCurrency {
			converted, err := s.converter.ConvertStrict(amount, senderAcc.Currency, recipientAcc.Currency)
			if err != nil {
				return fmt.Errorf("%w: %s to %s: %v", apperrors.ErrConversionFailed, senderAcc.Currency, recipientAcc.Currency, err)
			}
			// An unchanged figure across two currencies means the amount was not really converted.
			if !converted.IsPositive() || converted.Equal(amount) {
				return fmt.Errorf("%w: %s %s converts to %s %s", apperrors.ErrConversionFailed,
					amount.StringFixed(domain.MoneyScale), senderAcc.Currency, converted.StringFixed(domain.MoneyScale), recipientAcc.Currency)
			}
			creditAmount = converted
		}
		credited, err := recipientAcc.Credit(creditAmount, now)
		if err != nil {
			return err
		}

		senderLeg, err := domain.NewTransaction(domain.NewTransactionParams{
			SenderID:        senderID,
			ReceiverID:      recipient.UserID,
			Amount:          amount,
			Currency:        senderAcc.Currency,
			Description:     description,
			Timestamp:       now,
			TransactionType: domain.TypeTransfer,
		})
		if err != nil {
			return err
		}
		legs := []domain.Transaction{senderLeg}

		if crossCurrency {
			receiverLeg, err := domain.NewTransaction(domain.NewTransactionParams{
				GroupID:    senderLeg.GroupID,
				SenderID:   senderID,
				ReceiverID: recipient.UserID,
				Amount:     creditAmount,
				Currency:   recipientAcc.Currency,
				Description: domain.TruncateDescription(fmt.Sprintf("Received %s (converted to %s)",
					s.converter.Format(amount, senderAcc.Currency.String()),
					s.converter.Format(creditAmount, recipientAcc.Currency.String()))),
				Timestamp:       now,
				TransactionType: domain.TypeTransfer,
			})
			if err != nil {
				return err
			}
			legs = append(legs, receiverLeg)
		}

		if err := tx.UpdateAccountBalance(ctx, debited); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, credited); err != nil {
			return err
		}
		if err := tx.InsertTransactions(ctx, legs); err != nil {
			return err
		}
		s.transition(ctx, op, domain.StateApplied)

		ids := make([]string, len(legs))
		for i, leg := range legs {
			ids[i] = leg.TransactionID
		}
		receipt = domain.TransferReceipt{
			SenderNewBalance:  debited.Balance,
			SenderCurrency:    debited.Currency,
			RecipientID:       recipient.UserID,
			CreditedAmount:    creditAmount,
			RecipientCurrency: credited.Currency,
			TransactionIDs:    ids,
		}
		return nil
	})
	if err != nil {
		return nil, s.rollback(ctx, op, err)
	}

	receipt.State = domain.StateCommitted
	s.LogInfo(ctx, "Transfer committed",
		slog.String("user_id", senderID),
		slog.String("recipient_id", receipt.RecipientID),
		slog.String("amount", amount.StringFixed(domain.MoneyScale)),
		slog.String("currency", receipt.SenderCurrency.String()),
		slog.String("credited_amount", receipt.CreditedAmount.StringFixed(domain.MoneyScale)),
		slog.String("credited_currency", receipt.RecipientCurrency.String()),
		slog.Int("legs", len(receipt.TransactionIDs)))
	return &receipt, nil
}

// openAccount lazily creates a zero-balance account for an owner already locked in tx.
func (s *ledgerService) openAccount(ctx context.Context, tx portsrepo.LedgerTx, userID string, currency domain.CurrencyCode, now time.Time) (domain.Account, error) {
	account, err := domain.NewAccount(userID, currency, decimal.Zero, now)
	if err != nil {
		return domain.Account{}, err
	}
	if err := tx.CreateAccount(ctx, account); err != nil {
		return domain.Account{}, err
	}
	s.LogInfo(ctx, "Account opened", slog.String("user_id", userID), slog.String("currency", currency.String()))
	return account, nil
}

func (s *ledgerService) GetDisplayBalance(ctx context.Context, userID string, displayCurrency string) (string, error) {
	display, err := s.displayCurrency(displayCurrency)
	if err != nil {
		return "", err
	}
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for balance", slog.String("user_id", userID))
			return "", err
		}
		user, userErr := s.userRepo.FindUserByID(ctx, userID)
		if userErr != nil {
			return "", userErr
		}
		if display == "" {
			display = user.PreferredCurrency
		}
		return s.converter.Format(decimal.Zero, display.String()), nil
	}
	if display == "" {
		display = account.Currency
	}
	converted := s.converter.Convert(ctx, account.Balance, account.Currency.String(), display.String())
	return s.converter.Format(converted, display.String()), nil
}

// displayCurrency parses an optional display currency. Empty means the account's own currency.
func (s *ledgerService) displayCurrency(code string) (domain.CurrencyCode, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}
	return domain.ParseCurrencyCode(code)
}

func (s *ledgerService) GetAccountSummary(ctx context.Context, userID string, displayCurrency string) (*domain.AccountSummary, error) {
	display, err := s.displayCurrency(displayCurrency)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for summary", slog.String("user_id", userID))
			return nil, err
		}
		user, userErr := s.userRepo.FindUserByID(ctx, userID)
		if userErr != nil {
			return nil, userErr
		}
		if display == "" {
			display = user.PreferredCurrency
		}
		zero := s.converter.Format(decimal.Zero, display.String())
		return &domain.AccountSummary{
			AccountCurrency:   user.PreferredCurrency,
			DisplayCurrency:   display,
			FormattedBalance:  zero,
			FormattedIncome:   zero,
			FormattedExpenses: zero,
		}, nil
	}

	history, err := s.transactionRepo.FindTransactionsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for summary", slog.String("user_id", userID))
		return nil, err
	}
	totals := accounting.Summarize(history, userID, account.Currency)
	if display == "" {
		display = account.Currency
	}

	from, to := account.Currency.String(), display.String()
	return &domain.AccountSummary{
		AccountCurrency:   account.Currency,
		DisplayCurrency:   display,
		FormattedBalance:  s.converter.Format(s.converter.Convert(ctx, account.Balance, from, to), to),
		FormattedIncome:   s.converter.Format(s.converter.Convert(ctx, totals.Income, from, to), to),
		FormattedExpenses: s.converter.Format(s.converter.Convert(ctx, totals.Expenses, from, to), to),
	}, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionView, *string, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	txns, next, err := s.transactionRepo.ListTransactionsByUserID(ctx, userID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	views := make([]domain.TransactionView, len(txns))
	for i, txn := range txns {
		views[i] = domain.TransactionView{
			Transaction:     txn,
			FormattedAmount: s.converter.Format(txn.Amount, txn.Currency.String()),
		}
	}
	s.LogDebug(ctx, "Transaction history page loaded", slog.String("user_id", userID), slog.Int("count", len(views)))
	return views, next, nil
}
