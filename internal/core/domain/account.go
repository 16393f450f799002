package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimals every stored amount and balance carries.
const MoneyScale int32 = 2

// MaxMovementAmount caps a single deposit, withdrawal or transfer.
var MaxMovementAmount = decimal.RequireFromString("99999999.99")

// Account holds the single balance owned by one user.
// Build it with NewAccount; the zero value is not a valid account.
type Account struct {
	UserID    string          `json:"userID"` // one account per user
	Balance   decimal.Decimal `json:"balance"`
	Currency  CurrencyCode    `json:"currency"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewAccount validates every account invariant before returning.
func NewAccount(userID string, currency CurrencyCode, balance decimal.Decimal, now time.Time) (Account, error) {
	acc := Account{
		UserID:    userID,
		Balance:   balance,
		Currency:  currency,
		UpdatedAt: now,
	}
	if err := acc.Validate(); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// Validate checks the account invariants.
func (a Account) Validate() error {
	if strings.TrimSpace(a.UserID) == "" {
		return fmt.Errorf("%w: account owner is required", apperrors.ErrInvariantViolation)
	}
	if !a.Currency.IsValid() {
		return fmt.Errorf("%w: account currency %q is not supported", apperrors.ErrInvariantViolation, a.Currency)
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("%w: balance %s is negative", apperrors.ErrInvariantViolation, a.Balance.StringFixed(MoneyScale))
	}
	if !hasMoneyScale(a.Balance) {
		return fmt.Errorf("%w: balance %s has more than %d decimals", apperrors.ErrInvariantViolation, a.Balance.String(), MoneyScale)
	}
	return nil
}

// Credit returns a copy of the account with amount added.
func (a Account) Credit(amount decimal.Decimal, now time.Time) (Account, error) {
	if err := ValidateAmount(amount); err != nil {
		return Account{}, err
	}
	return NewAccount(a.UserID, a.Currency, a.Balance.Add(amount), now)
}

// Debit returns a copy of the account with amount removed.
// It fails with ErrInsufficientFunds instead of producing a negative balance.
func (a Account) Debit(amount decimal.Decimal, now time.Time) (Account, error) {
	if err := ValidateAmount(amount); err != nil {
		return Account{}, err
	}
	if a.Balance.LessThan(amount) {
		return Account{}, fmt.Errorf("%w: balance %s %s, requested %s", apperrors.ErrInsufficientFunds,
			a.Balance.StringFixed(MoneyScale), a.Currency, amount.StringFixed(MoneyScale))
	}
	return NewAccount(a.UserID, a.Currency, a.Balance.Sub(amount), now)
}

// ValidateAmount checks that amount can be moved: positive, at most two decimals, under the ceiling.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !hasMoneyScale(amount) {
		return fmt.Errorf("%w: amount %s has more than %d decimals", apperrors.ErrInvalidAmount, amount.String(), MoneyScale)
	}
	if amount.GreaterThan(MaxMovementAmount) {
		return fmt.Errorf("%w: amount %s exceeds %s", apperrors.ErrInvalidAmount, amount.String(), MaxMovementAmount.String())
	}
	return nil
}

func hasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
