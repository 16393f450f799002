package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state recorded on a ledger row.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

// TransactionType is the kind of money movement a row records.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeTransfer   TransactionType = "transfer"
	TypeWithdrawal TransactionType = "withdrawal"
)

// MaxDescriptionLength bounds Transaction.Description, in characters.
const MaxDescriptionLength = 200

// Transaction is one immutable leg of a money movement.
// A cross-currency transfer produces two legs sharing GroupID.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	GroupID         string            `json:"groupID"`
	SenderID        string            `json:"senderID"`
	ReceiverID      string            `json:"receiverID"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        CurrencyCode      `json:"currency"` // currency the amount is expressed in
	Description     string            `json:"description"`
	Timestamp       time.Time         `json:"timestamp"`
	Status          TransactionStatus `json:"status"`
	TransactionType TransactionType   `json:"transactionType"`
}

// NewTransactionParams gathers every field needed to build a Transaction.
// Empty TransactionID/GroupID get fresh UUIDs; empty Status means completed.
type NewTransactionParams struct {
	TransactionID   string
	GroupID         string
	SenderID        string
	ReceiverID      string
	Amount          decimal.Decimal
	Currency        CurrencyCode
	Description     string
	Timestamp       time.Time
	Status          TransactionStatus
	TransactionType TransactionType
}

// NewTransaction builds a ledger row, failing with ErrInvariantViolation if any field is invalid.
func NewTransaction(p NewTransactionParams) (Transaction, error) {
	txn := Transaction{
		TransactionID:   p.TransactionID,
		GroupID:         p.GroupID,
		SenderID:        p.SenderID,
		ReceiverID:      p.ReceiverID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Description:     p.Description,
		Timestamp:       p.Timestamp,
		Status:          p.Status,
		TransactionType: p.TransactionType,
	}
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.GroupID == "" {
		txn.GroupID = txn.TransactionID
	}
	if txn.Status == "" {
		txn.Status = StatusCompleted
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now().UTC()
	}
	if err := txn.Validate(); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.SenderID) == "" || strings.TrimSpace(t.ReceiverID) == "" {
		return fmt.Errorf("%w: sender and receiver are required", apperrors.ErrInvariantViolation)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: transaction amount must be greater than 0", apperrors.ErrInvariantViolation)
	}
	if !hasMoneyScale(t.Amount) {
		return fmt.Errorf("%w: transaction amount %s has more than %d decimals", apperrors.ErrInvariantViolation, t.Amount.String(), MoneyScale)
	}
	if !t.Currency.IsValid() {
		return fmt.Errorf("%w: transaction currency %q is not supported", apperrors.ErrInvariantViolation, t.Currency)
	}
	switch t.Status {
	case StatusCompleted, StatusPending, StatusFailed:
	default:
		return fmt.Errorf("%w: invalid transaction status %q", apperrors.ErrInvariantViolation, t.Status)
	}
	switch t.TransactionType {
	case TypeDeposit, TypeWithdrawal:
	case TypeTransfer:
		if t.SenderID == t.ReceiverID {
			return fmt.Errorf("%w: sender and receiver cannot be the same for transfers", apperrors.ErrInvariantViolation)
		}
	default:
		return fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrInvariantViolation, t.TransactionType)
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description longer than %d characters", apperrors.ErrInvariantViolation, MaxDescriptionLength)
	}
	return nil
}

// Involves reports whether userID is the sender or receiver of t.
func (t Transaction) Involves(userID string) bool {
	return t.SenderID == userID || t.ReceiverID == userID
}

// TruncateDescription cuts s to MaxDescriptionLength characters.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLength {
		return s
	}
	return string([]rune(s)[:MaxDescriptionLength])
}
