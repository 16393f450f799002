package domain

import "github.com/shopspring/decimal"

// OperationState tracks where a money movement is in its lifecycle.
type OperationState string

const (
	StateInitiated  OperationState = "INITIATED"
	StateValidated  OperationState = "VALIDATED"
	StateApplied    OperationState = "APPLIED"
	StateCommitted  OperationState = "COMMITTED"
	StateRejected   OperationState = "REJECTED"
	StateRolledBack OperationState = "ROLLED_BACK"
)

// Receipt is returned by single-account operations (deposit, withdrawal).
type Receipt struct {
	NewBalance    decimal.Decimal `json:"newBalance"`
	Currency      CurrencyCode    `json:"currency"`
	TransactionID string          `json:"transactionID"`
	State         OperationState  `json:"state"`
}

// TransferReceipt is returned by a committed transfer.
// TransactionIDs holds the sender leg first and, for cross-currency transfers, the receiver leg second.
type TransferReceipt struct {
	SenderNewBalance  decimal.Decimal `json:"senderNewBalance"`
	SenderCurrency    CurrencyCode    `json:"senderCurrency"`
	RecipientID       string          `json:"recipientID"`
	CreditedAmount    decimal.Decimal `json:"creditedAmount"`
	RecipientCurrency CurrencyCode    `json:"recipientCurrency"`
	TransactionIDs    []string        `json:"transactionIDs"`
	State             OperationState  `json:"state"`
}

// AccountSummary is the dashboard view of an account, formatted in a display currency.
type AccountSummary struct {
	AccountCurrency   CurrencyCode `json:"accountCurrency"`
	DisplayCurrency   CurrencyCode `json:"displayCurrency"`
	FormattedBalance  string       `json:"formattedBalance"`
	FormattedIncome   string       `json:"formattedIncome"`
	FormattedExpenses string       `json:"formattedExpenses"`
}

// TransactionView pairs a ledger row with its amount formatted in the caller's display currency.
type TransactionView struct {
	Transaction
	FormattedAmount string `json:"formattedAmount"`
}
