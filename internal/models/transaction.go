package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Rows are append-only.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	GroupID         string          `db:"group_id"` // shared by both legs of a cross-currency transfer
	SenderID        string          `db:"sender_id"`
	ReceiverID      string          `db:"receiver_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Description     sql.NullString  `db:"description"`
	Timestamp       time.Time       `db:"timestamp"`
	Status          string          `db:"status"`
	TransactionType string          `db:"transaction_type"`
}
