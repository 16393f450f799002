package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table. The owning user's ID is the primary key.
type Account struct {
	UserID       string          `db:"user_id"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
