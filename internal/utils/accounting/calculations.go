package accounting

import (
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount returns the effect txn had on the balance of userID's account,
// whose currency is accountCurrency. Legs expressed in another currency belong to the
// counterparty's account and contribute zero.
//
//	deposit to user                        -> +amount
//	transfer received by user              -> +amount
//	transfer or withdrawal sent by user    -> -amount
func CalculateSignedAmount(txn domain.Transaction, userID string, accountCurrency domain.CurrencyCode) decimal.Decimal {
	if txn.Currency != accountCurrency || txn.Status != domain.StatusCompleted {
		return decimal.Zero
	}
	switch txn.TransactionType {
	case domain.TypeDeposit:
		if txn.ReceiverID == userID {
			return txn.Amount
		}
	case domain.TypeWithdrawal:
		if txn.SenderID == userID {
			return txn.Amount.Neg()
		}
	case domain.TypeTransfer:
		switch userID {
		case txn.ReceiverID:
			return txn.Amount
		case txn.SenderID:
			return txn.Amount.Neg()
		}
	}
	return decimal.Zero
}

// Totals is the money that flowed into and out of one account.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net is income minus expenses, which equals the account balance when the
// totals cover the account's full history.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// Summarize splits the signed effect of every leg into income and expenses.
func Summarize(txns []domain.Transaction, userID string, accountCurrency domain.CurrencyCode) Totals {
	totals := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, txn := range txns {
		signed := CalculateSignedAmount(txn, userID, accountCurrency)
		switch {
		case signed.IsPositive():
			totals.Income = totals.Income.Add(signed)
		case signed.IsNegative():
			totals.Expenses = totals.Expenses.Add(signed.Neg())
		}
	}
	return totals
}
