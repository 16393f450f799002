package accounting

import (
	"testing"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func leg(sender, receiver, amount string, currency domain.CurrencyCode, typ domain.TransactionType) domain.Transaction {
	return domain.Transaction{
		SenderID:        sender,
		ReceiverID:      receiver,
		Amount:          decimal.RequireFromString(amount),
		Currency:        currency,
		TransactionType: typ,
		Status:          domain.StatusCompleted,
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		user string
		want string
	}{
		{"own deposit", leg("a", "a", "50.00", domain.USD, domain.TypeDeposit), "a", "50"},
		{"own withdrawal", leg("a", "a", "20.00", domain.USD, domain.TypeWithdrawal), "a", "-20"},
		{"sent transfer", leg("a", "b", "10.00", domain.USD, domain.TypeTransfer), "a", "-10"},
		{"received transfer", leg("a", "b", "10.00", domain.USD, domain.TypeTransfer), "b", "10"},
		{"counterparty leg in other currency", leg("a", "b", "9.10", domain.EUR, domain.TypeTransfer), "a", "0"},
		{"unrelated user", leg("a", "b", "10.00", domain.USD, domain.TypeTransfer), "c", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSignedAmount(tt.txn, tt.user, domain.USD)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSummarize(t *testing.T) {
	history := []domain.Transaction{
		leg("a", "a", "100.00", domain.USD, domain.TypeDeposit),
		leg("a", "b", "30.00", domain.USD, domain.TypeTransfer),
		leg("c", "a", "5.50", domain.USD, domain.TypeTransfer),
		leg("a", "a", "10.00", domain.USD, domain.TypeWithdrawal),
		leg("a", "d", "20.00", domain.USD, domain.TypeTransfer),
		leg("a", "d", "18.20", domain.EUR, domain.TypeTransfer), // receiver leg of the line above
	}

	totals := Summarize(history, "a", domain.USD)
	assert.Equal(t, "105.50", totals.Income.StringFixed(2))
	assert.Equal(t, "60.00", totals.Expenses.StringFixed(2))
	assert.Equal(t, "45.50", totals.Net().StringFixed(2))

	dTotals := Summarize(history, "d", domain.EUR)
	assert.Equal(t, "18.20", dTotals.Income.StringFixed(2))
	assert.True(t, dTotals.Expenses.IsZero())
}
