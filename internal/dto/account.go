package dto

import (
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

// DisplayCurrencyParams selects the currency a read view is rendered in.
type DisplayCurrencyParams struct {
	Currency string `form:"currency" binding:"omitempty,currency"`
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	Currency string `json:"currency,omitempty"` // empty when the account currency was used
	Balance  string `json:"balance"`            // formatted, e.g. "€1,234.50"
}

// AccountSummaryResponse is the dashboard view of an account.
type AccountSummaryResponse struct {
	AccountCurrency string `json:"accountCurrency"`
	DisplayCurrency string `json:"displayCurrency"`
	Balance         string `json:"balance"`
	Income          string `json:"income"`
	Expenses        string `json:"expenses"`
}

// ToAccountSummaryResponse converts a domain.AccountSummary to its DTO.
func ToAccountSummaryResponse(s *domain.AccountSummary) AccountSummaryResponse {
	return AccountSummaryResponse{
		AccountCurrency: s.AccountCurrency.String(),
		DisplayCurrency: s.DisplayCurrency.String(),
		Balance:         s.FormattedBalance,
		Income:          s.FormattedIncome,
		Expenses:        s.FormattedExpenses,
	}
}
