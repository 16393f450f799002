package mapping

import (
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/SscSPs/p2p_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		UserID:       d.UserID,
		Balance:      d.Balance,
		CurrencyCode: d.Currency.String(),
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		UserID:    m.UserID,
		Balance:   m.Balance,
		Currency:  domain.CurrencyCode(m.CurrencyCode),
		UpdatedAt: m.UpdatedAt,
	}
}
