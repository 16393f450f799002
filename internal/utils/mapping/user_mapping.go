package mapping

import (
	"database/sql"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/SscSPs/p2p_ledger/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:            d.UserID,
		Username:          d.Username,
		Email:             d.Email,
		Phone:             sql.NullString{String: d.Phone, Valid: d.Phone != ""},
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		PasswordHash:      d.PasswordHash,
		PreferredCurrency: d.PreferredCurrency.String(),
		CreatedAt:         d.CreatedAt,
		LastLogin:         d.LastLogin,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:            m.UserID,
		Username:          m.Username,
		Email:             m.Email,
		Phone:             m.Phone.String,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		PasswordHash:      m.PasswordHash,
		PreferredCurrency: domain.CurrencyCode(m.PreferredCurrency),
		CreatedAt:         m.CreatedAt,
		LastLogin:         m.LastLogin,
	}
}
