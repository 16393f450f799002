package mapping

import (
	"database/sql"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/SscSPs/p2p_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		GroupID:         d.GroupID,
		SenderID:        d.SenderID,
		ReceiverID:      d.ReceiverID,
		Amount:          d.Amount,
		CurrencyCode:    d.Currency.String(),
		Description:     sql.NullString{String: d.Description, Valid: d.Description != ""},
		Timestamp:       d.Timestamp,
		Status:          string(d.Status),
		TransactionType: string(d.TransactionType),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		GroupID:         m.GroupID,
		SenderID:        m.SenderID,
		ReceiverID:      m.ReceiverID,
		Amount:          m.Amount,
		Currency:        domain.CurrencyCode(m.CurrencyCode),
		Description:     m.Description.String,
		Timestamp:       m.Timestamp,
		Status:          domain.TransactionStatus(m.Status),
		TransactionType: domain.TransactionType(m.TransactionType),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
