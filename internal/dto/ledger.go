package dto

import (
	"time"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest adds money to the caller's account.
// Amount accepts a JSON string ("12.50") or number; a string keeps exact decimals.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"50.00"`
	Source string          `json:"source" binding:"max=100" example:"card"`
}

// WithdrawalRequest takes money out of the caller's account.
type WithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"20.00"`
	Destination string          `json:"destination" binding:"max=100" example:"bank account"`
}

// TransferRequest sends money to another user identified by email or phone.
// At least one of the two recipient fields must be set.
type TransferRequest struct {
	RecipientEmail string          `json:"recipientEmail" binding:"omitempty,email"`
	RecipientPhone string          `json:"recipientPhone" binding:"omitempty,min=10,max=16"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string" example:"10.00"`
	Description    string          `json:"description" binding:"max=200"`
}

// Selector builds the recipient lookup from the request.
func (r TransferRequest) Selector() domain.RecipientSelector {
	return domain.RecipientSelector{Email: r.RecipientEmail, Phone: r.RecipientPhone}
}

// ReceiptResponse is returned by deposit and withdrawal.
type ReceiptResponse struct {
	TransactionID string `json:"transactionID"`
	NewBalance    string `json:"newBalance"`
	Currency      string `json:"currency"`
	State         string `json:"state"`
}

func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		TransactionID: r.TransactionID,
		NewBalance:    r.NewBalance.StringFixed(domain.MoneyScale),
		Currency:      r.Currency.String(),
		State:         string(r.State),
	}
}

// TransferResponse is returned by a committed transfer.
type TransferResponse struct {
	TransactionIDs    []string `json:"transactionIDs"`
	SenderNewBalance  string   `json:"senderNewBalance"`
	SenderCurrency    string   `json:"senderCurrency"`
	RecipientID       string   `json:"recipientID"`
	CreditedAmount    string   `json:"creditedAmount"`
	RecipientCurrency string   `json:"recipientCurrency"`
	State             string   `json:"state"`
}

func ToTransferResponse(r *domain.TransferReceipt) TransferResponse {
	return TransferResponse{
		TransactionIDs:    r.TransactionIDs,
		SenderNewBalance:  r.SenderNewBalance.StringFixed(domain.MoneyScale),
		SenderCurrency:    r.SenderCurrency.String(),
		RecipientID:       r.RecipientID,
		CreditedAmount:    r.CreditedAmount.StringFixed(domain.MoneyScale),
		RecipientCurrency: r.RecipientCurrency.String(),
		State:             string(r.State),
	}
}

// ListTransactionsParams defines query parameters for the history endpoint.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is one row of the caller's history.
type TransactionResponse struct {
	TransactionID   string    `json:"transactionID"`
	GroupID         string    `json:"groupID"`
	SenderID        string    `json:"senderID"`
	ReceiverID      string    `json:"receiverID"`
	Amount          string    `json:"amount"`
	Currency        string    `json:"currency"`
	FormattedAmount string    `json:"formattedAmount"`
	Description     string    `json:"description"`
	Timestamp       time.Time `json:"timestamp"`
	Status          string    `json:"status"`
	TransactionType string    `json:"transactionType"`
	Direction       string    `json:"direction"` // "in", "out" or "self"
}

// ListTransactionsResponse wraps a page of history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts history views, marking each row's direction for viewerID.
func ToListTransactionsResponse(views []domain.TransactionView, nextToken *string, viewerID string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(views))
	for i, v := range views {
		direction := "in"
		switch {
		case v.SenderID == v.ReceiverID:
			direction = "self"
		case v.SenderID == viewerID:
			direction = "out"
		}
		res[i] = TransactionResponse{
			TransactionID:   v.TransactionID,
			GroupID:         v.GroupID,
			SenderID:        v.SenderID,
			ReceiverID:      v.ReceiverID,
			Amount:          v.Amount.StringFixed(domain.MoneyScale),
			Currency:        v.Currency.String(),
			FormattedAmount: v.FormattedAmount,
			Description:     v.Description,
			Timestamp:       v.Timestamp,
			Status:          string(v.Status),
			TransactionType: string(v.TransactionType),
			Direction:       direction,
		}
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
