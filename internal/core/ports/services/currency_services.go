package services

import (
	"context"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// ListCurrencies retrieves all supported currencies in display order.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ConverterSvc converts and formats amounts using the static currency table.
type ConverterSvc interface {
	// ConvertStrict converts between two supported currencies and reports any failure.
	ConvertStrict(amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error)

	// Convert is the lenient display conversion: on failure it logs and returns amount unchanged.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal

	// Format renders amount with the symbol, precision and thousands separators of code.
	Format(amount decimal.Decimal, code string) string
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	ConverterSvc
}
