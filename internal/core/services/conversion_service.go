package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// conversionService converts between currencies through the base currency of the static table.
// It holds no state and is safe for concurrent use.
type conversionService struct {
	BaseService
}

// NewConversionService creates the currency service backed by the static currency table.
func NewConversionService() portssvc.CurrencySvcFacade {
	return &conversionService{}
}

var _ portssvc.CurrencySvcFacade = (*conversionService)(nil)

func (s *conversionService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return domain.SupportedCurrencies(), nil
}

// ConvertStrict computes amount / rate(from) * rate(to), rounded half-up to two places.
// Division is carried at decimal.DivisionPrecision digits before the final rounding.
func (s *conversionService) ConvertStrict(amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromCur, ok := domain.LookupCurrency(from)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %q", apperrors.ErrConversionFailed, from)
	}
	toCur, ok := domain.LookupCurrency(to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %q", apperrors.ErrConversionFailed, to)
	}
	if !fromCur.RateToBase.IsPositive() || !toCur.RateToBase.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate for %s->%s", apperrors.ErrConversionFailed, from, to)
	}
	return amount.Div(fromCur.RateToBase).Mul(toCur.RateToBase).Round(domain.MoneyScale), nil
}

// Convert is the lenient form used on display paths. Codes are upper-cased; unknown
// codes use rate 1. On any failure the error is logged and amount is returned unchanged.
func (s *conversionService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return amount
	}
	fromRate, toRate := domain.RateFor(from), domain.RateFor(to)
	if !fromRate.IsPositive() || !toRate.IsPositive() {
		s.LogError(ctx, apperrors.ErrConversionFailed, "Currency conversion failed, returning original amount",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("amount", amount.String()))
		return amount
	}
	return amount.Div(fromRate).Mul(toRate).Round(domain.MoneyScale)
}

// Format renders amount for display. Known codes use their symbol and precision:
// Format(1234.5, "USD") is "$1,234.50" and Format(15372, "JPY") is "¥15,372".
// Unknown codes render as the bare number followed by the code: "1,234.50 XYZ".
func (s *conversionService) Format(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	number := utils.FormatWithPrecision(amount, domain.PrecisionFor(code))
	symbol := domain.SymbolFor(code)
	if symbol == "" {
		return number + " " + code
	}
	if amount.IsNegative() {
		return "-" + symbol + strings.TrimPrefix(number, "-")
	}
	return symbol + number
}
