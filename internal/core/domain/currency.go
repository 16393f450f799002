package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CurrencyCode is one of the closed set of supported ISO codes.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	CAD CurrencyCode = "CAD"
	AUD CurrencyCode = "AUD"
	INR CurrencyCode = "INR"
	CNY CurrencyCode = "CNY"
)

// BaseCurrency is the unit every rate in the table is expressed against.
const BaseCurrency = USD

// DefaultCurrency is assigned to users who do not pick one.
const DefaultCurrency = INR

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode CurrencyCode    `json:"currencyCode"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	Precision    int32           `json:"precision"`  // display decimals
	RateToBase   decimal.Decimal `json:"rateToBase"` // units of this currency per one base unit
}

// supportedCurrencies is ordered for listing; currencyTable indexes it.
var supportedCurrencies = []Currency{
	{CurrencyCode: USD, Name: "US Dollar", Symbol: "$", Precision: 2, RateToBase: decimal.RequireFromString("1.0")},
	{CurrencyCode: EUR, Name: "Euro", Symbol: "€", Precision: 2, RateToBase: decimal.RequireFromString("0.91")},
	{CurrencyCode: GBP, Name: "British Pound", Symbol: "£", Precision: 2, RateToBase: decimal.RequireFromString("0.77")},
	{CurrencyCode: JPY, Name: "Japanese Yen", Symbol: "¥", Precision: 0, RateToBase: decimal.RequireFromString("153.72")},
	{CurrencyCode: CAD, Name: "Canadian Dollar", Symbol: "C$", Precision: 2, RateToBase: decimal.RequireFromString("1.35")},
	{CurrencyCode: AUD, Name: "Australian Dollar", Symbol: "A$", Precision: 2, RateToBase: decimal.RequireFromString("1.48")},
	{CurrencyCode: INR, Name: "Indian Rupee", Symbol: "₹", Precision: 2, RateToBase: decimal.RequireFromString("83.77")},
	{CurrencyCode: CNY, Name: "Chinese Yuan", Symbol: "¥", Precision: 2, RateToBase: decimal.RequireFromString("7.23")},
}

var currencyTable = func() map[CurrencyCode]Currency {
	m := make(map[CurrencyCode]Currency, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		m[c.CurrencyCode] = c
	}
	return m
}()

// ParseCurrencyCode normalizes s to upper case and checks it against the enumerated set.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, s)
	}
	return code, nil
}

// IsValid reports whether c belongs to the enumerated set.
func (c CurrencyCode) IsValid() bool {
	_, ok := currencyTable[c]
	return ok
}

func (c CurrencyCode) String() string { return string(c) }

// LookupCurrency returns the table entry for code.
func LookupCurrency(code CurrencyCode) (Currency, bool) {
	c, ok := currencyTable[code]
	return c, ok
}

// SupportedCurrencies returns a copy of the table in display order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// The lookups below are lenient: they accept any string and fall back instead of failing.
// They exist for display paths; money movement must validate with ParseCurrencyCode first.

// RateFor returns the rate-to-base for code, or 1 when the code is unknown.
func RateFor(code string) decimal.Decimal {
	if c, ok := currencyTable[CurrencyCode(strings.ToUpper(code))]; ok {
		return c.RateToBase
	}
	return decimal.NewFromInt(1)
}

// SymbolFor returns the display symbol for code, or "" when the code has no formatting rule.
func SymbolFor(code string) string {
	if c, ok := currencyTable[CurrencyCode(strings.ToUpper(code))]; ok {
		return c.Symbol
	}
	return ""
}

// PrecisionFor returns the display precision for code, 2 when unknown.
func PrecisionFor(code string) int32 {
	if c, ok := currencyTable[CurrencyCode(strings.ToUpper(code))]; ok {
		return c.Precision
	}
	return 2
}
