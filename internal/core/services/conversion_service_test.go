package services

import (
	"context"
	"testing"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvertStrict(t *testing.T) {
	svc := NewConversionService()

	tests := []struct {
		name     string
		amount   string
		from, to domain.CurrencyCode
		want     string
	}{
		{"identity", "123.45", domain.EUR, domain.EUR, "123.45"},
		{"usd to eur", "100.00", domain.USD, domain.EUR, "91.00"},
		{"usd to jpy", "100.00", domain.USD, domain.JPY, "15372.00"},
		{"eur to usd", "91.00", domain.EUR, domain.USD, "100.00"},
		{"usd to inr", "10.00", domain.USD, domain.INR, "837.70"},
		{"gbp to eur rounds half up", "10.00", domain.GBP, domain.EUR, "11.82"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ConvertStrict(d(tt.amount), tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}

	_, err := svc.ConvertStrict(d("1"), domain.USD, domain.CurrencyCode("XYZ"))
	assert.ErrorIs(t, err, apperrors.ErrConversionFailed)
}

func TestConvertStrict_RoundTrip(t *testing.T) {
	svc := NewConversionService()
	pairs := []struct{ a, b domain.CurrencyCode }{
		{domain.USD, domain.EUR},
		{domain.USD, domain.GBP},
		{domain.USD, domain.INR},
		{domain.USD, domain.JPY},
		{domain.USD, domain.CAD},
		{domain.EUR, domain.GBP},
	}
	amounts := []string{"0.01", "1.00", "19.99", "100.00", "12345.67"}
	tolerance := d("0.01")

	for _, p := range pairs {
		for _, a := range amounts {
			there, err := svc.ConvertStrict(d(a), p.a, p.b)
			require.NoError(t, err)
			back, err := svc.ConvertStrict(there, p.b, p.a)
			require.NoError(t, err)
			diff := back.Sub(d(a)).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance), "%s %s->%s->%s gave %s", a, p.a, p.b, p.a, back)
		}
	}
}

func TestConvert_Lenient(t *testing.T) {
	svc := NewConversionService()
	ctx := context.Background()

	assert.Equal(t, "91.00", svc.Convert(ctx, d("100"), "usd", "eur").StringFixed(2))
	assert.Equal(t, "42.00", svc.Convert(ctx, d("42"), "eur", "EUR").StringFixed(2))
	// unknown codes fall back to rate 1
	assert.Equal(t, "100.00", svc.Convert(ctx, d("100"), "USD", "XYZ").StringFixed(2))
	assert.Equal(t, "91.00", svc.Convert(ctx, d("100"), "XYZ", "EUR").StringFixed(2))
}

func TestFormat(t *testing.T) {
	svc := NewConversionService()

	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"15372", "JPY", "¥15,372"},
		{"15372.49", "jpy", "¥15,372"},
		{"0", "EUR", "€0.00"},
		{"837.7", "INR", "₹837.70"},
		{"10", "CAD", "C$10.00"},
		{"7.5", "CNY", "¥7.50"},
		{"1234.5", "XYZ", "1,234.50 XYZ"},
		{"-3.2", "GBP", "-£3.20"},
	}
	for _, tt := range tests {
		t.Run(tt.code+"_"+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Format(d(tt.amount), tt.code))
		})
	}
}

func TestListCurrencies(t *testing.T) {
	currencies, err := NewConversionService().ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Len(t, currencies, 8)
	assert.Equal(t, domain.USD, currencies[0].CurrencyCode)
}
