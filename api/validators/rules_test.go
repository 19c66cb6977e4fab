package validators

import (
	"testing"

	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCheckNonBlankFirstRuleWins(t *testing.T) {
	fields := pkgerrors.FieldErrors{}
	CheckNonBlank(fields, "title", "   ", 3)
	CheckNonBlank(fields, "title", "ab", 3)
	require.Equal(t, []string{"is required"}, fields["title"])
}

func TestCheckNonBlankMinLength(t *testing.T) {
	fields := pkgerrors.FieldErrors{}
	CheckNonBlank(fields, "title", "ab", 3)
	require.Equal(t, []string{"must be at least 3 characters"}, fields["title"])

	fields = pkgerrors.FieldErrors{}
	CheckNonBlank(fields, "title", " abc ", 3)
	require.Empty(t, fields)
}

func TestCheckDigits(t *testing.T) {
	fields := pkgerrors.FieldErrors{}
	CheckDigits(fields, "phone", "98x7654321", 10)
	require.Equal(t, []string{"must contain digits only"}, fields["phone"])

	fields = pkgerrors.FieldErrors{}
	CheckDigits(fields, "pincode", "1234", 6)
	require.Equal(t, []string{"must be at least 6 digits"}, fields["pincode"])

	fields = pkgerrors.FieldErrors{}
	CheckDigits(fields, "phone", "9876543210", 10)
	require.Empty(t, fields)
}

func TestCheckURLRequiresScheme(t *testing.T) {
	fields := pkgerrors.FieldErrors{}
	CheckURL(fields, "website", "example.com")
	require.NotEmpty(t, fields["website"])

	fields = pkgerrors.FieldErrors{}
	CheckURL(fields, "website", "https://example.com")
	require.Empty(t, fields)

	fields = pkgerrors.FieldErrors{}
	CheckURL(fields, "website", "")
	require.Empty(t, fields)
}

func TestCheckPaymentAmountCurrencyCeilings(t *testing.T) {
	fields := pkgerrors.FieldErrors{}
	CheckPaymentAmount(fields, "amount", decimal.NewFromInt(10_000_001), enums.CurrencyINR)
	require.Equal(t, []string{"must not exceed 10,000,000 INR"}, fields["amount"])

	fields = pkgerrors.FieldErrors{}
	CheckPaymentAmount(fields, "amount", decimal.NewFromInt(100_001), enums.CurrencyUSD)
	require.Equal(t, []string{"must not exceed 100,000 USD"}, fields["amount"])

	fields = pkgerrors.FieldErrors{}
	CheckPaymentAmount(fields, "amount", decimal.NewFromInt(99_999), enums.CurrencyUSD)
	require.Empty(t, fields)

	fields = pkgerrors.FieldErrors{}
	CheckPaymentAmount(fields, "amount", decimal.Zero, enums.CurrencyINR)
	require.Equal(t, []string{"must be greater than zero"}, fields["amount"])
}

func TestCheckQuotedPrice(t *testing.T) {
	over := decimal.RequireFromString("1000000000.00")
	fields := pkgerrors.FieldErrors{}
	CheckQuotedPrice(fields, "quoted_price", &over)
	require.Equal(t, []string{"must not exceed 999,999,999.99"}, fields["quoted_price"])

	neg := decimal.NewFromInt(-5)
	fields = pkgerrors.FieldErrors{}
	CheckQuotedPrice(fields, "quoted_price", &neg)
	require.Equal(t, []string{"must be greater than zero"}, fields["quoted_price"])

	fields = pkgerrors.FieldErrors{}
	CheckQuotedPrice(fields, "quoted_price", nil)
	require.Empty(t, fields)
}

func TestCheckCurrency(t *testing.T) {
	fields := pkgerrors.FieldErrors{}
	currency := CheckCurrency(fields, "currency", "INR")
	require.Empty(t, fields)
	require.Equal(t, enums.CurrencyINR, currency)

	fields = pkgerrors.FieldErrors{}
	CheckCurrency(fields, "currency", "EUR")
	require.Equal(t, []string{"must be one of: INR, USD"}, fields["currency"])
}
