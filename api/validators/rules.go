package validators

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Monetary ceilings per currency for membership payments.
var (
	maxPaymentINR = decimal.NewFromInt(10_000_000)
	maxPaymentUSD = decimal.NewFromInt(100_000)

	// maxQuotedPrice bounds quotation line prices regardless of currency.
	maxQuotedPrice = decimal.RequireFromString("999999999.99")
)

// CheckNonBlank records an error when the trimmed value is empty or shorter
// than minLen. First violated rule per field wins.
func CheckNonBlank(fields pkgerrors.FieldErrors, field, value string, minLen int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		fields.Add(field, "is required")
		return
	}
	if len(trimmed) < minLen {
		fields.Add(field, fmt.Sprintf("must be at least %d characters", minLen))
	}
}

// CheckDigits enforces digit-only identifiers with a minimum length (phone, pincode).
func CheckDigits(fields pkgerrors.FieldErrors, field, value string, minLen int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		fields.Add(field, "is required")
		return
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			fields.Add(field, "must contain digits only")
			return
		}
	}
	if len(trimmed) < minLen {
		fields.Add(field, fmt.Sprintf("must be at least %d digits", minLen))
	}
}

// CheckURL requires an explicit scheme (http:// or https://) when a value is present.
func CheckURL(fields pkgerrors.FieldErrors, field, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		fields.Add(field, "must be a valid URL with an explicit scheme")
	}
}

// CheckPaymentAmount enforces positivity and the currency-specific ceiling.
func CheckPaymentAmount(fields pkgerrors.FieldErrors, field string, amount decimal.Decimal, currency enums.Currency) {
	if !amount.IsPositive() {
		fields.Add(field, "must be greater than zero")
		return
	}
	switch currency {
	case enums.CurrencyINR:
		if amount.GreaterThan(maxPaymentINR) {
			fields.Add(field, "must not exceed 10,000,000 INR")
		}
	case enums.CurrencyUSD:
		if amount.GreaterThan(maxPaymentUSD) {
			fields.Add(field, "must not exceed 100,000 USD")
		}
	}
}

// CheckQuotedPrice enforces positivity and the global price ceiling when set.
func CheckQuotedPrice(fields pkgerrors.FieldErrors, field string, price *decimal.Decimal) {
	if price == nil {
		return
	}
	if !price.IsPositive() {
		fields.Add(field, "must be greater than zero")
		return
	}
	if price.GreaterThan(maxQuotedPrice) {
		fields.Add(field, "must not exceed 999,999,999.99")
	}
}

// CheckCurrency validates an enumerated currency value.
func CheckCurrency(fields pkgerrors.FieldErrors, field string, value string) enums.Currency {
	currency, err := enums.ParseCurrency(value)
	if err != nil {
		fields.Add(field, "must be one of: INR, USD")
		return ""
	}
	return currency
}
