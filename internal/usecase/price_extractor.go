package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// priceRegex matches an optional currency symbol followed by a number with
// optional thousands separators and decimal part
var priceRegex = regexp.MustCompile(`([₹$€£])?\s*(\d[\d,]*(?:\.\d+)?)`)

// ExtractPrice pulls the first currency symbol and number out of free-form
// price text, dropping thousands separators. "₹1,234.50 per month" yields
// "₹1234.50". It reports false when the text holds no number.
func ExtractPrice(text string) (string, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\u00a0", " "))
	if text == "" {
		return "", false
	}

	m := priceRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	return m[1] + strings.ReplaceAll(m[2], ",", ""), true
}

// ParseAmount converts a cleaned price as returned by ExtractPrice into its
// numeric value, ignoring the currency symbol.
func ParseAmount(price string) (decimal.Decimal, bool) {
	number := strings.TrimLeftFunc(price, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if number == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}
