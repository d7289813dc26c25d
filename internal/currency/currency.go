// Package currency provides the supported display currencies and formatting
// helpers. Changing the active currency never converts stored amounts, it only
// affects presentation.
package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Config describes one supported display currency.
type Config struct {
	Code   string
	Symbol string
	Locale string
}

// DefaultCode is the display currency used before the user picks one.
const DefaultCode = "MYR"

// Currencies is the fixed table of supported display currencies.
var Currencies = map[string]Config{
	"MYR": {Code: "MYR", Symbol: "RM", Locale: "en-MY"},
	"USD": {Code: "USD", Symbol: "$", Locale: "en-US"},
	"EUR": {Code: "EUR", Symbol: "€", Locale: "de-DE"},
	"GBP": {Code: "GBP", Symbol: "£", Locale: "en-GB"},
	"JPY": {Code: "JPY", Symbol: "¥", Locale: "ja-JP"},
	"SGD": {Code: "SGD", Symbol: "S$", Locale: "en-SG"},
}

// Codes returns the supported currency codes in stable order.
func Codes() []string {
	codes := make([]string, 0, len(Currencies))
	for code := range Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsSupported reports whether code is one of the supported currencies.
func IsSupported(code string) bool {
	_, ok := Currencies[strings.ToUpper(code)]
	return ok
}

// Lookup returns the configuration for a currency code, falling back to the
// default currency for unknown codes.
func Lookup(code string) Config {
	if cfg, ok := Currencies[strings.ToUpper(code)]; ok {
		return cfg
	}
	return Currencies[DefaultCode]
}

// Format renders an amount for display in the given currency: symbol prefix,
// thousand separators and two decimal places, e.g. "RM1,234.56".
func Format(amount decimal.Decimal, code string) string {
	cfg := Lookup(code)

	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%s", sign, cfg.Symbol, groupThousands(intPart), fracPart)
}

// groupThousands inserts comma separators into a digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
