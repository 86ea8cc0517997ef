// Package currency resolves a user's display currency and formats
// monetary amounts.
package currency

import (
	"context"
	"strings"

	"cashira/internal/logger"
	"cashira/internal/money"
)

// Currency describes a supported display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Supported is the fixed table of display currencies.
var Supported = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"CNY": {Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"NGN": {Code: "NGN", Symbol: "₦", Name: "Nigerian Naira"},
}

// countryCurrency maps ISO 3166 country codes to currency codes.
// Countries not listed fall back to the default currency.
var countryCurrency = map[string]string{
	"US": "USD",
	"CA": "CAD",
	"GB": "GBP",
	"DE": "EUR",
	"FR": "EUR",
	"IT": "EUR",
	"ES": "EUR",
	"JP": "JPY",
	"CN": "CNY",
	"IN": "INR",
	"AU": "AUD",
	"NZ": "AUD",
	"NG": "NGN",
}

// Default is the hardcoded fallback when no preference is stored and
// geolocation fails or returns an unmapped country.
var Default = Supported["USD"]

// IsSupported reports whether code is in the supported table.
func IsSupported(code string) bool {
	_, ok := Supported[strings.ToUpper(code)]
	return ok
}

// GeoLookup is the injected geolocation capability used when a user has
// no stored currency preference.
type GeoLookup interface {
	CountryCode(ctx context.Context) (string, error)
}

// Resolve maps a stored preference or geolocated country to a currency.
// A valid stored preference always wins. Lookup failure is non-fatal:
// the default currency is returned, never an error.
func Resolve(ctx context.Context, stored string, lookup GeoLookup) Currency {
	if c, ok := Supported[strings.ToUpper(stored)]; ok {
		return c
	}

	if lookup == nil {
		return Default
	}

	country, err := lookup.CountryCode(ctx)
	if err != nil {
		logger.Get().Debugw("geolocation lookup failed, using default currency", "error", err)
		return Default
	}

	code, ok := countryCurrency[strings.ToUpper(country)]
	if !ok {
		return Default
	}
	return Supported[code]
}

// FormatAmount renders cents as symbol plus a fixed two-decimal amount,
// e.g. 1234 -> "$12.34". No thousands separators.
func FormatAmount(cents int64, c Currency) string {
	return c.Symbol + money.Format(cents)
}
