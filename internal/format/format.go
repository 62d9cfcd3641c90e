package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Spanish number formatting: dot as thousands separator, comma as decimal
// separator. All price strings shown to customers go through this package so
// a value can round-trip between its display form and its numeric form.

// Number formats a value with the given number of decimals,
// e.g. Number(25000, 2) == "25.000,00".
func Number(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	d := decimal.NewFromFloat(value).Round(int32(decimals))
	neg := d.IsNegative()
	if neg {
		d = d.Abs()
	}

	fixed := d.StringFixed(int32(decimals))
	intPart := fixed
	fracPart := ""
	if decimals > 0 {
		dot := strings.LastIndex(fixed, ".")
		intPart, fracPart = fixed[:dot], fixed[dot+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if decimals > 0 {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// Currency formats a value as money, e.g. Currency(25000) == "$25.000,00".
func Currency(value float64) string {
	return "$" + Number(value, 2)
}

// Integer formats a value without decimals, e.g. Integer(25000) == "25.000".
func Integer(value float64) string {
	return Number(value, 0)
}

// ParseNumber converts a Spanish-formatted string back to a number. Currency
// symbols and spaces are ignored. Unparseable input yields 0, matching the
// forgiving behaviour expected by the display layer.
func ParseNumber(formatted string) float64 {
	cleaned := strings.NewReplacer("$", "", " ", "", " ", "").Replace(formatted)
	if cleaned == "" {
		return 0
	}
	// thousands dots go away, the decimal comma becomes a dot
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
