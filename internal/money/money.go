package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Prefix is the currency marker stripped from raw amounts.
const Prefix = "R$"

// Parse converts a BRL-formatted amount ("R$ 1.234,56") into a decimal.
// The locale uses '.' as thousands separator and ',' as decimal
// separator. Returns ok=false for anything that does not parse; callers
// treat such amounts as missing rather than failing the row.
func Parse(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, Prefix, "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Format renders a decimal in the canonical BRL form ("1.234,56"),
// rounded to two places. Parse(Format(d)) round-trips.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatBRL renders a decimal with the currency marker: "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	return Prefix + " " + Format(d)
}
