package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain", "50,00", "50.00", true},
		{"with prefix", "R$ 1.234,56", "1234.56", true},
		{"prefix no space", "R$1.234,56", "1234.56", true},
		{"surrounding whitespace", "  R$ 99,90  ", "99.90", true},
		{"millions", "1.234.567,89", "1234567.89", true},
		{"negative credit", "-12,34", "-12.34", true},
		{"no decimal part", "1.200", "1200", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"garbage", "abc", "", false},
		{"prefix only", "R$", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.56", "1.234,56"},
		{"50", "50,00"},
		{"0", "0,00"},
		{"-12.3", "-12,30"},
		{"1234567.891", "1.234.567,89"},
		{"999.999", "1.000,00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(dec(tt.in)))
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatBRL(dec("1234.56")))
}

// Parsing a formatted value must land on the same number, and a second
// round trip must be byte-identical.
func TestParseFormatRoundTrip(t *testing.T) {
	for _, raw := range []string{"R$ 1.234,56", "50,00", "-7,50", "1.000.000,00"} {
		first, ok := Parse(raw)
		require.True(t, ok, raw)

		formatted := Format(first)
		second, ok := Parse(formatted)
		require.True(t, ok, formatted)

		assert.True(t, first.Equal(second))
		assert.Equal(t, formatted, Format(second))
	}
}
