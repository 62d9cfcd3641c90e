package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		value    float64
		decimals int
		want     string
	}{
		{25000, 2, "25.000,00"},
		{25000, 0, "25.000"},
		{0, 2, "0,00"},
		{999, 2, "999,00"},
		{1000, 2, "1.000,00"},
		{1234567.89, 2, "1.234.567,89"},
		{-4500.5, 2, "-4.500,50"},
		{150000, 2, "150.000,00"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Number(c.value, c.decimals), "Number(%v, %d)", c.value, c.decimals)
	}
}

func TestCurrency(t *testing.T) {
	require.Equal(t, "$25.000,00", Currency(25000))
	require.Equal(t, "$150.000,00", Currency(150000))
}

func TestInteger(t *testing.T) {
	require.Equal(t, "1.500", Integer(1500))
	require.Equal(t, "0", Integer(0))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$25.000,00", 25000},
		{"25.000,50", 25000.50},
		{"999,00", 999},
		{"", 0},
		{"no soy un numero", 0},
		{"$ 1.234.567,89", 1234567.89},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ParseNumber(c.in), "ParseNumber(%q)", c.in)
	}
}

// formatting then parsing must land back on the original value
func TestRoundTrip(t *testing.T) {
	values := []float64{0, 1, 999.99, 25000, 50000, 150000, 1234567.89}
	for _, v := range values {
		require.InDelta(t, v, ParseNumber(Currency(v)), 0.005, "round trip %v", v)
	}
}
