package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12.3", "12.30"},
		{"1000", "1,000.00"},
		{"1234567.555", "1,234,567.56"},
		{"-3", "-3.00"},
		{"-0.001", "0.00"},
		{"-98765.4", "-98,765.40"},
	}
	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		currency string
		in       string
		money    string
		signed   string
	}{
		{"$", "800", "$800.00", "+$800.00"},
		{"$", "-150.5", "-$150.50", "-$150.50"},
		{"EUR ", "1200", "EUR 1,200.00", "+EUR 1,200.00"},
		{"", "0", "0.00", "+0.00"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := FormatMoney(tt.currency, d); got != tt.money {
			t.Errorf("FormatMoney(%q, %s) = %q, want %q", tt.currency, tt.in, got, tt.money)
		}
		if got := FormatSigned(tt.currency, d); got != tt.signed {
			t.Errorf("FormatSigned(%q, %s) = %q, want %q", tt.currency, tt.in, got, tt.signed)
		}
	}
}

func TestFormatNumberAndPercent(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Errorf("FormatNumber(-1000) = %q", got)
	}
	if got := FormatPercent(1.3333); got != "133.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
}
