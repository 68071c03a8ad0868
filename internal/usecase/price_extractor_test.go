package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"currency with thousands separator", "₹1,234.50 per month", "₹1234.50", true},
		{"plain currency amount", "₹60.00", "₹60.00", true},
		{"space after symbol", "$ 5", "$5", true},
		{"non-breaking space after symbol", "€\u00a012.30", "€12.30", true},
		{"multiple separators", "£1,000,000", "£1000000", true},
		{"no currency symbol", "Price: 42", "42", true},
		{"trailing symbol is not captured", "12.75 €", "12.75", true},
		{"first number wins", "₹5 to ₹9", "₹5", true},
		{"range keeps lower bound", "1.50-3.00", "1.50", true},
		{"no digits", "no digits here", "", false},
		{"not available", "N/A", "", false},
		{"empty", "", "", false},
		{"only spaces", " \u00a0 ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPrice(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractPrice(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractPrice(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	t.Run("strips currency symbol", func(t *testing.T) {
		amount, ok := ParseAmount("₹1234.50")
		if !ok {
			t.Fatal("expected amount to parse")
		}
		if !amount.Equal(decimal.RequireFromString("1234.5")) {
			t.Errorf("amount = %s, want 1234.5", amount)
		}
	})

	t.Run("plain number", func(t *testing.T) {
		amount, ok := ParseAmount("42")
		if !ok || !amount.Equal(decimal.NewFromInt(42)) {
			t.Errorf("ParseAmount(42) = %s, %v", amount, ok)
		}
	})

	t.Run("symbol without number", func(t *testing.T) {
		if _, ok := ParseAmount("$"); ok {
			t.Error("expected no amount for bare symbol")
		}
	})
}
