package main

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "£0.00"},
		{12570, "£12,570.00"},
		{1234567.891, "£1,234,567.89"},
		{290.5, "£290.50"},
		{0.005, "£0.01"},
		{-1500, "-£1,500.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.expected {
			t.Errorf("FormatMoney(%v) = %q; want %q", tt.amount, got, tt.expected)
		}
	}
}

func TestFormatMoneyShort(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{500, "£500"},
		{45000, "£45k"},
		{1250000, "£1.25M"},
	}
	for _, tt := range tests {
		if got := FormatMoneyShort(tt.amount); got != tt.expected {
			t.Errorf("FormatMoneyShort(%v) = %q; want %q", tt.amount, got, tt.expected)
		}
	}
}

func TestRoundPence(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{290.5, "290.50"},
		{15.384615, "15.38"},
		{2.675, "2.68"},
		{-3.335, "-3.34"},
	}
	for _, tt := range tests {
		if got := RoundPence(tt.amount).StringFixed(2); got != tt.expected {
			t.Errorf("RoundPence(%v) = %s; want %s", tt.amount, got, tt.expected)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.675); got != "67.5%" {
		t.Errorf("FormatPercent(0.675) = %q", got)
	}
	if got := FormatPercent(0.2); got != "20.0%" {
		t.Errorf("FormatPercent(0.2) = %q", got)
	}
}
