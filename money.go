package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RoundPence rounds an amount to the nearest penny (half away from zero)
func RoundPence(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// FormatMoney formats an amount as full sterling with grouping, e.g. £12,570.00
func FormatMoney(amount float64) string {
	rounded := RoundPence(amount)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	p := message.NewPrinter(language.BritishEnglish)
	return sign + "£" + p.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatMoneyShort formats a float as an abbreviated currency string
func FormatMoneyShort(amount float64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("£%.2fM", amount/1000000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("£%.0fk", amount/1000)
	}
	return fmt.Sprintf("£%.0f", amount)
}

// FormatPercent formats a decimal rate as a percentage, e.g. 0.2 -> 20.0%
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
