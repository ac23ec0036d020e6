package main

import (
	"fmt"
	"io"
	"strings"
)

// PrintHeader prints the calculator banner and the inputs in use
func PrintHeader(w io.Writer, config *Config, grossAnnual float64) {
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                    UK INCOME TAX / TAKE-HOME PAY CALCULATOR                  ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Tax year:      %s\n", config.Tax.GetTaxYear())
	fmt.Fprintf(w, "  Jurisdiction:  %s\n", config.GetJurisdiction())
	fmt.Fprintf(w, "  Gross income:  %s per year\n", FormatMoney(grossAnnual))
	fmt.Fprintf(w, "  Work pattern:  %.1f hours/week, %.0f days/week, %.0f weeks/year\n",
		config.Work.GetHoursPerWeek(), config.Work.GetDaysPerWeek(), config.Work.GetWeeksPerYear())
	fmt.Fprintln(w)
}

// PrintTaxBreakdown prints the bands holding income and the totals
func PrintTaxBreakdown(w io.Writer, th TakeHome) {
	fmt.Fprintf(w, "%-22s %8s %16s %14s\n", "Band", "Rate", "Income in band", "Tax")
	fmt.Fprintln(w, strings.Repeat("─", 63))

	fmt.Fprintf(w, "%-22s %8s %16s %14s\n", "Personal Allowance", FormatPercent(0),
		FormatMoney(minFloat(th.Gross, th.Result.PersonalAllowance)), FormatMoney(0))
	for _, band := range th.Result.NonZeroBands() {
		fmt.Fprintf(w, "%-22s %8s %16s %14s\n", band.Name, FormatPercent(band.Rate),
			FormatMoney(band.Amount), FormatMoney(band.Tax))
	}

	fmt.Fprintln(w, strings.Repeat("─", 63))
	fmt.Fprintf(w, "%-22s %8s %16s %14s\n", "Total", "", FormatMoney(th.Result.TaxableIncome), FormatMoney(th.Result.TotalTax))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Personal allowance: %s\n", FormatMoney(th.Result.PersonalAllowance))
	fmt.Fprintf(w, "  Taxable income:     %s\n", FormatMoney(th.Result.TaxableIncome))
	fmt.Fprintf(w, "  Income tax:         %s\n", FormatMoney(th.Result.TotalTax))
	fmt.Fprintf(w, "  Take-home pay:      %s\n", FormatMoney(th.Net))
	fmt.Fprintf(w, "  Effective rate:     %s\n", FormatPercent(th.EffectiveRate))
	fmt.Fprintf(w, "  Marginal rate:      %s\n", FormatPercent(th.MarginalRate))
	fmt.Fprintln(w)
}

// PrintPeriodSplit prints gross, tax and net for each pay period
func PrintPeriodSplit(w io.Writer, th TakeHome) {
	fmt.Fprintf(w, "%-10s %14s %14s %14s\n", "Period", "Gross", "Tax", "Net")
	fmt.Fprintln(w, strings.Repeat("─", 55))
	for _, p := range th.Periods {
		fmt.Fprintf(w, "%-10s %14s %14s %14s\n", p.Period,
			FormatMoney(p.Gross.InexactFloat64()),
			FormatMoney(p.Tax.InexactFloat64()),
			FormatMoney(p.Net.InexactFloat64()))
	}
	fmt.Fprintln(w)
}

// PrintGrossUp prints the result of a net-to-gross search
func PrintGrossUp(w io.Writer, net, gross, tax float64, j Jurisdiction) {
	fmt.Fprintf(w, "  To take home %s a year in %s you need to earn %s gross (%s tax).\n\n",
		FormatMoney(net), j, FormatMoney(gross), FormatMoney(tax))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
