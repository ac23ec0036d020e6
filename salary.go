package main

import (
	"github.com/shopspring/decimal"
)

// WorkPattern describes how a salary is spread over the year, so that hourly,
// daily and weekly rates can be converted to and from an annual figure
type WorkPattern struct {
	HoursPerWeek float64 `yaml:"hours_per_week" json:"hours_per_week"`
	DaysPerWeek  float64 `yaml:"days_per_week" json:"days_per_week"`
	WeeksPerYear float64 `yaml:"weeks_per_year" json:"weeks_per_year"`
}

// GetHoursPerWeek returns hours worked per week, using default if not set
func (wp WorkPattern) GetHoursPerWeek() float64 {
	if wp.HoursPerWeek <= 0 {
		return 37.5
	}
	return wp.HoursPerWeek
}

// GetDaysPerWeek returns days worked per week, using default if not set
func (wp WorkPattern) GetDaysPerWeek() float64 {
	if wp.DaysPerWeek <= 0 {
		return 5
	}
	return wp.DaysPerWeek
}

// GetWeeksPerYear returns paid weeks per year, using default if not set
func (wp WorkPattern) GetWeeksPerYear() float64 {
	if wp.WeeksPerYear <= 0 {
		return 52
	}
	return wp.WeeksPerYear
}

// PeriodsPerYear returns how many of the given period make up one year
func (wp WorkPattern) PeriodsPerYear(p PayPeriod) float64 {
	switch p {
	case Monthly:
		return 12
	case Weekly:
		return wp.GetWeeksPerYear()
	case Daily:
		return wp.GetWeeksPerYear() * wp.GetDaysPerWeek()
	case Hourly:
		return wp.GetWeeksPerYear() * wp.GetHoursPerWeek()
	default:
		return 1
	}
}

// ToAnnual converts an amount quoted per period into an annual figure
func ToAnnual(amount float64, p PayPeriod, wp WorkPattern) float64 {
	return amount * wp.PeriodsPerYear(p)
}

// FromAnnual converts an annual figure into an amount per period.
// It reverses ToAnnual, e.g. salary back to an hourly rate.
func FromAnnual(annual float64, p PayPeriod, wp WorkPattern) float64 {
	return annual / wp.PeriodsPerYear(p)
}

// PeriodSplit is gross, tax and net for one pay period, rounded to pence
type PeriodSplit struct {
	Period string          `json:"period"`
	Gross  decimal.Decimal `json:"gross"`
	Tax    decimal.Decimal `json:"tax"`
	Net    decimal.Decimal `json:"net"`
}

// TakeHome bundles a tax result with the figures shown alongside it
type TakeHome struct {
	Jurisdiction  string        `json:"jurisdiction"`
	TaxYear       string        `json:"tax_year"`
	Gross         float64       `json:"gross"`
	Result        TaxResult     `json:"result"`
	Net           float64       `json:"net"`
	EffectiveRate float64       `json:"effective_rate"`
	MarginalRate  float64       `json:"marginal_rate"`
	Periods       []PeriodSplit `json:"periods"`
}

// CalculateTakeHome computes tax for an annual gross income and derives net pay,
// rates and the per-period split
func CalculateTakeHome(grossAnnual float64, j Jurisdiction, taxConfig TaxConfig, wp WorkPattern) TakeHome {
	grossAnnual = clampIncome(grossAnnual)
	result := ComputeTaxWithConfig(grossAnnual, j, taxConfig)
	net := grossAnnual - result.TotalTax

	th := TakeHome{
		Jurisdiction:  j.String(),
		TaxYear:       taxConfig.GetTaxYear(),
		Gross:         grossAnnual,
		Result:        result,
		Net:           net,
		EffectiveRate: EffectiveRate(result, grossAnnual),
		MarginalRate:  MarginalRateWithConfig(grossAnnual, j, taxConfig),
	}

	for _, p := range []PayPeriod{Annual, Monthly, Weekly, Daily, Hourly} {
		th.Periods = append(th.Periods, PeriodSplit{
			Period: p.String(),
			Gross:  RoundPence(FromAnnual(grossAnnual, p, wp)),
			Tax:    RoundPence(FromAnnual(result.TotalTax, p, wp)),
			Net:    RoundPence(FromAnnual(net, p, wp)),
		})
	}

	return th
}
