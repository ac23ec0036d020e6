package main

import (
	"math"
)

// Built-in 2024/25 rate templates. Widths are measured from the top of the
// (tapered) personal allowance, so they move down as the allowance is lost.
// These slices are never modified after start-up.
var (
	englandRateTemplate = RateTemplate{
		{Name: "Basic Rate", Rate: 0.20, Kind: FixedWidth, Width: 37700},
		{Name: "Higher Rate", Rate: 0.40, Kind: ExtendsToTopThreshold},
		{Name: "Additional Rate", Rate: 0.45, Kind: ExtendsToInfinity},
	}

	scotlandRateTemplate = RateTemplate{
		{Name: "Starter Rate", Rate: 0.19, Kind: FixedWidth, Width: 2306},
		{Name: "Basic Rate", Rate: 0.20, Kind: FixedWidth, Width: 11685},
		{Name: "Intermediate Rate", Rate: 0.21, Kind: FixedWidth, Width: 17101},
		{Name: "Higher Rate", Rate: 0.42, Kind: FixedWidth, Width: 31338},
		{Name: "Advanced Rate", Rate: 0.45, Kind: ExtendsToTopThreshold},
		{Name: "Top Rate", Rate: 0.48, Kind: ExtendsToInfinity},
	}
)

// DefaultRateTemplate returns the built-in template for a jurisdiction
func DefaultRateTemplate(j Jurisdiction) RateTemplate {
	switch j {
	case Scotland:
		return scotlandRateTemplate
	default:
		return englandRateTemplate
	}
}

// clampIncome enforces the non-negative income precondition at the public boundary
func clampIncome(grossIncome float64) float64 {
	if math.IsNaN(grossIncome) || grossIncome < 0 {
		return 0
	}
	return grossIncome
}

// TaperAllowanceWithConfig returns the Personal Allowance left after tapering.
// Above the tapering threshold the allowance is reduced by TaperingRate for each
// pound of income, never going below zero.
func TaperAllowanceWithConfig(grossIncome float64, taxConfig TaxConfig) float64 {
	grossIncome = clampIncome(grossIncome)
	personalAllowance := taxConfig.GetPersonalAllowance()
	threshold := taxConfig.GetTaperingThreshold()
	if grossIncome <= threshold {
		return personalAllowance
	}

	reduction := (grossIncome - threshold) * taxConfig.GetTaperingRate()
	return math.Max(0, personalAllowance-reduction)
}

// TaperAllowance is TaperAllowanceWithConfig using the default 2024/25 config
func TaperAllowance(grossIncome float64) float64 {
	return TaperAllowanceWithConfig(grossIncome, DefaultTaxConfig())
}

// BuildBandsWithConfig expands the jurisdiction's rate template into absolute
// gross-income upper bounds for the given (already tapered) allowance.
func BuildBandsWithConfig(allowance float64, j Jurisdiction, taxConfig TaxConfig) []BandThreshold {
	template := taxConfig.Template(j)
	bands := make([]BandThreshold, 0, len(template))

	cumulativeWidth := 0.0
	for _, band := range template {
		var upper float64
		switch band.Kind {
		case FixedWidth:
			cumulativeWidth += band.Width
			upper = allowance + cumulativeWidth
		case ExtendsToTopThreshold:
			// Fixed gross point regardless of how much allowance was lost
			upper = taxConfig.GetTopRateThreshold()
		default:
			upper = math.Inf(1)
		}
		bands = append(bands, BandThreshold{Name: band.Name, Rate: band.Rate, Upper: upper})
	}

	// The last band always absorbs whatever income remains
	if n := len(bands); n > 0 {
		bands[n-1].Upper = math.Inf(1)
	}

	return bands
}

// BuildBands is BuildBandsWithConfig using the default 2024/25 config
func BuildBands(allowance float64, j Jurisdiction) []BandThreshold {
	return BuildBandsWithConfig(allowance, j, DefaultTaxConfig())
}

// Allocate walks the bands in order, placing gross income above the allowance
// into each band and summing the tax. Every band appears in the breakdown,
// including those holding no income.
func Allocate(grossIncome float64, bands []BandThreshold, allowance float64) TaxResult {
	result := TaxResult{
		PersonalAllowance: allowance,
		TaxableIncome:     math.Max(0, grossIncome-allowance),
		Breakdown:         make([]TaxBreakdownEntry, 0, len(bands)),
	}

	previousThreshold := allowance
	for _, band := range bands {
		amountInBand := math.Max(0, math.Min(grossIncome, band.Upper)-previousThreshold)
		taxInBand := amountInBand * band.Rate

		result.TotalTax += taxInBand
		result.Breakdown = append(result.Breakdown, TaxBreakdownEntry{
			Name:   band.Name,
			Rate:   band.Rate,
			Amount: amountInBand,
			Tax:    taxInBand,
		})

		previousThreshold = band.Upper
	}

	return result
}

// ComputeTaxWithConfig runs taper, band construction and allocation for one income
func ComputeTaxWithConfig(grossIncome float64, j Jurisdiction, taxConfig TaxConfig) TaxResult {
	grossIncome = clampIncome(grossIncome)
	allowance := TaperAllowanceWithConfig(grossIncome, taxConfig)
	bands := BuildBandsWithConfig(allowance, j, taxConfig)
	return Allocate(grossIncome, bands, allowance)
}

// ComputeTaxFor is ComputeTaxWithConfig using the default 2024/25 config
func ComputeTaxFor(grossIncome float64, j Jurisdiction) TaxResult {
	return ComputeTaxWithConfig(grossIncome, j, DefaultTaxConfig())
}

// ComputeTax calculates income tax for a gross annual income. The jurisdiction
// identifier falls back to England/Wales/NI when not recognised.
func ComputeTax(grossAnnualIncome float64, jurisdiction string) TaxResult {
	return ComputeTaxFor(grossAnnualIncome, ParseJurisdiction(jurisdiction))
}

// EffectiveRate returns total tax as a fraction of gross income
func EffectiveRate(result TaxResult, grossIncome float64) float64 {
	if grossIncome <= 0 {
		return 0
	}
	return result.TotalTax / grossIncome
}

// MarginalRateWithConfig returns the tax taken from the next pound of income.
// Inside the taper zone this exceeds the band rate because allowance is lost too.
func MarginalRateWithConfig(grossIncome float64, j Jurisdiction, taxConfig TaxConfig) float64 {
	grossIncome = clampIncome(grossIncome)
	taxNow := ComputeTaxWithConfig(grossIncome, j, taxConfig).TotalTax
	taxNext := ComputeTaxWithConfig(grossIncome+1, j, taxConfig).TotalTax
	return taxNext - taxNow
}

// MarginalRate is MarginalRateWithConfig using the default 2024/25 config
func MarginalRate(grossIncome float64, j Jurisdiction) float64 {
	return MarginalRateWithConfig(grossIncome, j, DefaultTaxConfig())
}

// GrossUpForNetWithConfig finds the gross income that leaves netNeeded after tax.
// Uses binary search; net income is strictly increasing in gross for rates < 1.
func GrossUpForNetWithConfig(netNeeded float64, j Jurisdiction, taxConfig TaxConfig) (gross, tax float64) {
	if netNeeded <= 0 || math.IsNaN(netNeeded) || math.IsInf(netNeeded, 0) {
		return 0, 0
	}

	low := netNeeded
	high := netNeeded * 2
	// Configured templates may tax close to 100%, so widen until high is enough
	for i := 0; i < 64; i++ {
		highTax := ComputeTaxWithConfig(high, j, taxConfig).TotalTax
		if high-highTax >= netNeeded {
			break
		}
		low = high
		high *= 2
	}

	for i := 0; i < 100; i++ {
		mid := (low + high) / 2
		midTax := ComputeTaxWithConfig(mid, j, taxConfig).TotalTax
		netFromMid := mid - midTax

		if math.Abs(netFromMid-netNeeded) < 0.005 {
			return mid, midTax
		}

		if netFromMid < netNeeded {
			low = mid
		} else {
			high = mid
		}
	}

	finalTax := ComputeTaxWithConfig(high, j, taxConfig).TotalTax
	return high, finalTax
}

// GrossUpForNet is GrossUpForNetWithConfig using the default 2024/25 config
func GrossUpForNet(netNeeded float64, j Jurisdiction) (gross, tax float64) {
	return GrossUpForNetWithConfig(netNeeded, j, DefaultTaxConfig())
}
