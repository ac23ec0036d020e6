package main

import (
	"math"
	"testing"
)

// Tax Calculation Validation Tests
//
// These tests validate tax calculations against official UK Government figures.
// Reference: https://www.gov.uk/income-tax-rates (2024/25 tax year)
//
// England, Wales and Northern Ireland 2024/25:
// - Personal Allowance: £0 - £12,570 (0%)
// - Basic Rate: £12,571 - £50,270 (20%)
// - Higher Rate: £50,271 - £125,140 (40%)
// - Additional Rate: over £125,140 (45%)
//
// Scotland 2024/25 (https://www.gov.uk/scottish-income-tax):
// - Starter £12,571 - £14,876 (19%), Basic £14,877 - £26,561 (20%),
//   Intermediate £26,562 - £43,662 (21%), Higher £43,663 - £75,000 (42%),
//   Advanced £75,001 - £125,140 (45%), Top over £125,140 (48%)
//
// Personal Allowance Tapering:
// - Starts at £100,000 income
// - Reduces by £1 for every £2 above £100,000
// - Fully removed at £125,140
// Reference: https://www.gov.uk/income-tax-rates/income-over-100000

// tolerance for floating point comparisons (£0.01)
const taxTolerance = 0.01

func assertTaxEquals(t *testing.T, expected, actual float64, description string) {
	t.Helper()
	if math.Abs(expected-actual) > taxTolerance {
		t.Errorf("%s: expected £%.2f, got £%.2f (diff: £%.2f)",
			description, expected, actual, actual-expected)
	}
}

// =============================================================================
// Allowance Taper
// =============================================================================

func TestTaperAllowance(t *testing.T) {
	tests := []struct {
		income   float64
		expected float64
	}{
		{0, 12570},
		{50000, 12570},
		{100000, 12570}, // Exactly at threshold, no taper
		{100001, 12569.5},
		{105000, 10070}, // 12570 - 5000/2
		{110000, 7570},
		{120000, 2570},
		{125140, 0}, // Fully removed
		{125141, 0},
		{200000, 0},
	}

	for _, tc := range tests {
		got := TaperAllowance(tc.income)
		if got != tc.expected {
			t.Errorf("TaperAllowance(%.0f) = %.2f; want %.2f", tc.income, got, tc.expected)
		}
	}
}

func TestTaperAllowance_OutOfContractInputClamped(t *testing.T) {
	if got := TaperAllowance(-5000); got != 12570 {
		t.Errorf("negative income should be treated as zero, got allowance %.2f", got)
	}
	if got := TaperAllowance(math.NaN()); got != 12570 {
		t.Errorf("NaN income should be treated as zero, got allowance %.2f", got)
	}
}

func TestTaperAllowanceWithConfig_CustomValues(t *testing.T) {
	tc := TaxConfig{PersonalAllowance: 10000, TaperingThreshold: 80000, TaperingRate: 0.5}
	if got := TaperAllowanceWithConfig(90000, tc); got != 5000 {
		t.Errorf("expected £5,000 allowance, got £%.2f", got)
	}
	if got := tc.GetAllowanceRemovedThreshold(); got != 100000 {
		t.Errorf("expected allowance removed at £100,000, got £%.0f", got)
	}
}

// =============================================================================
// Band Table Builder
// =============================================================================

func TestBuildBands_EnglandFullAllowance(t *testing.T) {
	bands := BuildBands(12570, EnglandWalesNI)
	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}

	expected := []struct {
		name  string
		rate  float64
		upper float64
	}{
		{"Basic Rate", 0.20, 50270},
		{"Higher Rate", 0.40, 125140},
		{"Additional Rate", 0.45, math.Inf(1)},
	}
	for i, e := range expected {
		if bands[i].Name != e.name || bands[i].Rate != e.rate || bands[i].Upper != e.upper {
			t.Errorf("band %d = %+v; want %s %.2f up to %.0f", i, bands[i], e.name, e.rate, e.upper)
		}
	}
	if !bands[2].IsOpen() {
		t.Error("last band should be open-ended")
	}
}

func TestBuildBands_TopThresholdIndependentOfAllowance(t *testing.T) {
	// Basic band moves down with the allowance; the additional rate always
	// starts at £125,140
	for _, allowance := range []float64{12570, 7570, 0} {
		bands := BuildBands(allowance, EnglandWalesNI)
		if bands[0].Upper != allowance+37700 {
			t.Errorf("allowance %.0f: basic upper = %.0f; want %.0f", allowance, bands[0].Upper, allowance+37700)
		}
		if bands[1].Upper != 125140 {
			t.Errorf("allowance %.0f: higher upper = %.0f; want 125140", allowance, bands[1].Upper)
		}
	}
}

func TestBuildBands_Scotland(t *testing.T) {
	bands := BuildBands(12570, Scotland)
	expectedUppers := []float64{14876, 26561, 43662, 75000, 125140, math.Inf(1)}
	if len(bands) != len(expectedUppers) {
		t.Fatalf("expected %d bands, got %d", len(expectedUppers), len(bands))
	}
	for i, upper := range expectedUppers {
		if bands[i].Upper != upper {
			t.Errorf("band %s upper = %.0f; want %.0f", bands[i].Name, bands[i].Upper, upper)
		}
	}
}

func TestBuildBands_UpperBoundsNonDecreasing(t *testing.T) {
	for _, j := range AllJurisdictions() {
		for allowance := 0.0; allowance <= 12570; allowance += 628.5 {
			bands := BuildBands(allowance, j)
			previous := allowance
			for _, b := range bands {
				if b.Upper < previous {
					t.Errorf("%s allowance %.1f: band %s upper %.2f below previous %.2f",
						j, allowance, b.Name, b.Upper, previous)
				}
				previous = b.Upper
			}
		}
	}
}

func TestBuildBandsWithConfig_TemplateOverride(t *testing.T) {
	tc := DefaultTaxConfig()
	tc.RateTemplates = map[string][]RateBandConfig{
		"england": {
			{Name: "Flat", Rate: 0.25, Extends: "unbounded"},
		},
	}

	bands := BuildBandsWithConfig(12570, EnglandWalesNI, tc)
	if len(bands) != 1 || bands[0].Name != "Flat" || !bands[0].IsOpen() {
		t.Fatalf("override not applied: %+v", bands)
	}

	// Scotland keeps the built-in template
	if got := len(BuildBandsWithConfig(12570, Scotland, tc)); got != 6 {
		t.Errorf("Scotland should keep 6 bands, got %d", got)
	}
}

// =============================================================================
// Tax Allocator
// =============================================================================

func TestComputeTax_England(t *testing.T) {
	tests := []struct {
		income      float64
		expectedTax float64
		calculation string
	}{
		{0, 0, "no income"},
		{12570, 0, "exactly at Personal Allowance"},
		{20000, 1486.00, "(20000 - 12570) × 0.20"},
		{30000, 3486.00, "(30000 - 12570) × 0.20"},
		{50270, 7540.00, "37700 × 0.20"},
		{60000, 11432.00, "7540 + (60000 - 50270) × 0.40"},
		{100000, 27432.00, "7540 + (100000 - 50270) × 0.40"},
		// Allowance 10070, basic band ends at 47770
		{105000, 30432.00, "7540 + (105000 - 47770) × 0.40"},
		// Allowance 7570, basic band ends at 45270
		{110000, 33432.00, "7540 + (110000 - 45270) × 0.40"},
		{125140, 42516.00, "7540 + 87440 × 0.40"},
		{150000, 53703.00, "7540 + 34976 + (150000 - 125140) × 0.45"},
		{200000, 76203.00, "7540 + 34976 + (200000 - 125140) × 0.45"},
	}

	for _, tc := range tests {
		result := ComputeTax(tc.income, "england")
		assertTaxEquals(t, tc.expectedTax, result.TotalTax, tc.calculation)
	}
}

func TestComputeTax_ScenarioA_BasicRateOnly(t *testing.T) {
	result := ComputeTax(30000, "England/Wales/NI")

	if result.PersonalAllowance != 12570 {
		t.Errorf("allowance = %.2f; want 12570", result.PersonalAllowance)
	}
	if result.TaxableIncome != 17430 {
		t.Errorf("taxable = %.2f; want 17430", result.TaxableIncome)
	}
	assertTaxEquals(t, 3486.00, result.TotalTax, "30k basic rate")

	if len(result.Breakdown) != 3 {
		t.Fatalf("all bands should be returned, got %d", len(result.Breakdown))
	}
	if result.Breakdown[0].Amount != 17430 {
		t.Errorf("basic band amount = %.2f; want 17430", result.Breakdown[0].Amount)
	}
	for _, e := range result.Breakdown[1:] {
		if e.Amount != 0 || e.Tax != 0 {
			t.Errorf("band %s should be empty, got amount %.2f tax %.2f", e.Name, e.Amount, e.Tax)
		}
	}
	if len(result.NonZeroBands()) != 1 {
		t.Errorf("expected one non-empty band, got %d", len(result.NonZeroBands()))
	}
}

func TestComputeTax_ScenarioB_FullTaper(t *testing.T) {
	result := ComputeTax(150000, "england")

	if result.PersonalAllowance != 0 {
		t.Errorf("allowance should be fully tapered, got %.2f", result.PersonalAllowance)
	}
	if result.TaxableIncome != 150000 {
		t.Errorf("taxable = %.2f; want 150000", result.TaxableIncome)
	}

	expected := 37700*0.20 + (125140-37700)*0.40 + (150000-125140)*0.45
	assertTaxEquals(t, expected, result.TotalTax, "150k fully tapered")

	amounts := []float64{37700, 125140 - 37700, 150000 - 125140}
	for i, a := range amounts {
		if math.Abs(result.Breakdown[i].Amount-a) > 1e-9 {
			t.Errorf("band %s amount = %.2f; want %.2f", result.Breakdown[i].Name, result.Breakdown[i].Amount, a)
		}
	}
}

func TestComputeTax_ScenarioC_Scotland(t *testing.T) {
	result := ComputeTax(50000, "scotland")

	if result.PersonalAllowance != 12570 {
		t.Errorf("allowance = %.2f; want 12570", result.PersonalAllowance)
	}

	// Starter: 2306 × 0.19 = 438.14
	// Basic: 11685 × 0.20 = 2337.00
	// Intermediate: 17101 × 0.21 = 3591.21
	// Higher: (50000 - 43662) × 0.42 = 6338 × 0.42 = 2661.96
	// Total: 9028.31
	expectedTax := []float64{438.14, 2337.00, 3591.21, 2661.96, 0, 0}
	if len(result.Breakdown) != len(expectedTax) {
		t.Fatalf("expected %d bands, got %d", len(expectedTax), len(result.Breakdown))
	}
	for i, tax := range expectedTax {
		assertTaxEquals(t, tax, result.Breakdown[i].Tax, result.Breakdown[i].Name)
	}
	assertTaxEquals(t, 9028.31, result.TotalTax, "Scotland 50k")
}

func TestComputeTax_ScotlandAllBands(t *testing.T) {
	// Allowance 0: starter 438.14, basic 2337, intermediate 3591.21,
	// higher 31338 × 0.42 = 13161.96, advanced (125140 - 62430) × 0.45 = 28219.50,
	// top (150000 - 125140) × 0.48 = 11932.80
	result := ComputeTax(150000, "scotland")
	assertTaxEquals(t, 59680.61, result.TotalTax, "Scotland 150k")

	// Just above the allowance only the starter band is used
	result = ComputeTax(14000, "scotland")
	assertTaxEquals(t, 271.70, result.TotalTax, "Scotland 14k")
}

func TestComputeTax_UnknownJurisdictionFallsBack(t *testing.T) {
	for _, income := range []float64{0, 30000, 110000, 150000} {
		got := ComputeTax(income, "atlantis")
		want := ComputeTax(income, "england")
		if got.TotalTax != want.TotalTax || len(got.Breakdown) != len(want.Breakdown) {
			t.Errorf("income %.0f: unknown jurisdiction gave %.2f; default gave %.2f",
				income, got.TotalTax, want.TotalTax)
		}
	}
}

func TestAllocate_EmptyBands(t *testing.T) {
	result := Allocate(50000, nil, 12570)
	if result.TotalTax != 0 || len(result.Breakdown) != 0 {
		t.Errorf("no bands should produce no tax, got %+v", result)
	}
	if result.TaxableIncome != 37430 {
		t.Errorf("taxable = %.2f; want 37430", result.TaxableIncome)
	}
}

func TestParseJurisdiction(t *testing.T) {
	tests := []struct {
		input    string
		expected Jurisdiction
	}{
		{"england", EnglandWalesNI},
		{"England/Wales/NI", EnglandWalesNI},
		{"rUK", EnglandWalesNI},
		{"Scotland", Scotland},
		{" scotland ", Scotland},
		{"", EnglandWalesNI},
		{"mars", EnglandWalesNI},
	}

	for _, tt := range tests {
		if got := ParseJurisdiction(tt.input); got != tt.expected {
			t.Errorf("ParseJurisdiction(%q) = %s; want %s", tt.input, got, tt.expected)
		}
	}
}

// =============================================================================
// Marginal rate and gross-up
// =============================================================================

func TestMarginalRate(t *testing.T) {
	tests := []struct {
		income   float64
		j        Jurisdiction
		expected float64
		desc     string
	}{
		{5000, EnglandWalesNI, 0, "inside allowance"},
		{30000, EnglandWalesNI, 0.20, "basic rate"},
		{60000, EnglandWalesNI, 0.40, "higher rate"},
		{110000, EnglandWalesNI, 0.60, "60% taper trap"},
		{130000, EnglandWalesNI, 0.45, "additional rate"},
		{110000, Scotland, 0.675, "Scottish advanced rate inside taper"},
		{130000, Scotland, 0.48, "Scottish top rate"},
	}

	for _, tc := range tests {
		got := MarginalRate(tc.income, tc.j)
		if math.Abs(got-tc.expected) > 1e-6 {
			t.Errorf("%s: marginal rate at %.0f = %.4f; want %.4f", tc.desc, tc.income, got, tc.expected)
		}
	}
}

func TestGrossUpForNet(t *testing.T) {
	tests := []struct {
		net           float64
		j             Jurisdiction
		expectedGross float64
	}{
		{10000, EnglandWalesNI, 10000},   // Within allowance, no tax
		{30000, EnglandWalesNI, 34357.5}, // 0.8g + 2514 = 30000
	}

	for _, tc := range tests {
		gross, tax := GrossUpForNet(tc.net, tc.j)
		assertTaxEquals(t, tc.expectedGross, gross, "gross up")
		assertTaxEquals(t, tc.net, gross-tax, "net after gross up")
	}

	if gross, tax := GrossUpForNet(0, EnglandWalesNI); gross != 0 || tax != 0 {
		t.Errorf("zero net should give zero gross, got %.2f/%.2f", gross, tax)
	}
}

func TestGrossUpForNetWithConfig_HighRateTemplate(t *testing.T) {
	// A 90% flat rate needs more than 2.5× the net: with the allowance fully
	// tapered, net = 0.1 × gross, so £30,000 net needs £300,000 gross
	tc := DefaultTaxConfig()
	tc.RateTemplates = map[string][]RateBandConfig{
		"england": {{Name: "Flat", Rate: 0.9, Extends: "unbounded"}},
	}

	gross, tax := GrossUpForNetWithConfig(30000, EnglandWalesNI, tc)
	if math.Abs(gross-300000) > 0.1 {
		t.Errorf("gross = £%.2f; want £300,000", gross)
	}
	assertTaxEquals(t, 30000, gross-tax, "net after gross up")
}

func TestEffectiveRate(t *testing.T) {
	result := ComputeTax(30000, "england")
	got := EffectiveRate(result, 30000)
	if math.Abs(got-0.1162) > 1e-9 {
		t.Errorf("effective rate = %.4f; want 0.1162", got)
	}
	if EffectiveRate(ComputeTax(0, "england"), 0) != 0 {
		t.Error("effective rate on zero income should be 0")
	}
}
