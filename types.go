package main

import (
	"math"
	"strings"
)

// Jurisdiction selects which set of income tax rates applies
type Jurisdiction int

const (
	EnglandWalesNI Jurisdiction = iota // Default: rest of UK rates
	Scotland                           // Scottish rates (six bands)
)

// DefaultJurisdiction is used whenever an identifier is not recognised
const DefaultJurisdiction = EnglandWalesNI

func (j Jurisdiction) String() string {
	switch j {
	case EnglandWalesNI:
		return "England/Wales/NI"
	case Scotland:
		return "Scotland"
	default:
		return "Unknown"
	}
}

// ID returns the short identifier used in config files and the API
func (j Jurisdiction) ID() string {
	switch j {
	case Scotland:
		return "scotland"
	default:
		return "england"
	}
}

// AllJurisdictions lists every supported jurisdiction in display order
func AllJurisdictions() []Jurisdiction {
	return []Jurisdiction{EnglandWalesNI, Scotland}
}

// ParseJurisdiction maps an identifier to a Jurisdiction.
// Unrecognised identifiers silently fall back to DefaultJurisdiction.
func ParseJurisdiction(s string) Jurisdiction {
	if j, ok := lookupJurisdiction(s); ok {
		return j
	}
	return DefaultJurisdiction
}

// lookupJurisdiction is the strict form of ParseJurisdiction
func lookupJurisdiction(s string) (Jurisdiction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scotland", "scottish", "sco":
		return Scotland, true
	case "england", "england/wales/ni", "england/wales/northern ireland", "ruk", "wales", "ni", "northern ireland", "eng":
		return EnglandWalesNI, true
	default:
		return DefaultJurisdiction, false
	}
}

// WidthKind says how far a band in a rate template extends
type WidthKind int

const (
	FixedWidth            WidthKind = iota // Band covers Width pounds of taxable income
	ExtendsToTopThreshold                  // Band ends at the fixed top-rate threshold
	ExtendsToInfinity                      // Band is open-ended
)

func (k WidthKind) String() string {
	switch k {
	case FixedWidth:
		return "fixed"
	case ExtendsToTopThreshold:
		return "to_top_threshold"
	case ExtendsToInfinity:
		return "unbounded"
	default:
		return "unknown"
	}
}

// parseWidthKind is the inverse of WidthKind.String, used for YAML templates
func parseWidthKind(s string) WidthKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to_top_threshold", "top", "top_threshold":
		return ExtendsToTopThreshold
	case "unbounded", "infinity", "open":
		return ExtendsToInfinity
	default:
		return FixedWidth
	}
}

// RateBand is one entry of a rate template: a rate and a width relative to
// the top of the previous band
type RateBand struct {
	Name  string
	Rate  float64
	Kind  WidthKind
	Width float64 // Only meaningful when Kind == FixedWidth
}

// RateTemplate is an ordered list of bands above the personal allowance
type RateTemplate []RateBand

// BandThreshold is a rate band resolved to an absolute gross-income upper bound
type BandThreshold struct {
	Name  string
	Rate  float64
	Upper float64 // +Inf for the open-ended band
}

// IsOpen reports whether the band has no upper bound
func (b BandThreshold) IsOpen() bool {
	return math.IsInf(b.Upper, 1)
}

// TaxBreakdownEntry is the tax owed in a single band
type TaxBreakdownEntry struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"` // Gross income falling in this band
	Tax    float64 `json:"tax"`
}

// TaxResult is the outcome of a tax calculation for one gross income figure
type TaxResult struct {
	PersonalAllowance float64             `json:"personal_allowance"`
	TaxableIncome     float64             `json:"taxable_income"`
	TotalTax          float64             `json:"total_tax"`
	Breakdown         []TaxBreakdownEntry `json:"breakdown"`
}

// NonZeroBands returns only the bands that actually hold income, for display
func (r TaxResult) NonZeroBands() []TaxBreakdownEntry {
	var out []TaxBreakdownEntry
	for _, e := range r.Breakdown {
		if e.Amount > 0 {
			out = append(out, e)
		}
	}
	return out
}

// PayPeriod is the unit a salary figure is quoted in
type PayPeriod int

const (
	Annual PayPeriod = iota
	Monthly
	Weekly
	Daily
	Hourly
)

func (p PayPeriod) String() string {
	switch p {
	case Annual:
		return "annual"
	case Monthly:
		return "monthly"
	case Weekly:
		return "weekly"
	case Daily:
		return "daily"
	case Hourly:
		return "hourly"
	default:
		return "unknown"
	}
}

// ParsePayPeriod parses a period name, defaulting to Annual
func ParsePayPeriod(s string) PayPeriod {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "pm":
		return Monthly
	case "weekly", "week", "pw":
		return Weekly
	case "daily", "day", "pd":
		return Daily
	case "hourly", "hour", "ph":
		return Hourly
	default:
		return Annual
	}
}
