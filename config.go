package main

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// RateBandConfig is a rate template entry as written in YAML.
// Extends is empty for a fixed-width band, "top_threshold" for a band ending at
// the top-rate threshold and "unbounded" for the open band.
type RateBandConfig struct {
	Name    string  `yaml:"name" json:"name"`
	Rate    float64 `yaml:"rate" json:"rate"`
	Width   float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Extends string  `yaml:"extends,omitempty" json:"extends,omitempty"`
}

// TaxConfig holds UK income tax settings for one tax year.
// These values are set by HMRC and may change with each tax year
type TaxConfig struct {
	TaxYear string `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	// Personal Allowance is the amount you can earn tax-free (2024/25: £12,570)
	PersonalAllowance float64 `yaml:"personal_allowance" json:"personal_allowance"`
	// TaperingThreshold is the income level above which personal allowance starts to reduce (2024/25: £100,000)
	TaperingThreshold float64 `yaml:"tapering_threshold" json:"tapering_threshold"`
	// TaperingRate is how much allowance is lost per £1 over threshold (2024/25: £0.50)
	TaperingRate float64 `yaml:"tapering_rate" json:"tapering_rate"`
	// TopRateThreshold is the gross income where the top band starts (2024/25: £125,140)
	TopRateThreshold float64 `yaml:"top_rate_threshold" json:"top_rate_threshold"`
	// RateTemplates overrides the built-in templates, keyed by jurisdiction id
	RateTemplates map[string][]RateBandConfig `yaml:"rate_templates,omitempty" json:"rate_templates,omitempty"`
}

// GetPersonalAllowance returns the personal allowance, using default if not set
func (tc *TaxConfig) GetPersonalAllowance() float64 {
	if tc.PersonalAllowance <= 0 {
		return 12570.0
	}
	return tc.PersonalAllowance
}

// GetTaperingThreshold returns the tapering threshold, using default if not set
func (tc *TaxConfig) GetTaperingThreshold() float64 {
	if tc.TaperingThreshold <= 0 {
		return 100000.0
	}
	return tc.TaperingThreshold
}

// GetTaperingRate returns the tapering rate, using default if not set
func (tc *TaxConfig) GetTaperingRate() float64 {
	if tc.TaperingRate <= 0 {
		return 0.5
	}
	return tc.TaperingRate
}

// GetTopRateThreshold returns the top-rate threshold, using default if not set
func (tc *TaxConfig) GetTopRateThreshold() float64 {
	if tc.TopRateThreshold <= 0 {
		return 125140.0
	}
	return tc.TopRateThreshold
}

// GetTaxYear returns the tax year label, using default if not set
func (tc *TaxConfig) GetTaxYear() string {
	if tc.TaxYear == "" {
		return "2024/25"
	}
	return tc.TaxYear
}

// GetAllowanceRemovedThreshold returns the income at which personal allowance is fully removed
func (tc *TaxConfig) GetAllowanceRemovedThreshold() float64 {
	return tc.GetTaperingThreshold() + tc.GetPersonalAllowance()/tc.GetTaperingRate()
}

// Template returns the rate template for a jurisdiction: the configured override
// if one exists, otherwise the built-in table
func (tc *TaxConfig) Template(j Jurisdiction) RateTemplate {
	if bands := tc.RateTemplates[j.ID()]; len(bands) > 0 {
		return toRateTemplate(bands)
	}
	// Aliases are tried in sorted order so the choice never depends on map order
	for _, key := range sortedTemplateKeys(tc.RateTemplates) {
		bands := tc.RateTemplates[key]
		if kj, ok := lookupJurisdiction(key); ok && kj == j && len(bands) > 0 {
			return toRateTemplate(bands)
		}
	}
	return DefaultRateTemplate(j)
}

func sortedTemplateKeys(templates map[string][]RateBandConfig) []string {
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func toRateTemplate(bands []RateBandConfig) RateTemplate {
	template := make(RateTemplate, len(bands))
	for i, b := range bands {
		kind := FixedWidth
		if b.Extends != "" {
			kind = parseWidthKind(b.Extends)
		}
		template[i] = RateBand{Name: b.Name, Rate: b.Rate, Kind: kind, Width: b.Width}
	}
	return template
}

// DefaultTaxConfig returns the default UK tax configuration for 2024/25
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		TaxYear:           "2024/25",
		PersonalAllowance: 12570.0,
		TaperingThreshold: 100000.0,
		TaperingRate:      0.5,
		TopRateThreshold:  125140.0,
	}
}

// IncomeConfig holds the income figure the calculator starts with
type IncomeConfig struct {
	Amount float64 `yaml:"amount" json:"amount"`
	Period string  `yaml:"period" json:"period"` // annual, monthly, weekly, daily, hourly
}

// Config holds the complete configuration
type Config struct {
	Jurisdiction string       `yaml:"jurisdiction" json:"jurisdiction"`
	Income       IncomeConfig `yaml:"income" json:"income"`
	Work         WorkPattern  `yaml:"work" json:"work"`
	Tax          TaxConfig    `yaml:"tax" json:"tax"`
}

// GetJurisdiction returns the configured jurisdiction (England/Wales/NI if unset or unknown)
func (c *Config) GetJurisdiction() Jurisdiction {
	return ParseJurisdiction(c.Jurisdiction)
}

// AnnualIncome returns the configured income converted to an annual figure
func (c *Config) AnnualIncome() float64 {
	return ToAnnual(c.Income.Amount, ParsePayPeriod(c.Income.Period), c.Work)
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", filename)
	}

	config, err := parseConfig(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", filename)
	}
	return config, nil
}

// LoadDefaultConfig loads the default configuration from embedded default-config.yaml
func LoadDefaultConfig() (*Config, error) {
	config, err := parseConfig(defaultConfigYAML)
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded default config")
	}
	return config, nil
}

// LoadConfigOrDefault loads filename, falling back to the embedded defaults when
// the file does not exist
func LoadConfigOrDefault(filename string) (*Config, error) {
	config, err := LoadConfig(filename)
	if errors.Is(err, os.ErrNotExist) {
		return LoadDefaultConfig()
	}
	return config, err
}

func parseConfig(content string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(content)), &config); err != nil {
		return nil, err
	}
	if problems := config.Validate(); len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}
	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	header := []byte(`# Take-Home Pay Calculator Configuration
#
# jurisdiction: england (England, Wales, Northern Ireland) or scotland
# income.period: annual, monthly, weekly, daily or hourly
# Percentages may be written as 0.20 or 20%
# tax.rate_templates replaces the built-in bands for a jurisdiction. Each band
# has a name, a rate and either a width or extends: top_threshold | unbounded.

`)
	content := append(header, data...)
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return errors.Wrapf(err, "write config %s", filename)
	}
	return nil
}

// preprocessPercentages converts percentage values like "20%" to decimal "0.2"
func preprocessPercentages(content string) string {
	re := regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}

// Validate returns a list of problems with the configuration (empty when valid)
func (c *Config) Validate() []string {
	var problems []string

	if c.Jurisdiction != "" {
		if _, ok := lookupJurisdiction(c.Jurisdiction); !ok {
			problems = append(problems, fmt.Sprintf("unknown jurisdiction %q", c.Jurisdiction))
		}
	}
	if err := validateMoney(c.Income.Amount, "income.amount"); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Tax.TaperingRate < 0 || c.Tax.TaperingRate > 1 {
		problems = append(problems, "tax.tapering_rate must be between 0 and 1")
	}
	if c.Tax.TopRateThreshold > 0 && c.Tax.TopRateThreshold < c.Tax.GetTaperingThreshold() {
		problems = append(problems, "tax.top_rate_threshold must not be below tax.tapering_threshold")
	}
	seen := make(map[Jurisdiction]string)
	for _, key := range sortedTemplateKeys(c.Tax.RateTemplates) {
		bands := c.Tax.RateTemplates[key]
		j, ok := lookupJurisdiction(key)
		if !ok {
			problems = append(problems, fmt.Sprintf("rate_templates: unknown jurisdiction %q", key))
			continue
		}
		if first, dup := seen[j]; dup {
			problems = append(problems, fmt.Sprintf("rate_templates: %q and %q both set %s", first, key, j))
			continue
		}
		seen[j] = key
		for _, p := range ValidateRateTemplate(toRateTemplate(bands), c.Tax) {
			problems = append(problems, "rate_templates."+key+": "+p)
		}
	}

	return problems
}

// ValidateRateTemplate checks the shape of a template: finite positive widths,
// rates in (0,1], and only the last one or two bands left unbounded.
func ValidateRateTemplate(template RateTemplate, taxConfig TaxConfig) []string {
	var problems []string
	n := len(template)
	if n == 0 {
		return []string{"template has no bands"}
	}

	cumulative := 0.0
	for i, band := range template {
		if band.Rate <= 0 || band.Rate > 1 {
			problems = append(problems, fmt.Sprintf("band %q rate must be in (0, 1]", band.Name))
		}
		switch band.Kind {
		case FixedWidth:
			if band.Width <= 0 || math.IsInf(band.Width, 0) || math.IsNaN(band.Width) {
				problems = append(problems, fmt.Sprintf("band %q needs a positive width", band.Name))
			}
			cumulative += band.Width
		case ExtendsToTopThreshold:
			if i != n-2 {
				problems = append(problems, fmt.Sprintf("band %q may only extend to the top threshold as the second-last band", band.Name))
			}
		case ExtendsToInfinity:
			if i != n-1 {
				problems = append(problems, fmt.Sprintf("band %q may only be unbounded as the last band", band.Name))
			}
		}
	}

	if template[n-1].Kind != ExtendsToInfinity {
		problems = append(problems, "last band must be unbounded")
	}
	if n >= 2 && template[n-2].Kind == ExtendsToTopThreshold &&
		taxConfig.GetPersonalAllowance()+cumulative > taxConfig.GetTopRateThreshold() {
		problems = append(problems, "fixed-width bands end above the top-rate threshold")
	}

	return problems
}

// ServerConfig holds process settings read from the environment
type ServerConfig struct {
	Addr            string        `env:"TAKEHOME_ADDR"             envDefault:"localhost:0"`
	LogLevel        string        `env:"TAKEHOME_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"TAKEHOME_LOG_FORMAT"       envDefault:"console"`
	ExportDir       string        `env:"TAKEHOME_EXPORT_DIR"       envDefault:"exports"`
	ShutdownTimeout time.Duration `env:"TAKEHOME_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LoadServerConfig parses ServerConfig from environment variables
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}
