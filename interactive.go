package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// validateMoney checks if amount is a finite, non-negative and reasonable figure
func validateMoney(amount float64, fieldName string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ValidationError{Field: fieldName, Message: "Amount must be a number"}
	}
	if amount < 0 {
		return ValidationError{Field: fieldName, Message: "Amount cannot be negative"}
	}
	if amount > 100000000 { // 100 million
		return ValidationError{Field: fieldName, Message: "Amount seems too large. Please check the value"}
	}
	return nil
}

// validateHours checks weekly hours are within a plausible range
func validateHours(hours float64) error {
	if hours <= 0 || hours > 168 {
		return ValidationError{Field: "hours_per_week", Message: fmt.Sprintf("Hours per week must be between 0 and 168 (got %.1f)", hours)}
	}
	return nil
}

// parseMoney parses money strings like "45k", "1.2m", "£30,000"
func parseMoney(input string) (float64, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	input = strings.TrimPrefix(input, "£")
	input = strings.ReplaceAll(input, ",", "")
	multiplier := 1.0
	if strings.HasSuffix(input, "k") {
		multiplier = 1000
		input = strings.TrimSuffix(input, "k")
	} else if strings.HasSuffix(input, "m") {
		multiplier = 1000000
		input = strings.TrimSuffix(input, "m")
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, err
	}
	return val * multiplier, nil
}

// InteractiveCalculator asks for the inputs of a calculation on the console
type InteractiveCalculator struct {
	reader *bufio.Reader
	out    io.Writer
	config *Config
}

// NewInteractiveCalculator creates a prompt session reading from in
func NewInteractiveCalculator(in io.Reader, out io.Writer, config *Config) *InteractiveCalculator {
	return &InteractiveCalculator{
		reader: bufio.NewReader(in),
		out:    out,
		config: config,
	}
}

// promptString asks for a string with a default value
func (ic *InteractiveCalculator) promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(ic.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(ic.out, "%s: ", prompt)
	}
	input, _ := ic.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// promptMoney asks for an amount until a valid one is entered
func (ic *InteractiveCalculator) promptMoney(prompt string, defaultVal float64) float64 {
	for {
		fmt.Fprintf(ic.out, "%s [%s]: ", prompt, FormatMoneyShort(defaultVal))
		input, err := ic.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			return defaultVal
		}
		amount, perr := parseMoney(input)
		if perr != nil {
			fmt.Fprintf(ic.out, "  ✗ Invalid amount. Enter as '45k', '2500' or '£30,000'\n")
			if err == io.EOF {
				return defaultVal
			}
			continue
		}
		if verr := validateMoney(amount, "amount"); verr != nil {
			fmt.Fprintf(ic.out, "  ✗ %s\n", verr.Error())
			if err == io.EOF {
				return defaultVal
			}
			continue
		}
		return amount
	}
}

// promptFloat asks for a number, keeping the default on bad input
func (ic *InteractiveCalculator) promptFloat(prompt string, defaultVal float64) float64 {
	fmt.Fprintf(ic.out, "%s [%g]: ", prompt, defaultVal)
	input, _ := ic.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		fmt.Fprintf(ic.out, "  ✗ Invalid number, using default: %g\n", defaultVal)
		return defaultVal
	}
	return val
}

// Run prompts for income, pay period, jurisdiction and hours, updating the
// config in place
func (ic *InteractiveCalculator) Run() {
	fmt.Fprintln(ic.out, "Enter your pay. Press Enter to accept the value in brackets.")
	fmt.Fprintln(ic.out)

	period := ParsePayPeriod(ic.promptString("Pay period (annual, monthly, weekly, daily, hourly)", ParsePayPeriod(ic.config.Income.Period).String()))
	ic.config.Income.Period = period.String()
	ic.config.Income.Amount = ic.promptMoney(fmt.Sprintf("Gross %s pay", period), ic.config.Income.Amount)

	region := ic.promptString("Where do you pay tax (england, scotland)", ic.config.GetJurisdiction().ID())
	if _, ok := lookupJurisdiction(region); !ok {
		fmt.Fprintf(ic.out, "  ✗ Unknown region %q, using %s\n", region, DefaultJurisdiction)
	}
	ic.config.Jurisdiction = ParseJurisdiction(region).ID()

	switch period {
	case Hourly:
		hours := ic.promptFloat("Hours per week", ic.config.Work.GetHoursPerWeek())
		if err := validateHours(hours); err != nil {
			fmt.Fprintf(ic.out, "  ✗ %s\n", err.Error())
		} else {
			ic.config.Work.HoursPerWeek = hours
		}
	case Daily:
		days := ic.promptFloat("Days per week", ic.config.Work.GetDaysPerWeek())
		if days <= 0 || days > 7 {
			fmt.Fprintf(ic.out, "  ✗ Days per week must be between 0 and 7 (got %g)\n", days)
		} else {
			ic.config.Work.DaysPerWeek = days
		}
	}
	fmt.Fprintln(ic.out)
}
