package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `UK Income Tax / Take-Home Pay Calculator

Works out income tax, take-home pay and the tax paid in each band for a gross
income, using England/Wales/NI or Scottish rates and the tapered Personal
Allowance. Income tax only: National Insurance, student loans and pension
contributions are not included.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s -console                      Prompt for pay on the console
  %s -income 45000                 Annual salary, England/Wales/NI
  %s -income 2500 -period monthly -region scotland
  %s -income 18.50 -period hourly -hours 40
  %s -net 40000                    Gross salary needed to take home £40,000
  %s -income 60000 -csv out.csv -pdf out.pdf
  %s -web -addr :8080              Web server mode (opens external browser)
  %s -ui                           Embedded browser window (default)

Environment (also read from .env):
  TAKEHOME_ADDR, TAKEHOME_LOG_LEVEL, TAKEHOME_LOG_FORMAT (console|json),
  TAKEHOME_EXPORT_DIR, TAKEHOME_SHUTDOWN_TIMEOUT
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	income := flag.Float64("income", -1, "Gross pay for the chosen period")
	period := flag.String("period", "", "Pay period: annual, monthly, weekly, daily, hourly")
	region := flag.String("region", "", "Jurisdiction: england or scotland")
	hours := flag.Float64("hours", 0, "Hours worked per week (hourly pay)")
	days := flag.Float64("days", 0, "Days worked per week (daily pay)")
	weeks := flag.Float64("weeks", 0, "Paid weeks per year")
	net := flag.Float64("net", 0, "Find the gross salary needed for this annual take-home pay")
	csvFile := flag.String("csv", "", "Write the band breakdown to this CSV file")
	pdfFile := flag.String("pdf", "", "Write a PDF summary to this file")
	consoleMode := flag.Bool("console", false, "Use console interface instead of GUI")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "", "Web server address (overrides TAKEHOME_ADDR)")
	flag.Parse()

	dotenvErr := godotenv.Load()

	serverConfig, err := LoadServerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	if *webAddr != "" {
		serverConfig.Addr = *webAddr
	}

	logger, err := NewLogger(serverConfig.LogLevel, serverConfig.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logDotenvResult(logger, dotenvErr)

	config, err := LoadConfigOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(config, *period, *region, *hours, *days, *weeks)

	if *uiMode {
		if err := runEmbeddedUI(config, serverConfig, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *webMode {
		server := NewWebServer(config, serverConfig, logger)
		if err := server.Start(); err != nil {
			logger.Error("web server stopped", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	useConsole := *consoleMode || *income >= 0 || *net > 0 || *csvFile != "" || *pdfFile != ""
	if !useConsole {
		err := runEmbeddedUI(config, serverConfig, logger)
		if err == nil {
			return
		}
		fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
		fmt.Println("Falling back to console mode...")
	}

	if *income >= 0 {
		config.Income.Amount = *income
	} else if *net <= 0 {
		NewInteractiveCalculator(os.Stdin, os.Stdout, config).Run()
	}

	if err := runConsoleMode(config, *net, *csvFile, *pdfFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logDotenvResult reports the outcome of godotenv.Load once a logger exists.
// A missing .env is normal; anything else is worth a warning.
func logDotenvResult(logger *zap.Logger, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no .env file", zap.Error(err))
		return
	}
	logger.Warn("could not load .env", zap.Error(err))
}

// applyFlags overrides config values with any flags that were given
func applyFlags(config *Config, period, region string, hours, days, weeks float64) {
	if period != "" {
		config.Income.Period = ParsePayPeriod(period).String()
	}
	if region != "" {
		config.Jurisdiction = ParseJurisdiction(region).ID()
	}
	if hours > 0 {
		config.Work.HoursPerWeek = hours
	}
	if days > 0 {
		config.Work.DaysPerWeek = days
	}
	if weeks > 0 {
		config.Work.WeeksPerYear = weeks
	}
}

// runConsoleMode prints a calculation and writes any requested exports
func runConsoleMode(config *Config, net float64, csvFile, pdfFile string) error {
	j := config.GetJurisdiction()

	if net > 0 {
		if err := validateMoney(net, "net"); err != nil {
			return err
		}
		gross, tax := GrossUpForNetWithConfig(net, j, config.Tax)
		PrintGrossUp(os.Stdout, net, gross, tax, j)
		config.Income.Amount = gross
		config.Income.Period = Annual.String()
	}

	if err := validateMoney(config.Income.Amount, "income"); err != nil {
		return err
	}

	grossAnnual := config.AnnualIncome()
	th := CalculateTakeHome(grossAnnual, j, config.Tax, config.Work)

	PrintHeader(os.Stdout, config, grossAnnual)
	PrintTaxBreakdown(os.Stdout, th)
	PrintPeriodSplit(os.Stdout, th)

	if csvFile != "" {
		f, err := os.Create(csvFile)
		if err != nil {
			return errors.Wrapf(err, "create %s", csvFile)
		}
		defer f.Close()
		if err := WriteBreakdownCSV(f, th); err != nil {
			return err
		}
		fmt.Printf("CSV written to %s\n", csvFile)
	}

	if pdfFile != "" {
		pdfBytes, err := GenerateTaxPDFReport(th, config.Work)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pdfFile, pdfBytes, 0644); err != nil {
			return errors.Wrapf(err, "write %s", pdfFile)
		}
		fmt.Printf("PDF written to %s\n", pdfFile)
	}

	return nil
}
