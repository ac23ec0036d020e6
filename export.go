package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// WriteBreakdownCSV writes one row per band (including empty bands) and a totals row
func WriteBreakdownCSV(w io.Writer, th TakeHome) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"band", "rate", "amount", "tax"},
		{"Personal Allowance", "0", RoundPence(minFloat(th.Gross, th.Result.PersonalAllowance)).StringFixed(2), "0.00"},
	}
	for _, band := range th.Result.Breakdown {
		rows = append(rows, []string{
			band.Name,
			fmt.Sprintf("%g", band.Rate),
			RoundPence(band.Amount).StringFixed(2),
			RoundPence(band.Tax).StringFixed(2),
		})
	}
	rows = append(rows,
		[]string{"Taxable Income", "", RoundPence(th.Result.TaxableIncome).StringFixed(2), RoundPence(th.Result.TotalTax).StringFixed(2)},
		[]string{"Take-Home Pay", "", RoundPence(th.Net).StringFixed(2), ""},
	)

	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}

// SaveBreakdownCSV writes the breakdown into dir and returns the absolute path.
// An empty filename gets a timestamped name.
func SaveBreakdownCSV(dir, filename string, th TakeHome) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create export directory %s", dir)
	}
	if filename == "" {
		filename = fmt.Sprintf("take-home-%s.csv", time.Now().Format("2006-01-02-150405"))
	}
	filePath := filepath.Join(dir, filepath.Base(filename))

	f, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", filePath)
	}
	defer f.Close()

	if err := WriteBreakdownCSV(f, th); err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	return absPath, nil
}
