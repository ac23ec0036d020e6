package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// pdfText converts UTF-8 text to PDF-safe encoding
// The £ sign in UTF-8 is 0xC2 0xA3, but PDF standard fonts expect Latin-1 (just 0xA3)
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}

// FormatMoneyPDF formats money for PDF output (handles £ encoding)
func FormatMoneyPDF(amount float64) string {
	return pdfText(FormatMoney(amount))
}

// PDFTaxReport renders a single take-home calculation
type PDFTaxReport struct {
	pdf       *fpdf.Fpdf
	takeHome  TakeHome
	work      WorkPattern
	generated time.Time
}

// GenerateTaxPDFReport creates a one-page PDF summary of a calculation
func GenerateTaxPDFReport(th TakeHome, work WorkPattern) ([]byte, error) {
	report := &PDFTaxReport{
		pdf:       fpdf.New("P", "mm", "A4", ""),
		takeHome:  th,
		work:      work,
		generated: time.Now(),
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)

	report.pdf.AddPage()
	report.addTitle()
	report.addSummary()
	report.addBandTable()
	report.addPeriodTable()
	report.addFooter()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render pdf")
	}
	return buf.Bytes(), nil
}

func (r *PDFTaxReport) addTitle() {
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Income Tax Summary", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(80, 80, 80)
	subtitle := fmt.Sprintf("%s - tax year %s", r.takeHome.Jurisdiction, r.takeHome.TaxYear)
	r.pdf.CellFormat(contentWidth, 7, subtitle, "", 1, "C", false, 0, "")
	r.pdf.CellFormat(contentWidth, 6, "Generated "+r.generated.Format("2 January 2006 15:04"), "", 1, "C", false, 0, "")
	r.pdf.Ln(8)
}

func (r *PDFTaxReport) addSummary() {
	r.drawSectionHeader("Summary")
	widths := []float64{90, 90}
	rows := [][]string{
		{"Gross income", FormatMoneyPDF(r.takeHome.Gross)},
		{"Personal allowance", FormatMoneyPDF(r.takeHome.Result.PersonalAllowance)},
		{"Taxable income", FormatMoneyPDF(r.takeHome.Result.TaxableIncome)},
		{"Income tax", FormatMoneyPDF(r.takeHome.Result.TotalTax)},
		{"Take-home pay", FormatMoneyPDF(r.takeHome.Net)},
		{"Effective rate", FormatPercent(r.takeHome.EffectiveRate)},
		{"Marginal rate", FormatPercent(r.takeHome.MarginalRate)},
	}
	for i, row := range rows {
		r.drawTableRow(row, widths, i == len(rows)-3)
	}
	r.pdf.Ln(6)
}

func (r *PDFTaxReport) addBandTable() {
	r.drawSectionHeader("Tax by Band")
	widths := []float64{70, 30, 40, 40}
	r.drawTableHeader([]string{"Band", "Rate", "Income in band", "Tax"}, widths)
	for _, band := range r.takeHome.Result.NonZeroBands() {
		r.drawTableRow([]string{
			band.Name,
			FormatPercent(band.Rate),
			FormatMoneyPDF(band.Amount),
			FormatMoneyPDF(band.Tax),
		}, widths, false)
	}
	r.drawTableRow([]string{"Total", "", FormatMoneyPDF(r.takeHome.Result.TaxableIncome),
		FormatMoneyPDF(r.takeHome.Result.TotalTax)}, widths, true)
	r.pdf.Ln(6)
}

func (r *PDFTaxReport) addPeriodTable() {
	r.drawSectionHeader("Per Pay Period")
	widths := []float64{45, 45, 45, 45}
	r.drawTableHeader([]string{"Period", "Gross", "Tax", "Net"}, widths)
	for _, p := range r.takeHome.Periods {
		r.drawTableRow([]string{
			p.Period,
			FormatMoneyPDF(p.Gross.InexactFloat64()),
			FormatMoneyPDF(p.Tax.InexactFloat64()),
			FormatMoneyPDF(p.Net.InexactFloat64()),
		}, widths, false)
	}

	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Based on %.1f hours/week, %.0f days/week, %.0f weeks/year",
		r.work.GetHoursPerWeek(), r.work.GetDaysPerWeek(), r.work.GetWeeksPerYear()), "", 1, "L", false, 0, "")
	r.pdf.Ln(6)
}

func (r *PDFTaxReport) addFooter() {
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4,
		"Income tax only. National Insurance, student loan repayments and pension contributions are not included. "+
			"This is an estimate and is not financial advice.", "", "C", false)
}

// Helper functions

func (r *PDFTaxReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *PDFTaxReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFTaxReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
