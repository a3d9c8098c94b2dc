package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/etnz/allocation"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// PDFOptions holds configuration for rendering the PDF report.
type PDFOptions struct {
	Date          time.Time // report date, defaults to today.
	MaxSecurities int       // rows of the securities section, defaults to 12.
}

// Title of the PDF report.
const Title = "Integrated Advanced Analysis - Report"

// palette of the chart slices, in allocation.Categories order.
var palette = [][3]int{{54, 112, 178}, {230, 140, 50}, {95, 170, 90}, {200, 70, 70}}

const (
	lineHeight = 6.0
	pageWidth  = 170.0 // A4 width minus the 2cm margins.
)

// PDF renders the summary report: totals per category, the allocation pie,
// the margin bars and the list of securities to analyze.
func PDF(a *allocation.Analysis, opts PDFOptions) ([]byte, error) {
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}
	if opts.MaxSecurities <= 0 {
		opts.MaxSecurities = 12
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreationDate(opts.Date)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("pfa", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if !a.Readable() {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.CellFormat(0, 12, tr(capitalize(a.Summary.Note)), "", 1, "L", false, 0, "")
		return output(pdf)
	}

	s := a.Summary
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(Title), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, lineHeight, tr("Date: "+opts.Date.Format(time.DateOnly)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, tr("Total portfolio balance: "+s.Money(s.Total).String()), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	categoryTable(pdf, tr, s)
	pdf.Ln(4)

	heading(pdf, tr, "Allocation by category")
	allocationChart(pdf, tr, s)
	pdf.Ln(4)

	heading(pdf, tr, "Average margins (bps) by category")
	marginChart(pdf, tr, s)
	pdf.Ln(6)

	securitiesSection(pdf, tr, a.Table(allocation.Security), opts.MaxSecurities)
	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("cannot render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func categoryTable(pdf *fpdf.Fpdf, tr func(string) string, s allocation.Summary) {
	widths := []float64{40, 40, 30, 30, 30}
	header := []string{"Category", "AUM", "Share %", "Margin bps", "Annual revenue"}
	rows := make([][]string, 0, len(allocation.Categories)+1)
	for _, c := range allocation.Categories {
		rows = append(rows, []string{
			c.Label(),
			s.Money(s.Sum(c)).String(),
			fmt.Sprintf("%.2f", float64(s.Share(c))),
			s.Margin(c).StringFixed(0),
			s.Money(s.Revenue(c)).String(),
		})
	}
	share := "0.00"
	if !s.Total.IsZero() {
		share = "100.00"
	}
	rows = append(rows, []string{"TOTAL", s.Money(s.Total).String(), share, "", s.Money(s.TotalRevenue()).String()})
	grid(pdf, tr, widths, header, rows)
}

// grid draws a bordered table with a shaded header.
func grid(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, header []string, rows [][]string) {
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.1)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// allocationChart draws a pie of the category weights with its legend, or an
// empty frame when nothing is valued.
func allocationChart(pdf *fpdf.Fpdf, tr func(string) string, s allocation.Summary) {
	const radius = 30.0
	x, y := pdf.GetXY()
	cx, cy := x+radius+5, y+radius+2

	if s.Total.IsZero() {
		pdf.Rect(x, y, pageWidth, 2*radius+4, "D")
		pdf.SetXY(x, cy-3)
		pdf.CellFormat(pageWidth, lineHeight, tr("Allocation by category (no AUM)"), "", 0, "C", false, 0, "")
		pdf.SetXY(x, y+2*radius+6)
		return
	}

	start := -90.0
	for i, c := range allocation.Categories {
		share := float64(s.Share(c))
		if share <= 0 {
			continue
		}
		sweep := share * 3.6
		pdf.SetFillColor(palette[i][0], palette[i][1], palette[i][2])
		pdf.Polygon(sector(cx, cy, radius, start, start+sweep), "F")
		start += sweep
	}

	// legend
	lx := cx + radius + 15
	for i, c := range allocation.Categories {
		ly := y + 10 + float64(i)*8
		pdf.SetFillColor(palette[i][0], palette[i][1], palette[i][2])
		pdf.Rect(lx, ly, 5, 5, "F")
		pdf.SetXY(lx+8, ly)
		pdf.CellFormat(60, 5, tr(fmt.Sprintf("%s %.1f%%", c.Label(), float64(s.Share(c)))), "", 0, "L", false, 0, "")
	}
	pdf.SetXY(x, y+2*radius+6)
}

// sector returns the polygon of a pie slice between two angles in degrees.
func sector(cx, cy, r, from, to float64) []fpdf.PointType {
	points := []fpdf.PointType{{X: cx, Y: cy}}
	const step = 2.0
	for a := from; ; a += step {
		if a > to {
			a = to
		}
		rad := a * math.Pi / 180
		points = append(points, fpdf.PointType{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)})
		if a >= to {
			break
		}
	}
	return points
}

// marginChart draws one bar per category, scaled to the largest margin.
func marginChart(pdf *fpdf.Fpdf, tr func(string) string, s allocation.Summary) {
	const (
		height = 40.0
		barW   = 25.0
		gap    = 15.0
	)
	x, y := pdf.GetXY()
	base := y + height

	top := decimal.Zero
	for _, c := range allocation.Categories {
		top = decimal.Max(top, s.Margin(c))
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(x, base, x+float64(len(allocation.Categories))*(barW+gap), base)
	for i, c := range allocation.Categories {
		bx := x + gap/2 + float64(i)*(barW+gap)
		h := 0.0
		if top.IsPositive() {
			h = s.Margin(c).Div(top).InexactFloat64() * (height - 8)
		}
		if h > 0 {
			pdf.SetFillColor(palette[i][0], palette[i][1], palette[i][2])
			pdf.Rect(bx, base-h, barW, h, "F")
		}
		pdf.SetXY(bx, base-h-5)
		pdf.CellFormat(barW, 5, s.Margin(c).StringFixed(0), "", 0, "C", false, 0, "")
		pdf.SetXY(bx, base+1)
		pdf.CellFormat(barW, 5, tr(c.Label()), "", 0, "C", false, 0, "")
	}
	pdf.SetXY(x, base+7)
}

func securitiesSection(pdf *fpdf.Fpdf, tr func(string) string, t *allocation.Table, limit int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr("Securities analysis (equity/bonds)"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if t.Len() == 0 {
		pdf.CellFormat(0, lineHeight, tr("No security with a valid ISIN found."), "", 1, "L", false, 0, "")
		return
	}
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, tr("Market data for securities is retrieved when available; otherwise they remain flagged '"+allocation.SecurityAnalysisNote+"'."), "", "L", false)
	pdf.Ln(2)

	rows := make([][]string, 0, limit)
	for i, rec := range t.Records {
		if i >= limit {
			break
		}
		rows = append(rows, []string{rec.Identifier, string(allocation.GuessSecurityType(rec.Name)), allocation.SecurityAnalysisNote})
	}
	grid(pdf, tr, []float64{45, 30, 60}, []string{"ISIN", "Type", "Note"}, rows)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
