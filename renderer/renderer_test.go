package renderer

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/allocation"
	"github.com/xuri/excelize/v2"
)

func analysis(t *testing.T) *allocation.Analysis {
	t.Helper()
	s := &allocation.Sheet{
		Headers: []string{"Isin", "Prodotto", "Qta", "Controvalore", "Divisa"},
		Rows: []allocation.Row{
			{"Isin": "IT0003132476", "Prodotto": "ENI SPA ORD", "Qta": "100", "Controvalore": "1500.50", "Divisa": "EUR"},
			{"Isin": "", "Prodotto": "CONTO CORRENTE", "Qta": "", "Controvalore": "2000", "Divisa": "EUR"},
			{"Isin": "LU0996182563", "Prodotto": "FONDO AZIONARIO", "Qta": "10", "Controvalore": "500", "Divisa": "EUR"},
		},
	}
	return (&allocation.Analyzer{}).Analyze(s, "")
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbook(t *testing.T) {
	data, err := Workbook(analysis(t))
	if err != nil {
		t.Fatalf("Workbook() failed: %v", err)
	}
	f := openWorkbook(t, data)

	want := []string{InputSheet, "Funds", "Securities", "Mandates", "Cash", MarginSheet}
	if got := f.GetSheetList(); !slices.Equal(got, want) {
		t.Errorf("sheets = %q, want %q", got, want)
	}

	rows, err := f.GetRows(InputSheet)
	if err != nil {
		t.Fatalf("GetRows(%q) failed: %v", InputSheet, err)
	}
	if len(rows) != 4 {
		t.Fatalf("%s has %d rows, want 4", InputSheet, len(rows))
	}
	if got := rows[1][len(rows[1])-1]; got != "Security" {
		t.Errorf("Expected_Category of the first position = %q, want Security", got)
	}

	rows, err = f.GetRows("Securities")
	if err != nil {
		t.Fatalf("GetRows(Securities) failed: %v", err)
	}
	if got, want := rows[0], allocation.TableColumns(allocation.Security); !slices.Equal(got, want) {
		t.Errorf("Securities header = %q, want %q", got, want)
	}
	if len(rows) != 2 || rows[1][0] != "IT0003132476" {
		t.Errorf("Securities rows = %q, want the ENI position", rows[1:])
	}

	rows, err = f.GetRows(MarginSheet)
	if err != nil {
		t.Fatalf("GetRows(%q) failed: %v", MarginSheet, err)
	}
	last := rows[len(rows)-1]
	if last[0] != "TOTAL" || last[1] != "4000.5" {
		t.Errorf("TOTAL row = %q, want TOTAL 4000.5", last)
	}
}

func TestWorkbookUnreadable(t *testing.T) {
	data, err := Workbook(allocation.Unreadable(allocation.UnreadableNote))
	if err != nil {
		t.Fatalf("Workbook() failed: %v", err)
	}
	f := openWorkbook(t, data)
	if got := f.GetSheetList(); !slices.Equal(got, []string{InputSheet}) {
		t.Errorf("sheets = %q, want only %q", got, InputSheet)
	}
	note, err := f.GetCellValue(InputSheet, "A2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if note != allocation.UnreadableNote {
		t.Errorf("note = %q, want %q", note, allocation.UnreadableNote)
	}
}

func TestPDF(t *testing.T) {
	date := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	for name, a := range map[string]*allocation.Analysis{
		"readable":   analysis(t),
		"unreadable": allocation.Unreadable(allocation.UnreadableNote),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := PDF(a, PDFOptions{Date: date})
			if err != nil {
				t.Fatalf("PDF() failed: %v", err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Errorf("PDF() does not start with a PDF header: %q", data[:min(len(data), 8)])
			}
		})
	}
}

func TestSector(t *testing.T) {
	points := sector(0, 0, 10, 0, 90)
	if len(points) < 3 {
		t.Fatalf("sector has %d points, want at least 3", len(points))
	}
	if p := points[0]; p.X != 0 || p.Y != 0 {
		t.Errorf("sector starts at %v, want the center", p)
	}
	end := points[len(points)-1]
	if end.X > 1e-9 || end.Y < 10-1e-9 {
		t.Errorf("sector ends at %v, want (0, 10)", end)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	got := SummaryMarkdown(analysis(t))
	for _, want := range []string{"# Portfolio Analysis", "Input rows: 3", "## Columns", "Controvalore", "## Allocation", "Securities", "TOTAL"} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "## Warnings") {
		t.Errorf("SummaryMarkdown() has warnings:\n%s", got)
	}
}

func TestSummaryMarkdownZeroTotal(t *testing.T) {
	got := SummaryMarkdown(&allocation.Analysis{
		Allocation: allocation.Aggregate(nil),
		Mapping:    allocation.FieldMapping{},
	})
	if !strings.Contains(got, ZeroTotalWarning) {
		t.Errorf("SummaryMarkdown() does not warn about the zero total:\n%s", got)
	}

	got = SummaryMarkdown(allocation.Unreadable(allocation.UnreadableNote))
	if !strings.Contains(got, allocation.UnreadableNote) {
		t.Errorf("SummaryMarkdown() does not contain the note:\n%s", got)
	}
}

func TestPreviewMarkdown(t *testing.T) {
	got := PreviewMarkdown(analysis(t), 2)
	if !strings.Contains(got, "ENI SPA ORD") || !strings.Contains(got, "CONTO CORRENTE") {
		t.Errorf("PreviewMarkdown() misses the first rows:\n%s", got)
	}
	if strings.Contains(got, "FONDO AZIONARIO") {
		t.Errorf("PreviewMarkdown(2) shows the third row:\n%s", got)
	}
}

func TestMappingMarkdown(t *testing.T) {
	got := MappingMarkdown(allocation.FieldMapping{allocation.FieldIdentifier: "Codice ISIN"})
	if !strings.Contains(got, "Codice ISIN") {
		t.Errorf("MappingMarkdown() misses the ISIN column:\n%s", got)
	}
	if !strings.Contains(got, "Valuta") {
		t.Errorf("MappingMarkdown() misses the unresolved fields:\n%s", got)
	}
}
