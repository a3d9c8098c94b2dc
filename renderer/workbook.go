package renderer

import (
	"fmt"

	"github.com/etnz/allocation"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook.
const (
	InputSheet  = "Input_Portfolio"
	MarginSheet = "Margin_Summary"
)

var (
	inputColumns  = []string{"Row", "ISIN/CUSIP", "Name", "Quantity", "Current_Value", "Currency", "Expected_Category"}
	marginColumns = []string{"Category", "AUM", "Share_%", "Margin_bps", "Annual_Revenue"}
)

const columnWidth = 18

// Workbook renders the analysis as an .xlsx workbook: the projected input,
// one sheet per category and the margin summary. An unreadable statement
// produces a single sheet holding the note.
func Workbook(a *allocation.Analysis) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("cannot create header style: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), InputSheet); err != nil {
		return nil, fmt.Errorf("cannot name sheet %q: %w", InputSheet, err)
	}

	if !a.Readable() {
		if err := writeSheet(f, InputSheet, []string{"Note"}, [][]any{{a.Summary.Note}}, bold); err != nil {
			return nil, err
		}
		return save(f)
	}

	if err := writeSheet(f, InputSheet, inputColumns, inputRows(a), bold); err != nil {
		return nil, err
	}
	for _, c := range allocation.Categories {
		t := a.Table(c)
		if _, err := f.NewSheet(c.Label()); err != nil {
			return nil, fmt.Errorf("cannot create sheet %q: %w", c.Label(), err)
		}
		if err := writeSheet(f, c.Label(), t.Columns, t.Rows, bold); err != nil {
			return nil, err
		}
	}
	if _, err := f.NewSheet(MarginSheet); err != nil {
		return nil, fmt.Errorf("cannot create sheet %q: %w", MarginSheet, err)
	}
	if err := writeSheet(f, MarginSheet, marginColumns, marginRows(a.Summary), bold); err != nil {
		return nil, err
	}
	return save(f)
}

func save(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("cannot write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func inputRows(a *allocation.Analysis) [][]any {
	rows := make([][]any, 0, len(a.Records))
	for i, r := range a.Records {
		var quantity any = ""
		if r.Quantity.Valid {
			quantity = r.Quantity.Decimal
		}
		category := ""
		if c := a.Category(i); c != allocation.Unclassified {
			category = c.String()
		}
		rows = append(rows, []any{r.Row, r.Identifier, r.Name, quantity, r.Value, r.Currency, category})
	}
	return rows
}

func marginRows(s allocation.Summary) [][]any {
	rows := make([][]any, 0, len(allocation.Categories)+1)
	for _, c := range allocation.Categories {
		rows = append(rows, []any{c.Label(), s.Sum(c), float64(s.Share(c)), s.Margin(c), s.Revenue(c)})
	}
	share := 0.0
	if !s.Total.IsZero() {
		share = 100
	}
	return append(rows, []any{"TOTAL", s.Total, share, "", s.TotalRevenue()})
}

// writeSheet writes a bold header row then rows, starting at A1.
func writeSheet(f *excelize.File, name string, header []string, rows [][]any, headerStyle int) error {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &head); err != nil {
		return fmt.Errorf("cannot write header of %q: %w", name, err)
	}
	if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("cannot style header of %q: %w", name, err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("cannot write row %d of %q: %w", i+2, name, err)
		}
	}
	last, err := excelize.ColumnNumberToName(max(len(header), 1))
	if err != nil {
		return err
	}
	return f.SetColWidth(name, "A", last, columnWidth)
}

// cellValue converts amounts to numbers so that spreadsheets can sum them.
func cellValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}
