package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/allocation"
	md "github.com/nao1215/markdown"
)

// ZeroTotalWarning is shown when no position could be valued.
const ZeroTotalWarning = "Total AUM is 0. If the column names are unusual, report them so that they can be added to the recognition rules."

// SummaryMarkdown renders the parsing summary: the detected columns, the
// allocation per category, and the warnings.
func SummaryMarkdown(a *allocation.Analysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Analysis")
	if !a.Readable() {
		doc.PlainText(a.Summary.Note)
		return doc.String()
	}
	s := a.Summary
	doc.PlainText(fmt.Sprintf("Input rows: %d", s.InputRows))
	if a.Preset != "" {
		doc.PlainText(fmt.Sprintf("Preset: %s", a.Preset))
	}

	doc.H2("Columns")
	columns := md.TableSet{Header: []string{"Field", "Column", "Detected"}}
	for _, f := range allocation.Fields {
		col, ok := a.Mapping.Column(f)
		columns.Rows = append(columns.Rows, []string{f.String(), col, yesNo(ok)})
	}
	doc.Table(columns)

	doc.H2("Allocation")
	alloc := md.TableSet{Header: []string{"Category", "Positions", "AUM", "Share", "Margin bps"}}
	for _, c := range allocation.Categories {
		alloc.Rows = append(alloc.Rows, []string{
			c.Label(),
			strconv.Itoa(a.Table(c).Len()),
			s.Money(s.Sum(c)).String(),
			s.Share(c).String(),
			s.Margin(c).StringFixed(0),
		})
	}
	alloc.Rows = append(alloc.Rows, []string{"TOTAL", strconv.Itoa(classified(a)), s.Money(s.Total).String(), "", ""})
	doc.Table(alloc)

	warnings := a.Warnings
	if a.ZeroTotal() {
		warnings = append([]string{ZeroTotalWarning}, warnings...)
	}
	if len(warnings) > 0 {
		doc.H2("Warnings")
		doc.BulletList(warnings...)
	}
	return doc.String()
}

// PreviewMarkdown renders the first n projected records.
func PreviewMarkdown(a *allocation.Analysis, n int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Input preview")

	preview := md.TableSet{Header: []string{"Row", "ISIN", "Name", "Quantity", "Value", "Currency", "Category"}}
	for i, r := range a.Preview {
		if i >= n {
			break
		}
		quantity := ""
		if r.Quantity.Valid {
			quantity = r.Quantity.Decimal.String()
		}
		preview.Rows = append(preview.Rows, []string{
			strconv.Itoa(r.Row), r.Identifier, r.Name, quantity, r.Value.String(), r.Currency, a.Category(i).String(),
		})
	}
	doc.Table(preview)
	return doc.String()
}

// MappingMarkdown renders the field to column mapping.
func MappingMarkdown(m allocation.FieldMapping) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{Header: []string{"Field", "Column"}}
	for _, f := range allocation.Fields {
		col, ok := m.Column(f)
		if !ok {
			col = "-"
		}
		table.Rows = append(table.Rows, []string{f.String(), col})
	}
	doc.Table(table)
	return doc.String()
}

func classified(a *allocation.Analysis) int {
	n := 0
	for _, t := range a.Allocation.Tables {
		n += t.Len()
	}
	return n
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
