package allocation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one data row of a statement: cell text by raw column header.
type Row map[string]string

// Sheet is a statement as loaded from a file: its column headers, in file
// order, and its data rows.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// Record is a statement row projected onto the canonical fields.
type Record struct {
	Row        int                 `json:"row"` // 1-based position in the statement.
	Identifier string              `json:"isin"`
	Name       string              `json:"name"`
	Quantity   decimal.NullDecimal `json:"quantity"`
	Value      decimal.Decimal     `json:"value"` // zero when missing or unparsable.
	Currency   string              `json:"currency"`
}

// Project converts every row of s into a Record using mapping. Unresolved
// text fields are empty, an unresolved quantity is absent and an unresolved
// value is zero.
func Project(s *Sheet, mapping FieldMapping) []Record {
	if s == nil {
		return nil
	}
	cell := func(row Row, f Field) string {
		col, ok := mapping.Column(f)
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	records := make([]Record, 0, len(s.Rows))
	for i, row := range s.Rows {
		rec := Record{
			Row:        i + 1,
			Identifier: cell(row, FieldIdentifier),
			Name:       cell(row, FieldName),
			Currency:   cell(row, FieldCurrency),
		}
		if q, ok := ParseNumber(cell(row, FieldQuantity)); ok {
			rec.Quantity = decimal.NewNullDecimal(q)
		}
		if v, ok := ParseNumber(cell(row, FieldValue)); ok {
			rec.Value = v
		}
		records = append(records, rec)
	}
	return records
}
