package allocation

import (
	"github.com/shopspring/decimal"
)

// Column names of the category tables.
const (
	ColISIN        = "ISIN"
	ColName        = "Name"
	ColCurrency    = "Currency"
	ColValue       = "Value"
	ColType        = "Type"
	ColMargin      = "Margin_bps"
	ColReplaceable = "Replaceable"
	ColCode        = "Code"
	ColMandate     = "Mandate"
	ColClientAUM   = "Client_AUM"
)

// SecurityAnalysisNote flags securities whose market data still has to be
// retrieved.
const SecurityAnalysisNote = "Analysis required (web)"

// tableColumns are the columns of every category table. Columns not filled
// from the statement are placeholders for market-data enrichment.
var tableColumns = map[Category][]string{
	Fund: {ColISIN, ColName, "Category", ColCurrency, "Rating", "Quartile", "YTD", "1Y", "3Y",
		"Volatility", ColMargin, "Retrocession_bps", ColReplaceable, ColValue},
	Security: {ColISIN, ColType, "Sector", "Area", "Maturity", "Duration", "Yield", "Agency_Rating",
		"P/E", "Target_Price", ColMargin, ColReplaceable, ColValue},
	ManagedMandate: {ColCode, ColMandate, "Line", ColCurrency, ColMargin, ColClientAUM,
		"Estimated_Annual_Fee", ColReplaceable},
	Cash: {ColName, ColValue, ColCurrency, "Rate", "Bank_Spread_bps", "Note"},
}

// TableColumns returns the columns of the table of category c.
func TableColumns(c Category) []string {
	return append([]string(nil), tableColumns[c]...)
}

// Table holds the positions of one category.
//
// Cells are either strings or decimal.Decimal amounts. Records are the source
// records of Rows, in the same order, which is the statement order.
type Table struct {
	Category Category
	Columns  []string
	Rows     [][]any
	Records  []Record
}

func newTable(c Category) *Table {
	return &Table{Category: c, Columns: TableColumns(c)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// add appends a row built from known cell values; other columns are empty.
func (t *Table) add(rec Record, cells map[string]any) {
	row := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		if v, ok := cells[col]; ok {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	t.Rows = append(t.Rows, row)
	t.Records = append(t.Records, rec)
}

// Sum returns the total value of the positions in the table.
func (t *Table) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range t.Records {
		sum = sum.Add(r.Value)
	}
	return sum
}

// Mean returns the average of the numeric cells of column. It is zero when
// the column does not exist or holds no numeric cell.
func (t *Table) Mean(column string) decimal.Decimal {
	idx := -1
	for i, c := range t.Columns {
		if c == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return decimal.Zero
	}
	sum, n := decimal.Zero, 0
	for _, row := range t.Rows {
		switch v := row[idx].(type) {
		case decimal.Decimal:
			sum, n = sum.Add(v), n+1
		case string:
			if d, ok := ParseNumber(v); ok {
				sum, n = sum.Add(d), n+1
			}
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// Allocation is the result of the aggregation: one table per category.
type Allocation struct {
	Tables   []*Table   // in Categories order.
	Assigned []Category // category of every input record, in input order.
}

// Aggregate classifies every record and appends it to the table of its
// category. Unclassified records belong to no table.
func Aggregate(records []Record) *Allocation {
	a := &Allocation{Assigned: make([]Category, len(records))}
	tables := make(map[Category]*Table, len(Categories))
	for _, c := range Categories {
		t := newTable(c)
		tables[c] = t
		a.Tables = append(a.Tables, t)
	}

	for i, rec := range records {
		c := Classify(rec.Name, rec.Identifier)
		a.Assigned[i] = c
		switch c {
		case Fund:
			tables[c].add(rec, map[string]any{
				ColISIN:     rec.Identifier,
				ColName:     rec.Name,
				ColCurrency: rec.Currency,
				ColValue:    rec.Value,
			})
		case Security:
			tables[c].add(rec, map[string]any{
				ColISIN:        rec.Identifier,
				ColType:        string(GuessSecurityType(rec.Name)),
				ColReplaceable: SecurityAnalysisNote,
				ColValue:       rec.Value,
			})
		case ManagedMandate:
			tables[c].add(rec, map[string]any{
				ColCode:      rec.Identifier,
				ColMandate:   rec.Name,
				ColCurrency:  rec.Currency,
				ColClientAUM: rec.Value,
			})
		case Cash:
			tables[c].add(rec, map[string]any{
				ColName:     rec.Name,
				ColValue:    rec.Value,
				ColCurrency: rec.Currency,
			})
		}
	}
	return a
}

// Table returns the table of category c, or nil for Unclassified.
func (a *Allocation) Table(c Category) *Table {
	for _, t := range a.Tables {
		if t.Category == c {
			return t
		}
	}
	return nil
}

// Sum returns the total value of category c.
func (a *Allocation) Sum(c Category) decimal.Decimal {
	if t := a.Table(c); t != nil {
		return t.Sum()
	}
	return decimal.Zero
}

// Total returns the sum of the four category sums.
func (a *Allocation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, t := range a.Tables {
		total = total.Add(t.Sum())
	}
	return total
}

// Margin returns the average margin in basis points of category c. Only
// funds and mandates carry a margin column average; securities and cash
// report zero.
func (a *Allocation) Margin(c Category) decimal.Decimal {
	if c != Fund && c != ManagedMandate {
		return decimal.Zero
	}
	if t := a.Table(c); t != nil && t.Len() > 0 {
		return t.Mean(ColMargin)
	}
	return decimal.Zero
}
