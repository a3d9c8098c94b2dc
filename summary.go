package allocation

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Summary is the headline of an analysis.
type Summary struct {
	InputRows int
	Columns   map[Field]bool // whether each canonical field was resolved.
	Sums      map[Category]decimal.Decimal
	Total     decimal.Decimal
	Margins   map[Category]decimal.Decimal // average margin in basis points.
	Currency  string                       // shared by all classified positions, "" when mixed.
	Note      string                       // set when the statement could not be read.
}

// Sum returns the total value of category c.
func (s Summary) Sum(c Category) decimal.Decimal { return s.Sums[c] }

// Share returns the weight of category c in the total.
func (s Summary) Share(c Category) Percent { return ShareOf(s.Sums[c], s.Total) }

// Margin returns the average margin of category c in basis points.
func (s Summary) Margin(c Category) decimal.Decimal { return s.Margins[c] }

// Revenue returns the estimated yearly revenue of category c: its value
// times its average margin.
func (s Summary) Revenue(c Category) decimal.Decimal {
	return s.Sums[c].Mul(s.Margins[c]).Div(decimal.NewFromInt(10000))
}

// TotalRevenue returns the sum of the revenues of every category.
func (s Summary) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, c := range Categories {
		total = total.Add(s.Revenue(c))
	}
	return total
}

// Money returns amount in the summary currency.
func (s Summary) Money(amount decimal.Decimal) Money { return M(amount, s.Currency) }

func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

// MarshalJSON writes the summary with a stable key order.
func (s Summary) MarshalJSON() ([]byte, error) {
	columns := &object{}
	for _, f := range Fields {
		columns.set(f.String(), s.Columns[f])
	}

	o := &object{}
	o.set("input_rows", s.InputRows)
	o.set("columns", columns)
	o.set("aum_funds", number(s.Sum(Fund)))
	o.set("aum_securities", number(s.Sum(Security)))
	o.set("aum_mandates", number(s.Sum(ManagedMandate)))
	o.set("aum_cash", number(s.Sum(Cash)))
	o.set("aum_total", number(s.Total))
	o.set("margin_funds_bps", number(s.Margin(Fund)))
	o.set("margin_mandates_bps", number(s.Margin(ManagedMandate)))
	o.setString("currency", s.Currency)
	o.setString("note", s.Note)
	return o.MarshalJSON()
}
