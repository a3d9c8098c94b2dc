package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func rec(row int, id, name, value, currency string) Record {
	return Record{Row: row, Identifier: id, Name: name, Value: decimal.RequireFromString(value), Currency: currency}
}

func TestAggregate(t *testing.T) {
	records := []Record{
		rec(1, "IT0003132476", "ENI SPA ORD", "1500.50", "EUR"),
		rec(2, "", "CONTO CORRENTE", "2000", "EUR"),
		rec(3, "LU0996182563", "FONDO AZIONARIO", "300", "EUR"),
		rec(4, "US0378331005", "Apple Inc", "700", "USD"),
		rec(5, "", "Unknown position", "999", "EUR"),
		rec(6, "GP01", "Gestione Linea Bilanciata", "5000", "EUR"),
		rec(7, "IT0005083057", "BTP 2032", "100", "EUR"),
	}
	a := Aggregate(records)

	wantAssigned := []Category{Security, Cash, Fund, Security, Unclassified, ManagedMandate, Security}
	for i, want := range wantAssigned {
		if got := a.Assigned[i]; got != want {
			t.Errorf("record %d assigned %v, want %v", i+1, got, want)
		}
	}

	// every record is in at most one table, in input order.
	var rows []int
	for _, tbl := range a.Tables {
		for _, r := range tbl.Records {
			rows = append(rows, r.Row)
		}
	}
	if len(rows) != 6 {
		t.Errorf("tables hold %d records, want 6", len(rows))
	}
	sec := a.Table(Security)
	for i, want := range []int{1, 4, 7} {
		if got := sec.Records[i].Row; got != want {
			t.Errorf("security row %d comes from record %d, want %d", i, got, want)
		}
	}

	sums := map[Category]string{Fund: "300", Security: "2300.5", ManagedMandate: "5000", Cash: "2000"}
	total := decimal.Zero
	for c, want := range sums {
		got := a.Sum(c)
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("Sum(%v) = %v, want %v", c, got, want)
		}
		total = total.Add(got)
	}
	if !a.Total().Equal(total) {
		t.Errorf("Total() = %v, want the sum of the categories %v", a.Total(), total)
	}
	if got := a.Table(Unclassified); got != nil {
		t.Errorf("Table(Unclassified) = %v, want nil", got)
	}
}

func TestAggregateCells(t *testing.T) {
	a := Aggregate([]Record{
		rec(1, "IT0003132476", "ENI SPA ORD", "1500.50", "EUR"),
		rec(2, "GP01", "GPM Prudente", "5000", "EUR"),
	})

	cell := func(tbl *Table, row int, col string) any {
		for i, c := range tbl.Columns {
			if c == col {
				return tbl.Rows[row][i]
			}
		}
		t.Fatalf("table %v has no column %q", tbl.Category, col)
		return nil
	}

	sec := a.Table(Security)
	if got := cell(sec, 0, ColType); got != "Equity" {
		t.Errorf("security Type = %v, want Equity", got)
	}
	if got := cell(sec, 0, ColReplaceable); got != SecurityAnalysisNote {
		t.Errorf("security Replaceable = %v, want %q", got, SecurityAnalysisNote)
	}
	if got := cell(sec, 0, "Sector"); got != "" {
		t.Errorf("security Sector = %v, want empty", got)
	}

	gp := a.Table(ManagedMandate)
	if got := cell(gp, 0, ColCode); got != "GP01" {
		t.Errorf("mandate Code = %v, want GP01", got)
	}
	if got := cell(gp, 0, ColMandate); got != "GPM Prudente" {
		t.Errorf("mandate name = %v, want GPM Prudente", got)
	}
	if got, ok := cell(gp, 0, ColClientAUM).(decimal.Decimal); !ok || !got.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("mandate Client_AUM = %v, want 5000", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	a := Aggregate(nil)
	if len(a.Tables) != len(Categories) {
		t.Fatalf("Aggregate(nil) has %d tables, want %d", len(a.Tables), len(Categories))
	}
	for _, c := range Categories {
		if n := a.Table(c).Len(); n != 0 {
			t.Errorf("Table(%v).Len() = %d, want 0", c, n)
		}
		if !a.Margin(c).IsZero() {
			t.Errorf("Margin(%v) = %v, want 0", c, a.Margin(c))
		}
	}
	if !a.Total().IsZero() {
		t.Errorf("Total() = %v, want 0", a.Total())
	}
}

func TestTableMean(t *testing.T) {
	tbl := &Table{
		Columns: []string{ColName, ColMargin},
		Rows: [][]any{
			{"a", decimal.NewFromInt(100)},
			{"b", "50"},
			{"c", ""},
			{"d", "n/a"},
		},
	}
	if got := tbl.Mean(ColMargin); !got.Equal(decimal.NewFromInt(75)) {
		t.Errorf("Mean(%q) = %v, want 75", ColMargin, got)
	}
	if got := tbl.Mean(ColName); !got.IsZero() {
		t.Errorf("Mean(%q) = %v, want 0", ColName, got)
	}
	if got := tbl.Mean("missing"); !got.IsZero() {
		t.Errorf("Mean(missing) = %v, want 0", got)
	}
}

func TestTableColumnsIsACopy(t *testing.T) {
	cols := TableColumns(Fund)
	cols[0] = "changed"
	if TableColumns(Fund)[0] != ColISIN {
		t.Error("TableColumns returned the shared slice")
	}
}
