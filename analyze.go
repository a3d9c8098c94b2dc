package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultPreviewSize is the number of records kept in Analysis.Preview.
const DefaultPreviewSize = 50

// UnreadableNote is the summary note of a statement that could not be read.
const UnreadableNote = "file not readable"

// Analysis is everything the report layer needs.
type Analysis struct {
	Summary    Summary
	Mapping    FieldMapping
	Preset     string      // preset used for column resolution, if any.
	Records    []Record    // every statement row, projected.
	Preview    []Record    // the first records.
	Allocation *Allocation // per-category tables.
	Warnings   []string
}

// Table returns the table of category c.
func (a *Analysis) Table(c Category) *Table { return a.Allocation.Table(c) }

// Readable reports whether the statement could be read.
func (a *Analysis) Readable() bool { return a.Summary.Note == "" }

// ZeroTotal reports whether nothing was valued. The user is then asked for
// more details about the column names.
func (a *Analysis) ZeroTotal() bool { return a.Summary.Total.IsZero() }

// Category returns the category assigned to the i-th record.
func (a *Analysis) Category(i int) Category {
	if i < 0 || i >= len(a.Allocation.Assigned) {
		return Unclassified
	}
	return a.Allocation.Assigned[i]
}

// Unreadable returns the analysis of a statement that could not be read:
// empty tables, zero sums and note as the summary note.
func Unreadable(note string) *Analysis {
	a := &Analysis{
		Mapping:    FieldMapping{},
		Allocation: Aggregate(nil),
	}
	a.Summary = summarize(a.Mapping, nil, a.Allocation)
	a.Summary.Note = note
	return a
}

// Analyzer runs the full analysis of a statement.
type Analyzer struct {
	Presets     PresetStore // optional.
	Logger      *zap.Logger // optional.
	PreviewSize int         // defaults to DefaultPreviewSize.
}

func (z *Analyzer) logger() *zap.Logger {
	if z.Logger == nil {
		return zap.NewNop()
	}
	return z.Logger
}

// Analyze resolves the columns of s, projects and classifies its rows and
// aggregates them. It never fails: a nil or empty sheet yields Unreadable.
func (z *Analyzer) Analyze(s *Sheet, presetName string) *Analysis {
	log := z.logger()
	if s == nil || len(s.Headers) == 0 || len(s.Rows) == 0 {
		log.Warn("statement has no rows")
		return Unreadable(UnreadableNote)
	}

	resolver := &Resolver{Presets: z.Presets, Logger: log}
	mapping := resolver.Resolve(s.Headers, presetName)
	records := Project(s, mapping)
	alloc := Aggregate(records)

	a := &Analysis{
		Summary:    summarize(mapping, records, alloc),
		Mapping:    mapping,
		Preset:     presetName,
		Records:    records,
		Allocation: alloc,
	}

	size := z.PreviewSize
	if size <= 0 {
		size = DefaultPreviewSize
	}
	a.Preview = records[:min(size, len(records))]

	for _, f := range Fields {
		if !a.Summary.Columns[f] {
			a.Warnings = append(a.Warnings, fmt.Sprintf("no column found for %s", f))
		}
	}
	if col, ok := mapping.Column(FieldValue); ok {
		for i, row := range s.Rows {
			if cell := row[col]; AmbiguousComma(cell) {
				a.Warnings = append(a.Warnings, fmt.Sprintf("row %d: amount %q read as %s, check the decimal separator", i+1, cell, records[i].Value))
			}
		}
	}
	for _, rec := range alloc.Table(Security).Records {
		if err := ValidateISIN(rec.Identifier); err != nil {
			a.Warnings = append(a.Warnings, fmt.Sprintf("row %d: ISIN %s: %v", rec.Row, rec.Identifier, err))
		}
	}

	log.Info("statement analyzed",
		zap.Int("rows", len(records)),
		zap.Int("funds", alloc.Table(Fund).Len()),
		zap.Int("securities", alloc.Table(Security).Len()),
		zap.Int("mandates", alloc.Table(ManagedMandate).Len()),
		zap.Int("cash", alloc.Table(Cash).Len()),
		zap.Stringer("total", a.Summary.Total),
		zap.Int("warnings", len(a.Warnings)))
	return a
}

func summarize(mapping FieldMapping, records []Record, alloc *Allocation) Summary {
	s := Summary{
		InputRows: len(records),
		Columns:   mapping.Resolved(),
		Sums:      make(map[Category]decimal.Decimal, len(Categories)),
		Margins:   make(map[Category]decimal.Decimal, len(Categories)),
		Total:     alloc.Total(),
	}
	for _, c := range Categories {
		s.Sums[c] = alloc.Sum(c)
		s.Margins[c] = alloc.Margin(c)
	}
	s.Currency = commonCurrency(alloc)
	return s
}

// commonCurrency returns the currency shared by every classified position, or
// "" when they differ or none is known.
func commonCurrency(alloc *Allocation) string {
	cur := ""
	for _, t := range alloc.Tables {
		for _, r := range t.Records {
			switch {
			case r.Currency == "":
				continue
			case cur == "":
				cur = r.Currency
			case cur != r.Currency:
				return ""
			}
		}
	}
	return cur
}
