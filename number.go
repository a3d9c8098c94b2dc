package allocation

import (
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	currencySymbolRegex = regexp.MustCompile(`[€$£¥]`)
	// a three letter word before or after the amount, e.g. "EUR 1.200" or "1200 EUR".
	leadingCodeRegex  = regexp.MustCompile(`^([A-Za-z]{3})\s*(.*)$`)
	trailingCodeRegex = regexp.MustCompile(`^(.*?)\s*([A-Za-z]{3})$`)
	numberRegex       = regexp.MustCompile(`^[+-]?(\d+([.,]\d*)*|[.,]\d+)$`)
	// "1,500" or "12,345": a comma followed by exactly three digits.
	ambiguousCommaRegex = regexp.MustCompile(`^[+-]?\d{1,3},\d{3}$`)
)

// stripCurrency removes currency symbols and an ISO 4217 code around s.
// Other words are left in place so that the cell fails to parse.
func stripCurrency(s string) string {
	s = currencySymbolRegex.ReplaceAllString(s, "")
	if m := leadingCodeRegex.FindStringSubmatch(s); m != nil && isCurrencyCode(m[1]) {
		s = m[2]
	}
	if m := trailingCodeRegex.FindStringSubmatch(s); m != nil && isCurrencyCode(m[2]) {
		s = m[1]
	}
	return s
}

func isCurrencyCode(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// AmbiguousComma reports whether s is an amount like "1,500" where the comma
// may be a thousands separator although ParseNumber reads it as a decimal one.
func AmbiguousComma(s string) bool {
	return ambiguousCommaRegex.MatchString(strings.TrimSpace(s))
}

// ParseNumber converts a spreadsheet cell to a decimal. It accepts plain
// numbers ("1500.50", "-3", "1e3"), continental grouping ("1.500,50"),
// anglo-saxon grouping ("1,500.50"), a lone comma as decimal separator
// ("1500,5", "1,500" too, see AmbiguousComma) and a currency symbol or ISO
// code around the amount.
//
// ok is false when s holds no number; callers treat the value as missing.
func ParseNumber(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	if s == "" {
		return decimal.Zero, false
	}
	// scientific notation and other plain forms first.
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}

	s = stripCurrency(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "'", "")
	if !numberRegex.MatchString(s) {
		return decimal.Zero, false
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// the last separator is the decimal one.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
