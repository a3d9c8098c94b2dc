package allocation

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a currency, used for display. The currency may be
// empty when amounts in several currencies were summed together.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }

// String formats the amount with the currency conventions when the currency
// is known, and as a plain grouped number otherwise.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		s := groupThousands(m.value.StringFixed(2))
		if m.cur != "" {
			s += " " + m.cur
		}
		return s
	}
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// groupThousands inserts ',' every three digits of the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	var b []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, intPart[i])
	}
	return sign + string(b) + frac
}
