package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a share expressed in percent (12.5 means 12.5%).
type Percent float64

// ShareOf returns part as a percentage of total, 0 when total is zero.
func ShareOf(part, total decimal.Decimal) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(part.Mul(decimal.NewFromInt(100)).Div(total).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
