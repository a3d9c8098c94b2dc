package allocation

import "fmt"

// Category is the asset bucket a position is classified into.
type Category int

const (
	Unclassified Category = iota
	Fund
	Security
	ManagedMandate
	Cash
)

// Categories lists the four reported categories in report order.
var Categories = []Category{Fund, Security, ManagedMandate, Cash}

var categoryNames = [...]string{
	Unclassified:   "Unclassified",
	Fund:           "Fund",
	Security:       "Security",
	ManagedMandate: "ManagedMandate",
	Cash:           "Cash",
}

// labels are the plural forms used as sheet and section titles.
var categoryLabels = [...]string{
	Unclassified:   "Unclassified",
	Fund:           "Funds",
	Security:       "Securities",
	ManagedMandate: "Mandates",
	Cash:           "Cash",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label returns the plural title of the category, e.g. "Funds".
func (c Category) Label() string {
	if c < 0 || int(c) >= len(categoryLabels) {
		return c.String()
	}
	return categoryLabels[c]
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
