package allocation

import (
	"fmt"
	"strings"
)

// Field is one of the canonical columns understood by the analysis.
type Field int

const (
	FieldIdentifier Field = iota
	FieldName
	FieldQuantity
	FieldValue
	FieldCurrency
)

// Fields lists all canonical fields in resolution order.
var Fields = []Field{FieldIdentifier, FieldName, FieldQuantity, FieldValue, FieldCurrency}

// names used in preset files and JSON documents.
var fieldNames = [...]string{
	FieldIdentifier: "ISIN",
	FieldName:       "Strumento",
	FieldQuantity:   "Quantita",
	FieldValue:      "Valore",
	FieldCurrency:   "Valuta",
}

// english aliases accepted by ParseField.
var fieldAliases = map[string]Field{
	"identifier": FieldIdentifier,
	"id":         FieldIdentifier,
	"isin":       FieldIdentifier,
	"name":       FieldName,
	"instrument": FieldName,
	"strumento":  FieldName,
	"quantity":   FieldQuantity,
	"quantita":   FieldQuantity,
	"value":      FieldValue,
	"valore":     FieldValue,
	"currency":   FieldCurrency,
	"valuta":     FieldCurrency,
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField parses a field name, either the preset name (e.g. "Valore") or
// its english alias (e.g. "value"), case-insensitively.
func ParseField(s string) (Field, error) {
	if f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

func (f Field) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Field) UnmarshalText(text []byte) error {
	v, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FieldMapping maps canonical fields to the raw column header that carries
// them. A field missing from the map is unresolved. The same header can be
// used by several fields.
type FieldMapping map[Field]string

// Column returns the raw header for field f, and whether it is resolved.
func (m FieldMapping) Column(f Field) (string, bool) {
	h, ok := m[f]
	return h, ok && h != ""
}

// Resolved reports, for every canonical field, whether a column was found.
func (m FieldMapping) Resolved() map[Field]bool {
	res := make(map[Field]bool, len(Fields))
	for _, f := range Fields {
		_, res[f] = m.Column(f)
	}
	return res
}
