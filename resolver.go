package allocation

import (
	"regexp"
	"slices"

	"go.uber.org/zap"
)

// columnRule associates a canonical field with the ordered patterns that
// recognize its normalized header. Patterns are matched against the whole
// normalized header.
type columnRule struct {
	field    Field
	patterns []*regexp.Regexp
}

func rule(f Field, patterns ...string) columnRule {
	r := columnRule{field: f}
	for _, p := range patterns {
		r.patterns = append(r.patterns, regexp.MustCompile(`^(?:`+p+`)$`))
	}
	return r
}

// columnRules are evaluated top to bottom. Headers are normalized first so
// accents are already folded.
var columnRules = []columnRule{
	rule(FieldIdentifier, `isin`, `cod(ice)?[\s_]*isin`, `isin[\s_]*code`),
	rule(FieldName, `strumen.*`, `descriz.*prod.*`, `denomin.*`, `nome.*`, `prodotto`),
	rule(FieldQuantity, `q(uantita|ta|\.ta)`, `num(ero)?[\s_]*titoli`, `qty`),
	rule(FieldValue, `valore([\s_])?(attuale|di[\s_]mercato)?`, `controvalore.*`, `importo`, `aum`),
	rule(FieldCurrency, `valuta`, `divisa`, `ccy`, `currency`),
}

func (r columnRule) match(normalized string) bool {
	for _, p := range r.patterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Resolver maps canonical fields to raw column headers.
type Resolver struct {
	Presets PresetStore // optional
	Logger  *zap.Logger // optional
}

// Resolve returns the field mapping for headers. When presetName is not empty
// and the store knows it, the preset columns present in headers take
// precedence over pattern matching.
func (r *Resolver) Resolve(headers []string, presetName string) FieldMapping {
	var preset Preset
	if presetName != "" && r.Presets != nil {
		preset = r.Presets.Lookup(presetName)
	}
	m := DetectColumns(headers, preset)

	if r.Logger != nil {
		for _, f := range Fields {
			col, ok := m.Column(f)
			r.Logger.Debug("column resolution",
				zap.Stringer("field", f),
				zap.String("column", col),
				zap.Bool("resolved", ok),
				zap.String("preset", presetName))
		}
	}
	return m
}

// DetectColumns resolves every field independently: first from preset, when
// it names a column that is exactly one of headers, then from the first header
// whose normalized form matches one of the field's patterns.
func DetectColumns(headers []string, preset Preset) FieldMapping {
	m := make(FieldMapping, len(Fields))
	for _, f := range Fields {
		if col, ok := preset[f]; ok && col != "" && slices.Contains(headers, col) {
			m[f] = col
		}
	}

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	for _, r := range columnRules {
		if _, done := m[r.field]; done {
			continue
		}
		for i, h := range normalized {
			if r.match(h) {
				m[r.field] = headers[i]
				break
			}
		}
	}
	return m
}
