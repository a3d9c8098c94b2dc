package allocation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Preset maps canonical fields to the exact raw column header used by a
// known file source.
type Preset map[Field]string

// PresetStore looks up presets by name.
type PresetStore interface {
	// Lookup returns the preset registered under name, compared
	// case-insensitively. It returns an empty preset when none is found.
	Lookup(name string) Preset
}

// Presets is an in-memory PresetStore keyed by upper-case preset name.
type Presets map[string]Preset

func (p Presets) Lookup(name string) Preset {
	if preset, ok := p[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return preset
	}
	return Preset{}
}

// Names returns the preset names, sorted.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the first preset name (in sorted order) that appears in the
// upper-cased filename, or "" if none does.
func (p Presets) Match(filename string) string {
	base := strings.ToUpper(filepath.Base(filename))
	for _, name := range p.Names() {
		if name != "" && strings.Contains(base, name) {
			return name
		}
	}
	return ""
}

// LoadPresets reads the preset file at path.
//
// The file is a JSON (.json) or YAML (.yaml, .yml) object whose keys are
// preset names and values objects from field name to column header:
//
//	MERASSI:
//	  ISIN: Codice ISIN
//	  Valore: Controvalore EUR
//
// A missing or malformed file yields an empty store; unknown field names are
// skipped. Failures are only reported to logger, at debug level, which may be
// nil.
func LoadPresets(path string, logger *zap.Logger) Presets {
	if logger == nil {
		logger = zap.NewNop()
	}
	presets, err := readPresets(path)
	if err != nil {
		logger.Debug("presets unavailable, falling back to pattern matching", zap.String("path", path), zap.Error(err))
		return Presets{}
	}
	return presets
}

func readPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read presets: %w", err)
	}
	raw := make(map[string]map[string]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse presets %q: %w", path, err)
	}
	return decodePresets(raw), nil
}

func decodePresets(raw map[string]map[string]string) Presets {
	presets := make(Presets, len(raw))
	for name, columns := range raw {
		preset := make(Preset, len(columns))
		for key, column := range columns {
			f, err := ParseField(key)
			if err != nil || column == "" {
				continue
			}
			preset[f] = column
		}
		presets[strings.ToUpper(strings.TrimSpace(name))] = preset
	}
	return presets
}
