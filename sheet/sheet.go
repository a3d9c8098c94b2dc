// Package sheet reads portfolio statements exported as spreadsheets.
//
// Only the first worksheet is read. Its first non-empty row holds the
// column headers and every following non-empty row is a position.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/allocation"
)

var (
	// ErrNoRows is returned when a file holds no header or no data row.
	ErrNoRows = errors.New("no rows")
	// ErrUnsupported is returned when no decoder can read a file.
	ErrUnsupported = errors.New("unsupported file format")
)

// decoder turns a file content into raw rows of cells.
type decoder func(data []byte) ([][]string, error)

// decoders by file extension.
var decoders = map[string]decoder{
	".xlsx": readXLSX,
	".xlsm": readXLSX,
	".xls":  readXLS,
	".csv":  readCSV,
	".txt":  readCSV,
}

// fallbacks are tried in order for unknown extensions.
var fallbacks = []decoder{readXLSX, readXLS, readCSV}

// Load reads a statement from r. The decoder is chosen from the filename
// extension; for unknown extensions every decoder is tried in turn.
func Load(r io.Reader, filename string) (*allocation.Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return Decode(data, filename)
}

// Decode is like Load for an in-memory file.
func Decode(data []byte, filename string) (*allocation.Sheet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("cannot decode %q: %w", filename, ErrNoRows)
	}
	candidates := fallbacks
	if dec, ok := decoders[strings.ToLower(filepath.Ext(filename))]; ok {
		candidates = []decoder{dec}
	}

	var errs []error
	for _, dec := range candidates {
		rows, err := dec(data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s, err := FromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q: %w", filename, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("cannot decode %q: %w: %w", filename, ErrUnsupported, errors.Join(errs...))
}

// FromRows builds a sheet from raw rows: the first non-empty row gives the
// headers, empty rows are skipped. Blank headers become "ColN" and repeated
// headers get the first free "_2", "_3"... suffix.
func FromRows(rows [][]string) (*allocation.Sheet, error) {
	var headers []string
	s := &allocation.Sheet{}
	for _, raw := range rows {
		if isEmptyRow(raw) {
			continue
		}
		if headers == nil {
			headers = uniqueHeaders(raw)
			continue
		}
		row := make(allocation.Row, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = raw[i]
			} else {
				row[h] = ""
			}
		}
		s.Rows = append(s.Rows, row)
	}
	if headers == nil || len(s.Rows) == 0 {
		return nil, ErrNoRows
	}
	s.Headers = headers
	return s, nil
}

// uniqueHeaders keeps headers as written, so that presets match them
// exactly. Suffixes are added until the name is not taken by any column.
func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = "Col" + strconv.Itoa(i+1)
		}
		name := h
		for n := 2; used[name]; n++ {
			name = h + "_" + strconv.Itoa(n)
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

// isEmptyRow checks if all cells are empty
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
