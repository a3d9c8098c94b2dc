package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first worksheet of an Office Open XML workbook. Raw cell
// values are used so that amounts are not altered by number formats.
func readXLSX(data []byte) ([][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer xl.Close()

	sheetName := xl.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("xlsx: no worksheet")
	}
	rows, err := xl.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: cannot read sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

// readXLS reads the first worksheet of a legacy BIFF workbook. The decoder
// panics on some malformed files; that is reported as an error.
func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("xls: malformed workbook: %v", r)
		}
	}()
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("xls: %w", err)
	}
	if book.NumSheets() == 0 {
		return nil, errors.New("xls: no worksheet")
	}
	ws := book.GetSheet(0)
	if ws == nil {
		return nil, errors.New("xls: no worksheet")
	}

	rows = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := ws.Row(i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, r.LastCol()+1)
		for j := 0; j <= r.LastCol(); j++ {
			cells = append(cells, r.Col(j))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// readCSV reads delimited text. The delimiter is the most frequent of ';',
// ',' and tab on the first line; statements from continental banks commonly
// use ';'.
func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !isText(data) {
		return nil, errors.New("csv: binary content")
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return rows, nil
}

func sniffDelimiter(data []byte) rune {
	line, _, _ := strings.Cut(string(data), "\n")
	best, count := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > count {
			best, count = d, n
		}
	}
	return best
}

// isText reports whether data looks like text: no NUL byte in its first KiB.
func isText(data []byte) bool {
	head := data[:min(len(data), 1024)]
	return bytes.IndexByte(head, 0) < 0
}
