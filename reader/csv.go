package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/colsift/colsift/table"
)

// utf8BOM is the byte-order mark some spreadsheet exports prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV loads CSV data into a table. The first record is the header.
// Input is decoded as UTF-8 (a leading BOM is stripped); when the bytes are
// not valid UTF-8 the reader falls back to ISO-8859-1 (latin1), the same
// encoding ladder the exports this tool targets tend to need. Empty cells
// become missing values; everything else enters the table as a raw string
// for the classifier to type.
func ReadCSV(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode input: %w", err)
		}
		data = decoded
	}

	cr := csv.NewReader(bytes.NewReader(data))
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		t, _ := table.New(nil, nil)
		return t, nil
	}

	header := records[0]
	cells := make(map[string][]interface{}, len(header))
	for _, col := range header {
		cells[col] = make([]interface{}, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		for i, col := range header {
			if record[i] == "" {
				cells[col] = append(cells[col], nil)
			} else {
				cells[col] = append(cells[col], record[i])
			}
		}
	}

	t, err := table.New(header, cells)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return t, nil
}
