package output

import (
	"encoding/json"
	"io"
	"math"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line). Cells the
// encoder cannot represent (NaN, infinities) become null.
func (j *JSONFormatter) Format(columns []string, rows []map[string]interface{}) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range rows {
		out := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			out[col] = jsonSafe(row[col])
		}
		if err := encoder.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

// jsonSafe replaces float values encoding/json rejects with nil.
func jsonSafe(v interface{}) interface{} {
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return v
}
