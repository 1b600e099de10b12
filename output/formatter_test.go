package output

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/colsift/colsift/chart"
	"github.com/colsift/colsift/table"
)

var testColumns = []string{"name", "age"}

var testRows = []map[string]interface{}{
	{"name": "alice", "age": int64(30)},
	{"name": "bob", "age": nil},
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	if err := f.Format(testColumns, testRows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "name,age\nalice,30\nbob,\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestCSVFormatter_SanitizesFormulas(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	rows := []map[string]interface{}{{"v": "=SUM(A1)"}}
	if err := f.Format([]string{"v"}, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "'=SUM(A1)") {
		t.Errorf("formula value not sanitized: %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	if err := f.Format(testColumns, testRows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0 is not valid JSON: %v", err)
	}
	if first["name"] != "alice" {
		t.Errorf("line 0 = %v", first)
	}
}

func TestJSONFormatter_NaNBecomesNull(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	rows := []map[string]interface{}{{"v": math.NaN()}}
	if err := f.Format([]string{"v"}, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"v":null}` {
		t.Errorf("Format() = %q, want null for NaN", got)
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)

	if err := f.Format(testColumns, testRows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"name", "age", "alice", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"int64", int64(42), "42"},
		{"float", 2.5, "2.5"},
		{"nan", math.NaN(), ""},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestTableData(t *testing.T) {
	tbl, err := table.New([]string{"a"}, map[string][]interface{}{"a": {"1", "2"}})
	if err != nil {
		t.Fatalf("table.New() error = %v", err)
	}

	columns, rows := TableData(tbl)
	if !reflect.DeepEqual(columns, []string{"a"}) {
		t.Errorf("columns = %v", columns)
	}
	if len(rows) != 2 || rows[1]["a"] != "2" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSeriesData(t *testing.T) {
	s := &chart.Series{
		XLabel:  "city",
		YLabel:  "count",
		Labeled: true,
		Points:  []chart.Point{{Label: "A", Y: 2}, {Label: "B", Y: 1}},
	}

	columns, rows := SeriesData(s)
	if !reflect.DeepEqual(columns, []string{"city", "count"}) {
		t.Errorf("columns = %v", columns)
	}
	if rows[0]["city"] != "A" || rows[0]["count"] != 2.0 {
		t.Errorf("rows[0] = %v", rows[0])
	}
}

func TestSeriesData_NumericX(t *testing.T) {
	s := &chart.Series{
		XLabel: "x",
		YLabel: "y",
		Points: []chart.Point{{X: 1.5, Y: 2}},
	}

	_, rows := SeriesData(s)
	if rows[0]["x"] != 1.5 {
		t.Errorf("rows[0][x] = %v, want 1.5", rows[0]["x"])
	}
}

func TestSeriesData_EmptyLabel(t *testing.T) {
	// A group keyed by the empty string is still a label, not a zero x.
	s := &chart.Series{
		XLabel:  "city",
		YLabel:  "count",
		Labeled: true,
		Points:  []chart.Point{{Label: "", Y: 3}},
	}

	_, rows := SeriesData(s)
	if rows[0]["city"] != "" {
		t.Errorf("rows[0][city] = %v, want empty string", rows[0]["city"])
	}
}

func TestMatrixData(t *testing.T) {
	m := &chart.Matrix{
		Columns: []string{"a", "b"},
		Coeffs:  [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
	}

	columns, rows := MatrixData(m)
	if !reflect.DeepEqual(columns, []string{"column", "a", "b"}) {
		t.Errorf("columns = %v", columns)
	}
	if rows[0]["column"] != "a" || rows[0]["a"] != "1.00" {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[0]["b"] != nil {
		t.Errorf("NaN coefficient = %v, want nil", rows[0]["b"])
	}
}

func TestSummaryData(t *testing.T) {
	summaries := []table.ColumnSummary{
		{Name: "age", Kind: "numeric", Missing: 1, MissingPct: 25, Distinct: 4},
	}

	columns, rows := SummaryData(summaries)
	if columns[0] != "column" || len(columns) != 5 {
		t.Errorf("columns = %v", columns)
	}
	if rows[0]["column"] != "age" || rows[0]["missing_pct"] != "25.00" {
		t.Errorf("rows[0] = %v", rows[0])
	}
}
