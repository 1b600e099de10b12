package chart

import (
	"math"
	"testing"
)

func TestCorrelate(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b", "c"}, map[string][]interface{}{
		"a": {"1", "2", "3", "4"},
		"b": {"2", "4", "6", "8"},   // perfectly correlated with a
		"c": {"4", "3", "2", "1"},   // perfectly anti-correlated with a
	})

	m := Correlate(tbl)
	if m == nil {
		t.Fatal("Correlate() returned nil")
	}
	if len(m.Columns) != 3 {
		t.Fatalf("Columns = %v", m.Columns)
	}

	const tolerance = 1e-12
	check := func(i, j int, want float64) {
		t.Helper()
		if got := m.Coeffs[i][j]; math.Abs(got-want) > tolerance {
			t.Errorf("Coeffs[%d][%d] = %v, want %v", i, j, got, want)
		}
	}
	check(0, 0, 1)
	check(0, 1, 1)
	check(0, 2, -1)
	// Symmetry.
	check(1, 0, 1)
	check(2, 0, -1)
}

func TestCorrelate_SkipsNonNumericColumns(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b", "city"}, map[string][]interface{}{
		"a":    {"1", "2"},
		"b":    {"3", "4"},
		"city": {"NYC", "LA"},
	})

	m := Correlate(tbl)
	if m == nil {
		t.Fatal("Correlate() returned nil")
	}
	for _, col := range m.Columns {
		if col == "city" {
			t.Error("categorical column included in correlation matrix")
		}
	}
}

func TestCorrelate_FewerThanTwoNumeric(t *testing.T) {
	tbl := mustTable(t, []string{"a", "city"}, map[string][]interface{}{
		"a":    {"1", "2"},
		"city": {"NYC", "LA"},
	})
	if m := Correlate(tbl); m != nil {
		t.Errorf("Correlate() = %v, want nil for a single numeric column", m)
	}
}

func TestCorrelate_ZeroVariance(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"}, map[string][]interface{}{
		"a": {"1", "2", "3"},
		"b": {"5", "5", "5"},
	})

	m := Correlate(tbl)
	if m == nil {
		t.Fatal("Correlate() returned nil")
	}
	if !math.IsNaN(m.Coeffs[0][1]) {
		t.Errorf("zero-variance coefficient = %v, want NaN", m.Coeffs[0][1])
	}
}

func TestCorrelate_MissingValuesUseCompletePairs(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"}, map[string][]interface{}{
		"a": {"1", "2", "3", nil},
		"b": {"2", "4", nil, "8"},
	})

	m := Correlate(tbl)
	if m == nil {
		t.Fatal("Correlate() returned nil")
	}
	// Only rows 0 and 1 are complete; they lie on a line.
	if got := m.Coeffs[0][1]; math.Abs(got-1) > 1e-12 {
		t.Errorf("coefficient = %v, want 1", got)
	}
}

func TestPearson_TooFewPairs(t *testing.T) {
	one := 1.0
	if !math.IsNaN(pearson([]*float64{&one, nil}, []*float64{&one, &one})) {
		t.Error("single complete pair should yield NaN")
	}
}
