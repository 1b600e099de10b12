package query

import (
	"reflect"
	"testing"

	"github.com/colsift/colsift/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"name", "age", "city", "signup"}, map[string][]interface{}{
		"name":   {"alice", "bob", "carol", "dave"},
		"age":    {"10", "20", "30", nil},
		"city":   {"NYC", "la", "NYC", nil},
		"signup": {"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01"},
	})
	if err != nil {
		t.Fatalf("table.New() error = %v", err)
	}
	return tbl
}

func names(t *testing.T, tbl *table.Table) []string {
	t.Helper()
	out := make([]string, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		out = append(out, tbl.Row(i)["name"].(string))
	}
	return out
}

func TestApply_EmptySetIsIdentity(t *testing.T) {
	tbl := testTable(t)
	got := Apply(tbl, NewFilterSet())
	if got.Len() != tbl.Len() {
		t.Fatalf("empty filter set returned %d rows, want %d", got.Len(), tbl.Len())
	}
	if !reflect.DeepEqual(got.Export(), tbl.Export()) {
		t.Error("empty filter set changed the table contents")
	}
}

func TestApply_Numeric(t *testing.T) {
	tbl := testTable(t)
	p := mustPredicate(t, "age", Ge, "20", table.Numeric)

	got := Apply(tbl, NewFilterSet(p))
	// The row with a missing age is excluded: a missing value never
	// satisfies a comparison.
	if want := []string{"bob", "carol"}; !reflect.DeepEqual(names(t, got), want) {
		t.Errorf("age >= 20 kept %v, want %v", names(t, got), want)
	}
}

func TestApply_Temporal(t *testing.T) {
	tbl := testTable(t)
	p := mustPredicate(t, "signup", Lt, "2024-02-15", table.Temporal)

	got := Apply(tbl, NewFilterSet(p))
	if want := []string{"alice", "bob"}; !reflect.DeepEqual(names(t, got), want) {
		t.Errorf("signup < 2024-02-15 kept %v, want %v", names(t, got), want)
	}
}

func TestApply_ContainsCaseInsensitive(t *testing.T) {
	tbl := testTable(t)
	p := mustPredicate(t, "city", Contains, "ny", table.Categorical)

	got := Apply(tbl, NewFilterSet(p))
	if want := []string{"alice", "carol"}; !reflect.DeepEqual(names(t, got), want) {
		t.Errorf("city contains ny kept %v, want %v", names(t, got), want)
	}
}

func TestApply_NotContainsKeepsMissing(t *testing.T) {
	tbl := testTable(t)
	p := mustPredicate(t, "city", NotContains, "ny", table.Categorical)

	got := Apply(tbl, NewFilterSet(p))
	// A missing city cannot contain "ny", so it satisfies the complement:
	// dave stays alongside bob.
	if want := []string{"bob", "dave"}; !reflect.DeepEqual(names(t, got), want) {
		t.Errorf("city not contains ny kept %v, want %v", names(t, got), want)
	}
}

func TestApply_EqNePartition(t *testing.T) {
	tbl := testTable(t)
	eq := mustPredicate(t, "city", Eq, "NYC", table.Categorical)
	ne := mustPredicate(t, "city", Ne, "NYC", table.Categorical)

	kept := Apply(tbl, NewFilterSet(eq))
	dropped := Apply(tbl, NewFilterSet(ne))
	if kept.Len()+dropped.Len() != tbl.Len() {
		t.Errorf("eq kept %d and ne kept %d, together want %d",
			kept.Len(), dropped.Len(), tbl.Len())
	}
	// The missing city falls on the != side.
	if want := []string{"bob", "dave"}; !reflect.DeepEqual(names(t, dropped), want) {
		t.Errorf("city != NYC kept %v, want %v", names(t, dropped), want)
	}
}

func TestApply_InSet(t *testing.T) {
	tbl := testTable(t)
	in := mustPredicate(t, "city", In, []string{"NYC", "SF"}, table.Categorical)
	notIn := mustPredicate(t, "city", NotIn, []string{"NYC", "SF"}, table.Categorical)

	if want := []string{"alice", "carol"}; !reflect.DeepEqual(names(t, Apply(tbl, NewFilterSet(in))), want) {
		t.Errorf("city in (NYC, SF) kept wrong rows")
	}
	// Missing cities satisfy not-in.
	if want := []string{"bob", "dave"}; !reflect.DeepEqual(names(t, Apply(tbl, NewFilterSet(notIn))), want) {
		t.Errorf("city not in (NYC, SF) kept wrong rows")
	}
}

func TestApply_Conjunction(t *testing.T) {
	tbl := testTable(t)
	fs := NewFilterSet(
		mustPredicate(t, "age", Ge, "20", table.Numeric),
		mustPredicate(t, "city", Eq, "NYC", table.Categorical),
	)

	got := Apply(tbl, fs)
	if want := []string{"carol"}; !reflect.DeepEqual(names(t, got), want) {
		t.Errorf("conjunction kept %v, want %v", names(t, got), want)
	}
}

func TestApply_Idempotent(t *testing.T) {
	tbl := testTable(t)
	fs := NewFilterSet(mustPredicate(t, "age", Gt, "15", table.Numeric))

	once := Apply(tbl, fs)
	twice := Apply(once, fs)
	if !reflect.DeepEqual(once.Export(), twice.Export()) {
		t.Error("applying the same set twice changed the result")
	}
}

func TestApply_SkipsUncoercibleOperand(t *testing.T) {
	tbl := testTable(t)
	// "abc" cannot be read as a number, so the predicate is dropped and the
	// rest of the set still applies.
	fs := NewFilterSet(
		Predicate{Column: "age", Op: Gt, Value: "abc"},
		mustPredicate(t, "city", Eq, "NYC", table.Categorical),
	)

	got := Apply(tbl, fs)
	if want := []string{"alice", "carol"}; !reflect.DeepEqual(names(t, got), want) {
		t.Errorf("got %v, want %v", names(t, got), want)
	}
}

func TestApply_SkipsUnknownColumn(t *testing.T) {
	tbl := testTable(t)
	fs := NewFilterSet(Predicate{Column: "salary", Op: Gt, Value: "100"})

	got := Apply(tbl, fs)
	if got.Len() != tbl.Len() {
		t.Errorf("unknown column dropped rows: %d, want %d", got.Len(), tbl.Len())
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	tbl := testTable(t)
	before := tbl.Export()
	Apply(tbl, NewFilterSet(mustPredicate(t, "age", Lt, "25", table.Numeric)))
	if !reflect.DeepEqual(tbl.Export(), before) {
		t.Error("Apply mutated the input table")
	}
}

func TestCompareNumbers_Epsilon(t *testing.T) {
	if !compareNumbers(0.1+0.2, Eq, 0.3) {
		t.Error("0.1+0.2 == 0.3 should hold under epsilon comparison")
	}
	if compareNumbers(0.30001, Eq, 0.3) {
		t.Error("0.30001 == 0.3 should not hold")
	}
}
