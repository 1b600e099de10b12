package query

import (
	"testing"

	"github.com/colsift/colsift/table"
)

func mustPredicate(t *testing.T, column string, op Op, value interface{}, kind table.Kind) Predicate {
	t.Helper()
	p, err := NewPredicate(column, op, value, kind)
	if err != nil {
		t.Fatalf("NewPredicate() error = %v", err)
	}
	return p
}

func TestFilterSet_Append(t *testing.T) {
	p1 := mustPredicate(t, "age", Ge, "20", table.Numeric)
	p2 := mustPredicate(t, "city", Eq, "NYC", table.Categorical)

	empty := NewFilterSet()
	one := empty.Append(p1)
	two := one.Append(p2)

	if empty.Len() != 0 || one.Len() != 1 || two.Len() != 2 {
		t.Fatalf("lengths = %d, %d, %d", empty.Len(), one.Len(), two.Len())
	}
	// Earlier snapshots are untouched by later appends.
	if one.At(0).Column != "age" {
		t.Errorf("one.At(0) = %v", one.At(0))
	}
	if two.At(1).Column != "city" {
		t.Errorf("two.At(1) = %v", two.At(1))
	}
}

func TestFilterSet_DuplicatesAllowed(t *testing.T) {
	p := mustPredicate(t, "age", Ge, "20", table.Numeric)
	fs := NewFilterSet(p, p)
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicates identified by position)", fs.Len())
	}
}

func TestFilterSet_RemoveAt(t *testing.T) {
	p1 := mustPredicate(t, "age", Ge, "20", table.Numeric)
	p2 := mustPredicate(t, "city", Eq, "NYC", table.Categorical)
	p3 := mustPredicate(t, "age", Lt, "60", table.Numeric)
	fs := NewFilterSet(p1, p2, p3)

	removed := fs.RemoveAt(1)
	if removed.Len() != 2 {
		t.Fatalf("RemoveAt(1).Len() = %d, want 2", removed.Len())
	}
	if removed.At(0).Column != "age" || removed.At(1).Op != Lt {
		t.Errorf("RemoveAt(1) left %v", removed.Predicates())
	}
	// The original snapshot is unchanged.
	if fs.Len() != 3 {
		t.Errorf("source Len() = %d after RemoveAt, want 3", fs.Len())
	}

	// Out-of-range removals are no-ops.
	if fs.RemoveAt(-1).Len() != 3 || fs.RemoveAt(5).Len() != 3 {
		t.Error("out-of-range RemoveAt modified the set")
	}
}

func TestFilterSet_Clear(t *testing.T) {
	p := mustPredicate(t, "age", Ge, "20", table.Numeric)
	fs := NewFilterSet(p)
	if fs.Clear().Len() != 0 {
		t.Error("Clear() did not empty the set")
	}
	if fs.Len() != 1 {
		t.Error("Clear() modified the source snapshot")
	}
}

func TestFilterSet_String(t *testing.T) {
	if got := NewFilterSet().String(); got != "(no filters)" {
		t.Errorf("empty String() = %q", got)
	}

	p := mustPredicate(t, "age", Ge, "20", table.Numeric)
	if got := NewFilterSet(p).String(); got != "1. age >= 20" {
		t.Errorf("String() = %q", got)
	}
}
