package query

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/colsift/colsift/table"
)

// Apply evaluates every predicate in the set against the table and returns
// the subset of rows satisfying all of them. The input table is never
// mutated. Applying an empty set returns a table equal to the input, and
// Apply is idempotent: filtering an already-filtered table with the same set
// changes nothing.
//
// A predicate whose operand cannot be coerced to the column's native
// comparable type is skipped, treated as always true. This is deliberate:
// a user's half-typed filter value must never block the rest of the
// pipeline. Predicates naming a column the table does not have are skipped
// for the same reason.
func Apply(t *table.Table, fs FilterSet) *table.Table {
	matchers := make([]matcher, 0, fs.Len())
	for _, p := range fs.Predicates() {
		kind, ok := t.Kind(p.Column)
		if !ok {
			continue
		}
		if m := compile(p, kind); m != nil {
			matchers = append(matchers, m)
		}
	}

	indices := make([]int, 0, t.Len())
rows:
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for _, m := range matchers {
			if !m(row) {
				continue rows
			}
		}
		indices = append(indices, i)
	}
	return t.Retain(indices)
}

// matcher reports whether a row satisfies one predicate.
type matcher func(row map[string]interface{}) bool

// compile turns a predicate into a matcher using the column's kind.
// It returns nil when the operand cannot be coerced, which drops the
// predicate from the evaluation pass.
func compile(p Predicate, kind table.Kind) matcher {
	switch kind {
	case table.Numeric:
		operand, ok := table.AsNumber(p.Value)
		if !ok {
			return nil
		}
		return numericMatcher(p, operand)
	case table.Temporal:
		operand, ok := table.AsTime(p.Value)
		if !ok {
			return nil
		}
		return temporalMatcher(p, operand)
	case table.Categorical:
		return categoricalMatcher(p)
	default:
		return nil
	}
}

func numericMatcher(p Predicate, operand float64) matcher {
	return func(row map[string]interface{}) bool {
		cell, ok := table.AsNumber(row[p.Column])
		if !ok {
			// Missing or unparseable cell in a numeric column never matches.
			return false
		}
		return compareNumbers(cell, p.Op, operand)
	}
}

func temporalMatcher(p Predicate, operand time.Time) matcher {
	return func(row map[string]interface{}) bool {
		cell, ok := table.AsTime(row[p.Column])
		if !ok {
			return false
		}
		return compareTimes(cell, p.Op, operand)
	}
}

// categoricalMatcher compares on string representations. Contains and
// NotContains are case-insensitive; equality and set membership are
// case-sensitive. A missing cell never matches Contains, Eq, or In; its
// complement operators (NotContains, Ne, NotIn) evaluate to true.
func categoricalMatcher(p Predicate) matcher {
	switch p.Op {
	case In, NotIn:
		set := p.Value.([]string) // shape validated at construction
		members := make(map[string]bool, len(set))
		for _, s := range set {
			members[s] = true
		}
		return func(row map[string]interface{}) bool {
			cell, ok := cellString(row[p.Column])
			found := ok && members[cell]
			if p.Op == NotIn {
				return !found
			}
			return found
		}
	case Contains, NotContains:
		needle := strings.ToLower(fmt.Sprintf("%v", p.Value))
		return func(row map[string]interface{}) bool {
			cell, ok := cellString(row[p.Column])
			found := ok && strings.Contains(strings.ToLower(cell), needle)
			if p.Op == NotContains {
				return !found
			}
			return found
		}
	case Eq, Ne:
		operand := fmt.Sprintf("%v", p.Value)
		return func(row map[string]interface{}) bool {
			cell, ok := cellString(row[p.Column])
			equal := ok && cell == operand
			if p.Op == Ne {
				return !equal
			}
			return equal
		}
	default:
		return nil
	}
}

// cellString returns the string representation of a cell value. The second
// return value is false for missing cells.
func cellString(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

// compareNumbers compares two numbers. Equality uses an epsilon scaled to
// the operands so that values arriving as float64 from parsed text compare
// sanely.
func compareNumbers(left float64, op Op, right float64) bool {
	const epsilon = 1e-9
	switch op {
	case Eq, Ne:
		diff := math.Abs(left - right)
		threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
		if op == Eq {
			return diff < threshold
		}
		return diff >= threshold
	case Lt:
		return left < right
	case Le:
		return left <= right
	case Gt:
		return left > right
	case Ge:
		return left >= right
	default:
		return false
	}
}

func compareTimes(left time.Time, op Op, right time.Time) bool {
	switch op {
	case Eq:
		return left.Equal(right)
	case Ne:
		return !left.Equal(right)
	case Lt:
		return left.Before(right)
	case Le:
		return !left.After(right)
	case Gt:
		return left.After(right)
	case Ge:
		return !left.Before(right)
	default:
		return false
	}
}
