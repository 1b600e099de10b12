package query

import (
	"errors"
	"fmt"

	"github.com/colsift/colsift/table"
)

// ErrInvalidPredicate is returned by NewPredicate when the operator is not
// legal for the column's kind or the operand shape does not match the
// operator. It is surfaced to the user at construction time; a predicate
// failing validation is never constructed.
var ErrInvalidPredicate = errors.New("invalid predicate")

// Op is a filter operator.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
	Contains
	NotContains
	In
	NotIn
)

// String returns the operator's surface syntax.
func (op Op) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Contains:
		return "contains"
	case NotContains:
		return "not contains"
	case In:
		return "in"
	case NotIn:
		return "not in"
	default:
		return "unknown"
	}
}

// ParseOp converts operator surface syntax to an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "==", "=":
		return Eq, nil
	case "!=":
		return Ne, nil
	case "<":
		return Lt, nil
	case "<=":
		return Le, nil
	case ">":
		return Gt, nil
	case ">=":
		return Ge, nil
	case "contains":
		return Contains, nil
	case "not contains", "not-contains":
		return NotContains, nil
	case "in":
		return In, nil
	case "not in", "not-in":
		return NotIn, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

// OpsFor returns the legal operators for a column kind.
func OpsFor(kind table.Kind) []Op {
	switch kind {
	case table.Numeric, table.Temporal:
		return []Op{Eq, Ne, Lt, Le, Gt, Ge}
	case table.Categorical:
		return []Op{Eq, Ne, Contains, NotContains, In, NotIn}
	default:
		return nil
	}
}

// Predicate is a single column/operator/operand test. Predicates are
// immutable value objects; construct them with NewPredicate so that the
// operator and operand shape are validated against the column's kind.
//
// Value holds a scalar (number, date string, or plain string) for comparison
// and contains operators, and a []string for In/NotIn.
type Predicate struct {
	Column string
	Op     Op
	Value  interface{}
}

// NewPredicate validates and constructs a predicate against the kind of its
// target column. The error wraps ErrInvalidPredicate when the operator is
// not in the kind's legal set or the operand shape is wrong. No cross-kind
// coercion of the operand is attempted here; coercion happens at evaluation
// time.
func NewPredicate(column string, op Op, value interface{}, kind table.Kind) (Predicate, error) {
	legal := false
	for _, candidate := range OpsFor(kind) {
		if candidate == op {
			legal = true
			break
		}
	}
	if !legal {
		return Predicate{}, fmt.Errorf("%w: operator %s not valid for %s column %q",
			ErrInvalidPredicate, op, kind, column)
	}

	_, isSet := value.([]string)
	switch op {
	case In, NotIn:
		if !isSet {
			return Predicate{}, fmt.Errorf("%w: operator %s requires a set of values, got %T",
				ErrInvalidPredicate, op, value)
		}
	default:
		if isSet {
			return Predicate{}, fmt.Errorf("%w: operator %s requires a scalar value, got a set",
				ErrInvalidPredicate, op)
		}
		if value == nil {
			return Predicate{}, fmt.Errorf("%w: operator %s requires a value", ErrInvalidPredicate, op)
		}
	}

	return Predicate{Column: column, Op: op, Value: value}, nil
}

// String formats the predicate in its surface syntax.
func (p Predicate) String() string {
	if set, ok := p.Value.([]string); ok {
		return fmt.Sprintf("%s %s %v", p.Column, p.Op, set)
	}
	return fmt.Sprintf("%s %s %v", p.Column, p.Op, p.Value)
}
