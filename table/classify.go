package table

import (
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column as Numeric, Temporal, or Categorical. The kind
// governs which filter operators are legal and how cell values compare.
type Kind int

const (
	Numeric Kind = iota
	Temporal
	Categorical
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// dateLayouts are the accepted temporal formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// Classify inspects the ordered cell values of one column and returns its
// Kind. A column is Numeric if every non-missing value parses as a number,
// Temporal if every non-missing value parses as a date or timestamp, and
// Categorical otherwise. Precedence is Numeric > Temporal > Categorical.
//
// Classify is a pure function: same values, same Kind, no side effects.
// A column with no non-missing values classifies as Numeric by precedence.
func Classify(values []interface{}) Kind {
	numeric := true
	temporal := true

	for _, v := range values {
		if v == nil {
			continue
		}
		if numeric {
			if _, ok := AsNumber(v); !ok {
				numeric = false
			}
		}
		if temporal {
			if _, ok := AsTime(v); !ok {
				temporal = false
			}
		}
		if !numeric && !temporal {
			return Categorical
		}
	}

	if numeric {
		return Numeric
	}
	if temporal {
		return Temporal
	}
	return Categorical
}

// AsNumber reports whether v is a number or a string that parses as one,
// returning its float64 value.
func AsNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsTime reports whether v is a time.Time or a string that parses with one
// of the accepted date layouts, returning its time value.
func AsTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
