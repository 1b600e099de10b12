// Package chart reduces a filtered table into chart-ready series: grouped
// aggregations for bar and line charts, raw pairs for scatter plots, binned
// counts for histograms, and a Pearson correlation matrix over the numeric
// subset.
package chart

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/colsift/colsift/table"
)

// ErrInsufficientFields is returned when the requested chart kind is
// missing a required column. The caller shows it as a notice; the pipeline
// never crashes on it.
var ErrInsufficientFields = errors.New("insufficient fields for chart")

// Func is an aggregation function.
type Func int

const (
	Mean Func = iota
	Sum
	Median
	Count
)

// String returns the function's lowercase name.
func (f Func) String() string {
	switch f {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	case Median:
		return "median"
	case Count:
		return "count"
	default:
		return "unknown"
	}
}

// ParseFunc converts an aggregation function name to a Func.
func ParseFunc(s string) (Func, error) {
	switch s {
	case "mean", "avg":
		return Mean, nil
	case "sum":
		return Sum, nil
	case "median":
		return Median, nil
	case "count":
		return Count, nil
	default:
		return 0, fmt.Errorf("unknown aggregation function %q", s)
	}
}

// Kind selects the chart shape.
type Kind int

const (
	Bar Kind = iota
	Line
	Scatter
	Histogram
)

// String returns the chart kind's lowercase name.
func (k Kind) String() string {
	switch k {
	case Bar:
		return "bar"
	case Line:
		return "line"
	case Scatter:
		return "scatter"
	case Histogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// ParseKind converts a chart kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bar":
		return Bar, nil
	case "line":
		return Line, nil
	case "scatter":
		return Scatter, nil
	case "histogram", "hist":
		return Histogram, nil
	default:
		return 0, fmt.Errorf("unknown chart kind %q", s)
	}
}

// Spec is the user's chart selection: the grouping column, an optional
// measure column, the reduction function, and the chart kind. Func is only
// meaningful when Measure names a Numeric column; otherwise the pipeline
// falls back to row counts.
type Spec struct {
	GroupBy string
	Measure string // "" means no measure
	Func    Func
	Kind    Kind
}

// Point is one element of a series. Aggregated series carry Label and Y;
// scatter and histogram points carry X and Y.
type Point struct {
	Label string
	X     float64
	Y     float64
}

// Series is a chart-ready, ordered sequence of points plus the labels the
// rendering layer needs. Rendering chooses the visual encoding. Labeled
// reports whether points carry categorical labels in Point.Label rather
// than numeric Point.X values; a group key can legitimately be the empty
// string, so consumers must not infer the shape from the label itself.
type Series struct {
	Title   string  `json:"title"`
	XLabel  string  `json:"x_label"`
	YLabel  string  `json:"y_label"`
	Labeled bool    `json:"labeled"`
	Points  []Point `json:"points"`
}

// missingLabel is the display key for the group of rows whose grouping
// cell is missing.
const missingLabel = "(missing)"

// Aggregate reduces a table into a series according to spec. Bar and line
// charts group and reduce; scatter passes raw pairs through; histogram bins
// a numeric column. An empty input table produces an empty series, never an
// error.
func Aggregate(t *table.Table, spec Spec) (*Series, error) {
	if _, ok := t.Kind(spec.GroupBy); !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInsufficientFields, spec.GroupBy)
	}

	switch spec.Kind {
	case Scatter:
		return scatter(t, spec)
	case Histogram:
		return histogram(t, spec)
	default:
		return grouped(t, spec)
	}
}

// grouped implements bar and line charts: one point per distinct grouping
// value. With a Numeric measure the group's measures reduce by spec.Func;
// without one (absent or non-numeric) every group reduces to its row count
// and the requested function is ignored.
func grouped(t *table.Table, spec Spec) (*Series, error) {
	measureKind, hasMeasure := t.Kind(spec.Measure)
	useMeasure := spec.Measure != "" && hasMeasure && measureKind == table.Numeric

	groups := make(map[string][]float64)
	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		key := groupKey(row[spec.GroupBy])
		counts[key]++
		if !useMeasure {
			continue
		}
		if v, ok := table.AsNumber(row[spec.Measure]); ok {
			groups[key] = append(groups[key], v)
		}
	}

	series := &Series{XLabel: spec.GroupBy, Labeled: true}
	if useMeasure {
		series.Title = fmt.Sprintf("%s of %s by %s", spec.Func, spec.Measure, spec.GroupBy)
		series.YLabel = fmt.Sprintf("%s(%s)", spec.Func, spec.Measure)
	} else {
		series.Title = fmt.Sprintf("count by %s", spec.GroupBy)
		series.YLabel = "count"
	}

	for _, key := range sortedKeys(counts) {
		var y float64
		if useMeasure {
			y = reduce(spec.Func, groups[key])
		} else {
			y = float64(counts[key])
		}
		series.Points = append(series.Points, Point{Label: key, Y: y})
	}
	return series, nil
}

// reduce applies fn to the non-missing measures of one group. Mean and
// median of an empty group are NaN; sum is 0; count is the number of
// non-missing values.
func reduce(fn Func, values []float64) float64 {
	switch fn {
	case Count:
		return float64(len(values))
	case Sum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	case Mean:
		if len(values) == 0 {
			return math.NaN()
		}
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case Median:
		if len(values) == 0 {
			return math.NaN()
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	default:
		return math.NaN()
	}
}

// scatter passes raw (x, y) pairs through unaggregated. Both columns must
// be present. Numeric x values fill Point.X; for a categorical or temporal
// x the string form goes into Point.Label instead. Rows with a missing
// coordinate or an unparseable y are dropped.
func scatter(t *table.Table, spec Spec) (*Series, error) {
	if spec.Measure == "" {
		return nil, fmt.Errorf("%w: scatter requires both x and y columns", ErrInsufficientFields)
	}
	xKind, _ := t.Kind(spec.GroupBy)
	if _, ok := t.Kind(spec.Measure); !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInsufficientFields, spec.Measure)
	}

	series := &Series{
		Title:   fmt.Sprintf("%s vs %s", spec.Measure, spec.GroupBy),
		XLabel:  spec.GroupBy,
		YLabel:  spec.Measure,
		Labeled: xKind != table.Numeric,
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		y, okY := table.AsNumber(row[spec.Measure])
		if !okY {
			continue
		}
		p := Point{Y: y}
		if xKind == table.Numeric {
			x, okX := table.AsNumber(row[spec.GroupBy])
			if !okX {
				continue
			}
			p.X = x
		} else {
			label, okX := cellLabel(row[spec.GroupBy])
			if !okX {
				continue
			}
			p.Label = label
		}
		series.Points = append(series.Points, p)
	}
	return series, nil
}

// cellLabel is the string form of a non-missing cell.
func cellLabel(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	return fmt.Sprintf("%v", v), true
}

// groupKey renders a grouping cell as its display key. Missing cells form
// their own group.
func groupKey(v interface{}) string {
	if v == nil {
		return missingLabel
	}
	return fmt.Sprintf("%v", v)
}

// sortedKeys orders group keys numerically when every key parses as a
// number, lexically otherwise. The missing group always sorts last.
func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	numeric := true
	values := make(map[string]float64, len(keys))
	for _, k := range keys {
		if k == missingLabel {
			continue
		}
		v, ok := table.AsNumber(k)
		if !ok {
			numeric = false
			break
		}
		values[k] = v
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a == missingLabel {
			return false
		}
		if b == missingLabel {
			return true
		}
		if numeric {
			return values[a] < values[b]
		}
		return a < b
	})
	return keys
}
