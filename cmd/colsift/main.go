package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/colsift/colsift/chart"
	"github.com/colsift/colsift/output"
	"github.com/colsift/colsift/query"
	"github.com/colsift/colsift/reader"
	"github.com/colsift/colsift/server"
	"github.com/colsift/colsift/table"
)

// filterList collects repeated -filter flags.
type filterList []string

func (f *filterList) String() string {
	return strings.Join(*f, "; ")
}

func (f *filterList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

var (
	filterFlags  filterList
	xFlag        = flag.String("x", "", "Grouping column (x axis)")
	yFlag        = flag.String("y", "", "Measure column (y axis, numeric for aggregations)")
	aggFlag      = flag.String("agg", "mean", "Aggregation function: mean, sum, median, count")
	chartFlag    = flag.String("chart", "bar", "Chart kind: bar, line, scatter, histogram")
	formatFlag   = flag.String("f", "table", "Output format: table, csv, jsonl")
	limitFlag    = flag.Int("limit", 0, "Limit number of output rows (0 = unlimited)")
	outFlag      = flag.String("o", "", "Write output to file instead of stdout")
	summaryFlag  = flag.Bool("summary", false, "Show column summaries instead of data")
	corrFlag     = flag.Bool("corr", false, "Show the correlation matrix of the filtered data")
	serveFlag    = flag.String("serve", "", "Start the HTTP session API on this address (e.g. :8080)")
)

func main() {
	flag.Var(&filterFlags, "filter", "Filter expression (repeatable), e.g. 'age >= 30' or 'city in (NYC, LA)'")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.csv|file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to filter and chart tabular data files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -summary data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -filter 'age >= 30' -filter 'city contains york' data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -x city -y salary -agg mean -chart bar data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -x age -chart histogram data.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -serve :8080\n", os.Args[0])
	}

	flag.Parse()

	if *serveFlag != "" {
		fmt.Fprintf(os.Stderr, "listening on %s\n", *serveFlag)
		if err := http.ListenAndServe(*serveFlag, server.New()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *limitFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: -limit must be non-negative, got %d\n", *limitFlag)
		os.Exit(1)
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing data file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	t, err := reader.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", filename)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	formatter, err := newFormatter(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, cleanup, err := openOutput(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()
	formatter.SetOutput(out)

	// Summaries describe the loaded table before any filtering.
	if *summaryFlag {
		columns, rows := output.SummaryData(t.Summarize())
		if err := formatter.Format(columns, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	filters, err := buildFilters(t, filterFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		listColumns(t)
		os.Exit(1)
	}
	filtered := query.Apply(t, filters)

	var columns []string
	var rows []map[string]interface{}
	switch {
	case *corrFlag:
		m := chart.Correlate(filtered)
		if m == nil {
			fmt.Fprintf(os.Stderr, "Error: correlation needs at least 2 numeric columns\n")
			os.Exit(1)
		}
		columns, rows = output.MatrixData(m)
	case *xFlag != "":
		spec, err := buildSpec(*xFlag, *yFlag, *aggFlag, *chartFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		series, err := chart.Aggregate(filtered, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		columns, rows = output.SeriesData(series)
	default:
		columns, rows = output.TableData(filtered)
	}

	if *limitFlag > 0 && len(rows) > *limitFlag {
		rows = rows[:*limitFlag]
	}

	if err := formatter.Format(columns, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// buildFilters parses and validates every -filter expression against the
// loaded table. A predicate that fails validation aborts the run; operand
// coercion failures during evaluation are a separate, silent matter.
func buildFilters(t *table.Table, exprs []string) (query.FilterSet, error) {
	fs := query.NewFilterSet()
	for _, expr := range exprs {
		pred, err := query.ParsePredicate(expr, t.Kind)
		if err != nil {
			return fs, fmt.Errorf("filter %q: %w", expr, err)
		}
		fs = fs.Append(pred)
	}
	return fs, nil
}

func buildSpec(x, y, agg, kind string) (chart.Spec, error) {
	spec := chart.Spec{GroupBy: x, Measure: y}
	var err error
	if spec.Func, err = chart.ParseFunc(agg); err != nil {
		return spec, err
	}
	if spec.Kind, err = chart.ParseKind(kind); err != nil {
		return spec, err
	}
	return spec, nil
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case "table":
		return output.NewTableFormatter(os.Stdout), nil
	case "csv":
		return output.NewCSVFormatter(os.Stdout), nil
	case "json", "jsonl":
		return output.NewJSONFormatter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s' (supported: table, csv, jsonl)", format)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// listColumns prints the available columns to help the user fix a filter.
func listColumns(t *table.Table) {
	fmt.Fprintf(os.Stderr, "\nAvailable columns: %s\n", strings.Join(t.Columns(), ", "))
}
