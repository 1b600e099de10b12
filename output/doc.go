// Package output renders tables, summaries, chart series, and correlation
// matrices in terminal and machine-readable formats.
//
// All formatters implement the Formatter interface and take the same
// column/row shape; the Data helpers (TableData, SeriesData, SummaryData,
// MatrixData) flatten the engine's types into it.
//
// # Supported Formats
//
//   - Text table: bordered ASCII table for terminal display
//   - CSV: comma-separated values with a header row
//   - JSON Lines: one JSON object per line, suitable for streaming
//
// # Basic Usage
//
//	columns, rows := output.TableData(tbl)
//	formatter := output.NewTableFormatter(os.Stdout)
//	if err := formatter.Format(columns, rows); err != nil {
//	    log.Fatal(err)
//	}
//
// SetOutput redirects a formatter to another destination, such as a file
// or a bytes.Buffer.
//
// # Value Handling
//
// Missing cells render empty in CSV and text tables and as null in JSON
// Lines, as do NaN values. String cells beginning with characters that
// spreadsheet applications interpret as formulas are prefixed on CSV
// output to defuse them.
package output
