// Package reader loads datasets from files into tables.
//
// Open dispatches on the file name and handles the supported formats:
//
//	tbl, err := reader.Open("data.csv")      // plain CSV
//	tbl, err = reader.Open("data.csv.gz")    // gzip-compressed CSV
//	tbl, err = reader.Open("data.csv.zst")   // zstd-compressed CSV
//	tbl, err = reader.Open("data.parquet")   // parquet
//
// # CSV Handling
//
// The first CSV record is the header. Cell values enter the table as raw
// strings for the classifier to type; empty cells become missing values.
// A UTF-8 byte-order mark is stripped, and input that is not valid UTF-8
// falls back to ISO-8859-1 decoding, which covers the common legacy
// spreadsheet exports.
//
// ReadCSV reads from any io.Reader, so callers ingesting uploads rather
// than files can use it directly.
//
// # Parquet Handling
//
// ReadParquet loads every row group of a parquet file. Column order
// follows the file schema, and cell values keep the Go types the decoder
// produces; classification assigns each column a kind from those values.
// The package uses github.com/parquet-go/parquet-go for the underlying
// file operations.
package reader
