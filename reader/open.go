package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/colsift/colsift/table"
)

// Open loads a dataset file into a table, dispatching on the file name:
// .parquet, .csv, .csv.gz, and .csv.zst are supported.
func Open(path string) (*table.Table, error) {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".parquet"):
		return ReadParquet(path)
	case strings.HasSuffix(name, ".csv"):
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = file.Close() }()
		return ReadCSV(file)
	case strings.HasSuffix(name, ".csv.gz"):
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = file.Close() }()
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer func() { _ = gz.Close() }()
		return ReadCSV(gz)
	case strings.HasSuffix(name, ".csv.zst"):
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = file.Close() }()
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer zr.Close()
		return ReadCSV(zr)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}
