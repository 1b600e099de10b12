package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/colsift/colsift/table"
)

// ReadParquet loads a parquet file into a table. Column order follows the
// file schema; cell values keep the types parquet-go decodes them to, and
// the classifier assigns kinds from those values.
func ReadParquet(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	columns := make([]string, 0, len(pqFile.Schema().Fields()))
	for _, field := range pqFile.Schema().Fields() {
		columns = append(columns, field.Name())
	}

	rows := make([]map[string]interface{}, 0)
	pr := parquet.NewReader(pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := make(map[string]interface{})
		err := pr.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	t, err := table.FromRows(columns, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return t, nil
}
