// Package table reads and writes the pipeline's CSV tables: extracted
// threads, labeled threads and transition matrices.
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/cognicore/suomi24/internal/tabular"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

// frame is a loaded CSV with case-insensitive column lookup.
type frame struct {
	df    dataframe.DataFrame
	names []string
	index map[string]int
}

func readFrame(r io.Reader) (*frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if tabular.HeaderOnly(data) {
		// gota refuses header-only input; an empty table is still valid.
		names := tabular.Header(data, ',')
		return &frame{names: names, index: indexOf(names)}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		return nil, df.Err
	}

	names := df.Names()
	return &frame{df: df, names: names, index: indexOf(names)}, nil
}

func indexOf(names []string) map[string]int {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func (f *frame) nrow() int {
	return f.df.Nrow()
}

func (f *frame) has(col string) bool {
	_, ok := f.index[col]
	return ok
}

func (f *frame) require(cols ...string) error {
	for _, c := range cols {
		if !f.has(c) {
			return fmt.Errorf("%w: missing column %s", internalerr.ErrInvalidInput, c)
		}
	}
	return nil
}

// str returns the cell or "" when the column is absent.
func (f *frame) str(row int, col string) string {
	i, ok := f.index[col]
	if !ok {
		return ""
	}
	return f.df.Elem(row, i).String()
}

func (f *frame) float(row int, col string) (float64, error) {
	raw := strings.TrimSpace(f.str(row, col))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %s: %w", row+1, col, err)
	}
	return v, nil
}

func (f *frame) int(row int, col string) (int, error) {
	v, err := f.float(row, col)
	return int(v), err
}

// writeRecords writes header plus rows. gota needs at least one data row,
// so a header-only table goes through encoding/csv directly.
func writeRecords(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	return df.WriteCSV(w)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// createFile creates path and its parent directory.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
