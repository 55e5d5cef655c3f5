package table

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/transition"
)

// ColLabel heads the first column of a matrix table.
const ColLabel = "label"

// WriteMatrix writes m as a square table: the header is "label" followed by
// the labels, and each row starts with its from-label.
func WriteMatrix[L comparable](w io.Writer, m *transition.Matrix[L], name func(L) string) error {
	labels := m.Labels()
	header := make([]string, 0, len(labels)+1)
	header = append(header, ColLabel)
	for _, l := range labels {
		header = append(header, name(l))
	}

	rows := make([][]string, len(labels))
	for i, from := range labels {
		rec := make([]string, 0, len(labels)+1)
		rec = append(rec, name(from))
		for _, n := range m.Row(from) {
			rec = append(rec, strconv.Itoa(n))
		}
		rows[i] = rec
	}
	return writeRecords(w, header, rows)
}

// SaveMatrix writes m to path.
func SaveMatrix[L comparable](path string, m *transition.Matrix[L], name func(L) string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMatrix(w, m, name)
	})
}

// MatrixTable is a transition table read back from CSV.
type MatrixTable struct {
	Labels []string
	Counts [][]int
}

// ReadMatrix reads a table written by WriteMatrix.
func ReadMatrix(r io.Reader) (*MatrixTable, error) {
	f, err := readFrame(r)
	if err != nil {
		return nil, fmt.Errorf("read matrix table: %w", err)
	}
	if err := f.require(ColLabel); err != nil {
		return nil, err
	}

	first := f.index[ColLabel] + 1
	labels := f.names[first:]
	if f.nrow() != len(labels) {
		return nil, fmt.Errorf("%w: matrix has %d rows for %d labels", internalerr.ErrInvalidInput, f.nrow(), len(labels))
	}
	out := &MatrixTable{Labels: labels, Counts: make([][]int, f.nrow())}
	for i := range out.Counts {
		if got := f.str(i, ColLabel); got != out.Labels[i] {
			return nil, fmt.Errorf("row %d is %q, expected %q", i+1, got, out.Labels[i])
		}
		out.Counts[i] = make([]int, len(out.Labels))
		for j := range out.Labels {
			n, err := strconv.Atoi(f.df.Elem(i, first+j).String())
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			out.Counts[i][j] = n
		}
	}
	return out, nil
}
