// Package tabular holds the CSV helpers shared by the table readers.
package tabular

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// HeaderOnly reports whether data has fewer than two non-blank lines.
// gota rejects such input, so callers treat it as an empty table.
func HeaderOnly(data []byte) bool {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
			if n > 1 {
				return false
			}
		}
	}
	return true
}

// Header returns the first record of data with names trimmed, or nil when
// there is none.
func Header(data []byte, delim rune) []string {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	rec, err := r.Read()
	if err != nil {
		return nil
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	return rec
}
