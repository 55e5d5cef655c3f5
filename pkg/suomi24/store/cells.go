package store

import "github.com/cognicore/suomi24/pkg/suomi24/transition"

// Cells flattens m into stored cells, naming labels with name.
func Cells[L comparable](kind Kind, m *transition.Matrix[L], name func(L) string) []Cell {
	if m == nil {
		return nil
	}
	index := make(map[L]int, m.Len())
	for i, l := range m.Labels() {
		index[l] = i
	}
	cells := make([]Cell, 0, m.Len()*m.Len())
	m.Each(func(from, to L, count int) {
		cells = append(cells, Cell{
			Kind:  kind,
			Row:   index[from],
			Col:   index[to],
			From:  name(from),
			To:    name(to),
			Count: count,
		})
	})
	return cells
}

// Grid rebuilds the label order and count table from row-major cells.
func Grid(cells []Cell) (labels []string, counts [][]int) {
	n := 0
	for _, c := range cells {
		if c.Row+1 > n {
			n = c.Row + 1
		}
		if c.Col+1 > n {
			n = c.Col + 1
		}
	}
	labels = make([]string, n)
	counts = make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}
	for _, c := range cells {
		labels[c.Row] = c.From
		labels[c.Col] = c.To
		counts[c.Row][c.Col] = c.Count
	}
	return labels, counts
}
