// Package transition counts transitions between consecutive labels of an
// ordered sequence.
//
// The counter does not sort. Callers pass sequences already in
// chronological order; any other order still yields a well formed but
// meaningless matrix.
package transition

import (
	"fmt"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
)

// Matrix is a square table of transition counts over a fixed label set.
// Every (from, to) pair of the label set has a cell, zero or not.
type Matrix[L comparable] struct {
	labels []L
	index  map[L]int
	counts [][]int
	total  int
}

func newMatrix[L comparable](labels []L) *Matrix[L] {
	m := &Matrix[L]{
		labels: labels,
		index:  make(map[L]int, len(labels)),
		counts: make([][]int, len(labels)),
	}
	for i, l := range labels {
		m.index[l] = i
		m.counts[i] = make([]int, len(labels))
	}
	return m
}

// Labels returns the label set in table order.
func (m *Matrix[L]) Labels() []L {
	out := make([]L, len(m.labels))
	copy(out, m.labels)
	return out
}

// Len returns the number of labels.
func (m *Matrix[L]) Len() int { return len(m.labels) }

// Get returns the count of from followed by to. ok is false when either
// label is outside the label set.
func (m *Matrix[L]) Get(from, to L) (count int, ok bool) {
	i, ok1 := m.index[from]
	j, ok2 := m.index[to]
	if !ok1 || !ok2 {
		return 0, false
	}
	return m.counts[i][j], true
}

// Total is the sum of all cells, max(N-1, 0) for a sequence of length N.
func (m *Matrix[L]) Total() int { return m.total }

// Row returns the counts of transitions out of from, in Labels order.
func (m *Matrix[L]) Row(from L) []int {
	i, ok := m.index[from]
	if !ok {
		return nil
	}
	out := make([]int, len(m.labels))
	copy(out, m.counts[i])
	return out
}

// Each calls fn for every cell in row major Labels order.
func (m *Matrix[L]) Each(fn func(from, to L, count int)) {
	for i, from := range m.labels {
		for j, to := range m.labels {
			fn(from, to, m.counts[i][j])
		}
	}
}

// Count builds the matrix of seq over the distinct labels of seq, in order
// of first appearance.
func Count[L comparable](seq []L) *Matrix[L] {
	var labels []L
	seen := make(map[L]struct{})
	for _, l := range seq {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}

	m := newMatrix(labels)
	m.add(seq)
	return m
}

// CountOver builds the matrix of seq over a fixed label set. Labels of seq
// outside the set are an error.
func CountOver[L comparable](labels []L, seq []L) (*Matrix[L], error) {
	m := newMatrix(append([]L(nil), labels...))
	if len(m.index) != len(labels) {
		return nil, fmt.Errorf("%w: duplicate labels", internalerr.ErrInvalidInput)
	}
	for _, l := range seq {
		if _, ok := m.index[l]; !ok {
			return nil, fmt.Errorf("%w: label %v not in label set", internalerr.ErrInvalidInput, l)
		}
	}
	m.add(seq)
	return m, nil
}

func (m *Matrix[L]) add(seq []L) {
	for i := 0; i+1 < len(seq); i++ {
		m.counts[m.index[seq[i]]][m.index[seq[i+1]]]++
		m.total++
	}
}

// CountSentiment classifies each score and counts class transitions over
// the fixed pos, neg, neu table.
func CountSentiment(scores []float64) *Matrix[sentiment.Class] {
	m := newMatrix(append([]sentiment.Class(nil), sentiment.Classes...))
	m.add(sentiment.ClassifyAll(scores))
	return m
}
