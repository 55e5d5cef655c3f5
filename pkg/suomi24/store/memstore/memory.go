package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]store.Run
	threads map[string][]store.Thread
	cells   map[string][]store.Cell
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:    make(map[string]store.Run),
		threads: make(map[string][]store.Thread),
		cells:   make(map[string][]store.Cell),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores copies of the run data, replacing any earlier run with the
// same ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run, threads []store.Thread, cells []store.Cell) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty run id", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r.Inputs = append([]string(nil), r.Inputs...)
	s.runs[r.ID] = r

	ts := make([]store.Thread, len(threads))
	for i, t := range threads {
		t.Features = append([]float64(nil), t.Features...)
		ts[i] = t
	}
	s.threads[r.ID] = ts
	s.cells[r.ID] = append([]store.Cell(nil), cells...)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	r.Inputs = append([]string(nil), r.Inputs...)
	return r, nil
}

// ListRuns returns all runs ordered by ID.
func (s *Store) ListRuns(ctx context.Context) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		r.Inputs = append([]string(nil), r.Inputs...)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Threads returns the threads of a run in stored order.
func (s *Store) Threads(ctx context.Context, runID string) ([]store.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.threads[runID]
	if len(src) == 0 {
		return nil, nil
	}
	out := make([]store.Thread, len(src))
	for i, t := range src {
		t.Features = append([]float64(nil), t.Features...)
		out[i] = t
	}
	return out, nil
}

// Transitions returns the cells of one matrix in row-major order.
func (s *Store) Transitions(ctx context.Context, runID string, kind store.Kind) ([]store.Cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Cell
	for _, c := range s.cells[runID] {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out, nil
}
