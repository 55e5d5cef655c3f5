package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the interface for persisting pipeline runs
type Store interface {
	Close() error

	// SaveRun writes the run, its threads and its transition cells in one
	// unit. Saving a run ID again replaces the earlier contents.
	SaveRun(ctx context.Context, r Run, threads []Thread, cells []Cell) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context) ([]Run, error)

	Threads(ctx context.Context, runID string) ([]Thread, error)
	Transitions(ctx context.Context, runID string, kind Kind) ([]Cell, error)
}

// Run describes one pipeline execution.
type Run struct {
	ID        string
	CreatedAt time.Time
	Inputs    []string
	Threads   int
	Clustered bool
}

// Thread is the stored result for one labeled thread.
type Thread struct {
	ThreadID string
	Year     string
	Month    string
	SentiAvg float64
	Features []float64 // in features.Names order
	Category string
	Cluster  string // empty when clustering was not run
}

// Kind names a transition matrix.
type Kind string

const (
	KindCategory  Kind = "category"
	KindSentiment Kind = "sentiment"
	KindCluster   Kind = "cluster"
)

// Cell is one transition count. Row and Col are the positions of From and
// To in the matrix label order.
type Cell struct {
	Kind  Kind
	Row   int
	Col   int
	From  string
	To    string
	Count int
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a new lexicographically sortable run ID.
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}
