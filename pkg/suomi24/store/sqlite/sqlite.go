package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	inputs TEXT,
	threads INTEGER NOT NULL DEFAULT 0,
	clustered INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_threads (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	thread_id TEXT NOT NULL,
	year TEXT,
	month TEXT,
	senti_avg REAL,
	features TEXT,
	category TEXT,
	cluster TEXT,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transitions (
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	row_idx INTEGER NOT NULL,
	col_idx INTEGER NOT NULL,
	from_label TEXT NOT NULL,
	to_label TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, kind, row_idx, col_idx),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_threads_category ON run_threads(run_id, category);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run with its threads and transition cells
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run, threads []store.Thread, cells []store.Cell) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty run id", internalerr.ErrInvalidInput)
	}

	inputs, err := json.Marshal(r.Inputs)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, created_at, inputs, threads, clustered)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	inputs=excluded.inputs,
	threads=excluded.threads,
	clustered=excluded.clustered;
`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), string(inputs), r.Threads, boolToInt(r.Clustered))
	if err != nil {
		return err
	}

	if err := replaceThreads(ctx, tx, r.ID, threads); err != nil {
		return err
	}
	if err := replaceCells(ctx, tx, r.ID, cells); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceThreads(ctx context.Context, tx *sql.Tx, runID string, threads []store.Thread) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_threads WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(threads) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_threads (run_id, seq, thread_id, year, month, senti_avg, features, category, cluster)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range threads {
		feats, err := json.Marshal(t.Features)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, runID, i, t.ThreadID, t.Year, t.Month, t.SentiAvg, string(feats), t.Category, t.Cluster); err != nil {
			return err
		}
	}
	return nil
}

func replaceCells(ctx context.Context, tx *sql.Tx, runID string, cells []store.Cell) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM transitions WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(cells) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO transitions (run_id, kind, row_idx, col_idx, from_label, to_label, count)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id, kind, row_idx, col_idx) DO UPDATE SET
	from_label=excluded.from_label,
	to_label=excluded.to_label,
	count=excluded.count`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range cells {
		if _, err := stmt.ExecContext(ctx, runID, string(c.Kind), c.Row, c.Col, c.From, c.To, c.Count); err != nil {
			return err
		}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, created_at, inputs, threads, clustered FROM runs WHERE id=?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// ListRuns returns all runs, oldest first
func (s *sqliteStore) ListRuns(ctx context.Context) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, inputs, threads, clustered FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r         store.Run
		createdAt string
		inputs    sql.NullString
		clustered int
	)
	if err := sc.Scan(&r.ID, &createdAt, &inputs, &r.Threads, &clustered); err != nil {
		return store.Run{}, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = ts
	}
	if inputs.Valid && inputs.String != "" {
		if err := json.Unmarshal([]byte(inputs.String), &r.Inputs); err != nil {
			return store.Run{}, fmt.Errorf("decode inputs of run %s: %w", r.ID, err)
		}
	}
	r.Clustered = clustered != 0
	return r, nil
}

// Threads returns the stored threads of a run in pipeline order
func (s *sqliteStore) Threads(ctx context.Context, runID string) ([]store.Thread, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT thread_id, year, month, senti_avg, features, category, cluster
FROM run_threads WHERE run_id=? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Thread
	for rows.Next() {
		var (
			t     store.Thread
			feats sql.NullString
		)
		if err := rows.Scan(&t.ThreadID, &t.Year, &t.Month, &t.SentiAvg, &feats, &t.Category, &t.Cluster); err != nil {
			return nil, err
		}
		if feats.Valid && feats.String != "" && feats.String != "null" {
			if err := json.Unmarshal([]byte(feats.String), &t.Features); err != nil {
				return nil, fmt.Errorf("decode features of thread %s: %w", t.ThreadID, err)
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Transitions returns the cells of one matrix in row-major order
func (s *sqliteStore) Transitions(ctx context.Context, runID string, kind store.Kind) ([]store.Cell, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT row_idx, col_idx, from_label, to_label, count
FROM transitions WHERE run_id=? AND kind=? ORDER BY row_idx, col_idx`, runID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Cell
	for rows.Next() {
		c := store.Cell{Kind: kind}
		if err := rows.Scan(&c.Row, &c.Col, &c.From, &c.To, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
