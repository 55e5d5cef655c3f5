package sentiment

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/internal/tabular"
	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

// Score file columns.
const (
	ColThreadID = "thread_id"
	ColTitlePos = "title_s_pos"
	ColTitleNeg = "title_s_neg"
	ColTextPos  = "text_s_pos"
	ColTextNeg  = "text_s_neg"
)

// Record is one line of a JSONL score file.
type Record struct {
	ThreadID string  `json:"thread_id"`
	TitlePos float64 `json:"title_s_pos"`
	TitleNeg float64 `json:"title_s_neg"`
	TextPos  float64 `json:"text_s_pos"`
	TextNeg  float64 `json:"text_s_neg"`
}

func (r Record) scores() Scores {
	return Scores{TitlePos: r.TitlePos, TitleNeg: r.TitleNeg, TextPos: r.TextPos, TextNeg: r.TextNeg}
}

// Table holds externally computed scores keyed by thread id. The first
// entry for an id wins.
type Table struct {
	scores     map[string]Scores
	duplicates int
}

// NewTable builds a table from records.
func NewTable(records []Record) *Table {
	t := &Table{scores: make(map[string]Scores, len(records))}
	for _, r := range records {
		t.add(r.ThreadID, r.scores())
	}
	return t
}

func (t *Table) add(id string, s Scores) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if _, ok := t.scores[id]; ok {
		t.duplicates++
		return
	}
	t.scores[id] = s
}

// Score returns the scores for t.ThreadID or an error wrapping
// internalerr.ErrNotFound.
func (t *Table) Score(th corpus.Thread) (Scores, error) {
	s, ok := t.scores[th.ThreadID]
	if !ok {
		return Scores{}, fmt.Errorf("scores for thread %s: %w", th.ThreadID, internalerr.ErrNotFound)
	}
	return s, nil
}

// Len returns the number of scored threads.
func (t *Table) Len() int { return len(t.scores) }

// Duplicates returns how many repeated thread ids were ignored.
func (t *Table) Duplicates() int { return t.duplicates }

// ReadOption configures score file reading.
type ReadOption func(*readConfig)

type readConfig struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger that reports skipped records.
func WithLogger(l logrus.FieldLogger) ReadOption {
	return func(c *readConfig) {
		c.log = l
	}
}

func newReadConfig(opts []ReadOption) readConfig {
	c := readConfig{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LoadTable reads a score file. Files ending in .jsonl or .json are read as
// one JSON object per line, everything else as CSV with a header.
func LoadTable(path string, opts ...ReadOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score file %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".json":
		return ReadJSONL(f, opts...)
	default:
		return ReadCSV(f, opts...)
	}
}

// ReadJSONL reads one Record per line. Malformed lines are logged and
// skipped.
func ReadJSONL(r io.Reader, opts ...ReadOption) (*Table, error) {
	cfg := newReadConfig(opts)
	t := &Table{scores: make(map[string]Scores)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			cfg.log.Warnf("Skipping malformed score record at line %d: %v", line, err)
			continue
		}
		t.add(rec.ThreadID, rec.scores())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read score records: %w", err)
	}
	return t, nil
}

// ReadCSV reads a comma separated score table. Extra columns are ignored;
// rows with an unparsable score are logged and skipped.
func ReadCSV(r io.Reader, opts ...ReadOption) (*Table, error) {
	cfg := newReadConfig(opts)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read score table: %w", err)
	}
	t := &Table{scores: make(map[string]Scores)}
	if tabular.HeaderOnly(data) {
		return t, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse score table: %w", df.Err)
	}

	cols := []string{ColThreadID, ColTitlePos, ColTitleNeg, ColTextPos, ColTextNeg}
	idx := make([]int, len(cols))
	names := df.Names()
	for i, col := range cols {
		idx[i] = indexOf(names, col)
		if idx[i] < 0 {
			return nil, fmt.Errorf("%w: score table is missing column %s", internalerr.ErrInvalidInput, col)
		}
	}

rows:
	for row := 0; row < df.Nrow(); row++ {
		var vals [4]float64
		for i := range vals {
			raw := strings.TrimSpace(df.Elem(row, idx[i+1]).String())
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				cfg.log.Warnf("Skipping score row %d: bad %s value %q", row+2, cols[i+1], raw)
				continue rows
			}
			vals[i] = v
		}
		t.add(df.Elem(row, idx[0]).String(), Scores{
			TitlePos: vals[0],
			TitleNeg: vals[1],
			TextPos:  vals[2],
			TextNeg:  vals[3],
		})
	}
	return t, nil
}

func indexOf(names []string, want string) int {
	for i, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), want) {
			return i
		}
	}
	return -1
}
