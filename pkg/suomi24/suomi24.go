// Package suomi24 wires the corpus stages into one pipeline: normalize,
// score, extract features, categorize, optionally cluster, then count
// label transitions and optionally persist the run.
package suomi24

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/category"
	"github.com/cognicore/suomi24/pkg/suomi24/cluster"
	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/features"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/normalize"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
	"github.com/cognicore/suomi24/pkg/suomi24/store"
	"github.com/cognicore/suomi24/pkg/suomi24/table"
	"github.com/cognicore/suomi24/pkg/suomi24/transition"
)

// Row is one thread with its scores, features and labels.
type Row = table.Row

// Options configures a Pipeline
type Options struct {
	// Normalizer cleans titles and texts. Nil skips normalization for
	// input that is already clean.
	Normalizer *normalize.Normalizer
	Scorer     sentiment.Scorer
	Extractor  *features.Extractor
	// Cluster enables k-means labels when non-nil.
	Cluster *cluster.Options
	// Store persists each run when non-nil.
	Store  store.Store
	Logger logrus.FieldLogger
}

// Pipeline runs the labeling stages over a thread table
type Pipeline struct {
	norm      *normalize.Normalizer
	scorer    sentiment.Scorer
	extractor *features.Extractor
	cluster   *cluster.Options
	store     store.Store
	log       logrus.FieldLogger
	now       func() time.Time
}

// New creates a Pipeline with the given dependencies
func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		norm:      opts.Normalizer,
		scorer:    opts.Scorer,
		extractor: opts.Extractor,
		cluster:   opts.Cluster,
		store:     opts.Store,
		log:       log,
		now:       time.Now,
	}
}

// Result is the output of one Run.
type Result struct {
	RunID     string // empty when no store is configured
	Rows      []Row
	Normalize *normalize.Report // nil when normalization was skipped
	Unscored  int               // threads dropped because no score was found
	Invalid   int               // threads dropped by Thread.Validate

	Categories *transition.Matrix[category.Category]
	Sentiment  *transition.Matrix[sentiment.Class]
	Clusters   *transition.Matrix[category.Cluster] // nil without clustering
}

// Run processes threads and counts transitions in chronological order:
// rows are stable-sorted by Datetime after labeling, so threads with equal
// timestamps keep their input order. inputs names the source files and is
// only recorded with the stored run.
func (p *Pipeline) Run(ctx context.Context, threads []corpus.Thread, inputs []string) (*Result, error) {
	if p.scorer == nil || p.extractor == nil {
		return nil, fmt.Errorf("%w: pipeline needs a scorer and an extractor", internalerr.ErrInvalidConfig)
	}
	res := &Result{}

	if p.norm != nil {
		var rep normalize.Report
		threads, rep = p.norm.Dataset(threads)
		res.Normalize = &rep
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, unscored, invalid := p.Label(threads)
	res.Rows, res.Unscored, res.Invalid = rows, unscored, invalid
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.cluster != nil {
		if err := p.Cluster(rows); err != nil {
			if !errors.Is(err, internalerr.ErrInvalidInput) {
				return nil, err
			}
			p.log.WithField("stage", "kmeans").Warnf("clustering skipped: %v", err)
		}
	}

	SortChronological(res.Rows)
	p.Transitions(res)

	if p.store != nil {
		id, err := p.save(ctx, res, inputs)
		if err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		res.RunID = id
	}
	return res, nil
}

// Label scores, extracts and categorizes each thread. Threads without a
// score or failing validation are dropped with a warning.
func (p *Pipeline) Label(threads []corpus.Thread) (rows []Row, unscored, invalid int) {
	log := p.log.WithField("stage", "label")

	kept := make([]corpus.Thread, 0, len(threads))
	scores := make([]sentiment.Scores, 0, len(threads))
	for _, th := range threads {
		if err := th.Validate(); err != nil {
			invalid++
			log.Warnf("skipping thread: %v", err)
			continue
		}
		s, err := p.scorer.Score(th)
		if err != nil {
			unscored++
			log.WithField("thread_id", th.ThreadID).Warnf("skipping thread: %v", err)
			continue
		}
		kept = append(kept, th)
		scores = append(scores, s)
	}

	inputs := make([]features.Input, len(kept))
	for i, th := range kept {
		inputs[i] = features.Input{Title: th.Title, Text: th.Text}
	}
	vectors := p.extractor.ExtractAll(inputs)

	rows = make([]Row, len(kept))
	for i, th := range kept {
		rows[i] = Row{
			Thread:   th,
			Scores:   scores[i],
			Features: vectors[i],
			Category: category.Categorize(vectors[i], scores[i].TextSum()),
		}
	}
	log.Infof("Labeled %d threads (%d unscored, %d invalid)", len(rows), unscored, invalid)
	return rows, unscored, invalid
}

// SortChronological orders rows by thread datetime in place. Datetimes are
// "YYYY-MM-DD HH:MM:SS" strings, so byte order is time order.
func SortChronological(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Thread.Datetime < rows[j].Thread.Datetime
	})
}

// Cluster assigns k-means labels to rows in place.
func (p *Pipeline) Cluster(rows []Row) error {
	opts := cluster.Options{}
	if p.cluster != nil {
		opts = *p.cluster
	}
	if opts.Logger == nil {
		opts.Logger = p.log
	}

	samples := make([]cluster.Sample, len(rows))
	for i, r := range rows {
		samples[i] = cluster.Sample{Year: r.Thread.Year, Scores: r.Scores, Features: r.Features}
	}
	labels, err := cluster.Assign(samples, opts)
	if err != nil {
		return err
	}
	for i := range rows {
		c := labels[i]
		rows[i].Cluster = &c
	}
	return nil
}

// Transitions counts the category, sentiment and cluster sequences of
// res.Rows into res.
func (p *Pipeline) Transitions(res *Result) {
	res.Categories = transition.Count(table.Categories(res.Rows))
	res.Sentiment = transition.CountSentiment(table.SentimentAverages(res.Rows))
	res.Clusters = nil
	if clusters := table.ClusterLabels(res.Rows); len(clusters) > 0 {
		res.Clusters = transition.Count(clusters)
	}
}

func (p *Pipeline) save(ctx context.Context, res *Result, inputs []string) (string, error) {
	run := store.Run{
		ID:        store.NewRunID(),
		CreatedAt: p.now(),
		Inputs:    inputs,
		Threads:   len(res.Rows),
		Clustered: res.Clusters != nil,
	}

	threads := make([]store.Thread, len(res.Rows))
	for i, r := range res.Rows {
		t := store.Thread{
			ThreadID: r.Thread.ThreadID,
			Year:     r.Thread.Year,
			Month:    r.Thread.Month,
			SentiAvg: r.Scores.Avg(),
			Features: r.Features.Values(),
			Category: r.Category.String(),
		}
		if r.Cluster != nil {
			t.Cluster = r.Cluster.String()
		}
		threads[i] = t
	}

	cells := store.Cells(store.KindCategory, res.Categories, category.Category.String)
	cells = append(cells, store.Cells(store.KindSentiment, res.Sentiment, func(c sentiment.Class) string { return string(c) })...)
	if res.Clusters != nil {
		cells = append(cells, store.Cells(store.KindCluster, res.Clusters, category.Cluster.String)...)
	}

	if err := p.store.SaveRun(ctx, run, threads, cells); err != nil {
		return "", err
	}
	p.log.WithField("run_id", run.ID).Infof("Stored run with %d threads and %d transition cells", len(threads), len(cells))
	return run.ID, nil
}
