package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/analytics"
	"github.com/cognicore/suomi24/pkg/suomi24/category"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
	"github.com/cognicore/suomi24/pkg/suomi24/store"
	"github.com/cognicore/suomi24/pkg/suomi24/store/sqlite"
	"github.com/cognicore/suomi24/pkg/suomi24/table"
	"github.com/cognicore/suomi24/pkg/suomi24/transition"
)

type report struct {
	Source       string                  `json:"source"`
	Label        string                  `json:"label"`
	TotalThreads int64                   `json:"total_threads"`
	Frequencies  []analytics.Frequency   `json:"frequencies"`
	Zipf         *analytics.ZipfFit      `json:"zipf,omitempty"`
	YearTotals   []analytics.YearTotal   `json:"year_totals"`
	Evolution    []analytics.YearCount   `json:"evolution"`
	Transitions  map[string]matrixReport `json:"transitions"`
}

type matrixReport struct {
	Labels []string `json:"labels"`
	Counts [][]int  `json:"counts"`
	Total  int      `json:"total"`
}

// labeledThread is the part of a thread the report needs.
type labeledThread struct {
	Year     string
	Category string
	Cluster  string
	SentiAvg float64
}

func main() {
	var (
		dbPath  = flag.String("db", "", "SQLite database with stored runs")
		runID   = flag.String("run", "", "Stored run ID (default: latest run)")
		label   = flag.String("label", "category", "Label column to analyze: category or cluster")
		verbose = flag.Bool("v", false, "Debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] labeled.csv...\n       %s -db runs.db [-run ID]\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *label != "category" && *label != "cluster" {
		log.Fatalf("--label must be category or cluster, got %q", *label)
	}

	var (
		rep *report
		err error
	)
	switch {
	case *dbPath != "":
		rep, err = reportFromStore(context.Background(), *dbPath, *runID, *label)
	case flag.NArg() > 0:
		rep, err = reportFromTables(flag.Args(), *label)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("build report: %v", err)
	}
	if rep.Zipf == nil {
		log.Warn("Too few distinct labels for a Zipf fit")
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

func reportFromTables(paths []string, label string) (*report, error) {
	var threads []labeledThread
	var rows []table.Row
	for _, p := range paths {
		r, err := table.LoadLabeled(p)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r...)
	}
	for _, r := range rows {
		t := labeledThread{Year: r.Thread.Year, Category: r.Category.String(), SentiAvg: r.Scores.Avg()}
		if r.Cluster != nil {
			t.Cluster = r.Cluster.String()
		}
		threads = append(threads, t)
	}

	rep, err := buildReport(threads, label)
	if err != nil {
		return nil, err
	}
	rep.Source = fmt.Sprintf("%d labeled tables", len(paths))

	rep.Transitions["category"] = matrixOf(transition.Count(table.Categories(rows)), category.Category.String)
	rep.Transitions["sentiment"] = matrixOf(transition.CountSentiment(table.SentimentAverages(rows)), func(c sentiment.Class) string { return string(c) })
	if clusters := table.ClusterLabels(rows); len(clusters) > 0 {
		rep.Transitions["cluster"] = matrixOf(transition.Count(clusters), category.Cluster.String)
	}
	return rep, nil
}

func reportFromStore(ctx context.Context, dbPath, runID, label string) (*report, error) {
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if runID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return nil, err
		}
		if len(runs) == 0 {
			return nil, fmt.Errorf("%s: %w: no stored runs", dbPath, internalerr.ErrNotFound)
		}
		runID = runs[len(runs)-1].ID
	}
	if _, err := st.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	stored, err := st.Threads(ctx, runID)
	if err != nil {
		return nil, err
	}
	threads := make([]labeledThread, len(stored))
	for i, t := range stored {
		threads[i] = labeledThread{Year: t.Year, Category: t.Category, Cluster: t.Cluster, SentiAvg: t.SentiAvg}
	}

	rep, err := buildReport(threads, label)
	if err != nil {
		return nil, err
	}
	rep.Source = "run " + runID

	for _, kind := range []store.Kind{store.KindCategory, store.KindSentiment, store.KindCluster} {
		cells, err := st.Transitions(ctx, runID, kind)
		if err != nil {
			return nil, err
		}
		if len(cells) == 0 {
			continue
		}
		labels, counts := store.Grid(cells)
		total := 0
		for _, c := range cells {
			total += c.Count
		}
		rep.Transitions[string(kind)] = matrixReport{Labels: labels, Counts: counts, Total: total}
	}
	return rep, nil
}

// buildReport aggregates label frequencies, the Zipf fit and the yearly
// evolution of the chosen label column.
func buildReport(threads []labeledThread, label string) (*report, error) {
	analyzer := analytics.NewAnalyzer()
	for _, t := range threads {
		l := t.Category
		if label == "cluster" {
			l = t.Cluster
		}
		if l == "" {
			continue
		}
		analyzer.Process(t.Year, l)
	}
	stats := analyzer.Snapshot()
	if stats.TotalThreads == 0 {
		return nil, fmt.Errorf("%w: no %s labels", internalerr.ErrInvalidInput, label)
	}

	rep := &report{
		Label:        label,
		TotalThreads: stats.TotalThreads,
		Frequencies:  stats.Frequencies(),
		Transitions:  make(map[string]matrixReport),
	}
	rep.YearTotals, rep.Evolution = stats.Evolution()

	fit, err := analytics.FitZipf(rep.Frequencies)
	switch {
	case err == nil:
		rep.Zipf = &fit
	case !errors.Is(err, internalerr.ErrInvalidInput):
		return nil, err
	}
	return rep, nil
}

func matrixOf[L comparable](m *transition.Matrix[L], name func(L) string) matrixReport {
	labels := m.Labels()
	out := matrixReport{Labels: make([]string, len(labels)), Counts: make([][]int, len(labels)), Total: m.Total()}
	for i, l := range labels {
		out.Labels[i] = name(l)
		out.Counts[i] = m.Row(l)
	}
	return out
}
