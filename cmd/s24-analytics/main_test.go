package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/suomi24/pkg/suomi24/category"
	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
	"github.com/cognicore/suomi24/pkg/suomi24/store"
	"github.com/cognicore/suomi24/pkg/suomi24/store/sqlite"
	"github.com/cognicore/suomi24/pkg/suomi24/table"
)

func TestBuildReport(t *testing.T) {
	threads := []labeledThread{
		{Year: "2009", Category: "Question"},
		{Year: "2009", Category: "Question"},
		{Year: "2010", Category: "Announcement"},
		{Year: "2010", Category: "Question"},
		{Year: "2010", Category: "Narration", Cluster: "Rant"},
	}

	rep, err := buildReport(threads, "category")
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if rep.TotalThreads != 5 {
		t.Errorf("expected 5 threads, got %d", rep.TotalThreads)
	}
	if rep.Frequencies[0].Label != "Question" || rep.Frequencies[0].Count != 3 {
		t.Errorf("unexpected top frequency %+v", rep.Frequencies[0])
	}
	if rep.Frequencies[1].Rank != 2.5 {
		t.Errorf("tied labels should share rank 2.5, got %v", rep.Frequencies[1].Rank)
	}
	if rep.Zipf == nil {
		t.Error("expected a Zipf fit")
	}
	if len(rep.YearTotals) != 2 || rep.YearTotals[1].Count != 3 {
		t.Errorf("unexpected year totals %+v", rep.YearTotals)
	}

	clusters, err := buildReport(threads, "cluster")
	if err != nil {
		t.Fatalf("buildReport cluster: %v", err)
	}
	if clusters.TotalThreads != 1 || clusters.Zipf != nil {
		t.Errorf("only one clustered thread expected and no fit, got %+v", clusters)
	}
}

func TestBuildReportNoLabels(t *testing.T) {
	_, err := buildReport([]labeledThread{{Year: "2009", Category: "Question"}}, "cluster")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReportFromTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labeled.csv")
	rows := []table.Row{
		{Thread: corpus.Thread{ThreadID: "1", Year: "2009", Month: "01"}, Scores: sentiment.Scores{TextPos: 4}, Category: category.Appreciation},
		{Thread: corpus.Thread{ThreadID: "2", Year: "2009", Month: "02"}, Scores: sentiment.Scores{TextNeg: -4}, Category: category.NegativeReaction},
		{Thread: corpus.Thread{ThreadID: "3", Year: "2010", Month: "01"}, Category: category.Appreciation},
	}
	if err := table.SaveLabeled(path, rows); err != nil {
		t.Fatal(err)
	}

	rep, err := reportFromTables([]string{path}, "category")
	if err != nil {
		t.Fatalf("reportFromTables: %v", err)
	}
	cat := rep.Transitions["category"]
	if cat.Total != 2 || cat.Labels[0] != "Appreciation" {
		t.Errorf("unexpected category transitions %+v", cat)
	}
	sent := rep.Transitions["sentiment"]
	// pos -> neg, neg -> neu
	if sent.Counts[0][1] != 1 || sent.Counts[1][2] != 1 {
		t.Errorf("unexpected sentiment transitions %+v", sent)
	}
	if _, ok := rep.Transitions["cluster"]; ok {
		t.Error("no cluster transitions expected")
	}
}

func TestReportFromStore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	older, latest := store.NewRunID(), store.NewRunID()
	if err := st.SaveRun(ctx, store.Run{ID: older, CreatedAt: time.Now()}, []store.Thread{{ThreadID: "9", Year: "2008", Category: "Narration"}}, nil); err != nil {
		t.Fatal(err)
	}
	threads := []store.Thread{
		{ThreadID: "1", Year: "2009", Category: "Question"},
		{ThreadID: "2", Year: "2009", Category: "Announcement"},
	}
	cells := []store.Cell{
		{Kind: store.KindCategory, Row: 0, Col: 0, From: "Question", To: "Question"},
		{Kind: store.KindCategory, Row: 0, Col: 1, From: "Question", To: "Announcement", Count: 1},
		{Kind: store.KindCategory, Row: 1, Col: 0, From: "Announcement", To: "Question"},
		{Kind: store.KindCategory, Row: 1, Col: 1, From: "Announcement", To: "Announcement"},
	}
	if err := st.SaveRun(ctx, store.Run{ID: latest, CreatedAt: time.Now(), Threads: 2}, threads, cells); err != nil {
		t.Fatal(err)
	}
	st.Close()

	rep, err := reportFromStore(ctx, dbPath, "", "category")
	if err != nil {
		t.Fatalf("reportFromStore: %v", err)
	}
	if rep.Source != "run "+latest || rep.TotalThreads != 2 {
		t.Errorf("latest run should be reported, got %+v", rep)
	}
	cat := rep.Transitions["category"]
	if cat.Total != 1 || cat.Labels[1] != "Announcement" || cat.Counts[0][1] != 1 {
		t.Errorf("unexpected category transitions %+v", cat)
	}

	if _, err := reportFromStore(ctx, dbPath, "missing", "category"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown run, got %v", err)
	}
}
