package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

func TestAnalyzerCounts(t *testing.T) {
	a := NewAnalyzer()
	a.Process("2009", "Question")
	a.Process("2009", "Announcement")
	a.Process("2010", "Question")
	a.Process("2010", "Question")
	a.Process("2010", "Rant")

	stats := a.Snapshot()
	if stats.TotalThreads != 5 {
		t.Fatalf("expected 5 threads, got %d", stats.TotalThreads)
	}
	if stats.Counts["Question"] != 3 {
		t.Errorf("expected 3 questions, got %d", stats.Counts["Question"])
	}
	if len(stats.Labels) != 3 || stats.Labels[0] != "Question" || stats.Labels[2] != "Rant" {
		t.Errorf("unexpected label order %v", stats.Labels)
	}

	a.Process("2011", "Question")
	if stats.Counts["Question"] != 3 {
		t.Error("snapshot should not change after more input")
	}
}

func TestFrequenciesRanks(t *testing.T) {
	a := NewAnalyzer()
	for _, l := range []string{"A", "B", "B", "C", "C", "D", "D", "D"} {
		a.Process("2009", l)
	}

	freqs := a.Snapshot().Frequencies()
	want := []Frequency{
		{Label: "D", Count: 3, Rank: 1},
		{Label: "B", Count: 2, Rank: 2.5},
		{Label: "C", Count: 2, Rank: 2.5},
		{Label: "A", Count: 1, Rank: 4},
	}
	if len(freqs) != len(want) {
		t.Fatalf("expected %d frequencies, got %d", len(want), len(freqs))
	}
	for i := range want {
		if freqs[i] != want[i] {
			t.Errorf("frequency %d: got %+v, want %+v", i, freqs[i], want[i])
		}
	}
}

func TestEvolution(t *testing.T) {
	a := NewAnalyzer()
	a.Process("2010", "Question")
	a.Process("2009", "Announcement")
	a.Process("2010", "Announcement")
	a.Process("2010", "Question")

	totals, counts := a.Snapshot().Evolution()
	if len(totals) != 2 || totals[0].Year != "2009" || totals[1].Count != 3 {
		t.Errorf("unexpected totals %+v", totals)
	}
	want := []YearCount{
		{Year: "2009", Label: "Announcement", Count: 1},
		{Year: "2010", Label: "Question", Count: 2},
		{Year: "2010", Label: "Announcement", Count: 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("expected %d counts, got %+v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("count %d: got %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestFitZipfExact(t *testing.T) {
	// f = 1200 / r is an exact Zipf distribution.
	freqs := []Frequency{
		{Label: "a", Count: 1200, Rank: 1},
		{Label: "b", Count: 600, Rank: 2},
		{Label: "c", Count: 400, Rank: 3},
		{Label: "d", Count: 300, Rank: 4},
	}
	fit, err := FitZipf(freqs)
	if err != nil {
		t.Fatalf("FitZipf: %v", err)
	}
	if math.Abs(fit.Slope+1) > 1e-9 {
		t.Errorf("expected slope -1, got %v", fit.Slope)
	}
	if math.Abs(fit.Scale-1200) > 1e-6 {
		t.Errorf("expected scale 1200, got %v", fit.Scale)
	}
	if math.Abs(fit.RSquared-1) > 1e-9 {
		t.Errorf("expected perfect fit, got R² %v", fit.RSquared)
	}
	if fit.Expected[3] != 300 {
		t.Errorf("unexpected expected frequencies %v", fit.Expected)
	}
}

func TestFitZipfTooFew(t *testing.T) {
	_, err := FitZipf([]Frequency{{Label: "a", Count: 3, Rank: 1}})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	_, err = FitZipf([]Frequency{{Label: "a", Count: 3, Rank: 1.5}, {Label: "b", Count: 3, Rank: 1.5}})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for tied ranks, got %v", err)
	}
}
