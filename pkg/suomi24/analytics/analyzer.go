package analytics

import (
	"sort"
)

// Analyzer aggregates category counts overall and per year.
type Analyzer struct {
	total      int64
	counts     map[string]int64
	order      []string // labels in first-seen order
	yearly     map[string]map[string]int64
	yearTotals map[string]int64
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		counts:     make(map[string]int64),
		yearly:     make(map[string]map[string]int64),
		yearTotals: make(map[string]int64),
	}
}

// Process consumes one thread's year and category label.
func (a *Analyzer) Process(year, label string) {
	a.total++
	if _, ok := a.counts[label]; !ok {
		a.order = append(a.order, label)
	}
	a.counts[label]++

	if a.yearly[year] == nil {
		a.yearly[year] = make(map[string]int64)
	}
	a.yearly[year][label]++
	a.yearTotals[year]++
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalThreads int64
	Labels       []string // first-seen order
	Counts       map[string]int64
	Yearly       map[string]map[string]int64
	YearTotals   map[string]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	counts := make(map[string]int64, len(a.counts))
	for k, v := range a.counts {
		counts[k] = v
	}
	yearly := make(map[string]map[string]int64, len(a.yearly))
	for y, m := range a.yearly {
		yearly[y] = make(map[string]int64, len(m))
		for k, v := range m {
			yearly[y][k] = v
		}
	}
	totals := make(map[string]int64, len(a.yearTotals))
	for k, v := range a.yearTotals {
		totals[k] = v
	}
	return Stats{
		TotalThreads: a.total,
		Labels:       append([]string(nil), a.order...),
		Counts:       counts,
		Yearly:       yearly,
		YearTotals:   totals,
	}
}

// Frequency is one category's count and rank. Tied counts share the
// average of the ranks they span.
type Frequency struct {
	Label string  `json:"label"`
	Count int64   `json:"count"`
	Rank  float64 `json:"rank"`
}

// Frequencies ranks labels from most to least frequent. Equal counts keep
// first-seen order.
func (s Stats) Frequencies() []Frequency {
	out := make([]Frequency, 0, len(s.Labels))
	for _, l := range s.Labels {
		out = append(out, Frequency{Label: l, Count: s.Counts[l]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	for i := 0; i < len(out); {
		j := i
		for j+1 < len(out) && out[j+1].Count == out[i].Count {
			j++
		}
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[k].Rank = rank
		}
		i = j + 1
	}
	return out
}

// YearCount is the number of threads of one label in one year.
type YearCount struct {
	Year  string `json:"year"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// YearTotal is the number of threads in one year.
type YearTotal struct {
	Year  string `json:"year"`
	Count int64  `json:"count"`
}

// Years returns the observed years in ascending order.
func (s Stats) Years() []string {
	years := make([]string, 0, len(s.YearTotals))
	for y := range s.YearTotals {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Evolution returns per-year totals and per-year label counts, years
// ascending and labels in first-seen order. Only observed (year, label)
// pairs are listed.
func (s Stats) Evolution() ([]YearTotal, []YearCount) {
	var totals []YearTotal
	var counts []YearCount
	for _, y := range s.Years() {
		totals = append(totals, YearTotal{Year: y, Count: s.YearTotals[y]})
		for _, l := range s.Labels {
			if n := s.Yearly[y][l]; n > 0 {
				counts = append(counts, YearCount{Year: y, Label: l, Count: n})
			}
		}
	}
	return totals, counts
}
