package category

import (
	"errors"
	"testing"

	"github.com/cognicore/suomi24/pkg/suomi24/features"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		v    features.Vector
		sum  float64
		want Category
	}{
		{
			name: "negative narration by sentiment",
			v:    features.Vector{WordsText: 500, NegAdjectives: 2, PosAdjectives: 1},
			sum:  -3,
			want: NegativeNarration,
		},
		{
			name: "negative narration by swears",
			v:    features.Vector{WordsText: 301, SwearWords: 21},
			want: NegativeNarration,
		},
		{
			name: "negative narration by adjectives",
			v:    features.Vector{WordsText: 400, NegAdjectives: 11, PosAdjectives: 3},
			sum:  5,
			want: NegativeNarration,
		},
		{
			name: "positive narration by sentiment",
			v:    features.Vector{WordsText: 301},
			sum:  2.5,
			want: PositiveNarration,
		},
		{
			name: "positive narration by adjectives",
			v:    features.Vector{WordsText: 301, PosAdjectives: 11, NegAdjectives: 10},
			want: PositiveNarration,
		},
		{
			name: "narration at sentiment boundary",
			v:    features.Vector{WordsText: 301},
			sum:  2,
			want: Narration,
		},
		{
			name: "300 words is not long",
			v:    features.Vector{WordsText: 300},
			sum:  -2.5,
			want: Announcement,
		},
		{
			name: "question",
			v:    features.Vector{WordsText: 10, QuestionWords: 1, QuestionMarks: 1},
			want: Question,
		},
		{
			name: "question needs a mark",
			v:    features.Vector{WordsText: 10, QuestionWords: 1},
			want: Announcement,
		},
		{
			name: "question must be short",
			v:    features.Vector{WordsText: 40, QuestionWords: 1, QuestionMarks: 1},
			want: Announcement,
		},
		{
			name: "appreciation by adjective average",
			v:    features.Vector{WordsText: 50, PosAdjectives: 1, PosAdjAvgSentiment: 1.5},
			want: Appreciation,
		},
		{
			name: "appreciation by sentiment",
			v:    features.Vector{WordsText: 50},
			sum:  3,
			want: Appreciation,
		},
		{
			name: "appreciation wins over negative reaction",
			v:    features.Vector{WordsText: 50, SwearWords: 15},
			sum:  3,
			want: Appreciation,
		},
		{
			name: "negative reaction by adjective average",
			v:    features.Vector{WordsText: 50, NegAdjectives: 1, NegAdjAvgSentiment: -1.5},
			want: NegativeReaction,
		},
		{
			name: "negative reaction by sentiment",
			v:    features.Vector{WordsText: 50},
			sum:  -3,
			want: NegativeReaction,
		},
		{
			name: "negative reaction by swears",
			v:    features.Vector{WordsText: 50, SwearWords: 11},
			want: NegativeReaction,
		},
		{
			name: "announcement",
			v:    features.Vector{WordsText: 50, SwearWords: 10},
			sum:  -2.9,
			want: Announcement,
		},
		{
			name: "zero vector",
			want: Announcement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.v, tt.sum)
			if got != tt.want {
				t.Errorf("Categorize = %s, want %s", got, tt.want)
			}
			if again := Categorize(tt.v, tt.sum); again != got {
				t.Errorf("Not deterministic: %s then %s", got, again)
			}
		})
	}
}

func TestCategorizeTotal(t *testing.T) {
	valid := make(map[Category]bool)
	for _, c := range All() {
		valid[c] = true
	}

	for words := 0; words <= 400; words += 20 {
		for swears := 0; swears <= 25; swears += 5 {
			for adj := 0; adj <= 12; adj += 4 {
				for sum := -4.0; sum <= 4; sum += 0.5 {
					v := features.Vector{
						WordsText:          words,
						SwearWords:         swears,
						QuestionWords:      adj % 2,
						QuestionMarks:      adj % 3,
						PosAdjectives:      adj,
						NegAdjectives:      12 - adj,
						PosAdjAvgSentiment: float64(adj) / 6,
						NegAdjAvgSentiment: -float64(12-adj) / 6,
					}
					if c := Categorize(v, sum); !valid[c] {
						t.Fatalf("Categorize(%+v, %v) returned %v", v, sum, c)
					}
				}
			}
		}
	}
}

func TestCategoryStringRoundTrip(t *testing.T) {
	if len(All()) != 7 {
		t.Fatalf("Expected 7 categories, got %d", len(All()))
	}
	for _, c := range All() {
		got, err := ParseCategory(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, err)
		}
	}
	if NegativeReaction.String() != "Negative Reaction" {
		t.Errorf("Unexpected label %q", NegativeReaction.String())
	}
	if _, err := ParseCategory("Rant"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestClusterLabels(t *testing.T) {
	want := []string{"Short Text", "Question", "Question/Descriptive", "Negative text", "Announcement", "Rant"}
	clusters := Clusters()
	if len(clusters) != len(want) {
		t.Fatalf("Expected %d clusters, got %d", len(want), len(clusters))
	}
	for i, c := range clusters {
		if c.String() != want[i] {
			t.Errorf("Cluster %d = %q, want %q", i, c.String(), want[i])
		}
		if back, err := ParseCluster(want[i]); err != nil || back != c {
			t.Errorf("ParseCluster(%q) = %v, %v", want[i], back, err)
		}
	}
}
