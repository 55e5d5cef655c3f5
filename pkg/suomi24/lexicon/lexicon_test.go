package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLowercasesKeys(t *testing.T) {
	store := New(Sources{
		Questions: []string{"Miksi", " kuka "},
		Negations: []string{"EI"},
		Swears:    []string{"Perkele"},
	})

	if !store.IsQuestion("miksi") || !store.IsQuestion("kuka") {
		t.Error("Question words should be lowercased and trimmed")
	}
	if !store.IsNegation("ei") {
		t.Error("Negation should be lowercased")
	}
	if !store.IsSwear("perkele") {
		t.Error("Swear word should be lowercased")
	}
	if store.IsSwear("Perkele") {
		t.Error("Lookups are exact on lowercase keys")
	}
}

func TestAdjectiveDuplicatesKeepFirst(t *testing.T) {
	store := New(Sources{
		Adjectives: []Adjective{
			{Word: "hyvä", Sentiment: 2},
			{Word: "huono", Sentiment: -2},
			{Word: "Hyvä", Sentiment: -5},
			{Word: "hyvä", Sentiment: 3},
		},
	})

	if got := store.Adjective("hyvä"); got != 2 {
		t.Errorf("First entry should win: got %v, want 2", got)
	}

	stats := store.Stats()
	if stats.DuplicateAdjectives != 2 {
		t.Errorf("Expected 2 duplicates, got %d", stats.DuplicateAdjectives)
	}
	if stats.Adjectives != 2 {
		t.Errorf("Expected 2 adjectives, got %d", stats.Adjectives)
	}
	if stats.PositiveAdjectives != 1 || stats.NegativeAdjectives != 1 {
		t.Errorf("Expected 1 positive and 1 negative, got %+v", stats)
	}
}

func TestUnknownAdjectiveIsZero(t *testing.T) {
	store := New(Sources{})
	if got := store.Adjective("tuntematon"); got != 0 {
		t.Errorf("Unknown adjective should score 0, got %v", got)
	}
}

func TestReadAdjectivesSkipsBadScores(t *testing.T) {
	input := "word,sentiment\nhyvä,2\nhuono,-1.5\nrikki,abc\nkiva,1\n"
	adjs, err := ReadAdjectives(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("ReadAdjectives: %v", err)
	}
	if len(adjs) != 3 {
		t.Fatalf("Expected 3 adjectives, got %d: %+v", len(adjs), adjs)
	}
	if adjs[1].Word != "huono" || adjs[1].Sentiment != -1.5 {
		t.Errorf("Unexpected second row %+v", adjs[1])
	}
}

func TestReadAdjectivesMissingColumns(t *testing.T) {
	_, err := ReadAdjectives(strings.NewReader("sana,arvo\nhyvä,2\n"), ',')
	if err == nil {
		t.Error("Should error when word/sentiment columns are missing")
	}
}

func TestReadAdjectivesHeaderOnly(t *testing.T) {
	adjs, err := ReadAdjectives(strings.NewReader("word,sentiment\n"), ',')
	if err != nil {
		t.Fatalf("Header-only table should not fail: %v", err)
	}
	if len(adjs) != 0 {
		t.Errorf("Expected no adjectives, got %d", len(adjs))
	}
}

func TestLoadFiles(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	paths := Paths{
		Questions:  write("q_words.txt", "miksi\nkuka\n\nmitä\n"),
		Negations:  write("neg_words.yaml", "terms:\n  - ei\n  - en\n"),
		Swears:     write("swearing.txt", "perkele\n"),
		Adjectives: write("adjectives.tsv", "word\tsentiment\nihana\t3\nkamala\t-3\n"),
	}

	store, err := LoadFiles(paths)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}

	stats := store.Stats()
	if stats.Questions != 3 {
		t.Errorf("Expected 3 question words, got %d", stats.Questions)
	}
	if stats.Negations != 2 {
		t.Errorf("Expected 2 negations, got %d", stats.Negations)
	}
	if stats.Swears != 1 {
		t.Errorf("Expected 1 swear word, got %d", stats.Swears)
	}
	if store.Adjective("kamala") != -3 {
		t.Errorf("Expected kamala = -3, got %v", store.Adjective("kamala"))
	}
}

func TestLoadFilesMissing(t *testing.T) {
	_, err := LoadFiles(Paths{Swears: "/nonexistent/swearing.txt"})
	if err == nil {
		t.Error("Should error on nonexistent word list")
	}
}

func TestLoadFilesEmptyPaths(t *testing.T) {
	store, err := LoadFiles(Paths{})
	if err != nil {
		t.Fatalf("Empty paths should succeed: %v", err)
	}
	if store.Stats() != (Stats{}) {
		t.Errorf("Expected empty stats, got %+v", store.Stats())
	}
}
