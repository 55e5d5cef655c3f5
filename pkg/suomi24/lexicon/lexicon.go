package lexicon

import (
	"strings"
)

// Store holds the word lists used for feature extraction:
// - Questions: interrogative words ("miksi", "kuka", ...)
// - Negations: negation words ("ei", "en", ...)
// - Swears: swear words
// - Adjectives: sentiment-scored adjectives, signed real score
//
// A Store is immutable once built and safe for concurrent readers.
type Store struct {
	questions  map[string]struct{}
	negations  map[string]struct{}
	swears     map[string]struct{}
	adjectives map[string]float64

	duplicateAdjectives int
}

// Adjective is one row of the adjective sentiment table.
type Adjective struct {
	Word      string
	Sentiment float64
}

// Sources holds the raw entries a Store is built from.
type Sources struct {
	Questions  []string
	Negations  []string
	Swears     []string
	Adjectives []Adjective
}

// New builds a Store. Keys are trimmed and lowercased. For adjectives the
// first entry of a word wins; later entries are counted as duplicates and
// never merged into the first score.
func New(src Sources) *Store {
	s := &Store{
		questions:  wordSet(src.Questions),
		negations:  wordSet(src.Negations),
		swears:     wordSet(src.Swears),
		adjectives: make(map[string]float64, len(src.Adjectives)),
	}

	for _, a := range src.Adjectives {
		w := normalizeKey(a.Word)
		if w == "" {
			continue
		}
		if _, exists := s.adjectives[w]; exists {
			s.duplicateAdjectives++
			continue
		}
		s.adjectives[w] = a.Sentiment
	}

	return s
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = normalizeKey(w)
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func normalizeKey(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// IsQuestion reports whether token is in the question-word list.
func (s *Store) IsQuestion(token string) bool {
	_, ok := s.questions[token]
	return ok
}

// IsNegation reports whether token is in the negation list.
func (s *Store) IsNegation(token string) bool {
	_, ok := s.negations[token]
	return ok
}

// IsSwear reports whether token is in the swear-word list.
func (s *Store) IsSwear(token string) bool {
	_, ok := s.swears[token]
	return ok
}

// Adjective returns the sentiment score of token, or 0 when it is not a
// scored adjective.
func (s *Store) Adjective(token string) float64 {
	return s.adjectives[token]
}

// Stats returns statistics about the store contents.
func (s *Store) Stats() Stats {
	st := Stats{
		Questions:           len(s.questions),
		Negations:           len(s.negations),
		Swears:              len(s.swears),
		Adjectives:          len(s.adjectives),
		DuplicateAdjectives: s.duplicateAdjectives,
	}
	for _, v := range s.adjectives {
		switch {
		case v > 0:
			st.PositiveAdjectives++
		case v < 0:
			st.NegativeAdjectives++
		}
	}
	return st
}

// Stats holds statistics about store contents.
type Stats struct {
	Questions           int
	Negations           int
	Swears              int
	Adjectives          int
	PositiveAdjectives  int
	NegativeAdjectives  int
	DuplicateAdjectives int // entries ignored because the word was already loaded
}
