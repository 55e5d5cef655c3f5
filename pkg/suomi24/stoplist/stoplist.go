package stoplist

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// Manager holds the stopword set used by the text normalizer.
type Manager struct {
	stops   map[string]struct{}
	builtin string // bbalet/stopwords language code, empty when disabled
}

// Option configures a Manager.
type Option func(*Manager)

// WithBuiltin enables the built-in stopword list for the given language code
// (for example "fi") in addition to the explicit terms.
func WithBuiltin(langCode string) Option {
	return func(m *Manager) {
		m.builtin = langCode
	}
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string, opts ...Option) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		stops[s] = struct{}{}
	}
	m := &Manager{stops: stops}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsStop checks if a token is a stopword. Matching is exact; callers pass
// already lowercased tokens.
func (m *Manager) IsStop(token string) bool {
	if _, ok := m.stops[token]; ok {
		return true
	}
	if m.builtin == "" || !hasLetter(token) {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(token, m.builtin, false)) == ""
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, token)
}

// All returns the explicit stopwords, sorted
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of explicit stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// Builtin returns the built-in language code, or "" when disabled.
func (m *Manager) Builtin() string {
	return m.builtin
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
