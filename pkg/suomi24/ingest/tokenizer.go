package ingest

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into word and punctuation tokens in document order.
//
// Words are runs of letters, digits and underscores; a hyphen or apostrophe
// stays inside a word when a word character follows it. Every other
// non-space rune becomes a standalone token, except that a run of dots is
// kept as a single ellipsis token. Case is preserved.
type Tokenizer struct{}

// NewTokenizer creates a new tokenizer
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	runes := []rune(text)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isWordRune(r):
			current.WriteRune(r)
		case (r == '-' || r == '\'') && current.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		case r == '.':
			flush()
			j := i
			for j+1 < len(runes) && runes[j+1] == '.' {
				j++
			}
			tokens = append(tokens, string(runes[i:j+1]))
			i = j
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}

	// Don't forget the last token
	flush()

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.Is(unicode.Mn, r)
}
