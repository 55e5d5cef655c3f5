package sentiment

import (
	"strings"

	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/ingest"
	"github.com/cognicore/suomi24/pkg/suomi24/lexicon"
)

// LexiconScorer approximates dual scores from the adjective lexicon: the
// positive score is the sum of positive adjective scores, the negative
// score the sum of negative ones. It is used when no score file is given.
type LexiconScorer struct {
	lex       *lexicon.Store
	tokenizer *ingest.Tokenizer
}

// NewLexiconScorer creates a scorer. A nil tokenizer uses the default.
func NewLexiconScorer(lex *lexicon.Store, tokenizer *ingest.Tokenizer) *LexiconScorer {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer()
	}
	return &LexiconScorer{lex: lex, tokenizer: tokenizer}
}

// Score never fails.
func (s *LexiconScorer) Score(t corpus.Thread) (Scores, error) {
	var out Scores
	out.TitlePos, out.TitleNeg = s.dual(t.Title)
	out.TextPos, out.TextNeg = s.dual(t.Text)
	return out, nil
}

func (s *LexiconScorer) dual(text string) (pos, neg float64) {
	if s.lex == nil {
		return 0, 0
	}
	for _, tok := range s.tokenizer.Tokenize(text) {
		v := s.lex.Adjective(strings.ToLower(tok))
		switch {
		case v > 0:
			pos += v
		case v < 0:
			neg += v
		}
	}
	return pos, neg
}
