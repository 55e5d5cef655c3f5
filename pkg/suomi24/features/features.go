// Package features computes the stylistic feature vector of a thread from
// its title, its text and the word lexicons.
package features

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/ingest"
	"github.com/cognicore/suomi24/pkg/suomi24/lexicon"
)

// ProgressInterval is how often ExtractAll logs progress, in records.
const ProgressInterval = 100000

// Vector is the per-thread feature vector. Field order matches Names.
type Vector struct {
	TitleLength        int
	TextLength         int
	WordsTitle         int
	WordsText          int
	QuestionMarks      int
	ExclamationMarks   int
	QuestionWords      int
	SwearWords         int
	Negatives          int
	NegAdjectives      int
	PosAdjectives      int
	NegAdjAvgSentiment float64 // 0 when NegAdjectives is 0
	PosAdjAvgSentiment float64 // 0 when PosAdjectives is 0
}

// Names lists the output column names in order.
var Names = []string{
	"title_length",
	"text_length",
	"n_of_words_title",
	"n_of_words_text",
	"n_of_question_marks",
	"n_of_exclamation_marks",
	"n_of_question_words",
	"n_of_swear_words",
	"n_of_negatives",
	"n_of_neg_adjectives",
	"n_of_pos_adjectives",
	"neg_adj_avg_sentiment",
	"pos_adj_avg_sentiment",
}

// Values returns the fields in Names order.
func (v Vector) Values() []float64 {
	return []float64{
		float64(v.TitleLength),
		float64(v.TextLength),
		float64(v.WordsTitle),
		float64(v.WordsText),
		float64(v.QuestionMarks),
		float64(v.ExclamationMarks),
		float64(v.QuestionWords),
		float64(v.SwearWords),
		float64(v.Negatives),
		float64(v.NegAdjectives),
		float64(v.PosAdjectives),
		v.NegAdjAvgSentiment,
		v.PosAdjAvgSentiment,
	}
}

// Extractor computes Vectors. It only reads the lexicon.
type Extractor struct {
	lex       *lexicon.Store
	tokenizer *ingest.Tokenizer
	log       logrus.FieldLogger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the progress logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

// NewExtractor creates an extractor. A nil tokenizer uses the default one;
// a nil lexicon matches nothing.
func NewExtractor(lex *lexicon.Store, tokenizer *ingest.Tokenizer, opts ...Option) *Extractor {
	if lex == nil {
		lex = lexicon.New(lexicon.Sources{})
	}
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer()
	}
	e := &Extractor{lex: lex, tokenizer: tokenizer, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract computes the vector of one thread.
//
// Each token of the pooled title and text stream lands in at most one
// bucket, tested in this order: "?", "!", negation, question word, swear
// word, adjective. A word listed in several lexicons only counts for the
// first of them.
func (e *Extractor) Extract(title, text string) Vector {
	var v Vector
	v.TitleLength = utf8.RuneCountInString(title)
	v.TextLength = utf8.RuneCountInString(text)

	titleTokens := e.tokenizer.Tokenize(title)
	textTokens := e.tokenizer.Tokenize(text)
	v.WordsTitle = countWords(titleTokens)
	v.WordsText = countWords(textTokens)

	var posSum, negSum float64
	for _, tokens := range [][]string{textTokens, titleTokens} {
		for _, tok := range tokens {
			switch tok {
			case "?":
				v.QuestionMarks++
				continue
			case "!":
				v.ExclamationMarks++
				continue
			}

			key := strings.ToLower(tok)
			switch {
			case e.lex.IsNegation(key):
				v.Negatives++
			case e.lex.IsQuestion(key):
				v.QuestionWords++
			case e.lex.IsSwear(key):
				v.SwearWords++
			default:
				s := e.lex.Adjective(key)
				switch {
				case s > 0:
					v.PosAdjectives++
					posSum += s
				case s < 0:
					v.NegAdjectives++
					negSum += s
				}
			}
		}
	}

	if v.PosAdjectives > 0 {
		v.PosAdjAvgSentiment = posSum / float64(v.PosAdjectives)
	}
	if v.NegAdjectives > 0 {
		v.NegAdjAvgSentiment = negSum / float64(v.NegAdjectives)
	}
	return v
}

func countWords(tokens []string) int {
	n := 0
	for _, t := range tokens {
		if t != "?" && t != "!" {
			n++
		}
	}
	return n
}

// Input is one title/text pair for ExtractAll.
type Input struct {
	Title string
	Text  string
}

// ExtractAll computes vectors for a batch in order, logging progress every
// ProgressInterval records.
func (e *Extractor) ExtractAll(inputs []Input) []Vector {
	out := make([]Vector, len(inputs))
	for i, in := range inputs {
		if i%ProgressInterval == 0 {
			e.log.WithField("stage", "features").Infof("Feature extraction in process for thread number %d", i+1)
		}
		out[i] = e.Extract(in.Title, in.Text)
	}
	return out
}
