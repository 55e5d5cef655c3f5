package config

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/ingest"
	"github.com/cognicore/suomi24/pkg/suomi24/lexicon"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
	"github.com/cognicore/suomi24/pkg/suomi24/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StoplistPath     string
	BuiltinStopwords string // language code for the built-in list, "" for none
	Lexicon          lexicon.Paths
	ScoresPath       string
	Logger           logrus.FieldLogger // reports skipped score records; nil uses the standard logger
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer *ingest.Tokenizer
	Stoplist  *stoplist.Manager
	Lexicon   *lexicon.Store
	Scorer    sentiment.Scorer
}

// Load reads all configuration files and returns initialized components.
// Without a score file the scorer falls back to the adjective lexicon.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Tokenizer: ingest.NewTokenizer()}

	var opts []stoplist.Option
	if l.BuiltinStopwords != "" {
		opts = append(opts, stoplist.WithBuiltin(l.BuiltinStopwords))
	}
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms, opts...)
	} else {
		comp.Stoplist = stoplist.NewManager(nil, opts...)
	}

	lex, err := lexicon.LoadFiles(l.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	comp.Lexicon = lex

	if l.ScoresPath != "" {
		var opts []sentiment.ReadOption
		if l.Logger != nil {
			opts = append(opts, sentiment.WithLogger(l.Logger))
		}
		scores, err := sentiment.LoadTable(l.ScoresPath, opts...)
		if err != nil {
			return nil, fmt.Errorf("load scores: %w", err)
		}
		comp.Scorer = scores
	} else {
		comp.Scorer = sentiment.NewLexiconScorer(lex, comp.Tokenizer)
	}

	return comp, nil
}
