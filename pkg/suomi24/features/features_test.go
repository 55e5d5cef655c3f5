package features

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/lexicon"
)

func testLexicon() *lexicon.Store {
	return lexicon.New(lexicon.Sources{
		Questions: []string{"miksi", "kuka", "ei"},
		Negations: []string{"ei", "en"},
		Swears:    []string{"perkele", "hyvä"},
		Adjectives: []lexicon.Adjective{
			{Word: "hyvä", Sentiment: 3},
			{Word: "kaunis", Sentiment: 2},
			{Word: "huono", Sentiment: -2},
			{Word: "kamala", Sentiment: -4},
		},
	})
}

func newTestExtractor() *Extractor {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewExtractor(testLexicon(), nil, WithLogger(l))
}

func TestExtractCounts(t *testing.T) {
	e := newTestExtractor()

	v := e.Extract("Miksi näin?", "Kaunis ja huono talo! Kamala juttu, perkele?!")

	want := Vector{
		TitleLength:        11,
		TextLength:         45,
		WordsTitle:         2,
		WordsText:          8,
		QuestionMarks:      2,
		ExclamationMarks:   2,
		QuestionWords:      1,
		SwearWords:         1,
		Negatives:          0,
		NegAdjectives:      2,
		PosAdjectives:      1,
		NegAdjAvgSentiment: -3,
		PosAdjAvgSentiment: 2,
	}
	if v != want {
		t.Errorf("got  %+v\nwant %+v", v, want)
	}
}

func TestExtractPriorityOrder(t *testing.T) {
	e := newTestExtractor()

	// "ei" is both a negation and a question word, "hyvä" is both a swear
	// word and a positive adjective.
	v := e.Extract("", "ei hyvä")
	if v.Negatives != 1 || v.QuestionWords != 0 {
		t.Errorf("Negation should win over question word: %+v", v)
	}
	if v.SwearWords != 1 || v.PosAdjectives != 0 || v.PosAdjAvgSentiment != 0 {
		t.Errorf("Swear word should win over adjective: %+v", v)
	}
}

func TestExtractPartition(t *testing.T) {
	e := newTestExtractor()

	texts := []string{
		"Miksi ei kukaan vastaa?! Kamala ja hyvä päivä.",
		"en tiedä kuka perkele hyvä kaunis huono",
		"??!! ... tavallinen lause ilman mitään",
		"",
	}
	for _, text := range texts {
		v := e.Extract("", text)
		tokens := e.tokenizer.Tokenize(text)

		classified := 0
		for _, tok := range tokens {
			tok = strings.ToLower(tok)
			switch {
			case tok == "?", tok == "!":
				classified++
			case e.lex.IsNegation(tok), e.lex.IsQuestion(tok), e.lex.IsSwear(tok), e.lex.Adjective(tok) != 0:
				classified++
			}
		}
		sum := v.QuestionMarks + v.ExclamationMarks + v.Negatives + v.QuestionWords +
			v.SwearWords + v.PosAdjectives + v.NegAdjectives
		if sum != classified {
			t.Errorf("%q: bucket sum %d, classified tokens %d", text, sum, classified)
		}
	}
}

func TestExtractZeroAverageSentinel(t *testing.T) {
	e := newTestExtractor()

	v := e.Extract("otsikko", "vain tavallisia sanoja")
	if v.PosAdjectives != 0 || v.PosAdjAvgSentiment != 0 {
		t.Errorf("Positive average should be 0 with no matches: %+v", v)
	}
	if v.NegAdjectives != 0 || v.NegAdjAvgSentiment != 0 {
		t.Errorf("Negative average should be 0 with no matches: %+v", v)
	}
}

func TestExtractWordCountsSeparate(t *testing.T) {
	e := newTestExtractor()

	v := e.Extract("yksi kaksi ?", "kolme !")
	if v.WordsTitle != 2 || v.WordsText != 1 {
		t.Errorf("Word counts should exclude ? and ! per field: %+v", v)
	}
	if v.QuestionMarks != 1 || v.ExclamationMarks != 1 {
		t.Errorf("Marks should be pooled: %+v", v)
	}
}

func TestExtractLengthInCodePoints(t *testing.T) {
	e := newTestExtractor()

	v := e.Extract("äö", "åäö")
	if v.TitleLength != 2 || v.TextLength != 3 {
		t.Errorf("Lengths should count characters, got %d and %d", v.TitleLength, v.TextLength)
	}
}

func TestExtractAllOrder(t *testing.T) {
	e := newTestExtractor()

	got := e.ExtractAll([]Input{
		{Title: "a", Text: "hyvä"},
		{Title: "b", Text: "kamala kamala"},
		{Title: "c", Text: "miksi?"},
	})
	if len(got) != 3 {
		t.Fatalf("Expected 3 vectors, got %d", len(got))
	}
	if got[0].SwearWords != 1 || got[1].NegAdjectives != 2 || got[2].QuestionWords != 1 {
		t.Errorf("Unexpected vectors %+v", got)
	}
}

func TestVectorValuesMatchNames(t *testing.T) {
	v := Vector{TitleLength: 1, PosAdjAvgSentiment: 2.5}
	vals := v.Values()
	if len(vals) != len(Names) {
		t.Fatalf("Values has %d fields, Names %d", len(vals), len(Names))
	}
	if vals[0] != 1 || vals[len(vals)-1] != 2.5 {
		t.Errorf("Unexpected order %v", vals)
	}
}
