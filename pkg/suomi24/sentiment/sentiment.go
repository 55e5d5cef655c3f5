// Package sentiment holds the per-thread sentiment scores consumed by the
// categorizer and the transition counter.
//
// Scores come from an external scorer (dual positive/negative output per
// string) and are joined to threads by thread id. Scoring itself is not done
// here beyond a small lexicon based fallback.
package sentiment

import (
	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
)

// Scores are the positive and negative scores of a thread title and body.
// Negative scores are expected to be <= 0.
type Scores struct {
	TitlePos float64
	TitleNeg float64
	TextPos  float64
	TextNeg  float64
}

// TitleSum is TitlePos + TitleNeg.
func (s Scores) TitleSum() float64 { return s.TitlePos + s.TitleNeg }

// TextSum is TextPos + TextNeg, the text_s_sum the categorizer reads.
func (s Scores) TextSum() float64 { return s.TextPos + s.TextNeg }

// Avg is the mean of the title and text sums.
func (s Scores) Avg() float64 { return (s.TitleSum() + s.TextSum()) / 2 }

// Scorer produces scores for one thread.
type Scorer interface {
	Score(t corpus.Thread) (Scores, error)
}

// Class is a coarse sentiment class.
type Class string

const (
	Positive Class = "pos"
	Negative Class = "neg"
	Neutral  Class = "neu"
)

// Classes lists the classes in table order.
var Classes = []Class{Positive, Negative, Neutral}

// Threshold bounds the neutral band. Both ends are exclusive for the outer
// classes: exactly 0.5 and -0.5 are neutral.
const Threshold = 0.5

// Classify maps a continuous score to a class.
func Classify(score float64) Class {
	switch {
	case score > Threshold:
		return Positive
	case score < -Threshold:
		return Negative
	default:
		return Neutral
	}
}

// ClassifyAll maps every score in order.
func ClassifyAll(scores []float64) []Class {
	out := make([]Class, len(scores))
	for i, s := range scores {
		out[i] = Classify(s)
	}
	return out
}
