// Package category assigns threads to discourse categories.
package category

import (
	"fmt"

	"github.com/cognicore/suomi24/pkg/suomi24/features"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

// Category is a rule based thread category.
type Category int

const (
	NegativeNarration Category = iota
	PositiveNarration
	Narration
	Question
	Appreciation
	NegativeReaction
	Announcement
)

var categoryNames = [...]string{
	NegativeNarration: "Negative Narration",
	PositiveNarration: "Positive Narration",
	Narration:         "Narration",
	Question:          "Question",
	Appreciation:      "Appreciation",
	NegativeReaction:  "Negative Reaction",
	Announcement:      "Announcement",
}

// String returns the label used in output tables.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// All lists every category in declaration order.
func All() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory is the inverse of String.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", internalerr.ErrInvalidInput, s)
}

// Decision tree thresholds.
const (
	LongTextWords      = 300 // texts with more words are narrations
	ShortQuestionWords = 40  // questions have fewer words than this
	NarrationSentiment = 2   // |text_s_sum| above this colors a narration
	ReactionSentiment  = 3   // |text_s_sum| at or above this makes a reaction
	AdjectiveAverage   = 1.5 // |adjective average| at or above this makes a reaction
	AdjectiveMajority  = 10  // adjective count above this, when dominant, decides
	NarrationSwears    = 20  // swear count above this makes a narration negative
	ReactionSwears     = 10  // swear count above this makes a negative reaction
)

// Categorize returns the category of one thread. textSentimentSum is the
// summed positive and negative score of the thread text. The first
// matching rule wins.
func Categorize(v features.Vector, textSentimentSum float64) Category {
	negMajority := v.NegAdjectives > AdjectiveMajority && v.NegAdjectives > v.PosAdjectives
	posMajority := v.PosAdjectives > AdjectiveMajority && v.PosAdjectives > v.NegAdjectives

	if v.WordsText > LongTextWords {
		switch {
		case textSentimentSum < -NarrationSentiment || v.SwearWords > NarrationSwears || negMajority:
			return NegativeNarration
		case textSentimentSum > NarrationSentiment || posMajority:
			return PositiveNarration
		default:
			return Narration
		}
	}

	switch {
	case v.QuestionWords > 0 && v.QuestionMarks > 0 && v.WordsText < ShortQuestionWords:
		return Question
	case v.PosAdjAvgSentiment >= AdjectiveAverage || textSentimentSum >= ReactionSentiment || posMajority:
		return Appreciation
	case v.NegAdjAvgSentiment <= -AdjectiveAverage || textSentimentSum <= -ReactionSentiment ||
		v.SwearWords > ReactionSwears || negMajority:
		return NegativeReaction
	default:
		return Announcement
	}
}
