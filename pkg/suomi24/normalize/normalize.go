package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/ingest"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/stoplist"
)

// MinLength is the shortest normalized title or text (in characters) a
// thread may have and still be kept. Strings of MinLength or fewer
// characters are dropped.
const MinLength = 3

// Result is the outcome of normalizing one string. When Err is set the
// string could not be normalized and Text holds the original input.
type Result struct {
	Text string
	Err  error
}

// OK reports whether normalization succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Normalizer cleans thread titles and bodies:
// lowercase → keep [a-z åäö space - _ ! ?] → hyphens/underscores to
// spaces → drop stopwords → collapse whitespace.
type Normalizer struct {
	stops     *stoplist.Manager
	tokenizer *ingest.Tokenizer
	log       logrus.FieldLogger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for dataset-level reporting.
func WithLogger(l logrus.FieldLogger) Option {
	return func(n *Normalizer) {
		n.log = l
	}
}

// New creates a normalizer. A nil stoplist removes nothing.
func New(stops *stoplist.Manager, tokenizer *ingest.Tokenizer, opts ...Option) *Normalizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer()
	}
	n := &Normalizer{
		stops:     stops,
		tokenizer: tokenizer,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize runs the full cleaning chain on one string.
func (n *Normalizer) Normalize(text string) Result {
	if !utf8.ValidString(text) {
		return Result{Text: text, Err: fmt.Errorf("%w: invalid UTF-8", internalerr.ErrInvalidInput)}
	}

	// Compose first so a decomposed "a" + diaeresis survives the filter as "ä".
	t := strings.ToLower(norm.NFC.String(text))
	t = keepAllowed(t)
	// Split compounds before the stoplist sees them, otherwise "se-on"
	// would only lose its stopwords on a second pass.
	t = replaceWithSpace.Replace(t)
	t = n.removeStopwords(t)
	t = strings.Join(strings.Fields(t), " ")

	return Result{Text: t}
}

var replaceWithSpace = strings.NewReplacer("-", " ", "_", " ")

func keepAllowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allowed(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	switch r {
	case 'å', 'ä', 'ö', ' ', '-', '_', '!', '?':
		return true
	}
	return false
}

func (n *Normalizer) removeStopwords(s string) string {
	tokens := n.tokenizer.Tokenize(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if n.stops.IsStop(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Report summarizes a Dataset run.
type Report struct {
	Input        int
	Duplicates   int // dropped before normalization, (title, datetime) already seen
	Failed       int // strings kept in original form because normalization failed
	DroppedNull  int // title or text normalized to "nan" / "null"
	DroppedShort int // title or text of MinLength characters or fewer
	Output       int
}

// Dataset deduplicates, normalizes and filters a thread table. The input is
// not modified; a new table is returned.
func (n *Normalizer) Dataset(threads []corpus.Thread) ([]corpus.Thread, Report) {
	rep := Report{Input: len(threads)}

	n.log.WithField("stage", "normalize").Info("Starting duplicate removal")
	deduped, dups := corpus.Dedupe(threads)
	rep.Duplicates = dups

	n.log.WithField("stage", "normalize").Infof("Duplicate removal ended (%d dropped), filtering titles and texts", dups)
	out := make([]corpus.Thread, 0, len(deduped))
	for _, th := range deduped {
		title := n.Normalize(th.Title)
		text := n.Normalize(th.Text)
		for _, r := range []Result{title, text} {
			if !r.OK() {
				rep.Failed++
				n.log.WithFields(logrus.Fields{"stage": "normalize", "thread_id": th.ThreadID}).
					Warnf("normalization failed, keeping original: %v", r.Err)
			}
		}
		th.Title = title.Text
		th.Text = text.Text

		switch {
		case isNullMarker(th.Title) || isNullMarker(th.Text):
			rep.DroppedNull++
			continue
		case tooShort(th.Title) || tooShort(th.Text):
			rep.DroppedShort++
			continue
		}
		out = append(out, th)
	}

	rep.Output = len(out)
	n.log.WithField("stage", "normalize").
		Infof("Deleted %d rows, %d rows remain", rep.DroppedNull+rep.DroppedShort, rep.Output)
	return out, rep
}

func isNullMarker(s string) bool {
	return s == "nan" || s == "null"
}

func tooShort(s string) bool {
	return utf8.RuneCountInString(s) <= MinLength
}
