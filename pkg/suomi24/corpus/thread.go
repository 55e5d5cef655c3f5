package corpus

import (
	"errors"
	"strconv"
	"strings"
)

// Thread is one root post of a Suomi24 discussion thread as recovered from
// the VRT corpus. Replies are not part of it.
type Thread struct {
	ThreadID string
	Year     string // date[0:4], unvalidated
	Month    string // date[5:7], unvalidated
	Datetime string
	Title    string
	Text     string

	TopicTop  string
	TopicLeaf string
}

// Validate checks if the thread has required fields
func (t *Thread) Validate() error {
	if strings.TrimSpace(t.ThreadID) == "" {
		return errors.New("thread id is required")
	}
	return nil
}

// YearNum parses the year slice.
func (t Thread) YearNum() (int, error) {
	return strconv.Atoi(t.Year)
}

// MonthNum parses the month slice. No range check is done.
func (t Thread) MonthNum() (int, error) {
	return strconv.Atoi(t.Month)
}

// DateParts slices year and month out of a YYYY-MM-DD date the same way for
// every input: fixed code point positions, shorter strings give shorter
// slices.
func DateParts(date string) (year, month string) {
	r := []rune(date)
	return sliceRunes(r, 0, 4), sliceRunes(r, 5, 7)
}

func sliceRunes(r []rune, from, to int) string {
	if from >= len(r) {
		return ""
	}
	if to > len(r) {
		to = len(r)
	}
	return string(r[from:to])
}

type dedupeKey struct {
	title    string
	datetime string
}

// Dedupe drops threads sharing the same (Title, Datetime) pair, keeping the
// first occurrence. The input slice is not modified.
func Dedupe(threads []Thread) (kept []Thread, dropped int) {
	seen := make(map[dedupeKey]struct{}, len(threads))
	kept = make([]Thread, 0, len(threads))
	for _, t := range threads {
		k := dedupeKey{title: t.Title, datetime: t.Datetime}
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, t)
	}
	return kept, dropped
}
