package vrt

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

// Word record columns (0-based) inside a sentence.
const (
	wordColumn = 2
	tagColumn  = 4
)

type textElement struct {
	XMLName    xml.Name    `xml:"text"`
	Attrs      []xml.Attr  `xml:",any,attr"`
	Paragraphs []paragraph `xml:"paragraph"`
}

type paragraph struct {
	Type      string     `xml:"type,attr"`
	Sentences []sentence `xml:"sentence"`
}

type sentence struct {
	Body string `xml:",chardata"`
}

func (t *textElement) attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// decodeBlock turns one buffered root-post block into a thread. foreign is
// true when the thread should be discarded as non-Finnish.
func decodeBlock(block string) (th corpus.Thread, foreign bool, err error) {
	var el textElement
	if err := xml.Unmarshal([]byte(block), &el); err != nil {
		return corpus.Thread{}, false, fmt.Errorf("%w: %v", internalerr.ErrMalformedThread, err)
	}

	required := [...]string{"thread_id", "date", "datetime"}
	values := make(map[string]string, len(required))
	for _, name := range required {
		v, ok := el.attr(name)
		if !ok {
			return corpus.Thread{}, false, fmt.Errorf("%w: missing attribute %s", internalerr.ErrMalformedThread, name)
		}
		values[name] = v
	}

	var title, text []string
	tags := make(map[string]int)
	for _, par := range el.Paragraphs {
		for _, sent := range par.Sentences {
			for _, line := range strings.Split(sent.Body, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				cols := strings.Split(strings.TrimRight(line, "\r"), "\t")
				if len(cols) <= tagColumn {
					return corpus.Thread{}, false, fmt.Errorf("%w: word record has %d columns", internalerr.ErrMalformedThread, len(cols))
				}
				switch par.Type {
				case "title":
					title = append(title, cols[wordColumn])
				case "body":
					text = append(text, cols[wordColumn])
				}
				tags[cols[tagColumn]]++
			}
		}
	}

	if tag, ok := uniqueMode(tags); ok && tag == ForeignTag {
		return corpus.Thread{}, true, nil
	}

	year, month := corpus.DateParts(values["date"])
	th = corpus.Thread{
		ThreadID: values["thread_id"],
		Year:     year,
		Month:    month,
		Datetime: values["datetime"],
		Title:    strings.Join(title, " "),
		Text:     strings.Join(text, " "),
	}
	th.TopicTop, _ = el.attr("topic_name_top")
	th.TopicLeaf, _ = el.attr("topic_name_leaf")

	if err := th.Validate(); err != nil {
		return corpus.Thread{}, false, fmt.Errorf("%w: %v", internalerr.ErrMalformedThread, err)
	}
	return th, false, nil
}

// uniqueMode returns the most frequent tag. ok is false when there are no
// tags or when two or more tags share the highest count; such threads are
// kept.
func uniqueMode(counts map[string]int) (mode string, ok bool) {
	best, tie := 0, false
	for tag, n := range counts {
		switch {
		case n > best:
			mode, best, tie = tag, n, false
		case n == best:
			tie = true
		}
	}
	return mode, best > 0 && !tie
}
