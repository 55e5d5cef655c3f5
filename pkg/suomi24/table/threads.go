package table

import (
	"fmt"
	"io"
	"os"

	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
)

// Thread table columns.
const (
	ColThreadID  = "thread_id"
	ColYear      = "year"
	ColMonth     = "month"
	ColDatetime  = "datetime"
	ColTitle     = "title"
	ColText      = "text"
	ColTopicTop  = "topic_name_top"
	ColTopicLeaf = "topic_name_leaf"
)

// ThreadColumns is the header of an extracted thread table.
var ThreadColumns = []string{ColThreadID, ColYear, ColMonth, ColDatetime, ColTitle, ColText}

var topicColumns = []string{ColTopicTop, ColTopicLeaf}

func threadRecord(t corpus.Thread, topics bool) []string {
	rec := []string{t.ThreadID, t.Year, t.Month, t.Datetime, t.Title, t.Text}
	if topics {
		rec = append(rec, t.TopicTop, t.TopicLeaf)
	}
	return rec
}

func hasTopics(threads []corpus.Thread) bool {
	for _, t := range threads {
		if t.TopicTop != "" || t.TopicLeaf != "" {
			return true
		}
	}
	return false
}

func threadHeader(topics bool) []string {
	h := append([]string(nil), ThreadColumns...)
	if topics {
		h = append(h, topicColumns...)
	}
	return h
}

// WriteThreads writes threads as CSV. The topic columns are added only when
// some thread carries topic attributes.
func WriteThreads(w io.Writer, threads []corpus.Thread) error {
	topics := hasTopics(threads)
	rows := make([][]string, len(threads))
	for i, t := range threads {
		rows[i] = threadRecord(t, topics)
	}
	return writeRecords(w, threadHeader(topics), rows)
}

// SaveThreads writes threads to path, creating its directory.
func SaveThreads(path string, threads []corpus.Thread) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteThreads(w, threads)
	})
}

// ReadThreads reads a thread table. Topic columns are optional.
func ReadThreads(r io.Reader) ([]corpus.Thread, error) {
	f, err := readFrame(r)
	if err != nil {
		return nil, fmt.Errorf("read thread table: %w", err)
	}
	if err := f.require(ThreadColumns...); err != nil {
		return nil, err
	}
	out := make([]corpus.Thread, f.nrow())
	for i := range out {
		out[i] = readThread(f, i)
	}
	return out, nil
}

func readThread(f *frame, row int) corpus.Thread {
	return corpus.Thread{
		ThreadID:  f.str(row, ColThreadID),
		Year:      f.str(row, ColYear),
		Month:     f.str(row, ColMonth),
		Datetime:  f.str(row, ColDatetime),
		Title:     f.str(row, ColTitle),
		Text:      f.str(row, ColText),
		TopicTop:  f.str(row, ColTopicTop),
		TopicLeaf: f.str(row, ColTopicLeaf),
	}
}

// LoadThreads reads the thread table at path.
func LoadThreads(path string) ([]corpus.Thread, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	threads, err := ReadThreads(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return threads, nil
}

// Combine loads several thread tables and concatenates them in the given
// order.
func Combine(paths []string) ([]corpus.Thread, error) {
	var all []corpus.Thread
	for _, p := range paths {
		threads, err := LoadThreads(p)
		if err != nil {
			return nil, err
		}
		all = append(all, threads...)
	}
	return all, nil
}
