package table

import (
	"fmt"
	"io"
	"os"

	"github.com/cognicore/suomi24/pkg/suomi24/category"
	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/features"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
)

// Labeled table columns beyond the thread columns.
const (
	ColTitlePos = "title_s_pos"
	ColTitleNeg = "title_s_neg"
	ColTitleSum = "title_s_sum"
	ColTextPos  = "text_s_pos"
	ColTextNeg  = "text_s_neg"
	ColTextSum  = "text_s_sum"
	ColSentiAvg = "senti_avg"
	ColCategory = "simple_heuristic_cat"
	ColCluster  = "kmeans_cat"
)

var scoreColumns = []string{ColTitlePos, ColTitleNeg, ColTitleSum, ColTextPos, ColTextNeg, ColTextSum, ColSentiAvg}

// Row is one fully processed thread.
type Row struct {
	Thread   corpus.Thread
	Scores   sentiment.Scores
	Features features.Vector
	Category category.Category
	Cluster  *category.Cluster // nil when clustering was not run
}

// LabeledHeader returns the labeled table header.
func LabeledHeader(topics, clusters bool) []string {
	h := threadHeader(topics)
	h = append(h, scoreColumns...)
	h = append(h, features.Names...)
	h = append(h, ColCategory)
	if clusters {
		h = append(h, ColCluster)
	}
	return h
}

// WriteLabeled writes processed rows. The cluster column is written when
// any row has a cluster.
func WriteLabeled(w io.Writer, rows []Row) error {
	threads := make([]corpus.Thread, len(rows))
	clusters := false
	for i, r := range rows {
		threads[i] = r.Thread
		if r.Cluster != nil {
			clusters = true
		}
	}
	topics := hasTopics(threads)

	records := make([][]string, len(rows))
	for i, r := range rows {
		rec := threadRecord(r.Thread, topics)
		s := r.Scores
		rec = append(rec,
			formatFloat(s.TitlePos), formatFloat(s.TitleNeg), formatFloat(s.TitleSum()),
			formatFloat(s.TextPos), formatFloat(s.TextNeg), formatFloat(s.TextSum()),
			formatFloat(s.Avg()),
		)
		for _, v := range r.Features.Values() {
			rec = append(rec, formatFloat(v))
		}
		rec = append(rec, r.Category.String())
		if clusters {
			label := ""
			if r.Cluster != nil {
				label = r.Cluster.String()
			}
			rec = append(rec, label)
		}
		records[i] = rec
	}
	return writeRecords(w, LabeledHeader(topics, clusters), records)
}

// SaveLabeled writes rows to path.
func SaveLabeled(path string, rows []Row) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteLabeled(w, rows)
	})
}

// ReadLabeled reads a labeled table written by WriteLabeled.
func ReadLabeled(r io.Reader) ([]Row, error) {
	f, err := readFrame(r)
	if err != nil {
		return nil, fmt.Errorf("read labeled table: %w", err)
	}
	required := append([]string(nil), ThreadColumns...)
	required = append(required, ColTitlePos, ColTitleNeg, ColTextPos, ColTextNeg)
	required = append(required, features.Names...)
	required = append(required, ColCategory)
	if err := f.require(required...); err != nil {
		return nil, err
	}

	rows := make([]Row, f.nrow())
	for i := range rows {
		row, err := readLabeledRow(f, i)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

func readLabeledRow(f *frame, i int) (Row, error) {
	row := Row{Thread: readThread(f, i)}

	var err error
	floats := []struct {
		col string
		dst *float64
	}{
		{ColTitlePos, &row.Scores.TitlePos},
		{ColTitleNeg, &row.Scores.TitleNeg},
		{ColTextPos, &row.Scores.TextPos},
		{ColTextNeg, &row.Scores.TextNeg},
		{"neg_adj_avg_sentiment", &row.Features.NegAdjAvgSentiment},
		{"pos_adj_avg_sentiment", &row.Features.PosAdjAvgSentiment},
	}
	for _, fl := range floats {
		if *fl.dst, err = f.float(i, fl.col); err != nil {
			return Row{}, err
		}
	}

	v := &row.Features
	ints := []struct {
		col string
		dst *int
	}{
		{"title_length", &v.TitleLength},
		{"text_length", &v.TextLength},
		{"n_of_words_title", &v.WordsTitle},
		{"n_of_words_text", &v.WordsText},
		{"n_of_question_marks", &v.QuestionMarks},
		{"n_of_exclamation_marks", &v.ExclamationMarks},
		{"n_of_question_words", &v.QuestionWords},
		{"n_of_swear_words", &v.SwearWords},
		{"n_of_negatives", &v.Negatives},
		{"n_of_neg_adjectives", &v.NegAdjectives},
		{"n_of_pos_adjectives", &v.PosAdjectives},
	}
	for _, in := range ints {
		if *in.dst, err = f.int(i, in.col); err != nil {
			return Row{}, err
		}
	}

	if row.Category, err = category.ParseCategory(f.str(i, ColCategory)); err != nil {
		return Row{}, fmt.Errorf("row %d: %w", i+1, err)
	}
	if label := f.str(i, ColCluster); label != "" {
		c, err := category.ParseCluster(label)
		if err != nil {
			return Row{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		row.Cluster = &c
	}
	return row, nil
}

// LoadLabeled reads the labeled table at path.
func LoadLabeled(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	rows, err := ReadLabeled(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Categories returns the category column in row order.
func Categories(rows []Row) []category.Category {
	out := make([]category.Category, len(rows))
	for i, r := range rows {
		out[i] = r.Category
	}
	return out
}

// SentimentAverages returns senti_avg in row order.
func SentimentAverages(rows []Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Scores.Avg()
	}
	return out
}

// ClusterLabels returns the cluster column in row order, skipping rows
// without a cluster.
func ClusterLabels(rows []Row) []category.Cluster {
	var out []category.Cluster
	for _, r := range rows {
		if r.Cluster != nil {
			out = append(out, *r.Cluster)
		}
	}
	return out
}
