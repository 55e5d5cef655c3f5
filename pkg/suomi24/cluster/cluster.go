// Package cluster assigns k-means cluster labels to processed threads.
//
// Features are standardized column by column, k-means is trained on a
// per-year sample and every row is then assigned to its nearest centroid.
// The k-means labels are a second categorization beside the rule based one.
package cluster

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/cdipaolo/goml/cluster"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/suomi24/pkg/suomi24/category"
	"github.com/cognicore/suomi24/pkg/suomi24/features"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
)

// Defaults.
const (
	DefaultMaxIterations = 300
	DefaultTrainPerYear  = 50000
	DefaultSeed          = 10
)

// FeatureNames are the clustering inputs in column order.
var FeatureNames = []string{
	"senti_avg",
	"n_of_words_title",
	"n_of_words_text",
	"n_of_question_marks",
	"n_of_exclamation_marks",
	"n_of_question_words",
	"n_of_swear_words",
	"n_of_negatives",
	"n_of_neg_adjectives",
	"n_of_pos_adjectives",
}

// Sample is one thread to cluster.
type Sample struct {
	Year     string
	Scores   sentiment.Scores
	Features features.Vector
}

func (s Sample) vector() []float64 {
	v := s.Features
	return []float64{
		s.Scores.Avg(),
		float64(v.WordsTitle),
		float64(v.WordsText),
		float64(v.QuestionMarks),
		float64(v.ExclamationMarks),
		float64(v.QuestionWords),
		float64(v.SwearWords),
		float64(v.Negatives),
		float64(v.NegAdjectives),
		float64(v.PosAdjectives),
	}
}

// Options configures a clustering run.
type Options struct {
	MaxIterations int
	// TrainPerYear caps the number of rows sampled from each year for
	// training. Zero or a cap above the year's size trains on all rows.
	TrainPerYear int
	Seed         int64
	Logger       logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Assign clusters samples into category.NumClusters groups and returns one
// label per sample, in input order.
//
// Cluster indexes from k-means are arbitrary, so clusters are renumbered
// by ascending centroid text length before being mapped to labels. The same
// partition therefore always gets the same labels.
func Assign(samples []Sample, opts Options) ([]category.Cluster, error) {
	opts = opts.withDefaults()
	k := category.NumClusters
	if len(samples) < k {
		return nil, fmt.Errorf("%w: need at least %d rows to cluster, got %d", internalerr.ErrInvalidInput, k, len(samples))
	}
	log := opts.Logger.WithField("stage", "kmeans")

	X := make([][]float64, len(samples))
	for i, s := range samples {
		X[i] = s.vector()
	}
	Standardize(X)

	train := trainingRows(samples, opts.TrainPerYear, opts.Seed)
	trainX := make([][]float64, len(train))
	for i, idx := range train {
		trainX[i] = X[idx]
	}
	if len(trainX) < k {
		return nil, fmt.Errorf("%w: training sample has %d rows, need %d", internalerr.ErrInvalidInput, len(trainX), k)
	}

	log.Infof("Training k-means with %d of %d rows", len(trainX), len(X))
	model := cluster.NewKMeans(k, opts.MaxIterations, trainX)
	model.Output = io.Discard
	if err := model.Learn(); err != nil {
		return nil, fmt.Errorf("learn k-means: %w", err)
	}

	raw := make([]int, len(X))
	for i, x := range X {
		p, err := model.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("predict row %d: %w", i, err)
		}
		raw[i] = int(p[0])
	}

	order := canonicalOrder(raw, samples, k)
	out := make([]category.Cluster, len(raw))
	for i, c := range raw {
		out[i] = category.Cluster(order[c])
	}
	log.Info("K-means done")
	return out, nil
}

// Standardize rescales each column of X in place to zero mean and unit
// population standard deviation. Constant columns are only centered.
func Standardize(X [][]float64) {
	if len(X) == 0 {
		return
	}
	col := make([]float64, len(X))
	for j := range X[0] {
		for i := range X {
			col[i] = X[i][j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := range X {
			X[i][j] = stat.StdScore(X[i][j], mean, std)
		}
	}
}

// trainingRows samples up to perYear row indexes from each year with a
// fixed seed. Rows keep their input order.
func trainingRows(samples []Sample, perYear int, seed int64) []int {
	if perYear <= 0 {
		all := make([]int, len(samples))
		for i := range all {
			all[i] = i
		}
		return all
	}

	byYear := make(map[string][]int)
	var years []string
	for i, s := range samples {
		if _, ok := byYear[s.Year]; !ok {
			years = append(years, s.Year)
		}
		byYear[s.Year] = append(byYear[s.Year], i)
	}
	sort.Strings(years)

	rng := rand.New(rand.NewSource(seed))
	var picked []int
	for _, y := range years {
		idx := byYear[y]
		if len(idx) <= perYear {
			picked = append(picked, idx...)
			continue
		}
		perm := rng.Perm(len(idx))[:perYear]
		for _, p := range perm {
			picked = append(picked, idx[p])
		}
	}
	sort.Ints(picked)
	return picked
}

// canonicalOrder maps raw cluster indexes to positions sorted by the mean
// text word count of their members, ties broken by raw index.
func canonicalOrder(raw []int, samples []Sample, k int) []int {
	sum := make([]float64, k)
	n := make([]int, k)
	for i, c := range raw {
		sum[c] += float64(samples[i].Features.WordsText)
		n[c]++
	}
	ids := make([]int, k)
	mean := make([]float64, k)
	for c := range ids {
		ids[c] = c
		if n[c] > 0 {
			mean[c] = sum[c] / float64(n[c])
		}
	}
	sort.SliceStable(ids, func(a, b int) bool {
		return mean[ids[a]] < mean[ids[b]]
	})
	order := make([]int, k)
	for pos, c := range ids {
		order[c] = pos
	}
	return order
}
