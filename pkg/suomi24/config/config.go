package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/suomi24/pkg/suomi24/cluster"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/lexicon"
)

// Pipeline is the YAML pipeline configuration. Relative paths are resolved
// against the directory of the config file.
type Pipeline struct {
	Inputs    []string       `yaml:"inputs"`
	Lexicon   LexiconFiles   `yaml:"lexicon"`
	Stopwords StopwordConfig `yaml:"stopwords"`
	Scores    string         `yaml:"scores"`
	Output    OutputConfig   `yaml:"output"`
	Cluster   ClusterConfig  `yaml:"cluster"`
	Store     StoreConfig    `yaml:"store"`
}

// LexiconFiles names the word list files.
type LexiconFiles struct {
	Questions  string `yaml:"questions"`
	Negations  string `yaml:"negations"`
	Swears     string `yaml:"swears"`
	Adjectives string `yaml:"adjectives"`
}

// StopwordConfig selects the stopword source. Path and Builtin may be
// combined.
type StopwordConfig struct {
	Path    string `yaml:"path"`
	Builtin string `yaml:"builtin"` // language code, e.g. "fi"
}

// OutputConfig names the output tables. Empty entries are not written.
type OutputConfig struct {
	Labeled              string `yaml:"labeled"`
	CategoryTransitions  string `yaml:"category_transitions"`
	SentimentTransitions string `yaml:"sentiment_transitions"`
	ClusterTransitions   string `yaml:"cluster_transitions"`
}

// ClusterConfig enables k-means labels.
type ClusterConfig struct {
	Enabled       bool  `yaml:"enabled"`
	MaxIterations int   `yaml:"max_iterations"`
	TrainPerYear  int   `yaml:"train_per_year"`
	Seed          int64 `yaml:"seed"`
}

// StoreConfig enables run persistence.
type StoreConfig struct {
	SQLite string `yaml:"sqlite"`
}

// DefaultPipeline returns the defaults applied before a file is read.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Stopwords: StopwordConfig{Builtin: "fi"},
		Cluster: ClusterConfig{
			MaxIterations: cluster.DefaultMaxIterations,
			TrainPerYear:  cluster.DefaultTrainPerYear,
			Seed:          cluster.DefaultSeed,
		},
	}
}

// LoadPipeline loads a pipeline configuration from a YAML file
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := DefaultPipeline()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	p.resolve(filepath.Dir(path))

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks value ranges.
func (p *Pipeline) Validate() error {
	if p.Cluster.MaxIterations < 0 {
		return fmt.Errorf("%w: cluster.max_iterations must not be negative", internalerr.ErrInvalidConfig)
	}
	if p.Cluster.TrainPerYear < 0 {
		return fmt.Errorf("%w: cluster.train_per_year must not be negative", internalerr.ErrInvalidConfig)
	}
	return nil
}

func (p *Pipeline) resolve(dir string) {
	for i := range p.Inputs {
		p.Inputs[i] = resolvePath(dir, p.Inputs[i])
	}
	for _, ptr := range []*string{
		&p.Lexicon.Questions, &p.Lexicon.Negations, &p.Lexicon.Swears, &p.Lexicon.Adjectives,
		&p.Stopwords.Path, &p.Scores,
		&p.Output.Labeled, &p.Output.CategoryTransitions, &p.Output.SentimentTransitions, &p.Output.ClusterTransitions,
		&p.Store.SQLite,
	} {
		*ptr = resolvePath(dir, *ptr)
	}
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// Loader returns a Loader for the component files named in p.
func (p *Pipeline) Loader() Loader {
	return Loader{
		StoplistPath:     p.Stopwords.Path,
		BuiltinStopwords: p.Stopwords.Builtin,
		Lexicon: lexicon.Paths{
			Questions:  p.Lexicon.Questions,
			Negations:  p.Lexicon.Negations,
			Swears:     p.Lexicon.Swears,
			Adjectives: p.Lexicon.Adjectives,
		},
		ScoresPath: p.Scores,
	}
}

// ClusterOptions converts the cluster section.
func (p *Pipeline) ClusterOptions() cluster.Options {
	return cluster.Options{
		MaxIterations: p.Cluster.MaxIterations,
		TrainPerYear:  p.Cluster.TrainPerYear,
		Seed:          p.Cluster.Seed,
	}
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file with a terms list, or from
// a plain text file with one word per line.
func LoadStoplist(path string) (*Stoplist, error) {
	terms, err := lexicon.LoadWords(path)
	if err != nil {
		return nil, err
	}
	return &Stoplist{Terms: terms}, nil
}
