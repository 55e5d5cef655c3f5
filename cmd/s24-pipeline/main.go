package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24"
	"github.com/cognicore/suomi24/pkg/suomi24/category"
	"github.com/cognicore/suomi24/pkg/suomi24/config"
	"github.com/cognicore/suomi24/pkg/suomi24/features"
	"github.com/cognicore/suomi24/pkg/suomi24/normalize"
	"github.com/cognicore/suomi24/pkg/suomi24/sentiment"
	"github.com/cognicore/suomi24/pkg/suomi24/store/sqlite"
	"github.com/cognicore/suomi24/pkg/suomi24/table"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "Pipeline YAML config")
		scores     = flag.String("scores", "", "Sentiment score file (.csv or .jsonl)")
		questions  = flag.String("questions", "", "Question word list")
		negations  = flag.String("negations", "", "Negation word list")
		swears     = flag.String("swears", "", "Swear word list")
		adjectives = flag.String("adjectives", "", "Adjective sentiment CSV")
		stopwords  = flag.String("stopwords", "", "Stopword list (text or YAML)")
		builtin    = flag.String("builtin-stopwords", "", "Built-in stopword language, e.g. fi")
		labeled    = flag.String("out", "", "Labeled table output CSV")
		catOut     = flag.String("category-transitions", "", "Category transition matrix CSV")
		sentiOut   = flag.String("sentiment-transitions", "", "Sentiment transition matrix CSV")
		clusterOut = flag.String("cluster-transitions", "", "Cluster transition matrix CSV")
		kmeans     = flag.Bool("kmeans", false, "Add k-means cluster labels")
		dbPath     = flag.String("db", "", "SQLite database for run persistence")
		skipNormal = flag.Bool("skip-normalize", false, "Input tables are already normalized")
		verbose    = flag.Bool("v", false, "Debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] s24_<year>.csv...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.DefaultPipeline()
	if *cfgPath != "" {
		loaded, err := config.LoadPipeline(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}

	// flags override the config file
	override(&cfg.Scores, *scores)
	override(&cfg.Lexicon.Questions, *questions)
	override(&cfg.Lexicon.Negations, *negations)
	override(&cfg.Lexicon.Swears, *swears)
	override(&cfg.Lexicon.Adjectives, *adjectives)
	override(&cfg.Stopwords.Path, *stopwords)
	override(&cfg.Stopwords.Builtin, *builtin)
	override(&cfg.Output.Labeled, *labeled)
	override(&cfg.Output.CategoryTransitions, *catOut)
	override(&cfg.Output.SentimentTransitions, *sentiOut)
	override(&cfg.Output.ClusterTransitions, *clusterOut)
	override(&cfg.Store.SQLite, *dbPath)
	if *kmeans {
		cfg.Cluster.Enabled = true
	}
	cfg.Inputs = append(cfg.Inputs, flag.Args()...)

	if len(cfg.Inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	res, err := run(context.Background(), cfg, !*skipNormal, log)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}
	if res.RunID != "" {
		fmt.Println(res.RunID)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// run executes the pipeline described by cfg and writes the configured
// outputs.
func run(ctx context.Context, cfg config.Pipeline, normalizeInput bool, log logrus.FieldLogger) (*suomi24.Result, error) {
	loader := cfg.Loader()
	loader.Logger = log
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if st := comp.Lexicon.Stats(); st.DuplicateAdjectives > 0 {
		log.Warnf("Ignored %d duplicate adjective entries", st.DuplicateAdjectives)
	}

	opts := suomi24.Options{
		Scorer:    comp.Scorer,
		Extractor: features.NewExtractor(comp.Lexicon, comp.Tokenizer, features.WithLogger(log)),
		Logger:    log,
	}
	if normalizeInput {
		opts.Normalizer = normalize.New(comp.Stoplist, comp.Tokenizer, normalize.WithLogger(log))
	}
	if cfg.Cluster.Enabled {
		co := cfg.ClusterOptions()
		co.Logger = log
		opts.Cluster = &co
	}
	if cfg.Store.SQLite != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.Store.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		opts.Store = st
	}

	threads, err := table.Combine(cfg.Inputs)
	if err != nil {
		return nil, err
	}
	log.Infof("Combined %d threads from %d tables", len(threads), len(cfg.Inputs))

	res, err := suomi24.New(opts).Run(ctx, threads, cfg.Inputs)
	if err != nil {
		return nil, err
	}

	if err := writeOutputs(cfg.Output, res); err != nil {
		return nil, err
	}
	return res, nil
}

func writeOutputs(out config.OutputConfig, res *suomi24.Result) error {
	if out.Labeled != "" {
		if err := table.SaveLabeled(out.Labeled, res.Rows); err != nil {
			return fmt.Errorf("write labeled table: %w", err)
		}
	}
	if out.CategoryTransitions != "" {
		if err := table.SaveMatrix(out.CategoryTransitions, res.Categories, category.Category.String); err != nil {
			return fmt.Errorf("write category transitions: %w", err)
		}
	}
	if out.SentimentTransitions != "" {
		name := func(c sentiment.Class) string { return string(c) }
		if err := table.SaveMatrix(out.SentimentTransitions, res.Sentiment, name); err != nil {
			return fmt.Errorf("write sentiment transitions: %w", err)
		}
	}
	if out.ClusterTransitions != "" && res.Clusters != nil {
		if err := table.SaveMatrix(out.ClusterTransitions, res.Clusters, category.Cluster.String); err != nil {
			return fmt.Errorf("write cluster transitions: %w", err)
		}
	}
	return nil
}
