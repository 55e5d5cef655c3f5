package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/suomi24/internal/tabular"
)

// Paths names the files a Store is loaded from. Empty paths load empty lists.
type Paths struct {
	Questions  string
	Negations  string
	Swears     string
	Adjectives string
}

// LoadFiles reads every configured list and builds the Store.
func LoadFiles(p Paths) (*Store, error) {
	var src Sources
	var err error

	if src.Questions, err = loadOptionalWords(p.Questions); err != nil {
		return nil, fmt.Errorf("load question words: %w", err)
	}
	if src.Negations, err = loadOptionalWords(p.Negations); err != nil {
		return nil, fmt.Errorf("load negation words: %w", err)
	}
	if src.Swears, err = loadOptionalWords(p.Swears); err != nil {
		return nil, fmt.Errorf("load swear words: %w", err)
	}
	if p.Adjectives != "" {
		if src.Adjectives, err = LoadAdjectives(p.Adjectives); err != nil {
			return nil, fmt.Errorf("load adjectives: %w", err)
		}
	}

	return New(src), nil
}

func loadOptionalWords(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	return LoadWords(path)
}

// LoadWords loads a word list. Files ending in .yaml or .yml use the format
//
//	terms: [miksi, kuka, mitä]
//
// anything else is read as one word per line.
func LoadWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var list struct {
			Terms []string `yaml:"terms"`
		}
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list.Terms, nil
	default:
		return ReadWords(bytes.NewReader(data))
	}
}

// ReadWords reads one word per line, skipping blank lines.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	return words, scanner.Err()
}

// LoadAdjectives loads the adjective sentiment table. Files ending in .tsv
// are tab separated, everything else comma separated.
func LoadAdjectives(path string) ([]Adjective, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	delim := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}
	return ReadAdjectives(f, delim)
}

// ReadAdjectives reads a table with a header containing the columns `word`
// and `sentiment`. Rows whose sentiment does not parse are skipped.
func ReadAdjectives(r io.Reader, delim rune) ([]Adjective, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if tabular.HeaderOnly(data) {
		return nil, nil // header only
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter(delim),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, df.Err
	}

	wordIdx, scoreIdx := -1, -1
	for i, name := range df.Names() {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "word":
			wordIdx = i
		case "sentiment":
			scoreIdx = i
		}
	}
	if wordIdx < 0 || scoreIdx < 0 {
		return nil, fmt.Errorf("adjective table needs word and sentiment columns, got %v", df.Names())
	}

	adjs := make([]Adjective, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		score, err := strconv.ParseFloat(strings.TrimSpace(df.Elem(i, scoreIdx).String()), 64)
		if err != nil {
			continue
		}
		adjs = append(adjs, Adjective{
			Word:      df.Elem(i, wordIdx).String(),
			Sentiment: score,
		})
	}
	return adjs, nil
}
