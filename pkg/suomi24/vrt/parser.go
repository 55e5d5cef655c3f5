// Package vrt recovers thread records from the Suomi24 VRT corpus.
//
// A VRT file is line oriented: structural tags on their own lines and one
// tab separated word record per line inside <sentence> elements. The parser
// scans line by line, buffers the lines of one root post (<text
// comment_id="0" ...> up to </text>), decodes that block as XML and
// releases the buffer before moving on, so memory stays bounded by the
// largest single thread.
package vrt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

const (
	threadOpen  = `<text comment_id="0"`
	threadClose = `</text>`

	// ForeignTag is the morphological tag the corpus uses for words of a
	// language other than Finnish.
	ForeignTag = "Foreign"
)

// Stats summarizes one parse.
type Stats struct {
	Lines     int64
	Retained  int // threads emitted
	Foreign   int // threads whose dominant word tag was ForeignTag
	Malformed int // blocks that could not be decoded
	Elapsed   time.Duration
}

// Parser streams thread records out of a VRT corpus.
type Parser struct {
	log logrus.FieldLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

// NewParser creates a parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EmitFunc receives each retained thread in file order. Returning an error
// stops the parse and Parse returns that error.
type EmitFunc func(corpus.Thread) error

// ParseFile opens path and parses it. When the file cannot be opened the
// failure is logged, nothing is emitted, and the returned error wraps
// internalerr.ErrUnreadable so the caller can decide whether the batch
// continues.
func (p *Parser) ParseFile(path string, emit EmitFunc) (Stats, error) {
	log := p.log.WithFields(logrus.Fields{"file": path, "year": YearFromFilename(path)})

	log.Info("Opening corpus file")
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("Could not open the corpus file: %v", err)
		return Stats{}, fmt.Errorf("%w: %s: %v", internalerr.ErrUnreadable, path, err)
	}
	defer f.Close()

	stats, err := p.Parse(f, emit)
	if err != nil {
		return stats, err
	}
	log.Infof("Extraction done, took %s", stats.Elapsed)
	log.Infof("Ignored %d foreign and %d malformed threads", stats.Foreign, stats.Malformed)
	return stats, nil
}

// Parse scans r and emits one corpus.Thread per retained root post.
func (p *Parser) Parse(r io.Reader, emit EmitFunc) (Stats, error) {
	start := time.Now()
	var stats Stats

	br := bufio.NewReaderSize(r, 1<<20)
	var block strings.Builder
	reading := false

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			stats.Elapsed = time.Since(start)
			return stats, fmt.Errorf("%w: %v", internalerr.ErrUnreadable, readErr)
		}
		if line != "" {
			stats.Lines++

			closing := strings.HasPrefix(line, threadClose)
			switch {
			case !closing && (reading || isThreadStart(line)):
				reading = true
				block.WriteString(line)
			case reading && closing:
				block.WriteString(line)
				if err := p.finishBlock(block.String(), &stats, emit); err != nil {
					stats.Elapsed = time.Since(start)
					return stats, err
				}
				reading = false
				block.Reset()
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	if reading {
		stats.Malformed++
		p.log.WithField("thread_id", threadIDHint(block.String())).
			Warn("Corpus ended inside a thread, skipping it")
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

func (p *Parser) finishBlock(block string, stats *Stats, emit EmitFunc) error {
	th, foreign, err := decodeBlock(block)
	switch {
	case err != nil:
		stats.Malformed++
		p.log.WithField("thread_id", threadIDHint(block)).Warnf("Skipping thread: %v", err)
		return nil
	case foreign:
		stats.Foreign++
		return nil
	}

	stats.Retained++
	return emit(th)
}

func isThreadStart(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t\r\n\v\f"), threadOpen)
}

// threadIDHint pulls thread_id out of the opening tag without a full parse,
// for log lines about blocks that do not decode.
func threadIDHint(block string) string {
	const key = `thread_id="`
	i := strings.Index(block, key)
	if i < 0 {
		return ""
	}
	rest := block[i+len(key):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// YearFromFilename extracts the year from an s24_<year>.vrt file name.
func YearFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.ReplaceAll(name, "s24_", "")
	return strings.ReplaceAll(name, ".vrt", "")
}

// ParseAll collects every retained thread of r into a slice.
func (p *Parser) ParseAll(r io.Reader) ([]corpus.Thread, Stats, error) {
	var threads []corpus.Thread
	stats, err := p.Parse(r, func(t corpus.Thread) error {
		threads = append(threads, t)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return threads, stats, nil
}
