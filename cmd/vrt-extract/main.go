package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/corpus"
	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/table"
	"github.com/cognicore/suomi24/pkg/suomi24/vrt"
)

func main() {
	var (
		dbDir   = flag.String("db", "database", "Directory where the s24_<year>.csv tables are written")
		verbose = flag.Bool("v", false, "Debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] s24_<year>.vrt...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		out, err := extract(path, *dbDir, log)
		if err != nil {
			failed++
			if errors.Is(err, internalerr.ErrUnreadable) {
				continue // already logged by the parser
			}
			log.WithField("file", path).Errorf("extract: %v", err)
			continue
		}
		log.WithField("file", path).Infof("Wrote %s", out)
	}
	if failed > 0 {
		log.Fatalf("%d of %d files failed", failed, flag.NArg())
	}
}

// extract parses one .vrt file and writes its threads to
// <dbDir>/s24_<year>.csv, returning the written path.
func extract(path, dbDir string, log logrus.FieldLogger) (string, error) {
	if !strings.HasSuffix(path, ".vrt") {
		return "", fmt.Errorf("%w: %s is not a .vrt file", internalerr.ErrInvalidInput, path)
	}

	var threads []corpus.Thread
	parser := vrt.NewParser(vrt.WithLogger(log))
	if _, err := parser.ParseFile(path, func(t corpus.Thread) error {
		threads = append(threads, t)
		return nil
	}); err != nil {
		return "", err
	}

	out := filepath.Join(dbDir, "s24_"+vrt.YearFromFilename(path)+".csv")
	if err := table.SaveThreads(out, threads); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}
