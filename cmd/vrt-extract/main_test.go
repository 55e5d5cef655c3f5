package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
	"github.com/cognicore/suomi24/pkg/suomi24/table"
)

func word(i int, form, tag string) string {
	return fmt.Sprintf("%d\t_\t%s\t%s\t%s\t_\n", i, form, strings.ToLower(form), tag)
}

var sampleVRT = `<text comment_id="0" thread_id="101" date="2009-03-14" datetime="2009-03-14 10:00:00">
<paragraph type="title">
<sentence>
` + word(1, "Miksi", "Adv") + word(2, "?", "Punct") + `</sentence>
</paragraph>
<paragraph type="body">
<sentence>
` + word(3, "Kukaan", "Pron") + word(4, "ei", "V") + word(5, "tiedä", "V") + `</sentence>
</paragraph>
</text>
<text comment_id="5" thread_id="101" date="2009-03-14" datetime="2009-03-14 11:00:00">
<paragraph type="body">
<sentence>
` + word(1, "vastaus", "N") + `</sentence>
</paragraph>
</text>
`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestExtractWritesYearTable(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "s24_2009.vrt")
	if err := os.WriteFile(in, []byte(sampleVRT), 0644); err != nil {
		t.Fatal(err)
	}

	dbDir := filepath.Join(tmpDir, "database")
	out, err := extract(in, dbDir, quietLogger())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != filepath.Join(dbDir, "s24_2009.csv") {
		t.Errorf("unexpected output path %s", out)
	}

	threads, err := table.LoadThreads(out)
	if err != nil {
		t.Fatalf("LoadThreads: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 root thread, got %d", len(threads))
	}
	th := threads[0]
	if th.ThreadID != "101" || th.Year != "2009" || th.Month != "03" {
		t.Errorf("unexpected thread %+v", th)
	}
	if th.Title != "Miksi ?" || th.Text != "Kukaan ei tiedä" {
		t.Errorf("unexpected title/text %q / %q", th.Title, th.Text)
	}
}

func TestExtractRejectsNonVRT(t *testing.T) {
	_, err := extract("data.txt", t.TempDir(), quietLogger())
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := extract(filepath.Join(t.TempDir(), "s24_2001.vrt"), t.TempDir(), quietLogger())
	if !errors.Is(err, internalerr.ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}
