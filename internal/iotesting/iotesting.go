// Package iotesting provides shared fixtures for tests that work with
// files. This is an internal package for test infrastructure only.
package iotesting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gnsubsample/internal/iofasta"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsubsample/pkg/dataset"
)

// Place describes sequences of one division in a fixture.
type Place struct {
	Region   string
	Country  string
	Division string
	Count    int
}

// Places is the default fixture: 10 European sequences in two divisions
// and 8 sequences from other regions. All of them are dated March 2020.
var Places = []Place{
	{"Europe", "France", "Ile-de-France", 6},
	{"Europe", "Italy", "Lombardy", 4},
	{"Asia", "Japan", "Tokyo", 5},
	{"North America", "USA", "New York", 3},
}

// ID returns the identifier of the i-th (1-based) sequence of a country.
func ID(country string, i int) string {
	return fmt.Sprintf("hCoV-19/%s/%d/2020", country, i)
}

// GetTestConfig returns the default configuration with home and output
// directories inside temporary test directories, so tests never touch
// ~/.config/gnsubsample or ~/.cache/gnsubsample.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptRunOutputDir(filepath.Join(t.TempDir(), "out")),
	})
	return cfg
}

// WriteInput writes an alignment and a metadata table for places into a
// temporary directory and returns their paths. Every sequence differs from
// the others at one position.
func WriteInput(t *testing.T, places []Place) (string, string) {
	t.Helper()

	dir := t.TempDir()
	var recs []dataset.Record
	var meta strings.Builder
	meta.WriteString("strain\tregion\tcountry\tdivision\tlocation\tdate\n")

	var n int
	for _, p := range places {
		for i := range p.Count {
			id := ID(p.Country, i+1)
			seq := []byte("ACGTACGTACGTACGTACGT")
			seq[n%len(seq)] = 'N'
			recs = append(recs, dataset.Record{ID: id, Seq: seq})
			fmt.Fprintf(&meta, "%s\t%s\t%s\t%s\tsomewhere\t2020-03-%02d\n",
				id, p.Region, p.Country, p.Division, i+1)
			n++
		}
	}

	seqPath := WriteFasta(t, dir, "aligned.fasta", recs)
	metaPath := filepath.Join(dir, "metadata.tsv")
	if err := os.WriteFile(metaPath, []byte(meta.String()), 0644); err != nil {
		t.Fatalf("Failed to write metadata: %v", err)
	}
	return seqPath, metaPath
}

// WriteFasta writes records to a FASTA file in dir and returns its path.
func WriteFasta(
	t *testing.T,
	dir, name string,
	recs []dataset.Record,
) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, iofasta.Bytes(recs), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
