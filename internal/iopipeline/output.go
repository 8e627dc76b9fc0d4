package iopipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsubsample/internal/iofasta"
	"github.com/gnames/gnsubsample/internal/iofs"
	"github.com/gnames/gnsubsample/internal/iometa"
	"github.com/gnames/gnsubsample/internal/iopriority"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/subsample"
)

// Output file names of a run, formatted with the run label.
const (
	FocalFile    = "subsample_focus_%s.fasta"
	ContextFile  = "subsample_context_%s.fasta"
	MergedFile   = "subsampled_alignment_%s.fasta"
	PriorityFile = "priorities_%s.tsv"
	MetadataFile = "metadata_adjusted_%s.tsv"
	ReportFile   = "report_%s.json"
)

// OutputPath returns the path of an output file for a label.
func OutputPath(dir, pattern, label string) string {
	return filepath.Join(dir, fmt.Sprintf(pattern, label))
}

// stageOutputs stages sequence, priority and metadata files of a run and
// returns their paths. Nothing is visible until the batch is committed.
func stageOutputs(
	dir string,
	in subsample.Input,
	res *subsample.Result,
) (*iofs.Batch, []string, error) {
	if err := iofs.EnsureOutputDir(dir); err != nil {
		return nil, nil, err
	}

	files := []struct {
		pattern string
		data    []byte
	}{
		{FocalFile, iofasta.Bytes(res.FocalRecords)},
		{ContextFile, iofasta.Bytes(res.ContextRecords)},
		{MergedFile, iofasta.Bytes(res.MergedRecords)},
		{PriorityFile, iopriority.Bytes(dataset.IDs(in.Records), res.Scores)},
		{MetadataFile, iometa.Bytes(res.Metadata)},
	}

	batch := &iofs.Batch{}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := OutputPath(dir, f.pattern, res.Label)
		if err := batch.Add(path, f.data); err != nil {
			return nil, nil, err
		}
		slog.Debug("Output staged", "path", path, "bytes", len(f.data))
		paths = append(paths, path)
	}
	return batch, paths, nil
}

// stageReport adds the run report to the batch. The batch is discarded on
// error.
func stageReport(
	batch *iofs.Batch,
	dir, label string,
	rep runReport,
) (string, error) {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(rep)
	if err != nil {
		batch.Discard()
		return "", ReportError(err)
	}
	path := OutputPath(dir, ReportFile, label)
	if err = batch.Add(path, data); err != nil {
		return "", err
	}
	return path, nil
}
