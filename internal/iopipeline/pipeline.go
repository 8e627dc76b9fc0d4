// Package iopipeline implements the Subsampler interface. It reads the
// alignment, metadata and inclusion list, runs the subsampling plan and
// writes all outputs of a run.
//
// This is an impure I/O package. Outputs are written only after every stage
// of the plan succeeded.
package iopipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsubsample/internal/iocache"
	"github.com/gnames/gnsubsample/internal/iofasta"
	"github.com/gnames/gnsubsample/internal/iometa"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/gnames/gnsubsample/pkg/priority"
	"github.com/gnames/gnsubsample/pkg/subsample"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultTrigger labels runs started without the trigger environment
// variable.
const DefaultTrigger = "local"

type pipeline struct {
	progress bool
}

// Option modifies the pipeline.
type Option func(*pipeline)

// OptProgress turns the progress bar of priority scoring on or off.
func OptProgress(b bool) Option {
	return func(p *pipeline) {
		p.progress = b
	}
}

// New creates a Subsampler that works with files.
func New(opts ...Option) subsample.Subsampler {
	res := &pipeline{progress: true}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run executes a subsampling run described by cfg.
func (p *pipeline) Run(
	ctx context.Context,
	cfg *config.Config,
) (*subsample.Result, error) {
	start := time.Now()
	rep := runReport{
		RunID:   uuid.New().String(),
		Trigger: Trigger(),
		Started: start.Format(time.RFC3339),
		Inputs: inputs{
			Sequences: cfg.Run.Sequences,
			Metadata:  cfg.Run.Metadata,
			Include:   cfg.Run.Include,
		},
	}
	slog.Info("Starting subsampling run",
		"run_id", rep.RunID,
		"trigger", rep.Trigger,
		"region", cfg.Run.Region,
	)

	params, err := subsample.NewParams(cfg, nil)
	if err != nil {
		return nil, err
	}
	if cfg.Run.Sequences == "" || cfg.Run.Metadata == "" {
		return nil, MissingInputError(cfg.Run.Sequences, cfg.Run.Metadata)
	}

	in, include, err := load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	params.SetInclude(include)
	rep.Durations.Load = gnfmt.TimeString(time.Since(start).Seconds())

	scorer, closeFn := NewScorer(cfg, p.progress)
	defer closeFn()

	planStart := time.Now()
	res, err := subsample.Plan(ctx, in, params, scorer)
	if err != nil {
		if errcode.ErrorClass(err) == errcode.UnknownClass &&
			(errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)) {
			return nil, CancelledError(err)
		}
		return nil, err
	}
	rep.Durations.Plan = gnfmt.TimeString(time.Since(planStart).Seconds())
	rep.Report = res.Report
	rep.Scores = scoreSummary(res.Scores)

	writeStart := time.Now()
	batch, outputs, err := stageOutputs(cfg.Run.OutputDir, in, res)
	if err != nil {
		return nil, err
	}
	rep.Outputs = outputs
	rep.Durations.Write = gnfmt.TimeString(time.Since(writeStart).Seconds())
	rep.Durations.Total = gnfmt.TimeString(time.Since(start).Seconds())

	path, err := stageReport(batch, cfg.Run.OutputDir, res.Label, rep)
	if err != nil {
		return nil, err
	}
	if err = batch.Commit(); err != nil {
		return nil, err
	}
	for _, v := range append(outputs, path) {
		slog.Info("Output written", "path", v)
	}

	slog.Info("Subsampling run complete",
		"run_id", rep.RunID,
		"focal", res.Focal.Len(),
		"context", res.Context.Len(),
		"merged", res.Merged.Len(),
		"duration", rep.Durations.Total,
	)
	gn.Info(`Subsampling complete for <em>%s</em>
Focal: %s, context: %s, merged: %s sequences.
Report: <em>%s</em>
Elapsed time: <em>%s</em>`,
		res.Label,
		humanize.Comma(int64(res.Focal.Len())),
		humanize.Comma(int64(res.Context.Len())),
		humanize.Comma(int64(res.Merged.Len())),
		path,
		rep.Durations.Total,
	)
	return res, nil
}

// Trigger returns the label of whoever started the run.
func Trigger() string {
	if v := os.Getenv(config.TriggerEnv); v != "" {
		return v
	}
	return DefaultTrigger
}

// load reads sequences, metadata and the inclusion list concurrently.
func load(
	ctx context.Context,
	cfg *config.Config,
) (subsample.Input, []string, error) {
	var in subsample.Input
	var include []string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Records, err = iofasta.ReadFile(cfg.Run.Sequences)
		return err
	})
	g.Go(func() error {
		var err error
		in.Metadata, err = iometa.ReadFile(
			cfg.Run.Metadata, cfg.Subsample.IDColumn,
		)
		return err
	})
	if cfg.Run.Include != "" {
		g.Go(func() error {
			var err error
			include, err = iometa.ReadIncludeFile(cfg.Run.Include)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return in, nil, err
	}
	if err := ctx.Err(); err != nil {
		return in, nil, CancelledError(err)
	}

	gn.Info("Loaded %s sequences and %s metadata rows",
		humanize.Comma(int64(len(in.Records))),
		humanize.Comma(int64(in.Metadata.Len())),
	)
	return in, include, nil
}

// NewScorer builds the priority scorer described by cfg. Unless the
// cache is disabled, scores are kept in the priority cache. The returned
// function releases the cache.
func NewScorer(cfg *config.Config, progress bool) (priority.Scorer, func()) {
	ps := &progressScorer{enabled: progress}
	ps.Scorer = priority.New(
		priority.OptMethod(priority.Method(cfg.Priority.Method)),
		priority.OptJobsNumber(cfg.JobsNumber),
		priority.OptChunkSize(cfg.Priority.ChunkSize),
		priority.OptMaxComparisons(cfg.Priority.MaxComparisons),
		priority.OptProgress(ps.add),
	)
	if cfg.Run.NoCache || cfg.HomeDir == "" {
		return ps, func() {}
	}

	cache, err := iocache.New(config.PriorityCacheDir(cfg.HomeDir))
	if err == nil {
		err = cache.Open()
	}
	if err != nil {
		slog.Warn("Running without priority cache", "error", err)
		return ps, func() {}
	}
	return iocache.NewScorer(cache, cfg.Priority.Method, ps),
		func() { cache.Close() }
}

// ResetCache removes all cached priorities.
func ResetCache(cfg *config.Config) error {
	cache, err := iocache.New(config.PriorityCacheDir(cfg.HomeDir))
	if err != nil {
		return err
	}
	return cache.Reset()
}
