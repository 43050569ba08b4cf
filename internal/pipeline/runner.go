package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/backmassage/sceneprep/internal/colmap"
	"github.com/backmassage/sceneprep/internal/command"
	"github.com/backmassage/sceneprep/internal/config"
	"github.com/backmassage/sceneprep/internal/display"
	"github.com/backmassage/sceneprep/internal/logging"
	"github.com/backmassage/sceneprep/internal/scene"
)

// batch carries the per-run values every stage needs. It is built once by
// Run; sc and cfg are never modified.
type batch struct {
	cfg   *config.Config
	sc    scene.Scene
	log   *logging.Logger
	run   command.Runner
	stats *RunStats
}

// Run executes the reconstruction stages once against the scene root, then
// finishes every subfolder in order. The returned error is nil on full
// success; otherwise ExitCode maps it to the process status. Stats are
// returned in both cases.
func Run(ctx context.Context, cfg *config.Config, sc scene.Scene, log *logging.Logger, r command.Runner) (RunStats, error) {
	stats := RunStats{Total: sc.Len()}
	b := &batch{cfg: cfg, sc: sc, log: log, run: r, stats: &stats}

	logBatchHeader(cfg, sc, log)

	err := b.reconstruct(ctx)
	if err == nil {
		err = b.finish(ctx)
	}

	logSummary(log, &stats, err)
	return stats, err
}

// reconstruct runs feature extraction, matching and mapping against the
// root. Any failure aborts the run.
func (b *batch) reconstruct(ctx context.Context) error {
	if b.cfg.SkipMatching {
		b.stats.Reconstruction = ReconstructionSkipped
		b.log.Info("Skipping feature extraction, matching and mapping (--skip_matching)")
		return nil
	}

	root := b.sc.Root()
	sparse := scene.DistortedSparseDir(root)
	if err := os.MkdirAll(sparse, 0o755); err != nil {
		b.stats.Reconstruction = ReconstructionFailed
		b.log.Error("Cannot create %s: %v", sparse, err)
		return fmt.Errorf("create sparse directory: %w", err)
	}

	database := scene.DatabasePath(root)
	images := scene.InputDir(root)
	exe := b.cfg.ColmapCommand()
	steps := []struct {
		stage Stage
		args  []string
	}{
		{StageFeatureExtraction, colmap.FeatureExtractor(database, images, b.cfg.UseGPU())},
		{StageFeatureMatching, colmap.ExhaustiveMatcher(database, b.cfg.UseGPU())},
		{StageMapping, colmap.Mapper(database, images, sparse)},
	}

	for _, s := range steps {
		if err := b.interrupted(ctx); err != nil {
			b.stats.Reconstruction = ReconstructionFailed
			return err
		}
		res := b.exec(ctx, s.stage, command.Invocation{Name: exe, Args: s.args})
		if res.OK() {
			continue
		}
		b.stats.Reconstruction = ReconstructionFailed
		if ctx.Err() != nil {
			b.log.Warn("%s interrupted", s.stage.Label())
			return fmt.Errorf("%s: %w", s.stage, ctx.Err())
		}
		b.log.Error("%s failed with code %d. Exiting.", s.stage.Label(), res.ExitCode)
		return &StageError{Stage: s.stage, ExitCode: res.ExitCode, Err: res.Err}
	}

	b.stats.Reconstruction = ReconstructionRan
	return nil
}

// exec runs one stage invocation with start/finish logging.
func (b *batch) exec(ctx context.Context, stage Stage, inv command.Invocation) command.Result {
	b.log.Stage("%s", stage.Label())
	b.log.Debug(b.cfg.Verbose, "  $ %s", command.Line(inv))
	start := time.Now()
	res := b.run.Run(ctx, inv)
	if res.OK() {
		b.log.Success("%s done in %s", stage.Label(), display.FormatDuration(time.Since(start)))
	}
	return res
}

// interrupted returns a wrapped context error once ctx is cancelled.
func (b *batch) interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		b.log.Warn("Interrupted")
		return fmt.Errorf("interrupted: %w", err)
	}
	return nil
}

// policyFor returns the failure policy governing stage.
func (b *batch) policyFor(stage Stage) config.FailurePolicy {
	switch stage {
	case StageUndistortion, StageNormalize:
		return b.cfg.UndistortFailure
	case StageResize:
		return b.cfg.ResizeFailure
	default:
		return config.PolicyAbort
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, sc scene.Scene, log *logging.Logger) {
	log.Info("Found %s in %s", display.FormatCount(sc.Len(), "subfolder"), sc.Source())
	log.Info("Root: %s", sc.Root())
	log.Info("COLMAP: %s (GPU: %v)", cfg.ColmapCommand(), cfg.UseGPU())
	log.Debug(cfg.Verbose, "Camera model: %s (not passed to feature extraction)", cfg.Camera)
	if cfg.Resize {
		log.Info("Resize: images_2, images_4, images_8 via %s", cfg.MagickCommand())
	}
	log.Info("On failure: undistortion=%s, resize=%s", cfg.UndistortFailure, cfg.ResizeFailure)
	log.Info("")
}

func logSummary(log *logging.Logger, stats *RunStats, err error) {
	log.Info("==============================")
	log.Info("Done: %d/%d processed (%d finished, %d skipped, %d failed)",
		stats.Processed(), stats.Total, stats.Finished, stats.Skipped, stats.Failed)
	if stats.ResizedImages > 0 {
		log.Info("Resized: %s (%s copied)",
			display.FormatCount(stats.ResizedImages, "image"), display.FormatBytes(stats.ResizedBytes))
	}
	switch {
	case err == nil:
		log.Success("All stages completed")
	case errors.Is(err, context.Canceled):
		log.Warn("Run interrupted")
	default:
		log.Error("Run aborted: %v", err)
	}
}
