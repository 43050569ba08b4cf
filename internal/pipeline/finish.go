package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/backmassage/sceneprep/internal/colmap"
	"github.com/backmassage/sceneprep/internal/command"
	"github.com/backmassage/sceneprep/internal/config"
	"github.com/backmassage/sceneprep/internal/scene"
)

// finish verifies the shared model exists, then undistorts, normalizes and
// optionally resizes each subfolder in captured order.
func (b *batch) finish(ctx context.Context) error {
	model := scene.DistortedModelDir(b.sc.Root())
	if !scene.IsDir(model) {
		b.log.Error("No reconstruction model at %s", model)
		return fmt.Errorf("%w: %s", ErrReconstructionMissing, model)
	}

	for i, sub := range b.sc.Subfolders() {
		b.stats.Current = i + 1
		if err := b.interrupted(ctx); err != nil {
			return err
		}

		b.log.Info("[%d/%d] Processing subfolder: %s", b.stats.Current, b.stats.Total, sub)
		res := SubfolderResult{Path: sub}
		err := b.finishSubfolder(ctx, sub, model, &res)
		if err == nil {
			res.Status = StatusFinished
			b.stats.Finished++
			b.stats.Subfolders = append(b.stats.Subfolders, res)
			continue
		}

		if ctx.Err() != nil {
			res.Status = StatusFailed
			res.Error = err.Error()
			b.stats.Failed++
			b.stats.Subfolders = append(b.stats.Subfolders, res)
			b.log.Warn("Interrupted while processing %s", sub)
			return fmt.Errorf("%s: %w", sub, ctx.Err())
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = &StageError{Stage: StageUndistortion, Subfolder: sub, Err: err}
		}
		res.Stage, res.ExitCode, res.Error = se.Stage, se.ExitCode, se.Error()

		if b.policyFor(se.Stage) == config.PolicyAbort {
			res.Status = StatusFailed
			b.stats.Failed++
			b.stats.Subfolders = append(b.stats.Subfolders, res)
			b.log.Error("%v. Exiting.", se)
			return se
		}

		res.Status = StatusSkipped
		b.stats.Skipped++
		b.stats.Subfolders = append(b.stats.Subfolders, res)
		b.log.Error("%v. Skipping to next subfolder.", se)
	}
	return nil
}

// finishSubfolder runs the finishing stages for one subfolder. Any returned
// error is a *StageError naming the stage that failed.
func (b *batch) finishSubfolder(ctx context.Context, sub, model string, res *SubfolderResult) error {
	inv := command.Invocation{
		Name: b.cfg.ColmapCommand(),
		Args: colmap.ImageUndistorter(scene.InputDir(sub), model, sub),
	}
	if r := b.exec(ctx, StageUndistortion, inv); !r.OK() {
		return &StageError{Stage: StageUndistortion, Subfolder: sub, ExitCode: r.ExitCode, Err: r.Err}
	}

	moved, err := scene.NormalizeSparse(sub)
	res.SparseMoved = moved
	if err != nil {
		return &StageError{Stage: StageNormalize, Subfolder: sub, Err: err}
	}
	b.log.Debug(b.cfg.Verbose, "  Moved %d sparse entries into %s", moved, scene.SparseModelDir(sub))

	if !b.cfg.Resize {
		return nil
	}
	return b.resizeSubfolder(ctx, sub, res)
}
