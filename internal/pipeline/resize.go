package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/sceneprep/internal/command"
	"github.com/backmassage/sceneprep/internal/display"
	"github.com/backmassage/sceneprep/internal/magick"
	"github.com/backmassage/sceneprep/internal/scene"
)

// resizeDivisors are the downscale factors, written to images_<divisor>.
var resizeDivisors = []int{2, 4, 8}

// resizeSubfolder copies every file of sub/images into each resolution
// directory and resamples the copy in place. A missing images directory is
// a soft skip.
func (b *batch) resizeSubfolder(ctx context.Context, sub string, res *SubfolderResult) error {
	src := scene.ImagesDir(sub)
	if !scene.IsDir(src) {
		b.log.Warn("No images directory found in %s, skipping resizing.", sub)
		res.ResizeSkipped = true
		return nil
	}

	files, err := scene.ListFiles(src)
	if err != nil {
		return &StageError{Stage: StageResize, Subfolder: sub, Err: err}
	}
	b.log.Stage("Copying and resizing %s in %s", display.FormatCount(len(files), "image"), sub)

	exe := b.cfg.MagickCommand()
	for _, div := range resizeDivisors {
		dstDir := scene.ResizedDir(sub, div)
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return &StageError{Stage: StageResize, Subfolder: sub, Err: err}
		}
		pct := magick.Percent(div)

		for _, name := range files {
			dst := filepath.Join(dstDir, name)
			n, err := scene.CopyFile(filepath.Join(src, name), dst)
			if err != nil {
				return &StageError{Stage: StageResize, Subfolder: sub, Err: err}
			}

			inv := command.Invocation{Name: exe, Args: magick.Mogrify(pct, dst)}
			b.log.Debug(b.cfg.Verbose, "  $ %s", command.Line(inv))
			r := b.run.Run(ctx, inv)
			if !r.OK() {
				b.log.Error("%s resize failed with code %d: %s", pct, r.ExitCode, dst)
				detail := fmt.Errorf("%s of %s", pct, name)
				if r.Err != nil {
					detail = fmt.Errorf("%s of %s: %w", pct, name, r.Err)
				}
				return &StageError{Stage: StageResize, Subfolder: sub, ExitCode: r.ExitCode, Err: detail}
			}
			res.ResizedImages++
			b.stats.ResizedImages++
			b.stats.ResizedBytes += n
		}
		b.log.Success("  %s: %s at %s", filepath.Base(dstDir), display.FormatCount(len(files), "image"), pct)
	}
	return nil
}
