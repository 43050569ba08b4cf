// Package check implements --check: it verifies that the configured COLMAP
// and ImageMagick executables can be found and started.
package check

import (
	"context"
	"os/exec"

	"github.com/backmassage/sceneprep/internal/command"
	"github.com/backmassage/sceneprep/internal/config"
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// RunCheck reports the availability of both tools and returns true when the
// tools this configuration needs are usable: COLMAP always, ImageMagick only
// with --resize.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger, r command.Runner) bool {
	log.Info("=== System Check ===")

	colmapOK := checkTool(ctx, log, r, "COLMAP", cfg.ColmapCommand(), "help")
	magickOK := checkTool(ctx, log, r, "ImageMagick", cfg.MagickCommand(), "-version")

	if !magickOK && !cfg.Resize {
		log.Warn("ImageMagick is only needed with --resize")
		magickOK = true
	}
	return colmapOK && magickOK
}

// checkTool resolves exe on PATH and runs it once with a harmless argument.
func checkTool(ctx context.Context, log Logger, r command.Runner, label, exe string, args ...string) bool {
	path, err := lookPath(exe)
	if err != nil {
		log.Error("%s not found: %s", label, exe)
		return false
	}
	res := r.Run(ctx, command.Invocation{Name: path, Args: args})
	if !res.OK() {
		log.Error("%s found at %s but %q failed with code %d", label, path, command.Line(command.Invocation{Name: exe, Args: args}), res.ExitCode)
		return false
	}
	log.Success("%s: %s", label, path)
	return true
}
