// Command sceneprep is the CLI entrypoint. It resolves the scene root,
// drives COLMAP through extraction, matching, mapping and per-subfolder
// undistortion, and optionally builds downscaled image sets with ImageMagick.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/backmassage/sceneprep/internal/check"
	"github.com/backmassage/sceneprep/internal/command"
	"github.com/backmassage/sceneprep/internal/config"
	"github.com/backmassage/sceneprep/internal/display"
	"github.com/backmassage/sceneprep/internal/logging"
	"github.com/backmassage/sceneprep/internal/pipeline"
	"github.com/backmassage/sceneprep/internal/scene"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Bootstrap: the logger doesn't exist yet, so errors go to stderr.
	exitCode := 0
	cfg := config.DefaultConfig()
	app := config.NewApp(version, &cfg, func(cfg *config.Config) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		exitCode = execute(cfg)
		return nil
	})
	if err := app.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "sceneprep: %v\n", err)
		return 1
	}
	return exitCode
}

// execute runs with a validated config and returns the process exit code.
func execute(cfg *config.Config) int {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sceneprep: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)

	// Cancel on SIGINT/SIGTERM; the running tool is killed and no further
	// stage or subfolder starts.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, cfg, log, command.Exec{Stdout: io.Discard, Stderr: io.Discard}) {
			return 1
		}
		return 0
	}

	sc, err := scene.Resolve(cfg.SourcePath)
	if err != nil {
		if errors.Is(err, scene.ErrNoSubfolders) {
			log.Error("No subdirectories found in the specified source path.")
		} else {
			log.Error("Cannot read source path %s: %v", cfg.SourcePath, err)
		}
		return 1
	}

	runID := pipeline.NewRunID()
	log.Info("=== sceneprep v%s (%s) ===", version, commit)
	log.Info("Run: %s", runID)
	log.Info("Source: %s", cfg.SourcePath)

	started := time.Now()
	stats, runErr := pipeline.Run(ctx, cfg, sc, log, command.Exec{})
	code := pipeline.ExitCode(runErr)

	if cfg.ReportFile != "" {
		rep := pipeline.NewReport(runID, sc, stats, runErr, started, time.Now())
		if err := pipeline.WriteReport(cfg.ReportFile, rep); err != nil {
			log.Error("%v", err)
			if code == 0 {
				code = 1
			}
		} else {
			log.Info("Report: %s", cfg.ReportFile)
		}
	}
	return code
}
