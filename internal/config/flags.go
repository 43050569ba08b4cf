package config

// This file wires CLI flags into Config using urfave/cli. The underscore
// names (--source_path, --no_gpu, ...) are the legacy spellings; each also
// has a hyphenated alias. Negated display flags are applied after parsing
// so DefaultConfig values hold unless the user passes them.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// NewApp builds the command-line application. Parsed values are written into
// cfg; once parsing and normalization succeed, run is called with cfg. On
// --help and --version, urfave/cli prints and run is never called.
func NewApp(version string, cfg *Config, run func(*Config) error) *cli.App {
	var n negatedFlags

	flags := make([]cli.Flag, 0, 24)
	flags = append(flags, sceneFlags(cfg)...)
	flags = append(flags, toolFlags(cfg)...)
	flags = append(flags, policyFlags(cfg)...)
	flags = append(flags, displayFlags(cfg, &n)...)

	return &cli.App{
		Name:            "sceneprep",
		Usage:           "Undistort per-scene image folders with COLMAP and build multi-resolution image sets",
		UsageText:       "sceneprep --source_path <dir> [options]",
		Version:         version,
		HideHelpCommand: true,
		Flags:           flags,
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("unexpected arguments: %s", strings.Join(c.Args().Slice(), " "))
			}
			applyNegatedFlags(cfg, &n)
			cfg.SourcePath = NormalizeDirArg(cfg.SourcePath)
			return run(cfg)
		},
	}
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor bool
	noColor    bool
}

// sceneFlags registers the source path and reconstruction switches.
func sceneFlags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "source_path",
			Aliases:     []string{"s", "source-path"},
			Usage:       "directory whose subfolders hold the scene images",
			Destination: &cfg.SourcePath,
		},
		&cli.BoolFlag{
			Name:        "skip_matching",
			Aliases:     []string{"skip-matching"},
			Usage:       "skip feature extraction, matching and mapping (reuse existing distorted/ output)",
			Destination: &cfg.SkipMatching,
		},
		&cli.BoolFlag{
			Name:        "no_gpu",
			Aliases:     []string{"no-gpu"},
			Usage:       "run SIFT extraction and matching on the CPU",
			Destination: &cfg.NoGPU,
		},
		&cli.StringFlag{
			Name:        "camera",
			Usage:       "camera model name (accepted for compatibility)",
			Value:       cfg.Camera,
			Destination: &cfg.Camera,
		},
		&cli.BoolFlag{
			Name:        "resize",
			Usage:       "also produce images_2, images_4 and images_8",
			Destination: &cfg.Resize,
		},
	}
}

// toolFlags registers the executable overrides.
func toolFlags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "colmap_executable",
			Aliases:     []string{"colmap-executable"},
			Usage:       "path to the colmap executable (default: colmap on PATH)",
			Destination: &cfg.ColmapExecutable,
		},
		&cli.StringFlag{
			Name:        "magick_executable",
			Aliases:     []string{"magick-executable"},
			Usage:       "path to the magick executable (default: magick on PATH)",
			Destination: &cfg.MagickExecutable,
		},
	}
}

// policyFlags registers the per-stage failure policies.
func policyFlags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:  "undistort-failure",
			Usage: "on undistortion failure: skip the subfolder or abort the run",
			Value: &policyValue{&cfg.UndistortFailure},
		},
		&cli.GenericFlag{
			Name:  "resize-failure",
			Usage: "on resize failure: skip the subfolder or abort the run",
			Value: &policyValue{&cfg.ResizeFailure},
		},
	}
}

// displayFlags registers logging, reporting and diagnostics flags.
func displayFlags(cfg *Config, n *negatedFlags) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "color", Usage: "force colored logs", Destination: &n.forceColor},
		&cli.BoolFlag{Name: "no-color", Usage: "disable colored logs", Destination: &n.noColor},
		&cli.BoolFlag{Name: "verbose", Usage: "log every external command line", Destination: &cfg.Verbose},
		&cli.StringFlag{
			Name:        "log",
			Aliases:     []string{"l"},
			Usage:       "append logs to `FILE`",
			Destination: &cfg.LogFile,
		},
		&cli.StringFlag{
			Name:        "report",
			Usage:       "write a YAML run report to `FILE`",
			Destination: &cfg.ReportFile,
		},
		&cli.BoolFlag{
			Name:        "check",
			Aliases:     []string{"c"},
			Usage:       "check that colmap and magick are usable, then exit",
			Destination: &cfg.CheckOnly,
		},
	}
}

// applyNegatedFlags copies negated flag values into cfg. --no-color wins
// over --color.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// policyValue adapts FailurePolicy to cli.Generic.
type policyValue struct{ p *FailurePolicy }

func (v *policyValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *policyValue) Set(s string) error {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyAbort:
		*v.p = PolicyAbort
	case PolicySkip:
		*v.p = PolicySkip
	default:
		return errors.New("use 'abort' or 'skip'")
	}
	return nil
}
