// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Flag names and defaults match the legacy converter script so
// existing invocations keep working.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// FailurePolicy decides what a failed per-subfolder stage does to the run.
type FailurePolicy string

const (
	PolicyAbort FailurePolicy = "abort" // Terminate the whole run with the stage's exit code.
	PolicySkip  FailurePolicy = "skip"  // Log, mark the subfolder, continue with the next one.
)

// Default executable names used when no override is given.
const (
	DefaultColmap = "colmap"
	DefaultMagick = "magick"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// filled in from the command line by [NewApp], and then passed by pointer to
// the packages that need it. It is not mutated after startup.
type Config struct {
	// Scene source (parent of the per-scene subfolders).
	SourcePath string

	// Reconstruction.
	SkipMatching bool   // Treat distorted/ artifacts under the root as present.
	NoGPU        bool   // Disable GPU SIFT extraction and matching.
	Camera       string // Default: "OPENCV". Accepted for compatibility; not passed downstream.

	// External tool overrides. Empty means look up the default name on PATH.
	ColmapExecutable string
	MagickExecutable string

	// Multi-resolution output.
	Resize bool

	// Per-stage failure policies for the per-subfolder stages.
	UndistortFailure FailurePolicy // Default: skip.
	ResizeFailure    FailurePolicy // Default: abort.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ReportFile string    // Optional YAML run report path.
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with defaults matching the legacy script.
func DefaultConfig() Config {
	return Config{
		Camera:           "OPENCV",
		UndistortFailure: PolicySkip,
		ResizeFailure:    PolicyAbort,
		ColorMode:        ColorAuto,
	}
}

// UseGPU reports whether SIFT extraction and matching should run on the GPU.
func (c *Config) UseGPU() bool { return !c.NoGPU }

// ColmapCommand returns the reconstruction-tool executable to invoke.
func (c *Config) ColmapCommand() string {
	return ResolveExecutable(c.ColmapExecutable, DefaultColmap)
}

// MagickCommand returns the image-tool executable to invoke.
func (c *Config) MagickCommand() string {
	return ResolveExecutable(c.MagickExecutable, DefaultMagick)
}

// ResolveExecutable returns override when it is non-blank, else fallback.
// Surrounding quotes are stripped: the legacy script wrapped overrides in
// quotes for its shell, and users still pass them that way.
func ResolveExecutable(override, fallback string) string {
	s := strings.TrimSpace(override)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return fallback
	}
	return s
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and, unless in CheckOnly mode, requires a
// source path.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", c.ColorMode)
	}
	if err := validatePolicy("undistort-failure", c.UndistortFailure); err != nil {
		return err
	}
	if err := validatePolicy("resize-failure", c.ResizeFailure); err != nil {
		return err
	}

	if c.CheckOnly {
		return nil
	}
	if strings.TrimSpace(c.SourcePath) == "" {
		return errors.New("need --source_path")
	}
	return nil
}

func validatePolicy(name string, p FailurePolicy) error {
	switch p {
	case PolicyAbort, PolicySkip:
		return nil
	default:
		return fmt.Errorf("invalid %s policy %q (use 'abort' or 'skip')", name, p)
	}
}
