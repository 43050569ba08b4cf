package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/sceneprep/internal/display"
	"github.com/backmassage/sceneprep/internal/scene"
)

// Report is the YAML run report written with --report.
type Report struct {
	RunID          string            `yaml:"run_id"`
	Source         string            `yaml:"source"`
	Root           string            `yaml:"root"`
	StartedAt      time.Time         `yaml:"started_at"`
	FinishedAt     time.Time         `yaml:"finished_at"`
	Elapsed        string            `yaml:"elapsed"`
	Reconstruction string            `yaml:"reconstruction"`
	Finished       int               `yaml:"finished"`
	Skipped        int               `yaml:"skipped"`
	Failed         int               `yaml:"failed"`
	ResizedImages  int               `yaml:"resized_images"`
	Subfolders     []SubfolderResult `yaml:"subfolders"`
	ExitCode       int               `yaml:"exit_code"`
	Error          string            `yaml:"error,omitempty"`
}

// NewRunID returns a fresh identifier for one run.
func NewRunID() string { return uuid.NewString() }

// NewReport assembles the report for a finished run.
func NewReport(runID string, sc scene.Scene, stats RunStats, runErr error, started, finished time.Time) *Report {
	r := &Report{
		RunID:          runID,
		Source:         sc.Source(),
		Root:           sc.Root(),
		StartedAt:      started.UTC().Truncate(time.Second),
		FinishedAt:     finished.UTC().Truncate(time.Second),
		Elapsed:        display.FormatDuration(finished.Sub(started)),
		Reconstruction: stats.Reconstruction,
		Finished:       stats.Finished,
		Skipped:        stats.Skipped,
		Failed:         stats.Failed,
		ResizedImages:  stats.ResizedImages,
		Subfolders:     stats.Subfolders,
		ExitCode:       ExitCode(runErr),
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// WriteReport marshals r as YAML to path, creating parent directories.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}
