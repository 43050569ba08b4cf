package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// ExitInterrupted is the process exit code after SIGINT/SIGTERM.
const ExitInterrupted = 130

// ErrReconstructionMissing is returned when the finishing stages would start
// without a model at distorted/sparse/0 under the root.
var ErrReconstructionMissing = errors.New("reconstruction output missing")

// Stage identifies one step of the pipeline.
type Stage string

const (
	StageFeatureExtraction Stage = "feature_extraction"
	StageFeatureMatching   Stage = "feature_matching"
	StageMapping           Stage = "mapping"
	StageUndistortion      Stage = "undistortion"
	StageNormalize         Stage = "normalize"
	StageResize            Stage = "resize"
)

var stageLabels = map[Stage]string{
	StageFeatureExtraction: "Feature extraction",
	StageFeatureMatching:   "Feature matching",
	StageMapping:           "Mapper",
	StageUndistortion:      "Image undistortion",
	StageNormalize:         "Sparse layout normalization",
	StageResize:            "Resize",
}

// Label returns the human-readable stage name used in logs.
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// StageError reports a failed stage. ExitCode is the external tool's status,
// or 0 when the failure happened in-process (filesystem errors).
type StageError struct {
	Stage     Stage
	Subfolder string
	ExitCode  int
	Err       error
}

func (e *StageError) Error() string {
	msg := e.Stage.Label() + " failed"
	if e.Subfolder != "" {
		msg += " for " + e.Subfolder
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" with code %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StageError) Unwrap() error { return e.Err }

// ExitCode maps a Run error to the process exit status: 0 for nil, the
// tool's own code for a failed external stage, 130 for an interrupt, and 1
// for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var se *StageError
	if errors.As(err, &se) && se.ExitCode > 0 {
		return se.ExitCode
	}
	return 1
}
