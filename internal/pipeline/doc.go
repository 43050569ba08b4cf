// Package pipeline orchestrates the scene conversion: the shared
// reconstruction stages against the root subfolder, then the per-subfolder
// finishing stages (undistortion, sparse layout normalization, optional
// multi-resolution resize), and the run summary and report.
//
// Every stage is one external invocation through command.Runner and is
// attempted exactly once. Failures are classified per stage:
//
//   - feature extraction, matching and mapping always abort the run with the
//     tool's exit code;
//   - undistortion (and the normalization that follows it) uses
//     Config.UndistortFailure, skip by default;
//   - resize uses Config.ResizeFailure, abort by default;
//   - a subfolder without an images directory is never resized, which is
//     not a failure.
package pipeline
