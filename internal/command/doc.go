// Package command runs external executables for the pipeline stages.
//
// Stage code never launches processes directly: it builds an [Invocation]
// and hands it to a [Runner]. The only thing a stage learns back is the exit
// status in [Result]. Output is streamed to the configured writers and never
// parsed. [Exec] is the os/exec implementation; tests substitute their own
// Runner to simulate COLMAP and ImageMagick without either installed.
package command
