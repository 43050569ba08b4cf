package pipeline

// Reconstruction outcomes recorded in RunStats.
const (
	ReconstructionRan     = "ran"
	ReconstructionSkipped = "skipped"
	ReconstructionFailed  = "failed"
)

// SubfolderStatus is the final state of one subfolder.
type SubfolderStatus string

const (
	StatusFinished SubfolderStatus = "finished" // All enabled stages succeeded.
	StatusSkipped  SubfolderStatus = "skipped"  // A stage failed under the skip policy.
	StatusFailed   SubfolderStatus = "failed"   // A stage failed and aborted the run.
)

// SubfolderResult records what happened to one subfolder.
type SubfolderResult struct {
	Path          string          `yaml:"path"`
	Status        SubfolderStatus `yaml:"status"`
	Stage         Stage           `yaml:"failed_stage,omitempty"`
	ExitCode      int             `yaml:"exit_code,omitempty"`
	Error         string          `yaml:"error,omitempty"`
	SparseMoved   int             `yaml:"sparse_entries_moved"`
	ResizedImages int             `yaml:"resized_images"`
	ResizeSkipped bool            `yaml:"resize_skipped,omitempty"`
}

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Total          int
	Current        int
	Finished       int
	Skipped        int
	Failed         int
	ResizedImages  int
	ResizedBytes   int64
	Reconstruction string
	Subfolders     []SubfolderResult
}

// Processed returns the number of subfolders that reached a final state.
func (s *RunStats) Processed() int {
	return s.Finished + s.Skipped + s.Failed
}
