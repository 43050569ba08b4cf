package scene

import (
	"fmt"
	"os"
	"path/filepath"
)

// NormalizeSparse moves every entry of dir/sparse other than "0" into
// dir/sparse/0, creating it if needed. The undistorter writes its model files
// flat into sparse/, while consumers expect model index 0. Running it again
// moves nothing. It returns the number of entries moved.
func NormalizeSparse(dir string) (int, error) {
	sparse := SparseDir(dir)
	model := SparseModelDir(dir)
	if err := os.MkdirAll(model, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", model, err)
	}

	entries, err := os.ReadDir(sparse)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", sparse, err)
	}

	moved := 0
	for _, e := range entries {
		if e.Name() == ModelIndex {
			continue
		}
		src := filepath.Join(sparse, e.Name())
		dst := filepath.Join(model, e.Name())
		if err := os.Rename(src, dst); err != nil {
			return moved, fmt.Errorf("move %s into %s: %w", e.Name(), model, err)
		}
		moved++
	}
	return moved, nil
}
