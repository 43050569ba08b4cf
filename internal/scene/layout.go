package scene

import (
	"path/filepath"
	"strconv"
)

// Directory and file names of the on-disk scene layout.
const (
	InputDirName     = "input"
	DistortedDirName = "distorted"
	DatabaseName     = "database.db"
	SparseDirName    = "sparse"
	ImagesDirName    = "images"
	ModelIndex       = "0"
)

// DatabasePath is the COLMAP feature database under the root.
func DatabasePath(root string) string {
	return filepath.Join(root, DistortedDirName, DatabaseName)
}

// InputDir is the directory of original (distorted) images in a subfolder.
func InputDir(dir string) string {
	return filepath.Join(dir, InputDirName)
}

// DistortedSparseDir is where the mapper writes its numbered models.
func DistortedSparseDir(root string) string {
	return filepath.Join(root, DistortedDirName, SparseDirName)
}

// DistortedModelDir is the model every subfolder is undistorted against.
func DistortedModelDir(root string) string {
	return filepath.Join(DistortedSparseDir(root), ModelIndex)
}

// SparseDir is the undistorter's sparse output in a subfolder.
func SparseDir(dir string) string {
	return filepath.Join(dir, SparseDirName)
}

// SparseModelDir is the canonical model location after normalization.
func SparseModelDir(dir string) string {
	return filepath.Join(SparseDir(dir), ModelIndex)
}

// ImagesDir is the undistorted image directory in a subfolder.
func ImagesDir(dir string) string {
	return filepath.Join(dir, ImagesDirName)
}

// ResizedDir is the directory holding the 1/divisor resolution copies,
// e.g. images_4.
func ResizedDir(dir string, divisor int) string {
	return filepath.Join(dir, ImagesDirName+"_"+strconv.Itoa(divisor))
}
