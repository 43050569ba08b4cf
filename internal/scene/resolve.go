// Package scene resolves the scene directory layout: which subfolder hosts
// the shared reconstruction, where each stage reads and writes, and the
// filesystem moves performed between stages.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoSubfolders is returned by Resolve when the source path has no
// immediate subdirectories.
var ErrNoSubfolders = errors.New("no subdirectories found in the specified source path")

// Scene is the immutable result of resolving a source path. It is computed
// once at startup and passed to every stage; nothing re-lists the source
// directory afterwards, so subfolders created during the run are ignored.
type Scene struct {
	source     string
	root       string
	subfolders []string
}

// Resolve lists the immediate subdirectories of source (following symlinks
// to directories), sorts them by name, and picks the first as the root.
// Sorting is plain byte order: "10" sorts before "9".
func Resolve(source string) (Scene, error) {
	entries, err := os.ReadDir(source)
	if err != nil {
		return Scene{}, fmt.Errorf("read source path: %w", err)
	}

	var names []string
	for _, e := range entries {
		if isDirEntry(source, e) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return Scene{}, ErrNoSubfolders
	}
	sort.Strings(names)

	subfolders := make([]string, len(names))
	for i, name := range names {
		subfolders[i] = filepath.Join(source, name)
	}
	return Scene{source: source, root: subfolders[0], subfolders: subfolders}, nil
}

// New builds a Scene from an already-known root and subfolder list.
func New(source, root string, subfolders []string) Scene {
	return Scene{source: source, root: root, subfolders: append([]string(nil), subfolders...)}
}

func isDirEntry(parent string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && fi.IsDir()
}

// Source returns the path the scene was resolved from.
func (s Scene) Source() string { return s.source }

// Root returns the subfolder that hosts the shared reconstruction.
func (s Scene) Root() string { return s.root }

// Subfolders returns a copy of the subfolder paths in processing order.
func (s Scene) Subfolders() []string {
	return append([]string(nil), s.subfolders...)
}

// Len returns the number of subfolders.
func (s Scene) Len() int { return len(s.subfolders) }
