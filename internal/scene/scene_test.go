package scene

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"
)

// --- Resolve tests ---

func TestResolve_PicksLexicographicallySmallest(t *testing.T) {
	src := t.TempDir()
	mkdirs(t, src, "01", "00", "02")
	touch(t, src, "notes.txt")

	sc, err := Resolve(src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sc.Root() != filepath.Join(src, "00") {
		t.Errorf("Root = %q, want %q", sc.Root(), filepath.Join(src, "00"))
	}
	want := []string{filepath.Join(src, "00"), filepath.Join(src, "01"), filepath.Join(src, "02")}
	if !reflect.DeepEqual(sc.Subfolders(), want) {
		t.Errorf("Subfolders = %v, want %v", sc.Subfolders(), want)
	}
	if sc.Source() != src || sc.Len() != 3 {
		t.Errorf("Source = %q, Len = %d", sc.Source(), sc.Len())
	}
}

func TestResolve_ByteOrderNotNumeric(t *testing.T) {
	src := t.TempDir()
	mkdirs(t, src, "9", "10", "2")

	sc, err := Resolve(src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := filepath.Base(sc.Root()); got != "10" {
		t.Errorf("Root = %q, want \"10\" (byte order)", got)
	}
}

func TestResolve_NoSubfolders(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "image.png")

	_, err := Resolve(src)
	if !errors.Is(err, ErrNoSubfolders) {
		t.Errorf("err = %v, want ErrNoSubfolders", err)
	}
}

func TestResolve_MissingSource(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing"))
	if err == nil || errors.Is(err, ErrNoSubfolders) {
		t.Errorf("err = %v, want a read error", err)
	}
}

func TestResolve_FollowsDirectorySymlinks(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	if err := os.Symlink(target, filepath.Join(src, "00")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	mkdirs(t, src, "01")

	sc, err := Resolve(src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sc.Len() != 2 || filepath.Base(sc.Root()) != "00" {
		t.Errorf("Subfolders = %v", sc.Subfolders())
	}
}

func TestScene_SubfoldersIsCopy(t *testing.T) {
	sc := New("/s", "/s/00", []string{"/s/00", "/s/01"})
	subs := sc.Subfolders()
	subs[0] = "/tampered"
	if sc.Subfolders()[0] != "/s/00" {
		t.Error("Subfolders() exposed internal state")
	}
}

// --- Layout tests ---

func TestLayoutPaths(t *testing.T) {
	root := filepath.Join("/scene", "00")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"database", DatabasePath(root), "/scene/00/distorted/database.db"},
		{"input", InputDir(root), "/scene/00/input"},
		{"distorted sparse", DistortedSparseDir(root), "/scene/00/distorted/sparse"},
		{"distorted model", DistortedModelDir(root), "/scene/00/distorted/sparse/0"},
		{"sparse", SparseDir(root), "/scene/00/sparse"},
		{"sparse model", SparseModelDir(root), "/scene/00/sparse/0"},
		{"images", ImagesDir(root), "/scene/00/images"},
		{"images_2", ResizedDir(root, 2), "/scene/00/images_2"},
		{"images_8", ResizedDir(root, 8), "/scene/00/images_8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

// --- NormalizeSparse tests ---

func TestNormalizeSparse_MovesFlatFiles(t *testing.T) {
	dir := t.TempDir()
	sparse := SparseDir(dir)
	mkdirs(t, dir, "sparse")
	for _, name := range []string{"cameras.bin", "images.bin", "points3D.bin"} {
		touch(t, sparse, name)
	}

	moved, err := NormalizeSparse(dir)
	if err != nil {
		t.Fatalf("NormalizeSparse: %v", err)
	}
	if moved != 3 {
		t.Errorf("moved = %d, want 3", moved)
	}
	if got := names(t, sparse); !reflect.DeepEqual(got, []string{"0"}) {
		t.Errorf("sparse contains %v, want only 0", got)
	}
	want := []string{"cameras.bin", "images.bin", "points3D.bin"}
	if got := names(t, SparseModelDir(dir)); !reflect.DeepEqual(got, want) {
		t.Errorf("sparse/0 contains %v, want %v", got, want)
	}
}

func TestNormalizeSparse_Idempotent(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "sparse")
	touch(t, SparseDir(dir), "cameras.bin")
	mkdirs(t, SparseDir(dir), "extra")

	if _, err := NormalizeSparse(dir); err != nil {
		t.Fatalf("first NormalizeSparse: %v", err)
	}
	first := names(t, SparseModelDir(dir))

	moved, err := NormalizeSparse(dir)
	if err != nil {
		t.Fatalf("second NormalizeSparse: %v", err)
	}
	if moved != 0 {
		t.Errorf("second run moved %d entries, want 0", moved)
	}
	if got := names(t, SparseModelDir(dir)); !reflect.DeepEqual(got, first) {
		t.Errorf("state changed on re-run: %v -> %v", first, got)
	}
	if got := names(t, SparseDir(dir)); !reflect.DeepEqual(got, []string{"0"}) {
		t.Errorf("sparse contains %v, want only 0", got)
	}
}

func TestNormalizeSparse_CreatesModelDirWhenSparseMissing(t *testing.T) {
	dir := t.TempDir()
	moved, err := NormalizeSparse(dir)
	if err != nil {
		t.Fatalf("NormalizeSparse: %v", err)
	}
	if moved != 0 || !IsDir(SparseModelDir(dir)) {
		t.Errorf("moved = %d, sparse/0 exists = %v", moved, IsDir(SparseModelDir(dir)))
	}
}

// --- CopyFile / ListFiles tests ---

func TestCopyFile_PreservesContentModeAndMtime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.png")
	if err := os.WriteFile(src, []byte("pixels"), 0o640); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "copy.png")
	n, err := CopyFile(src, dst)
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if n != 6 {
		t.Errorf("copied %d bytes, want 6", n)
	}
	b, _ := os.ReadFile(dst)
	if string(b) != "pixels" {
		t.Errorf("content = %q", b)
	}
	fi, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", fi.Mode().Perm())
	}
	if !fi.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", fi.ModTime(), mtime)
	}
}

func TestCopyFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")
	os.WriteFile(src, []byte("new"), 0o644)
	os.WriteFile(dst, []byte("old and longer"), 0o644)

	if _, err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if b, _ := os.ReadFile(dst); string(b) != "new" {
		t.Errorf("content = %q, want truncated overwrite", b)
	}
}

func TestListFiles_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.png")
	touch(t, dir, "a.png")
	mkdirs(t, dir, "thumbs")

	got, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if want := []string{"a.png", "b.png"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// --- Helpers ---

func mkdirs(t *testing.T, parent string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.MkdirAll(filepath.Join(parent, n), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", n, err)
		}
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func names(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	sort.Strings(out)
	return out
}
