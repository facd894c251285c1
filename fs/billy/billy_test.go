package billy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmgilman/objfs/fs/core"
)

func TestLocalFS_Type(t *testing.T) {
	if got := NewLocal().Type(); got != core.FSTypeLocal {
		t.Errorf("LocalFS.Type() = %s, want %s", got, core.FSTypeLocal)
	}
	if got := NewMemory().Type(); got != core.FSTypeMemory {
		t.Errorf("MemoryFS.Type() = %s, want %s", got, core.FSTypeMemory)
	}
}

func TestLocalFS_WithRoot(t *testing.T) {
	dir := t.TempDir()
	lfs := NewLocal(WithRoot(dir))

	if lfs.Root() != dir {
		t.Errorf("Root() = %q, want %q", lfs.Root(), dir)
	}

	if err := lfs.WriteFile("sub/report.csv", []byte("a,b\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sub", "report.csv"))
	if err != nil {
		t.Fatalf("file not written under root: %v", err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("content = %q", data)
	}
}

func TestLocalFS_LocalPath(t *testing.T) {
	dir := t.TempDir()
	lfs := NewLocal(WithRoot(dir))

	tests := []struct {
		name string
		want string
	}{
		{"file.txt", filepath.Join(dir, "file.txt")},
		{"a/b/c.txt", filepath.Join(dir, "a", "b", "c.txt")},
		{"./a/../d.txt", filepath.Join(dir, "d.txt")},
		{"/abs.txt", filepath.Join(dir, "abs.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lfs.LocalPath(tt.name)
			if err != nil {
				t.Fatalf("LocalPath(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("LocalPath(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLocalFS_Chtimes(t *testing.T) {
	lfs := NewLocal(WithRoot(t.TempDir()))
	if err := lfs.WriteFile("f.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := lfs.Chtimes("f.txt", mtime, mtime); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	info, err := lfs.Stat("f.txt")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("ModTime() = %v, want %v", info.ModTime(), mtime)
	}
}

func TestMemoryFS_BasicOperations(t *testing.T) {
	mfs := NewMemory()

	testData := []byte("Hello, World!")
	if err := mfs.WriteFile("dir/test.txt", testData, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := mfs.ReadFile("dir/test.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("ReadFile() = %q, want %q", data, testData)
	}

	exists, err := mfs.Exists("dir/test.txt")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v; want true, nil", exists, err)
	}

	exists, err = mfs.Exists("missing.txt")
	if err != nil || exists {
		t.Errorf("Exists(missing) = %v, %v; want false, nil", exists, err)
	}

	if err := mfs.Remove("dir/test.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := mfs.Stat("dir/test.txt"); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("Stat() after Remove() error = %v, want ErrNotExist", err)
	}
}

func TestMemoryFS_OpenFile(t *testing.T) {
	mfs := NewMemory()

	f, err := mfs.OpenFile("log.txt", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if _, err := f.Write([]byte("one\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err = mfs.OpenFile("log.txt", os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(append) error = %v", err)
	}
	if _, err := f.Write([]byte("two\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	_ = f.Close()

	data, err := mfs.ReadFile("log.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("content = %q, want %q", data, "one\ntwo\n")
	}
}

func TestMemoryFS_Unwrap(t *testing.T) {
	mfs := NewMemory()
	if _, err := mfs.Unwrap().Create("direct.txt"); err != nil {
		t.Fatalf("Create() on unwrapped filesystem error = %v", err)
	}
	if ok, _ := mfs.Exists("direct.txt"); !ok {
		t.Error("file created through Unwrap() not visible")
	}
}

func TestMemoryFS_NotLocal(t *testing.T) {
	var fsys core.FS = NewMemory()
	if _, ok := fsys.(core.LocalPathFS); ok {
		t.Error("MemoryFS must not implement core.LocalPathFS")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"test.txt", "test.txt"},
		{"dir//file.txt", "dir/file.txt"},
		{"dir/./file.txt", "dir/file.txt"},
		{"dir/../file.txt", "file.txt"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := normalize(tt.input); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
