package billy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/objfs/fs/core"
)

// LocalFS wraps billy's osfs for local filesystem access.
type LocalFS struct {
	base
	root string
}

// MemoryFS wraps billy's memfs for in-memory filesystem access.
type MemoryFS struct {
	base
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root string
}

// WithRoot roots a LocalFS at dir instead of "/". Relative paths are made
// absolute against the working directory. Ignored by NewMemory.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

// NewLocal creates a go-billy-backed local filesystem.
// The returned filesystem is rooted at "/" unless WithRoot is given.
func NewLocal(opts ...Option) *LocalFS {
	cfg := config{root: "/"}
	for _, opt := range opts {
		opt(&cfg)
	}

	root := cfg.root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	return &LocalFS{
		base: base{bfs: osfs.New(root)},
		root: root,
	}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{
		base: base{bfs: memfs.New()},
	}
}

// Root returns the absolute host directory the filesystem is rooted at.
func (lfs *LocalFS) Root() string {
	return lfs.root
}

// LocalPath returns the absolute host path of name.
// The entry does not need to exist.
func (lfs *LocalFS) LocalPath(name string) (string, error) {
	return filepath.Join(lfs.root, filepath.FromSlash(normalize(name))), nil
}

// Chtimes changes the access and modification times of the named file.
// None of the billy backends expose times, so this goes through the host path.
func (lfs *LocalFS) Chtimes(name string, atime, mtime time.Time) error {
	path, err := lfs.LocalPath(name)
	if err != nil {
		return err
	}
	return os.Chtimes(path, atime, mtime)
}

// Type returns FSTypeLocal for local filesystem implementations.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Type returns FSTypeMemory for in-memory filesystem implementations.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// base implements the operations shared by LocalFS and MemoryFS.
type base struct {
	bfs billy.Filesystem
}

// Unwrap returns the underlying billy.Filesystem for callers that need
// billy APIs directly.
func (b *base) Unwrap() billy.Filesystem {
	return b.bfs
}

// normalize converts paths to use forward slashes consistently.
// This is a simplified path normalization since billy handles security.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// Open opens the named file for reading.
// Returns a File that also implements fs.File.
func (b *base) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (b *base) Stat(name string) (fs.FileInfo, error) {
	return b.bfs.Stat(normalize(name))
}

// ReadFile reads the named file and returns its contents.
func (b *base) ReadFile(name string) ([]byte, error) {
	name = normalize(name)
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (b *base) Exists(name string) (bool, error) {
	_, err := b.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (b *base) Create(name string) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// OpenFile opens a file with the specified flags and permissions.
func (b *base) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (b *base) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = normalize(name)
	f, err := b.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *base) MkdirAll(path string, perm fs.FileMode) error {
	return b.bfs.MkdirAll(normalize(path), perm)
}

// Remove removes the named file or empty directory.
func (b *base) Remove(name string) error {
	return b.bfs.Remove(normalize(name))
}

// Compile-time interface checks.
var (
	_ core.FS          = (*LocalFS)(nil)
	_ core.FS          = (*MemoryFS)(nil)
	_ core.MetadataFS  = (*LocalFS)(nil)
	_ core.LocalPathFS = (*LocalFS)(nil)
)
