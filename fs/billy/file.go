package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/objfs/fs/core"
)

// File wraps billy.File to implement both core.File and fs.File.
// It stores the filename since billy.File.Name() may return different formats
// depending on the backend implementation.
// It also stores a reference to the filesystem to support Stat() calls.
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read implements io.Reader (required by fs.File).
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

// Write implements io.Writer (required by core.File).
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// WriteAt implements io.WriterAt.
//
// Backends without positional writes are handled by seeking to off, writing,
// and restoring the previous offset.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if w, ok := f.file.(io.WriterAt); ok {
		return w.WriteAt(p, off)
	}

	cur, err := f.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if _, err := f.file.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	n, werr := f.file.Write(p)
	if _, err := f.file.Seek(cur, io.SeekStart); werr == nil && err != nil {
		werr = err
	}
	return n, werr
}

// Close implements io.Closer (required by fs.File).
func (f *File) Close() error {
	return f.file.Close()
}

// Stat implements fs.File.Stat.
// Since billy.File doesn't provide Stat(), we call the filesystem's Stat() method.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.name)
}

// Name returns the name provided to Open/Create.
func (f *File) Name() string {
	return f.name
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Truncate implements core.Truncater.
func (f *File) Truncate(size int64) error {
	return f.file.Truncate(size)
}

// Sync implements core.Syncer.
// For backends without Sync (e.g., memfs), this is a no-op.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ core.File      = (*File)(nil)
	_ fs.File        = (*File)(nil)
	_ io.Seeker      = (*File)(nil)
	_ io.ReaderAt    = (*File)(nil)
	_ io.WriterAt    = (*File)(nil)
	_ core.Truncater = (*File)(nil)
	_ core.Syncer    = (*File)(nil)
)
