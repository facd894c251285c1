// Package types provides shared type definitions for the minio filesystem.
package types // nolint:revive // Internal package with clear purpose

import (
	"io/fs"
	"time"
)

// ObjectMeta is the per-object metadata exposed through FileInfo.Sys.
type ObjectMeta struct {
	Bucket      string
	Key         string
	ETag        string
	Type        string
	UserDefined map[string]string
}

// ContentType returns the stored Content-Type of the object.
func (m *ObjectMeta) ContentType() string { return m.Type }

// FileInfo implements fs.FileInfo for MinIO objects.
type FileInfo struct {
	FileName    string
	FileSize    int64
	FileModTime time.Time
	FileMode    fs.FileMode
	Meta        *ObjectMeta
}

// Name returns the name of the file.
func (fi *FileInfo) Name() string { return fi.FileName }

// Size returns the length in bytes for regular files.
func (fi *FileInfo) Size() int64 { return fi.FileSize }

// Mode returns the file mode bits.
func (fi *FileInfo) Mode() fs.FileMode { return fi.FileMode }

// ModTime returns the modification time.
func (fi *FileInfo) ModTime() time.Time { return fi.FileModTime }

// IsDir returns true if this describes a directory.
func (fi *FileInfo) IsDir() bool { return fi.FileMode&fs.ModeDir != 0 }

// Sys returns the object metadata, or nil for handles that are still being
// written.
func (fi *FileInfo) Sys() interface{} {
	if fi.Meta == nil {
		return nil
	}
	return fi.Meta
}

// NewFileInfo creates a new FileInfo with the given parameters.
func NewFileInfo(name string, size int64, modTime time.Time, mode fs.FileMode) *FileInfo {
	return &FileInfo{
		FileName:    name,
		FileSize:    size,
		FileModTime: modTime,
		FileMode:    mode,
	}
}

var _ fs.FileInfo = (*FileInfo)(nil)
