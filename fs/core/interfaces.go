package core

import (
	"io"
	"io/fs"
	"time"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (e.g., disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem (e.g., S3, cloud storage).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the filesystem interface every provider implements.
// It embeds fs.FS for stdlib compatibility.
type FS interface {
	fs.FS
	ReadFS
	WriteFS

	// Remove removes the named file.
	// If the path does not exist, Remove returns an error wrapping ErrNotExist
	// unless the provider documents idempotent deletes.
	Remove(name string) error

	// Type returns the underlying filesystem type.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
type ReadFS interface {
	// Open opens the named file for reading.
	// Callers can type-assert the result to File, io.Seeker or io.ReaderAt
	// to discover optional capabilities.
	Open(name string) (fs.File, error)

	// Stat returns file metadata.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
//
// Not all providers support all OpenFile flags; object stores in particular
// reject O_RDWR and O_APPEND with ErrUnsupported.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	Create(name string) (File, error)

	// OpenFile opens a file with the specified flags and permissions.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	// Providers with virtual directories treat this as a no-op.
	MkdirAll(path string, perm fs.FileMode) error
}

// File represents an open file handle.
// File extends fs.File with write operations.
type File interface {
	fs.File // Read, Close, Stat
	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}

// Optional File capabilities (use type assertions):
//
// - io.Seeker
// - io.ReaderAt
// - io.WriterAt
// - Truncater
// - Syncer

// Truncater allows truncating a file to a specified size.
type Truncater interface {
	Truncate(size int64) error
}

// Syncer allows syncing file contents to stable storage.
type Syncer interface {
	Sync() error
}

// MetadataFS allows changing timestamps (typically local filesystems only).
//
//	if mfs, ok := filesystem.(MetadataFS); ok {
//	    err := mfs.Chtimes("file.txt", atime, mtime)
//	}
type MetadataFS interface {
	// Chtimes changes the access and modification times of the named file.
	Chtimes(name string, atime, mtime time.Time) error
}

// AttributeFS stores named attributes alongside an entry.
//
// Object stores map attributes onto object user metadata. Values are
// persisted as strings by such providers.
type AttributeFS interface {
	// Attributes returns all attributes of the named entry.
	// An entry without attributes returns an empty, non-nil map.
	Attributes(name string) (map[string]interface{}, error)

	// SetAttribute sets a single attribute on the named entry.
	SetAttribute(name, key string, value interface{}) error

	// RemoveAttribute removes a single attribute. Removing an attribute that
	// is not set is not an error.
	RemoveAttribute(name, key string) error
}

// LocalPathFS resolves entries to absolute paths on the host filesystem.
//
// Only filesystems whose files are plain files on the local disk implement
// this interface. Managed downloads require such a path.
type LocalPathFS interface {
	LocalPath(name string) (string, error)
}
