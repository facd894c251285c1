package core

import (
	"crypto/x509"
	"io"
	"time"
)

// Object is a named entry within an FS.
//
// An Object owns at most one Content handle at a time. Close releases that
// handle and any streams opened through it; the Object stays usable and the
// next Content call creates a fresh handle.
type Object interface {
	// Name returns the entry's path relative to its filesystem root.
	Name() string

	// URI returns a provider-qualified identifier such as "file:///tmp/a.txt"
	// or "s3://bucket/key".
	URI() string

	// FileSystem returns the filesystem that owns the entry.
	FileSystem() FS

	// Content returns the entry's content handle, creating it on first use.
	Content() (Content, error)

	// Close releases the content handle, if any.
	Close() error
}

// LocalObject is an Object that is a plain file on the host filesystem.
type LocalObject interface {
	Object

	// LocalPath returns the absolute host path of the entry.
	LocalPath() string
}

// AccessMode selects how random access content is opened.
type AccessMode int

const (
	// AccessRead opens random access content for reading only.
	AccessRead AccessMode = iota
	// AccessReadWrite opens random access content for reading and writing.
	AccessReadWrite
)

// String returns a string representation of the AccessMode.
func (m AccessMode) String() string {
	switch m {
	case AccessRead:
		return "r"
	case AccessReadWrite:
		return "rw"
	default:
		return "unknown"
	}
}

// RandomAccessContent is a seekable view over an entry's bytes.
//
// Writes on content opened with AccessRead fail with ErrPermission.
type RandomAccessContent interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Writer
	io.WriterAt
	io.Closer

	// Length returns the current length of the content in bytes.
	Length() (int64, error)
}

// ContentInfo describes the encoding of an entry's bytes.
type ContentInfo struct {
	// ContentType is a MIME type such as "text/plain; charset=utf-8".
	ContentType string

	// Encoding is the character set or transfer encoding, if known.
	Encoding string
}

// ContentInfoFactory derives ContentInfo for a content handle.
type ContentInfoFactory interface {
	Create(c Content) (ContentInfo, error)
}

// Content is the capability set for working with one entry's bytes.
//
// Content values are not safe for concurrent use. Distinct Content values,
// even over the same filesystem, are independent.
type Content interface {
	// File returns the owning Object.
	File() Object

	// InputStream opens the entry for reading.
	InputStream() (io.ReadCloser, error)

	// OutputStream opens the entry for writing. When appendMode is false the
	// entry is truncated first.
	OutputStream(appendMode bool) (io.WriteCloser, error)

	// RandomAccess opens a seekable view over the entry.
	RandomAccess(mode AccessMode) (RandomAccessContent, error)

	// WriteTo copies the entry into w and returns the number of bytes copied.
	WriteTo(w io.Writer) (int64, error)

	// WriteToBuffer is WriteTo with an explicit copy buffer size.
	WriteToBuffer(w io.Writer, bufSize int) (int64, error)

	// WriteContent copies the entry into dst, truncating dst first.
	WriteContent(dst Content) (int64, error)

	// WriteFile copies the entry into the destination object.
	WriteFile(dst Object) (int64, error)

	// Certificates returns the certificates that signed the entry, if any.
	Certificates() ([]*x509.Certificate, error)

	// LastModified returns the entry's modification time.
	LastModified() (time.Time, error)

	// SetLastModified sets the entry's modification time.
	SetLastModified(t time.Time) error

	// Size returns the entry's size in bytes.
	Size() (int64, error)

	// HasAttribute reports whether the named attribute is set.
	HasAttribute(name string) (bool, error)

	// Attribute returns the named attribute, or nil if it is not set.
	Attribute(name string) (interface{}, error)

	// SetAttribute sets the named attribute.
	SetAttribute(name string, value interface{}) error

	// RemoveAttribute removes the named attribute.
	RemoveAttribute(name string) error

	// Attributes returns a copy of all attributes.
	Attributes() (map[string]interface{}, error)

	// AttributeNames returns the attribute names in sorted order.
	AttributeNames() ([]string, error)

	// ContentInfo returns the entry's content type and encoding.
	ContentInfo() (ContentInfo, error)

	// IsOpen reports whether any stream or random access view opened through
	// this handle is still open.
	IsOpen() bool

	// Close closes every stream and view opened through this handle.
	Close() error
}

// ContentTyper is implemented by fs.FileInfo.Sys values of providers that
// store a content type with each entry.
type ContentTyper interface {
	ContentType() string
}
