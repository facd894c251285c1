package content

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/transfer"
)

// Resolve returns the object for name within fsys.
//
// The object kind follows the filesystem's capabilities: a *LocalFile when
// fsys implements core.LocalPathFS, an *ObjectFile when fsys is an object
// store (transfer.SessionOpener and transfer.ObjectLocator), and a *File
// otherwise.
func Resolve(fsys core.FS, name string, opts ...Option) core.Object {
	o := newOptions(opts)
	name = cleanName(name)

	if lfs, ok := fsys.(core.LocalPathFS); ok {
		if p, err := lfs.LocalPath(name); err == nil {
			return newLocalFile(fsys, name, p, o)
		}
	}

	opener, isOpener := fsys.(transfer.SessionOpener)
	locator, isLocator := fsys.(transfer.ObjectLocator)
	if isOpener && isLocator {
		if ref, err := locator.ObjectRef(name); err == nil {
			return newObjectFile(fsys, name, ref, opener, o)
		}
	}

	return newFile(fsys, name, o)
}

func cleanName(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
	if name == "" {
		return "."
	}
	return name
}

// File is an entry of any core.FS whose content is a *Default.
type File struct {
	fsys core.FS
	name string
	opts *options

	// self is the outermost object, so content reports the right owner.
	self       core.Object
	newContent func() core.Content

	mu      sync.Mutex
	content core.Content
}

func newFile(fsys core.FS, name string, o *options) *File {
	f := &File{fsys: fsys, name: name, opts: o}
	f.self = f
	f.newContent = func() core.Content { return newDefault(f.self, f.opts) }
	return f
}

// Name returns the entry's path relative to its filesystem root.
func (f *File) Name() string { return f.name }

// FileSystem returns the owning filesystem.
func (f *File) FileSystem() core.FS { return f.fsys }

// URI returns "mem:///name" for memory filesystems and "vfs:///name" for
// anything else.
func (f *File) URI() string {
	scheme := "vfs"
	if f.fsys.Type() == core.FSTypeMemory {
		scheme = "mem"
	}
	name := f.name
	if name == "." {
		name = ""
	}
	return (&url.URL{Scheme: scheme, Path: "/" + name}).String()
}

// Content returns the entry's content handle, creating it on first use.
func (f *File) Content() (core.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.content == nil {
		f.content = f.newContent()
	}
	return f.content, nil
}

// Close closes and releases the content handle, if any.
func (f *File) Close() error {
	f.mu.Lock()
	c := f.content
	f.content = nil
	f.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

// LocalFile is an entry that is a plain file on the host filesystem.
type LocalFile struct {
	*File
	path string
}

func newLocalFile(fsys core.FS, name, localPath string, o *options) *LocalFile {
	lf := &LocalFile{File: newFile(fsys, name, o), path: localPath}
	lf.self = lf
	return lf
}

// LocalPath returns the absolute host path of the entry.
func (lf *LocalFile) LocalPath() string { return lf.path }

// URI returns the entry's file URI.
func (lf *LocalFile) URI() string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(lf.path)}).String()
}

// ObjectFile is an entry of an object store. Its content is an
// *ObjectContent.
type ObjectFile struct {
	*File
	ref    transfer.ObjectRef
	opener transfer.SessionOpener
}

func newObjectFile(fsys core.FS, name string, ref transfer.ObjectRef, opener transfer.SessionOpener, o *options) *ObjectFile {
	of := &ObjectFile{File: newFile(fsys, name, o), ref: ref, opener: opener}
	of.self = of
	of.newContent = func() core.Content {
		return newObjectContent(newDefault(of, of.opts), of.ref, of.opener)
	}
	return of
}

// Ref returns the bucket and key the entry maps to.
func (of *ObjectFile) Ref() transfer.ObjectRef { return of.ref }

// URI returns "s3://bucket/key".
func (of *ObjectFile) URI() string {
	return (&url.URL{Scheme: "s3", Host: of.ref.Bucket, Path: "/" + of.ref.Key}).String()
}

var (
	_ core.Object      = (*File)(nil)
	_ core.LocalObject = (*LocalFile)(nil)
	_ core.Object      = (*ObjectFile)(nil)
)
