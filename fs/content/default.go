package content

import (
	"crypto/x509"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"time"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
)

// Default is the generic core.Content implementation. Every operation is
// expressed through the owning object's filesystem and its optional
// capability interfaces.
type Default struct {
	file    core.Object
	fsys    core.FS
	name    string
	opts    *options
	streams streams
}

// NewDefault returns generic content for file.
func NewDefault(file core.Object, opts ...Option) *Default {
	return newDefault(file, newOptions(opts))
}

func newDefault(file core.Object, o *options) *Default {
	return &Default{
		file: file,
		fsys: file.FileSystem(),
		name: file.Name(),
		opts: o,
	}
}

// File returns the owning object.
func (d *Default) File() core.Object {
	return d.file
}

// stat returns the entry's info, rejecting directories.
func (d *Default) stat(op string) (fs.FileInfo, error) {
	info, err := d.fsys.Stat(d.name)
	if err != nil {
		return nil, contentError(op, d.name, err)
	}
	if info.IsDir() {
		return nil, contentError(op, d.name, core.ErrIsDir)
	}
	return info, nil
}

// InputStream opens the entry for reading.
func (d *Default) InputStream() (io.ReadCloser, error) {
	if _, err := d.stat("open"); err != nil {
		return nil, err
	}
	f, err := d.fsys.Open(d.name)
	if err != nil {
		return nil, contentError("open", d.name, err)
	}
	return d.streams.reader(f), nil
}

// OutputStream opens the entry for writing, creating parent directories as
// needed.
func (d *Default) OutputStream(appendMode bool) (io.WriteCloser, error) {
	if info, err := d.fsys.Stat(d.name); err == nil && info.IsDir() {
		return nil, contentError("write", d.name, core.ErrIsDir)
	}
	if dir := path.Dir(d.name); dir != "." && dir != "/" {
		if err := d.fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, contentError("mkdir", dir, err)
		}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := d.fsys.OpenFile(d.name, flag, 0o644)
	if err != nil {
		return nil, contentError("write", d.name, err)
	}
	return d.streams.writer(f), nil
}

// RandomAccess opens a seekable view over the entry. Providers whose files
// cannot seek return an error matching core.ErrUnsupported.
func (d *Default) RandomAccess(mode core.AccessMode) (core.RandomAccessContent, error) {
	var (
		f   core.File
		err error
	)
	switch mode {
	case core.AccessRead:
		if _, err = d.stat("open"); err != nil {
			return nil, err
		}
		f, err = d.fsys.OpenFile(d.name, os.O_RDONLY, 0)
	case core.AccessReadWrite:
		f, err = d.fsys.OpenFile(d.name, os.O_RDWR|os.O_CREATE, 0o644)
	default:
		return nil, errors.Newf(errors.CodeInvalidInput, "unknown access mode %d", mode)
	}
	if err != nil {
		return nil, contentError("open", d.name, err)
	}

	ra, err := newRandomAccess(f, mode)
	if err != nil {
		return nil, contentError("open", d.name, fmt.Errorf("%w: %s random access", err, mode))
	}
	ra.owner = &d.streams
	d.streams.add(ra)
	return ra, nil
}

// WriteTo copies the entry into w.
func (d *Default) WriteTo(w io.Writer) (int64, error) {
	return d.WriteToBuffer(w, d.opts.bufferSize)
}

// WriteToBuffer copies the entry into w using a bufSize byte buffer.
func (d *Default) WriteToBuffer(w io.Writer, bufSize int) (int64, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	in, err := d.InputStream()
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	n, err := io.CopyBuffer(w, in, make([]byte, bufSize))
	if err != nil {
		return n, contentError("copy", d.name, err)
	}
	return n, nil
}

// WriteContent copies the entry into dst, truncating dst first.
func (d *Default) WriteContent(dst core.Content) (n int64, err error) {
	out, err := dst.OutputStream(false)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			n, err = 0, contentError("close", dst.File().Name(), cerr)
		}
	}()
	return d.WriteTo(out)
}

// WriteFile copies the entry into dst's content.
func (d *Default) WriteFile(dst core.Object) (int64, error) {
	dc, err := dst.Content()
	if err != nil {
		return 0, err
	}
	return d.WriteContent(dc)
}

// Certificates returns nil: no provider in this module signs entries.
func (d *Default) Certificates() ([]*x509.Certificate, error) {
	return nil, nil
}

// LastModified returns the entry's modification time.
func (d *Default) LastModified() (time.Time, error) {
	info, err := d.fsys.Stat(d.name)
	if err != nil {
		return time.Time{}, contentError("stat", d.name, err)
	}
	return info.ModTime(), nil
}

// SetLastModified sets the entry's modification time. The filesystem must
// implement core.MetadataFS.
func (d *Default) SetLastModified(t time.Time) error {
	mfs, ok := d.fsys.(core.MetadataFS)
	if !ok {
		return contentError("chtimes", d.name, core.ErrUnsupported)
	}
	if err := mfs.Chtimes(d.name, t, t); err != nil {
		return contentError("chtimes", d.name, err)
	}
	return nil
}

// Size returns the entry's size in bytes.
func (d *Default) Size() (int64, error) {
	info, err := d.stat("stat")
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Attributes returns a copy of the entry's attributes. Filesystems without
// core.AttributeFS report none.
func (d *Default) Attributes() (map[string]interface{}, error) {
	afs, ok := d.fsys.(core.AttributeFS)
	if !ok {
		return map[string]interface{}{}, nil
	}
	attrs, err := afs.Attributes(d.name)
	if err != nil {
		return nil, contentError("attributes", d.name, err)
	}
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out, nil
}

// AttributeNames returns the attribute names in sorted order.
func (d *Default) AttributeNames() ([]string, error) {
	attrs, err := d.Attributes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// HasAttribute reports whether the named attribute is set.
func (d *Default) HasAttribute(name string) (bool, error) {
	attrs, err := d.Attributes()
	if err != nil {
		return false, err
	}
	_, ok := attrs[name]
	return ok, nil
}

// Attribute returns the named attribute, or nil if it is not set.
func (d *Default) Attribute(name string) (interface{}, error) {
	attrs, err := d.Attributes()
	if err != nil {
		return nil, err
	}
	return attrs[name], nil
}

// SetAttribute sets the named attribute. The filesystem must implement
// core.AttributeFS.
func (d *Default) SetAttribute(name string, value interface{}) error {
	afs, ok := d.fsys.(core.AttributeFS)
	if !ok {
		return contentError("setattr", d.name, core.ErrUnsupported)
	}
	if err := afs.SetAttribute(d.name, name, value); err != nil {
		return contentError("setattr", d.name, err)
	}
	return nil
}

// RemoveAttribute removes the named attribute. The filesystem must implement
// core.AttributeFS.
func (d *Default) RemoveAttribute(name string) error {
	afs, ok := d.fsys.(core.AttributeFS)
	if !ok {
		return contentError("rmattr", d.name, core.ErrUnsupported)
	}
	if err := afs.RemoveAttribute(d.name, name); err != nil {
		return contentError("rmattr", d.name, err)
	}
	return nil
}

// ContentInfo returns the entry's content type and encoding.
func (d *Default) ContentInfo() (core.ContentInfo, error) {
	return d.opts.infoFactory.Create(d)
}

// IsOpen reports whether a stream or view opened through d is still open.
func (d *Default) IsOpen() bool {
	return d.streams.any()
}

// Close closes every stream and view opened through d. d stays usable.
func (d *Default) Close() error {
	if err := d.streams.closeAll(); err != nil {
		return contentError("close", d.name, err)
	}
	return nil
}

// contentError wraps err as a content I/O failure on name. Missing entries
// and permission errors keep their own codes.
func contentError(op, name string, err error) error {
	if err == nil {
		return nil
	}

	code := errors.CodeContentIO
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		code = errors.CodeNotFound
	case stderrors.Is(err, fs.ErrPermission):
		code = errors.CodeForbidden
	case stderrors.Is(err, core.ErrUnsupported):
		code = errors.CodeUnsupported
	}

	var pathErr *fs.PathError
	if !stderrors.As(err, &pathErr) {
		err = &fs.PathError{Op: op, Path: name, Err: err}
	}
	return errors.Wrapf(err, code, "content %s failed for %s", op, name)
}

var _ core.Content = (*Default)(nil)
