package minio

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/minio/internal/errs"
)

// objectReader streams an object without buffering it in memory.
// Seek reopens the object at the new offset; ReadAt issues its own range
// request and leaves the stream position alone.
type objectReader struct {
	fs     *MinioFS
	key    string
	name   string
	obj    *minio.Object
	info   minio.ObjectInfo
	offset int64
	closed bool
}

func newObjectReader(ctx context.Context, mfs *MinioFS, key, name string) (*objectReader, error) {
	info, err := mfs.client.StatObject(ctx, mfs.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}

	obj, err := mfs.client.GetObject(ctx, mfs.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}

	return &objectReader{fs: mfs, key: key, name: name, obj: obj, info: info}, nil
}

func (r *objectReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errs.PathError("read", r.name, fs.ErrClosed)
	}
	if r.offset >= r.info.Size {
		return 0, io.EOF
	}

	n, err := r.obj.Read(p)
	r.offset += int64(n)
	if n > 0 && errors.Is(err, io.EOF) {
		return n, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, errs.PathError("read", r.name, errs.Translate(err))
	}
	return n, err
}

func (r *objectReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.obj.Close()
}

func (r *objectReader) Stat() (fs.FileInfo, error) {
	return objectFileInfo(r.fs.bucket, r.key, r.info), nil
}

func (r *objectReader) Name() string {
	return r.name
}

func (r *objectReader) Write(_ []byte) (int, error) {
	return 0, errs.PathError("write", r.name, fs.ErrInvalid)
}

// Seek implements io.Seeker.
// nolint:contextcheck // io.Seeker cannot accept context; using background context
func (r *objectReader) Seek(offset int64, whence int) (int64, error) {
	if r.closed {
		return 0, errs.PathError("seek", r.name, fs.ErrClosed)
	}

	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = r.offset + offset
	case io.SeekEnd:
		next = r.info.Size + offset
	default:
		return 0, errs.PathError("seek", r.name, fs.ErrInvalid)
	}
	if next < 0 {
		return 0, errs.PathError("seek", r.name, fs.ErrInvalid)
	}
	if next == r.offset {
		return next, nil
	}

	_ = r.obj.Close()

	opts := minio.GetObjectOptions{}
	if next > 0 && next < r.info.Size {
		if err := opts.SetRange(next, 0); err != nil {
			return 0, errs.PathError("seek", r.name, err)
		}
	}

	obj, err := r.fs.client.GetObject(context.Background(), r.fs.bucket, r.key, opts)
	if err != nil {
		return 0, errs.PathError("seek", r.name, errs.Translate(err))
	}

	r.obj = obj
	r.offset = next
	return next, nil
}

// ReadAt implements io.ReaderAt.
// nolint:contextcheck // io.ReaderAt cannot accept context; using background context
func (r *objectReader) ReadAt(p []byte, off int64) (int, error) {
	if r.closed {
		return 0, errs.PathError("readat", r.name, fs.ErrClosed)
	}
	if off < 0 {
		return 0, errs.PathError("readat", r.name, fs.ErrInvalid)
	}
	if off >= r.info.Size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	end := off + int64(len(p)) - 1
	if end >= r.info.Size {
		end = r.info.Size - 1
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, errs.PathError("readat", r.name, err)
	}

	obj, err := r.fs.client.GetObject(context.Background(), r.fs.bucket, r.key, opts)
	if err != nil {
		return 0, errs.PathError("readat", r.name, errs.Translate(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err != nil {
		return n, errs.PathError("readat", r.name, errs.Translate(err))
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

var (
	_ core.File   = (*objectReader)(nil)
	_ io.Seeker   = (*objectReader)(nil)
	_ io.ReaderAt = (*objectReader)(nil)
)
