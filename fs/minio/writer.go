package minio

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/minio/internal/errs"
	"github.com/jmgilman/objfs/fs/minio/internal/types"
)

// objectWriter is a write handle for an object.
//
// Writes are buffered until the multipart threshold is crossed; after that
// the handle streams through a pipe into a background PutObject. The object
// only becomes visible once Close returns. The content type is sniffed from
// the leading bytes.
type objectWriter struct {
	fs   *MinioFS
	key  string
	name string

	buffer  *bytes.Buffer
	pipeW   *io.PipeWriter
	putRes  chan error
	written int64
	closed  bool
}

func newObjectWriter(mfs *MinioFS, key, name string) *objectWriter {
	return &objectWriter{
		fs:     mfs,
		key:    key,
		name:   name,
		buffer: new(bytes.Buffer),
	}
}

func (w *objectWriter) Name() string {
	return w.name
}

func (w *objectWriter) Read(_ []byte) (int, error) {
	return 0, errs.PathError("read", w.name, fs.ErrInvalid)
}

func (w *objectWriter) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(w.name, w.written, time.Now(), 0o644), nil
}

// Write implements io.Writer.
// nolint:contextcheck // io.Writer.Write signature cannot accept a context parameter
func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errs.PathError("write", w.name, fs.ErrClosed)
	}

	if w.pipeW == nil && int64(w.buffer.Len()+len(p)) <= w.fs.multipartThreshold {
		n, _ := w.buffer.Write(p)
		w.written += int64(n)
		return n, nil
	}

	if w.pipeW == nil {
		w.startStreaming(sniffHead(w.buffer.Bytes(), p))
		if _, err := w.pipeW.Write(w.buffer.Bytes()); err != nil {
			return 0, errs.PathError("write", w.name, err)
		}
		w.buffer = nil
	}

	n, err := w.pipeW.Write(p)
	w.written += int64(n)
	if err != nil {
		return n, errs.PathError("write", w.name, err)
	}
	return n, nil
}

// startStreaming starts the background upload. head is used to detect the
// content type.
// nolint:contextcheck // Background upload; io.Writer.Write cannot accept context
func (w *objectWriter) startStreaming(head []byte) {
	pr, pw := io.Pipe()
	w.pipeW = pw
	w.putRes = make(chan error, 1)
	contentType := mimetype.Detect(head).String()

	go func() {
		_, err := w.fs.client.PutObject(context.Background(), w.fs.bucket, w.key, pr, -1,
			minio.PutObjectOptions{ContentType: contentType})
		_ = pr.CloseWithError(err)
		w.putRes <- errs.Translate(err)
		close(w.putRes)
	}()
}

// Sync uploads buffered data. Streaming uploads complete on Close.
func (w *objectWriter) Sync() error {
	if w.closed || w.pipeW != nil {
		return nil
	}
	return w.put(context.Background())
}

// Close finishes the upload. Closing twice is a no-op.
func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.pipeW != nil {
		_ = w.pipeW.Close()
		if err := <-w.putRes; err != nil {
			return errs.PathError("close", w.name, err)
		}
		return nil
	}
	if err := w.put(context.Background()); err != nil {
		return errs.PathError("close", w.name, err)
	}
	return nil
}

func (w *objectWriter) put(ctx context.Context) error {
	data := w.buffer.Bytes()
	_, err := w.fs.client.PutObject(ctx, w.fs.bucket, w.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimetype.Detect(data).String()})
	return errs.Translate(err)
}

// sniffLimit matches the number of bytes mimetype inspects by default.
const sniffLimit = 3072

// sniffHead returns up to sniffLimit leading bytes of a followed by b.
func sniffHead(a, b []byte) []byte {
	head := make([]byte, 0, sniffLimit)
	head = append(head, a[:min(len(a), sniffLimit)]...)
	return append(head, b[:min(len(b), sniffLimit-len(head))]...)
}

var (
	_ core.File   = (*objectWriter)(nil)
	_ core.Syncer = (*objectWriter)(nil)
)
