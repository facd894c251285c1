package content

import (
	"context"
	stderrors "errors"

	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/transfer"
)

// FallbackPolicy decides whether a failed managed transfer falls back to a
// stream copy. Returning false surfaces the failure to the caller.
type FallbackPolicy func(f *transfer.Failure) bool

var (
	// FallbackAlways falls back on every failure.
	FallbackAlways FallbackPolicy = func(*transfer.Failure) bool { return true }

	// FallbackRetryable falls back only on failures classified as retryable.
	// Permanent failures, such as a missing object, are returned as is.
	FallbackRetryable FallbackPolicy = func(f *transfer.Failure) bool { return f.Retryable() }

	// FallbackNever never falls back.
	FallbackNever FallbackPolicy = func(*transfer.Failure) bool { return false }
)

// ObjectContent is the content of an object store entry.
//
// Every operation except WriteFile is the embedded *Default's. WriteFile into
// a core.LocalObject downloads the object with a managed transfer and falls
// back to the stream copy when the transfer fails and the fallback policy
// allows it.
type ObjectContent struct {
	*Default

	ref    transfer.ObjectRef
	opener transfer.SessionOpener
}

// NewObjectContent returns object content for file, which must belong to
// the store that opener opens sessions on.
func NewObjectContent(file core.Object, ref transfer.ObjectRef, opener transfer.SessionOpener, opts ...Option) *ObjectContent {
	return newObjectContent(newDefault(file, newOptions(opts)), ref, opener)
}

func newObjectContent(d *Default, ref transfer.ObjectRef, opener transfer.SessionOpener) *ObjectContent {
	return &ObjectContent{Default: d, ref: ref, opener: opener}
}

// Ref returns the bucket and key of the object.
func (c *ObjectContent) Ref() transfer.ObjectRef {
	return c.ref
}

// WriteFile copies the object into dst. See WriteFileContext.
func (c *ObjectContent) WriteFile(dst core.Object) (int64, error) {
	return c.WriteFileContext(context.Background(), dst)
}

// WriteFileContext copies the object into dst.
//
// A dst that is not a core.LocalObject gets a stream copy. A local dst is
// downloaded with a managed transfer, and dst is closed when the call
// returns. If the transfer fails with a *transfer.Failure the fallback
// policy accepts, the stream copy runs instead and its result is returned.
// ctx bounds the managed transfer only.
//
// A managed transfer that is interrupted may leave the backend's partial
// file next to dst (minio-go's <dst>.<etag>.part.minio) even after the
// stream copy succeeds. The next managed transfer of the same object
// resumes from it.
func (c *ObjectContent) WriteFileContext(ctx context.Context, dst core.Object) (int64, error) {
	local, ok := dst.(core.LocalObject)
	if !ok {
		return c.Default.WriteFile(dst)
	}

	n, err := c.download(ctx, local)
	if err == nil {
		return n, nil
	}

	var failure *transfer.Failure
	if !stderrors.As(err, &failure) || !c.opts.fallback(failure) {
		return 0, err
	}

	c.opts.logger.Warn("managed transfer failed, falling back to stream copy",
		"stage", string(failure.Stage),
		"bucket", failure.Ref.Bucket,
		"key", failure.Ref.Key,
		"dest", local.LocalPath(),
		"retryable", failure.Retryable(),
		"error", failure.Err)

	return c.Default.WriteFile(dst)
}

// download runs one managed transfer into dst. The session is released
// before dst.
func (c *ObjectContent) download(ctx context.Context, dst core.LocalObject) (n int64, err error) {
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			c.opts.logger.Debug("closing destination failed", "dest", dst.LocalPath(), "error", cerr)
		}
	}()

	if c.opener == nil {
		return 0, transfer.NewFailure(transfer.StageOpen, c.ref, core.ErrUnsupported)
	}
	session, err := c.opener.OpenSession(ctx)
	if err != nil {
		return 0, transfer.NewFailure(transfer.StageOpen, c.ref, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			n, err = 0, transfer.NewFailure(transfer.StageClose, c.ref, cerr)
		}
	}()

	opts := append([]transfer.Option{transfer.WithLogger(c.opts.logger)}, c.opts.transferOpts...)
	return transfer.Run(ctx, session, c.ref, dst.LocalPath(), opts...)
}

var _ core.Content = (*ObjectContent)(nil)
