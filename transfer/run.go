package transfer

import (
	"context"
	"log/slog"

	"github.com/jmgilman/objfs/errors"
)

// Run downloads ref into the local file dest through a manager built from
// session and returns the number of bytes transferred.
//
// Run blocks only while waiting for the transfer. The manager is shut down
// before Run returns, whatever the outcome; a shutdown error on an otherwise
// successful transfer is reported as a StageShutdown failure. Run does not
// close session. Every error returned is a *Failure.
func Run(ctx context.Context, session Session, ref ObjectRef, dest string, opts ...Option) (n int64, err error) {
	o := newOptions(opts)
	logger := o.logger.With(slog.String("bucket", ref.Bucket), slog.String("key", ref.Key))

	if session == nil {
		return 0, NewFailure(StageConstruct, ref, errors.New(errors.CodeInvalidInput, "session is nil"))
	}

	mgr, err := session.NewManager()
	if err != nil {
		return 0, NewFailure(StageConstruct, ref, err)
	}
	if mgr == nil {
		return 0, NewFailure(StageConstruct, ref, errors.New(errors.CodeInternal, "session returned a nil manager"))
	}
	defer func() {
		if serr := mgr.Shutdown(); serr != nil {
			logger.Debug("transfer manager shutdown failed", slog.Any("error", serr))
			if err == nil {
				n, err = 0, NewFailure(StageShutdown, ref, serr)
			}
		}
	}()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	logger.Debug("starting managed download", slog.String("dest", dest))
	tr, err := mgr.Download(ctx, ref.Bucket, ref.Key, dest)
	if err != nil {
		return 0, NewFailure(StageInitiate, ref, err)
	}

	if err := tr.Wait(ctx); err != nil {
		return 0, NewFailure(StageWait, ref, err)
	}

	p, err := tr.Progress()
	if err != nil {
		return 0, NewFailure(StageProgress, ref, err)
	}

	logger.Debug("managed download complete",
		slog.Int64("bytes", p.BytesTransferred),
		slog.Int64("total", p.TotalBytes))

	if o.onProgress != nil {
		o.onProgress(p)
	}
	return p.BytesTransferred, nil
}
