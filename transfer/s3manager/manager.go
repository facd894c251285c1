package s3manager

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/transfer"
)

var (
	errNilClient = errors.New(errors.CodeInvalidConfig, "s3 client is nil")
	errShutdown  = errors.New(errors.CodeCanceled, "transfer manager is shut down")
)

// Manager is a transfer.Manager backed by manager.Downloader.
type Manager struct {
	downloader *manager.Downloader
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newManager(d *manager.Downloader, logger *slog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		downloader: d,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Download implements transfer.Manager.
func (m *Manager) Download(ctx context.Context, bucket, key, dest string) (transfer.Transfer, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, errShutdown
	}
	m.wg.Add(1)
	m.mu.Unlock()

	if bucket == "" || key == "" {
		m.wg.Done()
		return nil, errors.New(errors.CodeInvalidInput, "bucket and key are required")
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.wg.Done()
		return nil, errors.Wrapf(err, errors.CodeContentIO, "failed to create directory for %s", dest)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		m.wg.Done()
		return nil, errors.Wrapf(err, errors.CodeContentIO, "failed to create temporary file for %s", dest)
	}

	dctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.ctx, cancel)

	d := &download{
		done:  make(chan struct{}),
		w:     &countingWriterAt{f: tmp},
		total: -1,
	}

	go func() {
		defer m.wg.Done()
		defer cancel()
		defer stop()

		n, err := m.downloader.Download(dctx, d.w, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			err = translateError(err, bucket, key)
		}
		d.finish(tmp, dest, n, err)

		if d.err != nil {
			m.logger.Debug("download failed",
				slog.String("bucket", bucket),
				slog.String("key", key),
				slog.Any("error", d.err))
		}
	}()

	return d, nil
}

// Shutdown implements transfer.Manager. It cancels in-flight downloads and
// waits for them to release their files.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
	return nil
}

var _ transfer.Manager = (*Manager)(nil)

type download struct {
	done chan struct{}
	w    *countingWriterAt

	// set before done is closed
	total int64
	err   error
}

func (d *download) finish(tmp *os.File, dest string, n int64, err error) {
	defer close(d.done)

	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dest)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		d.err = err
		return
	}
	d.total = n
}

// Wait implements transfer.Transfer. A download that has already finished
// reports its own result even if ctx is done.
func (d *download) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		select {
		case <-d.done:
			return d.err
		default:
			return ctx.Err()
		}
	}
}

// Progress implements transfer.Transfer. While the download runs,
// BytesTransferred counts every write, including parts the downloader
// retries. Once it completes, both fields are the size the downloader
// reports.
func (d *download) Progress() (transfer.Progress, error) {
	select {
	case <-d.done:
		if d.err != nil {
			return transfer.Progress{BytesTransferred: d.w.written.Load(), TotalBytes: -1}, d.err
		}
		return transfer.Progress{BytesTransferred: d.total, TotalBytes: d.total}, nil
	default:
		return transfer.Progress{BytesTransferred: d.w.written.Load(), TotalBytes: -1}, nil
	}
}

// countingWriterAt records how many bytes the downloader has written so far.
type countingWriterAt struct {
	f       *os.File
	written atomic.Int64
}

func (w *countingWriterAt) WriteAt(p []byte, off int64) (int, error) {
	n, err := w.f.WriteAt(p, off)
	w.written.Add(int64(n))
	return n, err
}
