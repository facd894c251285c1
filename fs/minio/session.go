package minio

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/minio/minio-go/v7"

	objerrors "github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/minio/internal/errs"
	"github.com/jmgilman/objfs/transfer"
	"github.com/jmgilman/objfs/transfer/s3manager"
)

var errSessionClosed = objerrors.New(objerrors.CodeInvalidInput, "transfer session is closed")

// OpenSession opens a store session for managed downloads.
//
// With BackendMinIO the session shares the filesystem's client. With
// BackendS3 it builds an AWS SDK client for the same endpoint and
// credentials.
func (m *MinioFS) OpenSession(ctx context.Context) (transfer.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.cfg.TransferBackend != BackendS3 {
		return &session{client: m.client, logger: m.logger}, nil
	}

	client, err := s3manager.NewClient(ctx, s3manager.Config{
		Endpoint:     m.cfg.Endpoint,
		Region:       m.cfg.Region,
		AccessKey:    m.cfg.AccessKey,
		SecretKey:    m.cfg.SecretKey,
		UseSSL:       m.cfg.UseSSL,
		UsePathStyle: true,
	})
	if err != nil {
		return nil, err
	}

	return s3manager.NewSession(client,
		s3manager.WithPartSize(m.cfg.PartSize),
		s3manager.WithConcurrency(m.cfg.Concurrency),
		s3manager.WithLogger(m.logger),
	), nil
}

// session is a transfer.Session over a minio-go client.
type session struct {
	client *minio.Client
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

func (s *session) NewManager() (transfer.Manager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errSessionClosed
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &manager{client: s.client, logger: s.logger, ctx: ctx, cancel: cancel}, nil
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// manager runs FGetObject downloads. minio-go writes to a part file next to
// the destination and renames it into place when the download completes.
type manager struct {
	client *minio.Client
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	shutdown bool
}

func (m *manager) Download(ctx context.Context, bucket, key, dest string) (transfer.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shutdown {
		return nil, objerrors.New(objerrors.CodeCanceled, "transfer manager is shut down")
	}
	if bucket == "" || key == "" {
		return nil, objerrors.New(objerrors.CodeInvalidInput, "bucket and key are required")
	}

	dctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.ctx, cancel)

	d := &download{dest: dest, done: make(chan struct{})}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		defer stop()
		defer close(d.done)

		err := m.client.FGetObject(dctx, bucket, key, dest, minio.GetObjectOptions{})
		if err != nil {
			d.err = errs.PathError("download", bucket+"/"+key, errs.Translate(err))
			m.logger.Debug("download failed",
				slog.String("bucket", bucket),
				slog.String("key", key),
				slog.Any("error", err))
		}
	}()

	return d, nil
}

func (m *manager) Shutdown() error {
	m.mu.Lock()
	m.shutdown = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
	return nil
}

type download struct {
	dest string
	done chan struct{}
	err  error
}

// Wait blocks until the download completes or ctx is done. A completed
// download wins over a done ctx.
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

// Progress reports the size of the destination once the download has
// completed. FGetObject exposes no intermediate progress.
func (d *download) Progress() (transfer.Progress, error) {
	select {
	case <-d.done:
	default:
		return transfer.Progress{TotalBytes: -1}, nil
	}
	if d.err != nil {
		return transfer.Progress{TotalBytes: -1}, d.err
	}

	info, err := os.Stat(d.dest)
	if err != nil {
		return transfer.Progress{TotalBytes: -1}, err
	}
	if info.IsDir() {
		return transfer.Progress{}, objerrors.New(objerrors.CodeInvalidInput, "download destination is a directory")
	}
	return transfer.Progress{BytesTransferred: info.Size(), TotalBytes: info.Size()}, nil
}

var (
	_ transfer.Session  = (*session)(nil)
	_ transfer.Manager  = (*manager)(nil)
	_ transfer.Transfer = (*download)(nil)
)
