package s3manager

import (
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/jmgilman/objfs/transfer"
)

// Option configures a Session.
type Option func(*Session)

// WithPartSize sets the size of each ranged GET. Zero keeps the SDK default.
func WithPartSize(size int64) Option {
	return func(s *Session) {
		s.partSize = size
	}
}

// WithConcurrency sets the number of parts fetched in parallel per download.
// Zero keeps the SDK default.
func WithConcurrency(n int) Option {
	return func(s *Session) {
		s.concurrency = n
	}
}

// WithLogger sets the logger for download tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCloser registers a function run when the session is closed, typically
// to release whatever owns the client.
func WithCloser(fn func() error) Option {
	return func(s *Session) {
		s.closer = fn
	}
}

// Session is a transfer.Session over one S3 client.
type Session struct {
	client      manager.DownloadAPIClient
	partSize    int64
	concurrency int
	logger      *slog.Logger
	closer      func() error
}

// NewSession returns a session over client.
func NewSession(client manager.DownloadAPIClient, opts ...Option) *Session {
	s := &Session{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewManager implements transfer.Session.
func (s *Session) NewManager() (transfer.Manager, error) {
	if s.client == nil {
		return nil, errNilClient
	}

	downloader := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		if s.partSize > 0 {
			d.PartSize = s.partSize
		}
		if s.concurrency > 0 {
			d.Concurrency = s.concurrency
		}
	})
	return newManager(downloader, s.logger), nil
}

// Close implements transfer.Session.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	fn := s.closer
	s.closer = nil
	return fn()
}

var _ transfer.Session = (*Session)(nil)
