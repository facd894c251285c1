package content

import (
	"io"
	"log/slog"

	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/transfer"
)

// DefaultBufferSize is the copy buffer size used by WriteTo.
const DefaultBufferSize = 32 * 1024

// Option configures objects created by Resolve and their content handles.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	fallback     FallbackPolicy
	transferOpts []transfer.Option
	infoFactory  core.ContentInfoFactory
	bufferSize   int
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		fallback:    FallbackAlways,
		infoFactory: MimeInfoFactory{},
		bufferSize:  DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for fallback decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFallbackPolicy sets the policy that decides whether a failed managed
// transfer falls back to a stream copy. The default is FallbackAlways.
func WithFallbackPolicy(p FallbackPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.fallback = p
		}
	}
}

// WithTransferOptions passes opts to every managed transfer.
func WithTransferOptions(opts ...transfer.Option) Option {
	return func(o *options) {
		o.transferOpts = append(o.transferOpts, opts...)
	}
}

// WithInfoFactory replaces the factory used by ContentInfo.
func WithInfoFactory(f core.ContentInfoFactory) Option {
	return func(o *options) {
		if f != nil {
			o.infoFactory = f
		}
	}
}

// WithBufferSize sets the copy buffer size used by WriteTo.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}
