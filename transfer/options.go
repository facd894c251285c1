package transfer

import (
	"io"
	"log/slog"
	"time"
)

// Option configures Run.
type Option func(*options)

type options struct {
	timeout    time.Duration
	onProgress func(Progress)
	logger     *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTimeout bounds the whole transfer. Zero or negative means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithProgress registers fn to receive the final progress snapshot of a
// successful transfer.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.onProgress = fn
	}
}

// WithLogger sets the logger used for stage tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
