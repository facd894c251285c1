package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmgilman/objfs/fs/billy"
	"github.com/jmgilman/objfs/fs/content"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/minio"
	"github.com/jmgilman/objfs/transfer"
)

// fetchOptions are the fetch command flags.
type fetchOptions struct {
	Dest        string
	Concurrency int
	Backend     string
	Timeout     time.Duration
	Strict      bool
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch <key>...",
		Short: "Download objects to a local directory",
		Long: `Download each key into the destination directory, keeping the key's
path below it. Keys are fetched concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			store, err := minio.NewMinIO(cfg.MinIO(minio.Backend(opts.Backend), logger))
			if err != nil {
				return fmt.Errorf("failed to create object store client: %w", err)
			}
			local := billy.NewLocal(billy.WithRoot(opts.Dest))

			return runFetch(cmd.Context(), cmd.OutOrStdout(), store, local, args, opts, logger)
		},
	}

	cmd.Flags().StringVarP(&opts.Dest, "dest", "d", ".", "destination directory")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 4, "number of objects fetched at once")
	cmd.Flags().StringVar(&opts.Backend, "backend", string(minio.BackendMinIO), "managed transfer backend (minio or s3)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "bound on each managed transfer (0 for none)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "only fall back to a stream copy on retryable transfer failures")

	return cmd
}

// runFetch copies every key of store into local and prints one line per key.
func runFetch(ctx context.Context, out io.Writer, store, local core.FS, keys []string, opts fetchOptions, logger *slog.Logger) error {
	contentOpts := []content.Option{content.WithLogger(logger)}
	if opts.Timeout > 0 {
		contentOpts = append(contentOpts, content.WithTransferOptions(transfer.WithTimeout(opts.Timeout)))
	}
	if opts.Strict {
		contentOpts = append(contentOpts, content.WithFallbackPolicy(content.FallbackRetryable))
	}

	jobs := make([]content.Job, 0, len(keys))
	for _, key := range keys {
		jobs = append(jobs, content.Job{
			Src: content.Resolve(store, key, contentOpts...),
			Dst: content.Resolve(local, key),
		})
	}

	start := time.Now()
	results, err := content.FetchAll(ctx, jobs, opts.Concurrency)

	var (
		total  int64
		failed int
	)
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", r.Src.URI(), r.Err)
			continue
		}
		total += r.Bytes
		fmt.Fprintf(out, "OK    %s -> %s (%d bytes)\n", r.Src.URI(), r.Dst.URI(), r.Bytes)
	}
	logger.Info("fetch complete",
		slog.Int("objects", len(results)),
		slog.Int64("bytes", total),
		slog.Duration("elapsed", time.Since(start)))

	if err != nil {
		return fmt.Errorf("%d of %d objects failed to download", failed, len(results))
	}
	return nil
}
