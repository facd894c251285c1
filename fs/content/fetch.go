package content

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/objfs/fs/core"
)

// Job is one source to copy into one destination.
type Job struct {
	Src core.Object
	Dst core.Object
}

// Result is the outcome of one Job.
type Result struct {
	Job
	Bytes int64
	Err   error
}

// contextWriter is implemented by content that can bound WriteFile with a
// context, such as *ObjectContent.
type contextWriter interface {
	WriteFileContext(ctx context.Context, dst core.Object) (int64, error)
}

// FetchAll runs jobs with at most limit running at once (unlimited when
// limit <= 0). Each job uses its own content handle, which is released when
// the job finishes.
//
// A failed job does not stop the others. Results are returned in job order,
// along with the joined errors of the failed jobs. Jobs not started before
// ctx is done fail with ctx's error.
func FetchAll(ctx context.Context, jobs []Job, limit int) ([]Result, error) {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Bytes, results[i].Err = fetch(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Src.URI(), r.Err))
		}
	}
	return results, stderrors.Join(errs...)
}

func fetch(ctx context.Context, job Job) (n int64, err error) {
	defer func() {
		_ = job.Dst.Close()
		if cerr := job.Src.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	c, err := job.Src.Content()
	if err != nil {
		return 0, err
	}
	if cw, ok := c.(contextWriter); ok {
		return cw.WriteFileContext(ctx, job.Dst)
	}
	return c.WriteFile(job.Dst)
}
