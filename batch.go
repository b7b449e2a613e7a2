package orderedbytes

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// minChunkSize is the smallest number of rows converted by a single goroutine.
const minChunkSize = 256

// ConvertColumnTo encodes every value of a column with the given kind.
// Rows are converted concurrently. The first error encountered is returned,
// annotated with the index of the failing row.
func ConvertColumnTo(ctx context.Context, column []any, k Kind) ([][]byte, error) {
	return convertColumn(ctx, column, func(v any) ([]byte, error) {
		return ConvertTo(v, k)
	})
}

// ConvertColumnFrom decodes every value of a column with the given kind.
// Rows are converted concurrently. The first error encountered is returned,
// annotated with the index of the failing row.
func ConvertColumnFrom(ctx context.Context, column [][]byte, k Kind) ([]any, error) {
	return convertColumn(ctx, column, func(b []byte) (any, error) {
		return ConvertFrom(b, k)
	})
}

func convertColumn[In, Out any](ctx context.Context, column []In, fn func(In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(column))
	if len(column) == 0 {
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	size := (len(column) + workers - 1) / workers
	if size < minChunkSize {
		size = minChunkSize
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(column); start += size {
		if gctx.Err() != nil {
			break
		}

		start, end := start, min(start+size, len(column))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				var err error
				out[i], err = fn(column[i])
				if err != nil {
					return errors.Wrapf(err, "row %d", i)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// the parent context may be canceled before any chunk started
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
