// Package workpool runs independent tasks with a fixed cap on concurrency.
package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Func processes one input. index is the input's position in the original slice.
type Func[In, Out any] func(ctx context.Context, input In, index int) (Out, error)

// Run invokes fn for every input with at most limit calls in flight and
// returns results ordered by input index, independent of completion order.
//
// The first error wins: no further inputs are scheduled, the context handed to
// running siblings is cancelled, and Run waits for them before returning the
// error. Cancelling ctx counts as a failure.
func Run[In, Out any](ctx context.Context, limit int, inputs []In, fn Func[In, Out]) ([]Out, error) {
	if limit < 1 {
		limit = 1
	}

	results := make([]Out, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, input := range inputs {
		i, input := i, input
		// Go blocks while limit tasks are running, so a failure observed
		// during that wait stops scheduling here.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := fn(gctx, input, i)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
