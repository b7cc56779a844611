package batch

import (
	"context"
	"fmt"

	"github.com/karupanerura/infix-rpn/internal/rpn"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Name string `json:"name"`
	*rpn.Conversion
}

// Run converts every entry with at most parallelism conversions in flight
// (unbounded when parallelism <= 0). Results keep the order of entries.
// Diagnostics are part of each result; only cancellation of ctx fails Run.
func Run(ctx context.Context, conv *rpn.Converter, entries []Entry, parallelism int) ([]Result, error) {
	results := make([]Result, len(entries))

	eg, egCtx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		eg.SetLimit(parallelism)
	}
	for i, entry := range entries {
		i := i
		entry := entry
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("%s: %w", entry.Name, err)
			}
			results[i] = Result{
				Name:       entry.Name,
				Conversion: conv.Convert(entry.Expression),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
