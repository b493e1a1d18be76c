package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GenerateBatch builds one garden per seed, running up to parallelism
// generations at once (0 means GOMAXPROCS). Results are returned in seed order.
// The first failure cancels the remaining runs. Progress and PhaseStarted hooks
// in opts are ignored; the logger is shared.
func GenerateBatch(ctx context.Context, base Config, seeds []int64, parallelism int, opts Options) ([]*Result, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	shared := Options{Logger: opts.Logger}
	results := make([]*Result, len(seeds))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i, seed := range seeds {
		eg.Go(func() error {
			cfg := base
			cfg.Seed = seed
			res, err := Generate(egCtx, cfg, shared)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
