package sim

import (
	"context"
	"runtime"
	"sync"
)

type gameJob struct {
	index int
	seed  int64
}

// runParallel plays the batch on a worker pool. Seeds were expanded up
// front, so the results match a serial run game for game; only wall
// clock time differs.
func runParallel(ctx context.Context, spec *BatchSpec, seeds []int64) ([]GameResult, error) {
	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}

	jobs := make(chan gameJob, len(seeds))
	out := make(chan GameResult, len(seeds))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				out <- runOne(ctx, spec, job.index, job.seed)
			}
		}()
	}

	for i, seed := range seeds {
		jobs <- gameJob{index: i, seed: seed}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]GameResult, len(seeds))
	for r := range out {
		results[r.Game] = r
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
