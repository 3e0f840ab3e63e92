package pipeline

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/strichware/bardec/internal/transform"
)

type transformHit struct {
	index  int
	result Result
}

// searchParallel fans the transform catalog out over a worker pool sharing
// one budget counter. The first success cancels the remaining workers; if
// several workers succeed before cancellation lands, the hit with the lowest
// catalog index wins so repeated runs agree on the same answer.
func (p *Pipeline) searchParallel(ctx context.Context, img image.Image, transforms []transform.Transform, st *searchState) (Result, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.cfg.Workers
	if workers > len(transforms) {
		workers = len(transforms)
	}

	jobs := make(chan int, len(transforms))
	hits := make(chan transformHit, len(transforms))
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for itn := 0; itn < workers; itn++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				res, ok, err := p.searchTransform(ctx, img, transforms[idx], st)
				if err != nil {
					errs <- err
					cancel()
					return
				}
				if ok {
					hits <- transformHit{index: idx, result: res}
					cancel()
					return
				}
			}
		}()
	}

	for idx := range transforms {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	close(hits)
	close(errs)

	best, found := transformHit{index: len(transforms)}, false
	for hit := range hits {
		if hit.index < best.index {
			best, found = hit, true
		}
	}
	if found {
		return best.result, true, nil
	}

	for err := range errs {
		if errors.Is(err, ErrBudgetExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, false, err
		}
	}
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return Result{}, false, err
	}
	return Result{}, false, nil
}
