package ntt

import "sync"

// parallelForErr runs fn(0..n) across at most workers goroutines,
// chunking contiguous index ranges per goroutine rather than spawning
// one goroutine per item — six-step's row/column counts can run far
// larger than gpu.BatchNTT.Forward/Inverse's typical small polynomial
// batches, so an unbounded goroutine-per-item spawn would defeat the
// point of bounding by ctx.NumberOfProcessors. Grounded on
// gpu.BatchNTT.Forward/Inverse's single sync.WaitGroup fan-out.
// Returns the first error encountered, by index order.
func parallelForErr(workers, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				errs[i] = fn(i)
			}
		}(start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// parallelFor is parallelForErr for work that cannot fail.
func parallelFor(workers, n int, fn func(i int)) {
	_ = parallelForErr(workers, n, func(i int) error {
		fn(i)
		return nil
	})
}
