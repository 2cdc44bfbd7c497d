// Package parallel provides the small worker-pool helper used to spread
// independent work items across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// For runs fn(i) for every i in [0, items) across at most workers
// goroutines and blocks until all calls return. workers <= 0 selects the
// number of available CPU cores. Items are handed out one at a time, so
// uneven per-item cost still balances across the pool.
func For(items, workers int, fn func(i int)) {
	if items <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	if workers == 1 {
		for i := 0; i < items; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	next := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}

	for i := 0; i < items; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}
