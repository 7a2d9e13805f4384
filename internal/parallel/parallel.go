// Package parallel fans independent index ranges out over goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Resolve maps a configured worker count to an effective one: values <= 0
// mean NumWorkers, and there is never more than one worker per index.
func Resolve(workers, total int) int {
	if workers <= 0 {
		workers = NumWorkers()
	}
	return max(min(workers, total), 1)
}

// For executes fn for indices [start, end) using n workers, each owning one
// contiguous block. Use it when every index costs about the same.
func For(start, end, n int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if n <= 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (total + n - 1) / n
	for lo := start; lo < end; lo += chunkSize {
		hi := min(lo+chunkSize, end)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}()
	}
	wg.Wait()
}

// ForDynamic executes fn for indices [start, end) using n workers that pull
// chunks of chunkSize indices from a shared queue. Use it when the cost per
// index is uneven, such as the rows of a triangular fill.
func ForDynamic(start, end, chunkSize, n int, fn func(i int)) {
	if end <= start {
		return
	}
	chunkSize = max(chunkSize, 1)
	if n <= 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	chunks := make(chan [2]int, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunks {
				for i := c[0]; i < c[1]; i++ {
					fn(i)
				}
			}
		}()
	}

	for lo := start; lo < end; lo += chunkSize {
		chunks <- [2]int{lo, min(lo+chunkSize, end)}
	}
	close(chunks)
	wg.Wait()
}
