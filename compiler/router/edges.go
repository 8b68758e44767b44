package router

import (
	"runtime"
	"sync"
)

// pairIndex is one unordered pair of candidate-motion indices to test for
// incompatibility.
type pairIndex struct{ i, j int }

// buildIncompatibilityEdges returns the set of unordered index pairs into
// candidates whose motions are NOT compatible2D. The O(|V|^2) pairwise
// test is embarrassingly parallel: a bounded worker pool drains a job
// channel of pair indices and fans results into a shared slice behind a
// mutex.
func buildIncompatibilityEdges(candidates []Motion) [][2]int {
	n := len(candidates)
	if n < 2 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan pairIndex, n)
	go func() {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				jobs <- pairIndex{i, j}
			}
		}
		close(jobs)
	}()

	var mu sync.Mutex
	var edges [][2]int
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local [][2]int
			for p := range jobs {
				if !compatible2D(candidates[p.i], candidates[p.j]) {
					local = append(local, [2]int{p.i, p.j})
				}
			}
			if len(local) == 0 {
				return
			}
			mu.Lock()
			edges = append(edges, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return edges
}
