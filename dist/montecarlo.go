// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math/rand"
	"runtime"
	"sync"
)

// MonteCarloMoments estimates the moments of d empirically from n
// independent draws, fanning the sampling out across parallel
// workers. Each worker draws from its own random source derived from
// seed and accumulates a private Moments, and the per-worker
// accumulators are merged once all workers finish; no state is
// shared while sampling. The caller blocks until every draw is done.
//
// workers ≤ 0 means GOMAXPROCS. This is the one entry point that
// seeds its own sources (deterministically, from seed): handing a
// single caller-owned source to concurrent workers would either race
// or serialize them.
func MonteCarloMoments(d Sampler, seed int64, n, workers int) Moments {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = 1
	}

	results := make([]Moments, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		quota := n / workers
		if w < n%workers {
			quota++
		}
		wg.Add(1)
		go func(w, quota int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed + int64(w)))
			var m Moments
			for i := 0; i < quota; i++ {
				m.Add(d.Rand(r))
			}
			results[w] = m
		}(w, quota)
	}
	wg.Wait()

	var total Moments
	for _, m := range results {
		total.Merge(m)
	}
	return total
}
