// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-probdist/dist"
)

// HardLearner fits a K-component mixture by hard assignment.
//
// It is the winner-take-all counterpart of EMLearner: each iteration
// assigns every sample entirely to the component with the largest
// prior-weighted density, then re-fits each component from the
// samples assigned to it. Learning stops when an iteration moves no
// samples, or after MaxIterations. Hard assignment converges faster
// than soft EM but can settle into worse local optima.
type HardLearner struct {
	// K is the number of components. It must be at least 1.
	K int

	// Estimator fits one component to weighted samples.
	Estimator Estimator

	// MaxIterations caps the number of iterations. Zero means
	// DefaultMaxIterations.
	MaxIterations int
}

// Fit learns a mixture from xs. The random source seeds the
// initialization exactly as EMLearner.Fit does.
func (l HardLearner) Fit(xs []float64, r *rand.Rand) (*Result, error) {
	if l.K < 1 {
		return nil, fmt.Errorf("%w: K = %d, must be at least 1", dist.ErrInvalidParameter, l.K)
	}
	if l.Estimator == nil {
		return nil, fmt.Errorf("%w: nil estimator", dist.ErrInvalidParameter)
	}
	if len(xs) < l.K {
		return nil, fmt.Errorf("%w: %d samples for %d components", dist.ErrInsufficientData, len(xs), l.K)
	}
	maxIter := l.MaxIterations
	if maxIter == 0 {
		maxIter = DefaultMaxIterations
	}

	// Initialize with the same kernel responsibilities as soft EM,
	// collapsed to each sample's best component.
	em := EMLearner{K: l.K, Estimator: l.Estimator}
	soft := em.initialize(xs, r)
	assign := make([]int, len(xs))
	for i := range xs {
		assign[i] = argmaxColumn(soft, i)
	}
	// Hard assignment can leave a component with no samples at
	// all, which would make its first fit fail. Seed any empty
	// component with the sample that likes it most.
	counts := make([]int, l.K)
	for _, k := range assign {
		counts[k]++
	}
	for k := 0; k < l.K; k++ {
		if counts[k] > 0 {
			continue
		}
		best, bestV := -1, -inf
		for i := range xs {
			if counts[assign[i]] > 1 && soft[k][i] > bestV {
				best, bestV = i, soft[k][i]
			}
		}
		if best >= 0 {
			counts[assign[best]]--
			assign[best] = k
			counts[k]++
		}
	}

	resp := makeResp(l.K, len(xs))
	components := make([]Component, l.K)
	weights := make([]float64, l.K)
	assignResp(assign, resp)
	if err := em.refit(xs, resp, components, weights, nil); err != nil {
		return nil, err
	}

	res := &Result{Termination: MaxIterationsReached}
	for iter := 0; iter < maxIter; iter++ {
		res.Iterations = iter + 1

		moved := 0
		for i, x := range xs {
			best, bestP := 0, -inf
			zero := true
			for k := 0; k < l.K; k++ {
				p := weights[k] * components[k].PDF(x)
				if p > 0 {
					zero = false
				}
				if p > bestP {
					best, bestP = k, p
				}
			}
			if zero {
				// No component gives this sample any
				// mass. Leave it where it is.
				res.ZeroLikelihoodRows++
				continue
			}
			if best != assign[i] {
				assign[i] = best
				moved++
			}
		}
		res.Change = float64(moved)

		assignResp(assign, resp)
		if err := em.refit(xs, resp, components, weights, components); err != nil {
			return nil, err
		}

		if moved == 0 {
			res.Termination = Converged
			break
		}
	}

	model, err := NewModel(components, weights)
	if err != nil {
		return nil, err
	}
	res.Model = model
	return res, nil
}

// assignResp rewrites resp as the one-hot encoding of assign.
func assignResp(assign []int, resp [][]float64) {
	for k := range resp {
		for i := range resp[k] {
			resp[k][i] = 0
		}
	}
	for i, k := range assign {
		resp[k][i] = 1
	}
}

func argmaxColumn(resp [][]float64, i int) int {
	best, bestV := 0, resp[0][i]
	for k := 1; k < len(resp); k++ {
		if resp[k][i] > bestV {
			best, bestV = k, resp[k][i]
		}
	}
	return best
}
