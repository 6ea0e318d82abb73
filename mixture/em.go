// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-probdist/dist"
)

// An Estimator fits a single mixture component to weighted
// observations. The weights are nonnegative and need not sum to 1.
type Estimator interface {
	EstimateWeighted(xs, weights []float64) (Component, error)
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(xs, weights []float64) (Component, error)

func (f EstimatorFunc) EstimateWeighted(xs, weights []float64) (Component, error) {
	return f(xs, weights)
}

// Normals returns an Estimator that fits Gaussian components using e.
// The estimator's variance floor keeps components from collapsing
// onto a single data point during learning.
func Normals(e dist.NormalEstimator) Estimator {
	return EstimatorFunc(func(xs, weights []float64) (Component, error) {
		n, err := e.EstimateWeighted(xs, weights)
		if err != nil {
			return nil, err
		}
		return n, nil
	})
}

// A Termination reports why a learner stopped.
type Termination int

const (
	// Converged means the total responsibility change fell below
	// the learner's tolerance.
	Converged Termination = iota

	// MaxIterationsReached means the iteration cap was hit before
	// convergence. The returned estimate is still usable.
	MaxIterationsReached
)

func (t Termination) String() string {
	switch t {
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max iterations reached"
	}
	return fmt.Sprintf("Termination(%d)", int(t))
}

// A Result is a fitted mixture together with diagnostics from the
// learning run.
type Result struct {
	// Model is the fitted mixture.
	Model *Model

	// Iterations is the number of E/M iterations performed.
	Iterations int

	// Termination reports why the learner stopped.
	Termination Termination

	// Change is the total absolute responsibility change of the
	// final iteration.
	Change float64

	// ZeroLikelihoodRows counts sample rows whose prior-weighted
	// density summed to exactly zero under every component at
	// some point during learning. Such rows fall back to a
	// uniform responsibility split. A large count suggests the
	// initialization or the component family does not cover the
	// data.
	ZeroLikelihoodRows int
}

// EMLearner fits a K-component mixture by soft expectation
// maximization.
//
// Each iteration computes, for every sample, the posterior
// responsibility of every component, then re-fits each component with
// its responsibility column as per-sample weights and replaces the
// prior weights with the responsibility column sums. Learning stops
// when the total absolute responsibility change drops to Tolerance or
// below, or after MaxIterations.
type EMLearner struct {
	// K is the number of components. It must be at least 1.
	K int

	// Estimator fits one component to weighted samples.
	Estimator Estimator

	// Tolerance is the total absolute responsibility change below
	// which the learner stops. Zero means DefaultTolerance.
	Tolerance float64

	// MaxIterations caps the number of E/M iterations. Zero means
	// DefaultMaxIterations.
	MaxIterations int
}

const (
	// DefaultTolerance is the convergence tolerance used when
	// EMLearner.Tolerance is zero.
	DefaultTolerance = 1e-5

	// DefaultMaxIterations is the iteration cap used when
	// EMLearner.MaxIterations is zero.
	DefaultMaxIterations = 100
)

// Fit learns a mixture from xs. The random source seeds the
// initialization; a nil source uses the shared top-level math/rand
// source, making initialization non-reproducible.
//
// Fit fails only on bad configuration or when the initial component
// fits fail. Non-convergence is not an error; the result reports
// MaxIterationsReached and carries the estimate at the cap.
func (l EMLearner) Fit(xs []float64, r *rand.Rand) (*Result, error) {
	if l.K < 1 {
		return nil, fmt.Errorf("%w: K = %d, must be at least 1", dist.ErrInvalidParameter, l.K)
	}
	if l.Estimator == nil {
		return nil, fmt.Errorf("%w: nil estimator", dist.ErrInvalidParameter)
	}
	if len(xs) < l.K {
		return nil, fmt.Errorf("%w: %d samples for %d components", dist.ErrInsufficientData, len(xs), l.K)
	}
	tol := l.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	maxIter := l.MaxIterations
	if maxIter == 0 {
		maxIter = DefaultMaxIterations
	}

	resp := l.initialize(xs, r)
	components := make([]Component, l.K)
	weights := make([]float64, l.K)
	if err := l.refit(xs, resp, components, weights, nil); err != nil {
		return nil, err
	}

	res := &Result{Termination: MaxIterationsReached}
	next := makeResp(l.K, len(xs))
	row := make([]float64, l.K)
	for iter := 0; iter < maxIter; iter++ {
		res.Iterations = iter + 1

		// E-step. Responsibility of component k for sample i is
		// the prior-weighted density, normalized across k.
		change := 0.0
		for i, x := range xs {
			var sum float64
			for k := 0; k < l.K; k++ {
				row[k] = weights[k] * components[k].PDF(x)
				sum += row[k]
			}
			if sum == 0 {
				res.ZeroLikelihoodRows++
				for k := range row {
					row[k] = 1 / float64(l.K)
				}
			} else {
				for k := range row {
					row[k] /= sum
				}
			}
			for k := range row {
				change += math.Abs(row[k] - resp[k][i])
				next[k][i] = row[k]
			}
		}
		resp, next = next, resp

		// M-step. New priors are the responsibility column sums;
		// each component is re-fit with its column as weights.
		if err := l.refit(xs, resp, components, weights, components); err != nil {
			return nil, err
		}

		res.Change = change
		if change <= tol {
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

// initialize builds the initial responsibility matrix from a
// distance kernel around K data points chosen to spread across the
// data.
func (l EMLearner) initialize(xs []float64, r *rand.Rand) [][]float64 {
	intn := func(n int) int {
		if r == nil {
			return rand.Intn(n)
		}
		return r.Intn(n)
	}
	norm := func() float64 {
		if r == nil {
			return rand.NormFloat64()
		}
		return r.NormFloat64()
	}

	var m dist.Moments
	for _, x := range xs {
		m.Add(x)
	}
	// The kernel width must be narrow relative to the cluster
	// separation or the initial responsibilities come out nearly
	// uniform and the learner can stall at the symmetric fixed
	// point with every component fit to the overall mean. The
	// overall deviation overestimates within-cluster spread by
	// construction, so shrink it by K.
	scale := math.Sqrt(m.PopulationVariance()) / float64(l.K)
	if scale == 0 {
		scale = 1
	}

	// Choose the first center uniformly and each later center as
	// the data point farthest from every center so far, so the
	// centers land in distinct clusters rather than piling into
	// one.
	centers := make([]float64, l.K)
	centers[0] = xs[intn(len(xs))]
	for k := 1; k < l.K; k++ {
		best, bestD := 0, -inf
		for i, x := range xs {
			nearest := inf
			for _, c := range centers[:k] {
				if d := math.Abs(x - c); d < nearest {
					nearest = d
				}
			}
			if nearest > bestD {
				best, bestD = i, nearest
			}
		}
		centers[k] = xs[best]
	}
	// Perturbing the chosen centers keeps duplicate data points
	// from yielding identical centers.
	for k := range centers {
		centers[k] += norm() * scale * 0.1
	}

	resp := makeResp(l.K, len(xs))
	for i, x := range xs {
		var sum float64
		for k, c := range centers {
			resp[k][i] = math.Exp(-math.Abs(x-c) / scale)
			sum += resp[k][i]
		}
		if sum == 0 {
			// The kernel underflowed for an extreme
			// outlier. Split it uniformly.
			for k := range centers {
				resp[k][i] = 1 / float64(l.K)
			}
			continue
		}
		for k := range centers {
			resp[k][i] /= sum
		}
	}
	return resp
}

// refit re-estimates every component from its responsibility column
// and stores the column sums as the new unnormalized priors. If a
// column sums to zero the component has no samples; when a previous
// fit exists it is kept unchanged, otherwise the fit fails.
func (l EMLearner) refit(xs []float64, resp [][]float64, components []Component, weights []float64, prev []Component) error {
	for k := 0; k < l.K; k++ {
		weights[k] = floats.Sum(resp[k])
		if weights[k] == 0 && prev != nil && prev[k] != nil {
			components[k] = prev[k]
			continue
		}
		c, err := l.Estimator.EstimateWeighted(xs, resp[k])
		if err != nil {
			return fmt.Errorf("fitting component %d: %w", k, err)
		}
		components[k] = c
	}
	return nil
}

func makeResp(k, n int) [][]float64 {
	resp := make([][]float64, k)
	for i := range resp {
		resp[i] = make([]float64, n)
	}
	return resp
}
