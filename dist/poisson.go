// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
)

// Poisson is a Poisson distribution with rate Lambda.
type Poisson struct {
	lambda float64
}

// NewPoisson returns a Poisson distribution with the given rate,
// which must be positive.
func NewPoisson(lambda float64) (Poisson, error) {
	var p Poisson
	if err := p.SetLambda(lambda); err != nil {
		return Poisson{}, err
	}
	return p, nil
}

// Lambda returns the rate parameter.
func (p Poisson) Lambda() float64 { return p.lambda }

// SetLambda sets the rate parameter, which must be positive.
func (p *Poisson) SetLambda(lambda float64) error {
	if !(lambda > 0) {
		return fmt.Errorf("%w: rate %v must be positive", ErrInvalidParameter, lambda)
	}
	p.lambda = lambda
	return nil
}

func (p Poisson) Mean() (float64, error)     { return p.lambda, nil }
func (p Poisson) Variance() (float64, error) { return p.lambda, nil }

// PMF is the probability of observing exactly int(k) events.
func (p Poisson) PMF(k float64) float64 {
	ki := math.Floor(k)
	if ki < 0 {
		return 0
	}
	return math.Exp(p.LogPMF(ki))
}

// LogPMF returns the natural log of PMF(k), computed from the
// closed-form log expression k·log λ - λ - log k! so it stays finite
// far into the tails.
func (p Poisson) LogPMF(k float64) float64 {
	ki := math.Floor(k)
	if ki < 0 {
		return -inf
	}
	return ki*math.Log(p.lambda) - p.lambda - mathx.Lgamma(ki+1)
}

// CDF is the probability of observing int(k) or fewer events. It is
// the regularized upper incomplete gamma function Q(k+1, λ).
func (p Poisson) CDF(k float64) float64 {
	ki := math.Floor(k)
	if ki < 0 {
		return 0
	}
	return 1 - mathx.GammaIncLower(ki+1, p.lambda)
}

func (p Poisson) Step() float64 { return 1 }

func (p Poisson) Bounds() (float64, float64) {
	return 0, p.lambda + 6*math.Sqrt(p.lambda)
}

// Rand draws a count by Knuth's product method for moderate rates.
// Large rates are split in half and drawn recursively, since the
// product method's O(λ) cost and e^(-λ) underflow make a direct
// draw unusable there.
func (p Poisson) Rand(r *rand.Rand) float64 {
	const directLimit = 30
	if p.lambda > directLimit {
		// Split off a large integral part and recurse: the sum
		// of independent Poissons is Poisson in the summed
		// rate. This keeps the direct loop short without
		// resorting to an approximate draw.
		half := Poisson{p.lambda / 2}
		return half.Rand(r) + half.Rand(r)
	}
	limit := math.Exp(-p.lambda)
	prod := uniform(r)
	var k float64
	for prod > limit {
		prod *= uniform(r)
		k++
	}
	return k
}

// NormalApprox returns a normal distribution approximation of the
// Poisson distribution p.
//
// Because the Poisson distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation, mapping b.CDF(k) to
// n.CDF(k+0.5).
func (p Poisson) NormalApprox() Normal {
	return mustNormal(p.lambda, p.lambda)
}

// Parameters returns the parameter vector [lambda].
func (p Poisson) Parameters() []float64 { return []float64{p.lambda} }

// SetParameters sets the parameters from the vector [lambda].
func (p *Poisson) SetParameters(v []float64) error {
	if len(v) != 1 {
		return fmt.Errorf("%w: Poisson wants 1, got %d", ErrDimension, len(v))
	}
	return p.SetLambda(v[0])
}

// PoissonEstimator fits a Poisson distribution by maximum
// likelihood, which is the sample mean of the counts.
type PoissonEstimator struct{}

// Estimate fits a Poisson to the counts in xs.
func (PoissonEstimator) Estimate(xs []float64) (Poisson, error) {
	ws := make([]float64, len(xs))
	for i := range ws {
		ws[i] = 1
	}
	return PoissonEstimator{}.EstimateWeighted(xs, ws)
}

// EstimateWeighted fits a Poisson to xs with nonnegative per-sample
// weights.
func (PoissonEstimator) EstimateWeighted(xs, weights []float64) (Poisson, error) {
	if len(xs) != len(weights) {
		return Poisson{}, fmt.Errorf("%w: %d observations, %d weights", ErrDimension, len(xs), len(weights))
	}
	var m Moments
	for i, x := range xs {
		m.AddWeighted(x, weights[i])
	}
	if m.TotalWeight() <= 0 {
		return Poisson{}, fmt.Errorf("%w: total weight is zero", ErrInsufficientData)
	}
	return NewPoisson(m.Mean())
}
