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

// Beta is a beta distribution on [0, 1] with shape parameters Alpha
// and Beta.
type Beta struct {
	alpha, beta float64

	// lbeta is the cached value of log B(α, β), recomputed
	// whenever a parameter changes.
	lbeta float64
}

// NewBeta returns a beta distribution with the given shapes, both of
// which must be positive.
func NewBeta(alpha, beta float64) (Beta, error) {
	var b Beta
	if err := b.SetAlpha(alpha); err != nil {
		return Beta{}, err
	}
	if err := b.SetBeta(beta); err != nil {
		return Beta{}, err
	}
	return b, nil
}

// Alpha returns the first shape parameter.
func (b Beta) Alpha() float64 { return b.alpha }

// Beta returns the second shape parameter.
func (b Beta) Beta() float64 { return b.beta }

// SetAlpha sets the first shape parameter, which must be positive.
func (b *Beta) SetAlpha(alpha float64) error {
	if !(alpha > 0) {
		return fmt.Errorf("%w: alpha %v must be positive", ErrInvalidParameter, alpha)
	}
	b.alpha = alpha
	b.recompute()
	return nil
}

// SetBeta sets the second shape parameter, which must be positive.
func (b *Beta) SetBeta(beta float64) error {
	if !(beta > 0) {
		return fmt.Errorf("%w: beta %v must be positive", ErrInvalidParameter, beta)
	}
	b.beta = beta
	b.recompute()
	return nil
}

func (b *Beta) recompute() {
	if b.alpha > 0 && b.beta > 0 {
		b.lbeta = mathx.Lbeta(b.alpha, b.beta)
	}
}

func (b Beta) Mean() (float64, error) {
	return b.alpha / (b.alpha + b.beta), nil
}

func (b Beta) Variance() (float64, error) {
	s := b.alpha + b.beta
	return b.alpha * b.beta / (s * s * (s + 1)), nil
}

func (b Beta) PDF(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return math.Exp(b.LogPDF(x))
}

func (b Beta) LogPDF(x float64) float64 {
	if x < 0 || x > 1 {
		return -inf
	}
	if x == 0 || x == 1 {
		// The density diverges or vanishes at the endpoints
		// depending on the shapes; resolve by limit.
		num := b.beta
		if x == 0 {
			num = b.alpha
		}
		switch {
		case num < 1:
			return inf
		case num > 1:
			return -inf
		}
		// Shape exactly 1: both power terms are 1 at this
		// endpoint, so the density is 1/B(α,β). The general
		// expression would evaluate 0·log(0) here.
		return -b.lbeta
	}
	return (b.alpha-1)*math.Log(x) + (b.beta-1)*math.Log1p(-x) - b.lbeta
}

func (b Beta) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return mathx.BetaInc(x, b.alpha, b.beta)
}

func (b Beta) Bounds() (float64, float64) { return 0, 1 }

// Rand draws a value as Gₐ/(Gₐ+G_b) for independent unit-scale gamma
// draws with shapes α and β.
func (b Beta) Rand(r *rand.Rand) float64 {
	ga := Gamma{shape: b.alpha, scale: 1}
	gb := Gamma{shape: b.beta, scale: 1}
	ga.recompute()
	gb.recompute()
	x, y := ga.Rand(r), gb.Rand(r)
	if x+y == 0 {
		return 0.5
	}
	return x / (x + y)
}

// Parameters returns the parameter vector [alpha, beta].
func (b Beta) Parameters() []float64 { return []float64{b.alpha, b.beta} }

// SetParameters sets the parameters from the vector [alpha, beta].
func (b *Beta) SetParameters(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("%w: beta wants 2, got %d", ErrDimension, len(p))
	}
	if err := b.SetAlpha(p[0]); err != nil {
		return err
	}
	return b.SetBeta(p[1])
}

// BetaEstimator fits a Beta distribution by the method of moments:
// with m the sample mean and v the sample variance,
//
//	α = m(m(1-m)/v - 1),  β = (1-m)(m(1-m)/v - 1)
//
// which requires v < m(1-m).
type BetaEstimator struct{}

// Estimate fits a Beta to xs, all of which must lie in (0, 1).
func (BetaEstimator) Estimate(xs []float64) (Beta, error) {
	ws := make([]float64, len(xs))
	for i := range ws {
		ws[i] = 1
	}
	return BetaEstimator{}.EstimateWeighted(xs, ws)
}

// EstimateWeighted fits a Beta to xs with nonnegative per-sample
// weights.
func (BetaEstimator) EstimateWeighted(xs, weights []float64) (Beta, error) {
	if len(xs) != len(weights) {
		return Beta{}, fmt.Errorf("%w: %d observations, %d weights", ErrDimension, len(xs), len(weights))
	}
	var m Moments
	for i, x := range xs {
		m.AddWeighted(x, weights[i])
	}
	if m.TotalWeight() <= 0 {
		return Beta{}, fmt.Errorf("%w: total weight is zero", ErrInsufficientData)
	}
	mean, v := m.Mean(), m.PopulationVariance()
	if !(v > 0) || v >= mean*(1-mean) {
		return Beta{}, fmt.Errorf("%w: moments (mean %v, variance %v) do not describe a beta", ErrInsufficientData, mean, v)
	}
	common := mean*(1-mean)/v - 1
	return NewBeta(mean*common, (1-mean)*common)
}
