// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmv

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
)

// Dirichlet is a Dirichlet distribution over the probability simplex
// with concentration parameters Alpha.
type Dirichlet struct {
	alpha []float64

	// lmb is the cached log multinomial beta of alpha, the
	// distribution's log normalizing constant.
	lmb float64
}

// NewDirichlet returns a Dirichlet distribution with the given
// concentration parameters, all of which must be positive. There
// must be at least two.
func NewDirichlet(alpha []float64) (*Dirichlet, error) {
	d := &Dirichlet{}
	if err := d.SetAlpha(alpha); err != nil {
		return nil, err
	}
	return d, nil
}

// Dim returns the dimension of the distribution's variates.
func (d *Dirichlet) Dim() int { return len(d.alpha) }

// Alpha returns the concentration parameters. The caller must not
// modify them.
func (d *Dirichlet) Alpha() []float64 { return d.alpha }

// SetAlpha sets the concentration parameters.
func (d *Dirichlet) SetAlpha(alpha []float64) error {
	if len(alpha) < 2 {
		return fmt.Errorf("%w: Dirichlet needs ≥ 2 concentrations, have %d", ErrDimension, len(alpha))
	}
	for i, a := range alpha {
		if !(a > 0) {
			return fmt.Errorf("%w: concentration[%d] = %v must be positive", ErrInvalidParameter, i, a)
		}
	}
	d.alpha = append(d.alpha[:0:0], alpha...)
	d.lmb = mathx.LMultinomialBeta(d.alpha)
	return nil
}

// Mean returns the mean vector αᵢ/α₀.
func (d *Dirichlet) Mean() ([]float64, error) {
	a0 := 0.0
	for _, a := range d.alpha {
		a0 += a
	}
	out := make([]float64, len(d.alpha))
	for i, a := range d.alpha {
		out[i] = a / a0
	}
	return out, nil
}

// PDF returns the density at x. Points off the simplex (a
// non-positive component, or components not summing to 1) have zero
// density rather than being errors.
func (d *Dirichlet) PDF(x []float64) float64 {
	return math.Exp(d.LogPDF(x))
}

// LogPDF returns the log density at x, or -Inf off the simplex.
func (d *Dirichlet) LogPDF(x []float64) float64 {
	if len(x) != len(d.alpha) {
		panic(fmt.Sprintf("distmv: variate length %d, dimension %d", len(x), len(d.alpha)))
	}
	sum := 0.0
	for _, xi := range x {
		if xi <= 0 {
			return -inf
		}
		sum += xi
	}
	if math.Abs(sum-1) > 1e-9 {
		return -inf
	}
	ll := -d.lmb
	for i, xi := range x {
		ll += (d.alpha[i] - 1) * math.Log(xi)
	}
	return ll
}

// Rand draws a variate by normalizing independent unit-scale gamma
// draws with shapes αᵢ.
func (d *Dirichlet) Rand(r *rand.Rand) []float64 {
	out := make([]float64, len(d.alpha))
	sum := 0.0
	for i, a := range d.alpha {
		out[i] = gammaRand(a, 1, r)
		sum += out[i]
	}
	if sum == 0 {
		// All-zero draws are possible only with tiny shapes
		// that underflow; fall back to the uniform center.
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Parameters returns the concentration vector.
func (d *Dirichlet) Parameters() []float64 {
	return append([]float64(nil), d.alpha...)
}

// SetParameters sets the parameters from the concentration vector.
// The dimension is fixed at construction.
func (d *Dirichlet) SetParameters(p []float64) error {
	if len(p) != len(d.alpha) {
		return fmt.Errorf("%w: %d-dimensional Dirichlet wants %d, got %d", ErrDimension, len(d.alpha), len(d.alpha), len(p))
	}
	return d.SetAlpha(p)
}
