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

// A Component is a mixture component. It must be able to report its
// density and to draw samples.
type Component interface {
	dist.Dist
	dist.Sampler
}

// Model is a finite mixture of components with unnormalized prior
// weights. Model itself satisfies dist.Dist and dist.Sampler, so a
// mixture can be used anywhere a plain distribution can.
type Model struct {
	components []Component
	weights    []float64

	// wsum is the cached weight sum, recomputed whenever the
	// weights change.
	wsum float64
}

// NewModel returns a mixture of the given components with the given
// unnormalized prior weights. The two slices must have equal nonzero
// length and every weight must be nonnegative, with a positive sum.
// The model takes ownership of both slices.
func NewModel(components []Component, weights []float64) (*Model, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: mixture needs at least one component", dist.ErrInvalidParameter)
	}
	if len(components) != len(weights) {
		return nil, fmt.Errorf("%w: %d components, %d weights", dist.ErrDimension, len(components), len(weights))
	}
	m := &Model{components: components}
	if err := m.SetWeights(weights); err != nil {
		return nil, err
	}
	return m, nil
}

// Len returns the number of components.
func (m *Model) Len() int { return len(m.components) }

// Component returns the i'th component.
func (m *Model) Component(i int) Component { return m.components[i] }

// Weight returns the i'th unnormalized prior weight.
func (m *Model) Weight(i int) float64 { return m.weights[i] }

// Weights returns a copy of the unnormalized prior weights.
func (m *Model) Weights() []float64 {
	w := make([]float64, len(m.weights))
	copy(w, m.weights)
	return w
}

// SetWeights replaces the prior weights. The slice must match the
// component count, every weight must be nonnegative, and the sum must
// be positive.
func (m *Model) SetWeights(weights []float64) error {
	if len(weights) != len(m.components) {
		return fmt.Errorf("%w: %d weights for %d components", dist.ErrDimension, len(weights), len(m.components))
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weight %d is %v", dist.ErrInvalidParameter, i, w)
		}
	}
	sum := floats.Sum(weights)
	if sum <= 0 {
		return fmt.Errorf("%w: weight sum is %v, must be positive", dist.ErrInvalidParameter, sum)
	}
	m.weights = weights
	m.wsum = sum
	return nil
}

// PDF returns the prior-weighted sum of the component densities at x,
// normalized by the weight sum.
func (m *Model) PDF(x float64) float64 {
	var sum float64
	for i, c := range m.components {
		sum += m.weights[i] * c.PDF(x)
	}
	return sum / m.wsum
}

// LogPDF returns the log density at x, computed by log-sum-exp over
// the component log densities so it stays finite where every
// component PDF underflows.
func (m *Model) LogPDF(x float64) float64 {
	terms := make([]float64, 0, len(m.components))
	for i, c := range m.components {
		if m.weights[i] == 0 {
			continue
		}
		terms = append(terms, math.Log(m.weights[i])+c.LogPDF(x))
	}
	if len(terms) == 0 {
		return -inf
	}
	return floats.LogSumExp(terms) - math.Log(m.wsum)
}

// CDF returns the prior-weighted sum of the component CDFs at x,
// normalized by the weight sum.
func (m *Model) CDF(x float64) float64 {
	var sum float64
	for i, c := range m.components {
		sum += m.weights[i] * c.CDF(x)
	}
	return sum / m.wsum
}

// Bounds returns the union of the component bounds.
func (m *Model) Bounds() (float64, float64) {
	lo, hi := inf, -inf
	for _, c := range m.components {
		l, h := c.Bounds()
		lo = math.Min(lo, l)
		hi = math.Max(hi, h)
	}
	return lo, hi
}

// Rand draws a component with probability proportional to its prior
// weight and then draws a value from that component.
func (m *Model) Rand(r *rand.Rand) float64 {
	var u float64
	if r == nil {
		u = rand.Float64()
	} else {
		u = r.Float64()
	}
	u *= m.wsum
	for i, w := range m.weights {
		if u < w || i == len(m.weights)-1 {
			return m.components[i].Rand(r)
		}
		u -= w
	}
	panic("unreachable")
}

// Responsibilities returns the normalized posterior probability that
// each component generated x, as a freshly allocated slice. If every
// prior-weighted density at x is zero the posterior is undefined and
// the split is uniform.
func (m *Model) Responsibilities(x float64) []float64 {
	resp := make([]float64, len(m.components))
	var sum float64
	for i, c := range m.components {
		resp[i] = m.weights[i] * c.PDF(x)
		sum += resp[i]
	}
	if sum == 0 {
		for i := range resp {
			resp[i] = 1 / float64(len(resp))
		}
		return resp
	}
	for i := range resp {
		resp[i] /= sum
	}
	return resp
}
