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

// InverseGamma is the distribution of 1/G for G gamma-distributed
// with the given shape and rate 1/scale. It is parameterized by
// Shape and Scale (the scale here is the conventional β, so the
// underlying gamma has scale 1/β).
type InverseGamma struct {
	shape, scale float64

	// logCoef is the cached log leading coefficient,
	// α·log β - log Γ(α), recomputed whenever a parameter
	// changes.
	logCoef float64
}

// NewInverseGamma returns an inverse-gamma distribution with the
// given shape and scale, both of which must be positive.
func NewInverseGamma(shape, scale float64) (InverseGamma, error) {
	var ig InverseGamma
	if err := ig.SetShape(shape); err != nil {
		return InverseGamma{}, err
	}
	if err := ig.SetScale(scale); err != nil {
		return InverseGamma{}, err
	}
	return ig, nil
}

// Shape returns the shape parameter.
func (ig InverseGamma) Shape() float64 { return ig.shape }

// Scale returns the scale parameter.
func (ig InverseGamma) Scale() float64 { return ig.scale }

// SetShape sets the shape parameter, which must be positive.
func (ig *InverseGamma) SetShape(shape float64) error {
	if !(shape > 0) {
		return fmt.Errorf("%w: shape %v must be positive", ErrInvalidParameter, shape)
	}
	ig.shape = shape
	ig.recompute()
	return nil
}

// SetScale sets the scale parameter, which must be positive.
func (ig *InverseGamma) SetScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidParameter, scale)
	}
	ig.scale = scale
	ig.recompute()
	return nil
}

func (ig *InverseGamma) recompute() {
	if ig.shape > 0 && ig.scale > 0 {
		ig.logCoef = ig.shape*math.Log(ig.scale) - mathx.Lgamma(ig.shape)
	}
}

// Mean returns β/(α-1) for shape > 1 and an error otherwise.
func (ig InverseGamma) Mean() (float64, error) {
	if ig.shape <= 1 {
		return 0, fmt.Errorf("%w: inverse-gamma mean needs shape > 1, have %v", ErrUndefinedMoment, ig.shape)
	}
	return ig.scale / (ig.shape - 1), nil
}

// Variance returns β²/((α-1)²(α-2)) for shape > 2 and an error
// otherwise.
func (ig InverseGamma) Variance() (float64, error) {
	if ig.shape <= 2 {
		return 0, fmt.Errorf("%w: inverse-gamma variance needs shape > 2, have %v", ErrUndefinedMoment, ig.shape)
	}
	a := ig.shape - 1
	return ig.scale * ig.scale / (a * a * (ig.shape - 2)), nil
}

func (ig InverseGamma) PDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Exp(ig.LogPDF(x))
}

func (ig InverseGamma) LogPDF(x float64) float64 {
	if x <= 0 {
		return -inf
	}
	return ig.logCoef - (ig.shape+1)*math.Log(x) - ig.scale/x
}

func (ig InverseGamma) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// P(X ≤ x) = Q(α, β/x) = 1 - P(α, β/x).
	return 1 - mathx.GammaIncLower(ig.shape, ig.scale/x)
}

func (ig InverseGamma) Bounds() (float64, float64) {
	// The mode is β/(α+1); the upper tail is polynomial, so use a
	// generous multiple of the mode.
	mode := ig.scale / (ig.shape + 1)
	return 0, 50 * mode
}

// Rand draws a value as the reciprocal of a gamma draw with the
// reciprocal scale.
func (ig InverseGamma) Rand(r *rand.Rand) float64 {
	g := Gamma{shape: ig.shape, scale: 1 / ig.scale}
	g.recompute()
	return 1 / g.Rand(r)
}

// Parameters returns the parameter vector [shape, scale].
func (ig InverseGamma) Parameters() []float64 {
	return []float64{ig.shape, ig.scale}
}

// SetParameters sets the parameters from the vector [shape, scale].
func (ig *InverseGamma) SetParameters(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("%w: inverse-gamma wants 2, got %d", ErrDimension, len(p))
	}
	if err := ig.SetShape(p[0]); err != nil {
		return err
	}
	return ig.SetScale(p[1])
}
