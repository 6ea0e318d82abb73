// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Exponential is an exponential distribution with the given scale
// (mean). Its rate parameterization is rate = 1/scale.
type Exponential struct {
	scale float64
}

// NewExponential returns an exponential distribution with the given
// scale, which must be positive.
func NewExponential(scale float64) (Exponential, error) {
	var e Exponential
	if err := e.SetScale(scale); err != nil {
		return Exponential{}, err
	}
	return e, nil
}

// Scale returns the scale parameter.
func (e Exponential) Scale() float64 { return e.scale }

// SetScale sets the scale parameter, which must be positive.
func (e *Exponential) SetScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidParameter, scale)
	}
	e.scale = scale
	return nil
}

func (e Exponential) Mean() (float64, error)     { return e.scale, nil }
func (e Exponential) Variance() (float64, error) { return e.scale * e.scale, nil }

func (e Exponential) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Exp(-x/e.scale) / e.scale
}

func (e Exponential) LogPDF(x float64) float64 {
	if x < 0 {
		return -inf
	}
	return -x/e.scale - math.Log(e.scale)
}

func (e Exponential) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-x / e.scale)
}

// InvCDF returns the inverse of the CDF for y.
func (e Exponential) InvCDF(y float64) float64 {
	if y < 0 || y > 1 {
		return nan
	}
	return -math.Log1p(-y) * e.scale
}

func (e Exponential) Bounds() (float64, float64) {
	return 0, -math.Log(1e-6) * e.scale
}

// Rand draws a value by inverse-CDF transform of a uniform.
func (e Exponential) Rand(r *rand.Rand) float64 {
	return -math.Log(uniform(r)) * e.scale
}

// Parameters returns the parameter vector [scale].
func (e Exponential) Parameters() []float64 { return []float64{e.scale} }

// SetParameters sets the parameters from the vector [scale].
func (e *Exponential) SetParameters(p []float64) error {
	if len(p) != 1 {
		return fmt.Errorf("%w: exponential wants 1, got %d", ErrDimension, len(p))
	}
	return e.SetScale(p[0])
}
