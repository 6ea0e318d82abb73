// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Cauchy is a Cauchy (Lorentz) distribution with location X0 and
// scale Gamma. None of its moments exist.
type Cauchy struct {
	x0, gamma float64
}

// NewCauchy returns a Cauchy distribution with the given location
// and scale. The scale must be positive.
func NewCauchy(x0, gamma float64) (Cauchy, error) {
	var c Cauchy
	c.x0 = x0
	if err := c.SetGamma(gamma); err != nil {
		return Cauchy{}, err
	}
	return c, nil
}

// X0 returns the location parameter.
func (c Cauchy) X0() float64 { return c.x0 }

// Gamma returns the scale parameter.
func (c Cauchy) Gamma() float64 { return c.gamma }

// SetX0 sets the location parameter.
func (c *Cauchy) SetX0(x0 float64) { c.x0 = x0 }

// SetGamma sets the scale parameter, which must be positive.
func (c *Cauchy) SetGamma(gamma float64) error {
	if !(gamma > 0) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidParameter, gamma)
	}
	c.gamma = gamma
	return nil
}

// Mean reports ErrUndefinedMoment; the Cauchy mean does not exist.
func (c Cauchy) Mean() (float64, error) {
	return 0, fmt.Errorf("%w: Cauchy mean does not exist", ErrUndefinedMoment)
}

// Variance reports ErrUndefinedMoment; the Cauchy variance does not
// exist.
func (c Cauchy) Variance() (float64, error) {
	return 0, fmt.Errorf("%w: Cauchy variance does not exist", ErrUndefinedMoment)
}

func (c Cauchy) PDF(x float64) float64 {
	z := (x - c.x0) / c.gamma
	return 1 / (math.Pi * c.gamma * (1 + z*z))
}

func (c Cauchy) LogPDF(x float64) float64 {
	z := (x - c.x0) / c.gamma
	return -math.Log(math.Pi*c.gamma) - math.Log1p(z*z)
}

func (c Cauchy) CDF(x float64) float64 {
	return 0.5 + math.Atan2(x-c.x0, c.gamma)/math.Pi
}

// InvCDF returns the inverse of the CDF for y.
func (c Cauchy) InvCDF(y float64) float64 {
	if y < 0 || y > 1 {
		return nan
	} else if y == 0 {
		return -inf
	} else if y == 1 {
		return inf
	}
	return c.x0 + c.gamma*math.Tan(math.Pi*(y-0.5))
}

func (c Cauchy) Bounds() (float64, float64) {
	// Tails are so heavy there is no meaningful 3-sigma analog;
	// cover the central 99%.
	return c.InvCDF(0.005), c.InvCDF(0.995)
}

// Rand draws a value as the ratio of two independent standard
// Gaussians, which is standard Cauchy, rescaled and shifted.
func (c Cauchy) Rand(r *rand.Rand) float64 {
	for {
		u := normFloat64(r)
		v := normFloat64(r)
		if v != 0 {
			return c.x0 + c.gamma*u/v
		}
	}
}

// Parameters returns the parameter vector [x0, gamma].
func (c Cauchy) Parameters() []float64 { return []float64{c.x0, c.gamma} }

// SetParameters sets the parameters from the vector [x0, gamma].
func (c *Cauchy) SetParameters(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("%w: Cauchy wants 2, got %d", ErrDimension, len(p))
	}
	c.x0 = p[0]
	return c.SetGamma(p[1])
}
