// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Pareto is a Pareto (type I) distribution with minimum value Xm and
// tail index Alpha.
type Pareto struct {
	xm, alpha float64
}

// NewPareto returns a Pareto distribution with the given minimum and
// tail index, both of which must be positive.
func NewPareto(xm, alpha float64) (Pareto, error) {
	var p Pareto
	if err := p.SetXm(xm); err != nil {
		return Pareto{}, err
	}
	if err := p.SetAlpha(alpha); err != nil {
		return Pareto{}, err
	}
	return p, nil
}

// Xm returns the scale (minimum value) parameter.
func (p Pareto) Xm() float64 { return p.xm }

// Alpha returns the tail index parameter.
func (p Pareto) Alpha() float64 { return p.alpha }

// SetXm sets the scale parameter, which must be positive.
func (p *Pareto) SetXm(xm float64) error {
	if !(xm > 0) {
		return fmt.Errorf("%w: xm %v must be positive", ErrInvalidParameter, xm)
	}
	p.xm = xm
	return nil
}

// SetAlpha sets the tail index, which must be positive.
func (p *Pareto) SetAlpha(alpha float64) error {
	if !(alpha > 0) {
		return fmt.Errorf("%w: alpha %v must be positive", ErrInvalidParameter, alpha)
	}
	p.alpha = alpha
	return nil
}

// Mean returns αxm/(α-1) for α > 1 and an error otherwise (the mean
// is infinite for α ≤ 1).
func (p Pareto) Mean() (float64, error) {
	if p.alpha <= 1 {
		return 0, fmt.Errorf("%w: Pareto mean needs alpha > 1, have %v", ErrUndefinedMoment, p.alpha)
	}
	return p.alpha * p.xm / (p.alpha - 1), nil
}

// Variance returns the variance for α > 2 and an error otherwise
// (the variance is infinite for α ≤ 2).
func (p Pareto) Variance() (float64, error) {
	if p.alpha <= 2 {
		return 0, fmt.Errorf("%w: Pareto variance needs alpha > 2, have %v", ErrUndefinedMoment, p.alpha)
	}
	a := p.alpha
	return p.xm * p.xm * a / ((a - 1) * (a - 1) * (a - 2)), nil
}

func (p Pareto) PDF(x float64) float64 {
	if x < p.xm {
		return 0
	}
	return p.alpha * math.Pow(p.xm, p.alpha) / math.Pow(x, p.alpha+1)
}

func (p Pareto) LogPDF(x float64) float64 {
	if x < p.xm {
		return -inf
	}
	return math.Log(p.alpha) + p.alpha*math.Log(p.xm) - (p.alpha+1)*math.Log(x)
}

func (p Pareto) CDF(x float64) float64 {
	if x <= p.xm {
		return 0
	}
	return 1 - math.Pow(p.xm/x, p.alpha)
}

// InvCDF returns the inverse of the CDF for y.
func (p Pareto) InvCDF(y float64) float64 {
	if y < 0 || y > 1 {
		return nan
	} else if y == 1 {
		return inf
	}
	return p.xm / math.Pow(1-y, 1/p.alpha)
}

func (p Pareto) Bounds() (float64, float64) {
	return p.xm, p.InvCDF(0.999)
}

// Rand draws a value by inverse-CDF transform of a uniform.
func (p Pareto) Rand(r *rand.Rand) float64 {
	return p.xm / math.Pow(uniform(r), 1/p.alpha)
}

// Parameters returns the parameter vector [xm, alpha].
func (p Pareto) Parameters() []float64 { return []float64{p.xm, p.alpha} }

// SetParameters sets the parameters from the vector [xm, alpha].
func (p *Pareto) SetParameters(v []float64) error {
	if len(v) != 2 {
		return fmt.Errorf("%w: Pareto wants 2, got %d", ErrDimension, len(v))
	}
	if err := p.SetXm(v[0]); err != nil {
		return err
	}
	return p.SetAlpha(v[1])
}
