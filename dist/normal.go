// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Normal is a normal (Gaussian) distribution with mean Mu and
// variance Sigma2.
type Normal struct {
	mu, sigma2 float64

	// logCoef is the cached log of the leading coefficient,
	// -log(σ√(2π)), recomputed whenever sigma2 changes.
	logCoef float64
}

// 1/sqrt(2 * pi)
const invSqrt2Pi = 0.39894228040143267793994605993438186847585863116493465766592583

const log2Pi = 1.8378770664093454835606594728112352797227949472755668256343030809

// StdNormal is the standard normal distribution (Mu = 0, Sigma2 = 1).
var StdNormal = mustNormal(0, 1)

// NewNormal returns a normal distribution with the given mean and
// variance. The variance must be positive.
func NewNormal(mu, sigma2 float64) (Normal, error) {
	var n Normal
	n.mu = mu
	if err := n.SetSigma2(sigma2); err != nil {
		return Normal{}, err
	}
	return n, nil
}

func mustNormal(mu, sigma2 float64) Normal {
	n, err := NewNormal(mu, sigma2)
	if err != nil {
		panic(err)
	}
	return n
}

// Mu returns the mean parameter.
func (n Normal) Mu() float64 { return n.mu }

// Sigma2 returns the variance parameter.
func (n Normal) Sigma2() float64 { return n.sigma2 }

// SetMu sets the mean parameter.
func (n *Normal) SetMu(mu float64) { n.mu = mu }

// SetSigma2 sets the variance parameter, which must be positive.
func (n *Normal) SetSigma2(sigma2 float64) error {
	if !(sigma2 > 0) {
		return fmt.Errorf("%w: variance %v must be positive", ErrInvalidParameter, sigma2)
	}
	n.sigma2 = sigma2
	n.logCoef = -0.5 * (log2Pi + math.Log(sigma2))
	return nil
}

func (n Normal) Mean() (float64, error)     { return n.mu, nil }
func (n Normal) Variance() (float64, error) { return n.sigma2, nil }

func (n Normal) PDF(x float64) float64 {
	z := x - n.mu
	return math.Exp(-z*z/(2*n.sigma2)) * invSqrt2Pi / math.Sqrt(n.sigma2)
}

func (n Normal) LogPDF(x float64) float64 {
	z := x - n.mu
	return n.logCoef - z*z/(2*n.sigma2)
}

func (n Normal) CDF(x float64) float64 {
	return math.Erfc(-(x-n.mu)/math.Sqrt(2*n.sigma2)) / 2
}

// InvCDF returns the inverse of the CDF for y.
func (n Normal) InvCDF(p float64) (x float64) {
	// This is based on Peter John Acklam's inverse normal CDF
	// algorithm: http://home.online.no/~pjacklam/notes/invnorm/
	const (
		a1 = -3.969683028665376e+01
		a2 = 2.209460984245205e+02
		a3 = -2.759285104469687e+02
		a4 = 1.383577518672690e+02
		a5 = -3.066479806614716e+01
		a6 = 2.506628277459239e+00

		b1 = -5.447609879822406e+01
		b2 = 1.615858368580409e+02
		b3 = -1.556989798598866e+02
		b4 = 6.680131188771972e+01
		b5 = -1.328068155288572e+01

		c1 = -7.784894002430293e-03
		c2 = -3.223964580411365e-01
		c3 = -2.400758277161838e+00
		c4 = -2.549732539343734e+00
		c5 = 4.374664141464968e+00
		c6 = 2.938163982698783e+00

		d1 = 7.784695709041462e-03
		d2 = 3.224671290700398e-01
		d3 = 2.445134137142996e+00
		d4 = 3.754408661907416e+00

		plow  = 0.02425
		phigh = 1 - plow
	)

	if p < 0 || p > 1 {
		return nan
	} else if p == 0 {
		return -inf
	} else if p == 1 {
		return inf
	}

	if p < plow {
		// Rational approximation for lower region.
		q := math.Sqrt(-2 * math.Log(p))
		x = (((((c1*q+c2)*q+c3)*q+c4)*q+c5)*q + c6) /
			((((d1*q+d2)*q+d3)*q+d4)*q + 1)
	} else if phigh < p {
		// Rational approximation for upper region.
		q := math.Sqrt(-2 * math.Log(1-p))
		x = -(((((c1*q+c2)*q+c3)*q+c4)*q+c5)*q + c6) /
			((((d1*q+d2)*q+d3)*q+d4)*q + 1)
	} else {
		// Rational approximation for central region.
		q := p - 0.5
		r := q * q
		x = (((((a1*r+a2)*r+a3)*r+a4)*r+a5)*r + a6) * q /
			(((((b1*r+b2)*r+b3)*r+b4)*r+b5)*r + 1)
	}

	// Refine approximation.
	e := 0.5*math.Erfc(-x/math.Sqrt2) - p
	u := e * math.Sqrt(2*math.Pi) * math.Exp(x*x/2)
	x = x - u/(1+x*u/2)

	// Adjust from standard normal.
	return x*math.Sqrt(n.sigma2) + n.mu
}

// Rand draws a value using the source's NormFloat64 generator and
// an affine rescale.
func (n Normal) Rand(r *rand.Rand) float64 {
	return normFloat64(r)*math.Sqrt(n.sigma2) + n.mu
}

func (n Normal) Bounds() (float64, float64) {
	const stddevs = 3
	sigma := math.Sqrt(n.sigma2)
	return n.mu - stddevs*sigma, n.mu + stddevs*sigma
}

// Parameters returns the parameter vector [mu, sigma2].
func (n Normal) Parameters() []float64 {
	return []float64{n.mu, n.sigma2}
}

// SetParameters sets the parameters from the vector [mu, sigma2].
func (n *Normal) SetParameters(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("%w: normal wants 2, got %d", ErrDimension, len(p))
	}
	if err := n.SetSigma2(p[1]); err != nil {
		return err
	}
	n.mu = p[0]
	return nil
}

// DefaultVarianceFloor is the additive variance regularizer used by
// NormalEstimator when none is set. It keeps maximum-likelihood fits
// of duplicate or singleton data from collapsing to zero variance.
const DefaultVarianceFloor = 1e-5

// NormalEstimator fits a Normal distribution to observations by
// maximum likelihood: the sample mean and the biased sample variance
// plus VarianceFloor.
type NormalEstimator struct {
	// VarianceFloor is added to the estimated variance. Zero
	// means DefaultVarianceFloor; set it negative to disable the
	// floor entirely (the fit then fails on zero-variance data).
	VarianceFloor float64
}

func (e NormalEstimator) floor() float64 {
	if e.VarianceFloor == 0 {
		return DefaultVarianceFloor
	}
	if e.VarianceFloor < 0 {
		return 0
	}
	return e.VarianceFloor
}

// Estimate fits a Normal to xs.
func (e NormalEstimator) Estimate(xs []float64) (Normal, error) {
	if len(xs) == 0 {
		return Normal{}, fmt.Errorf("%w: no observations", ErrInsufficientData)
	}
	var m Moments
	for _, x := range xs {
		m.Add(x)
	}
	return NewNormal(m.Mean(), m.PopulationVariance()+e.floor())
}

// EstimateWeighted fits a Normal to xs with nonnegative per-sample
// weights. The weights need not sum to 1.
func (e NormalEstimator) EstimateWeighted(xs, weights []float64) (Normal, error) {
	if len(xs) != len(weights) {
		return Normal{}, fmt.Errorf("%w: %d observations, %d weights", ErrDimension, len(xs), len(weights))
	}
	var m Moments
	for i, x := range xs {
		m.AddWeighted(x, weights[i])
	}
	if m.TotalWeight() <= 0 {
		return Normal{}, fmt.Errorf("%w: total weight is zero", ErrInsufficientData)
	}
	return NewNormal(m.Mean(), m.PopulationVariance()+e.floor())
}
