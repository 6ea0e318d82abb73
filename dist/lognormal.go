// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// LogNormal is the distribution of e^N for N normal with mean Mu and
// variance Sigma2.
type LogNormal struct {
	norm Normal
}

// NewLogNormal returns a log-normal distribution whose log has the
// given mean and variance. The variance must be positive.
func NewLogNormal(mu, sigma2 float64) (LogNormal, error) {
	n, err := NewNormal(mu, sigma2)
	if err != nil {
		return LogNormal{}, err
	}
	return LogNormal{n}, nil
}

// Mu returns the log-scale mean parameter.
func (l LogNormal) Mu() float64 { return l.norm.Mu() }

// Sigma2 returns the log-scale variance parameter.
func (l LogNormal) Sigma2() float64 { return l.norm.Sigma2() }

// SetMu sets the log-scale mean parameter.
func (l *LogNormal) SetMu(mu float64) { l.norm.SetMu(mu) }

// SetSigma2 sets the log-scale variance parameter, which must be
// positive.
func (l *LogNormal) SetSigma2(sigma2 float64) error {
	return l.norm.SetSigma2(sigma2)
}

func (l LogNormal) Mean() (float64, error) {
	return math.Exp(l.norm.mu + l.norm.sigma2/2), nil
}

func (l LogNormal) Variance() (float64, error) {
	m := math.Exp(l.norm.mu + l.norm.sigma2/2)
	return math.Expm1(l.norm.sigma2) * m * m, nil
}

func (l LogNormal) PDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return l.norm.PDF(math.Log(x)) / x
}

func (l LogNormal) LogPDF(x float64) float64 {
	if x <= 0 {
		return -inf
	}
	lx := math.Log(x)
	return l.norm.LogPDF(lx) - lx
}

func (l LogNormal) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return l.norm.CDF(math.Log(x))
}

// InvCDF returns the inverse of the CDF for y.
func (l LogNormal) InvCDF(y float64) float64 {
	return math.Exp(l.norm.InvCDF(y))
}

func (l LogNormal) Bounds() (float64, float64) {
	return l.InvCDF(0.001), l.InvCDF(0.999)
}

// Rand draws a value by exponentiating a normal draw.
func (l LogNormal) Rand(r *rand.Rand) float64 {
	return math.Exp(l.norm.Rand(r))
}

// Parameters returns the parameter vector [mu, sigma2] of the
// underlying normal.
func (l LogNormal) Parameters() []float64 { return l.norm.Parameters() }

// SetParameters sets the parameters from the vector [mu, sigma2].
func (l *LogNormal) SetParameters(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("%w: log-normal wants 2, got %d", ErrDimension, len(p))
	}
	return l.norm.SetParameters(p)
}

// LogNormalEstimator fits a LogNormal by taking logs and fitting a
// Normal; this is the exact maximum-likelihood estimate. All
// observations must be positive.
type LogNormalEstimator struct {
	// VarianceFloor is passed through to the underlying normal
	// fit.
	VarianceFloor float64
}

// Estimate fits a LogNormal to xs.
func (e LogNormalEstimator) Estimate(xs []float64) (LogNormal, error) {
	lxs := make([]float64, len(xs))
	for i, x := range xs {
		if !(x > 0) {
			return LogNormal{}, fmt.Errorf("%w: observation %v not positive", ErrInvalidParameter, x)
		}
		lxs[i] = math.Log(x)
	}
	n, err := NormalEstimator{VarianceFloor: e.VarianceFloor}.Estimate(lxs)
	if err != nil {
		return LogNormal{}, err
	}
	return LogNormal{n}, nil
}
