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

// StudentT is a location-scale Student's t distribution with Dof
// degrees of freedom, location Mu, and scale Sigma. The standard t
// distribution has Mu = 0, Sigma = 1.
type StudentT struct {
	dof, mu, sigma float64

	// logCoef is the cached log of the leading coefficient,
	// log Γ((ν+1)/2) - log Γ(ν/2) - ½log(νπ) - log σ, recomputed
	// whenever a parameter changes.
	logCoef float64
}

// NewStudentT returns a location-scale t distribution. dof and sigma
// must be positive.
func NewStudentT(dof, mu, sigma float64) (StudentT, error) {
	var t StudentT
	t.mu = mu
	if err := t.SetDof(dof); err != nil {
		return StudentT{}, err
	}
	if err := t.SetSigma(sigma); err != nil {
		return StudentT{}, err
	}
	return t, nil
}

// Dof returns the degrees of freedom.
func (t StudentT) Dof() float64 { return t.dof }

// Mu returns the location parameter.
func (t StudentT) Mu() float64 { return t.mu }

// Sigma returns the scale parameter.
func (t StudentT) Sigma() float64 { return t.sigma }

// SetDof sets the degrees of freedom, which must be positive.
func (t *StudentT) SetDof(dof float64) error {
	if !(dof > 0) {
		return fmt.Errorf("%w: degrees of freedom %v must be positive", ErrInvalidParameter, dof)
	}
	t.dof = dof
	t.recompute()
	return nil
}

// SetMu sets the location parameter.
func (t *StudentT) SetMu(mu float64) { t.mu = mu }

// SetSigma sets the scale parameter, which must be positive.
func (t *StudentT) SetSigma(sigma float64) error {
	if !(sigma > 0) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidParameter, sigma)
	}
	t.sigma = sigma
	t.recompute()
	return nil
}

func (t *StudentT) recompute() {
	if t.dof > 0 && t.sigma > 0 {
		t.logCoef = mathx.Lgamma((t.dof+1)/2) - mathx.Lgamma(t.dof/2) -
			0.5*math.Log(t.dof*math.Pi) - math.Log(t.sigma)
	}
}

// Mean returns the location for dof > 1 and an error otherwise (the
// mean of a t distribution with dof ≤ 1 does not exist).
func (t StudentT) Mean() (float64, error) {
	if t.dof <= 1 {
		return 0, fmt.Errorf("%w: t mean needs dof > 1, have %v", ErrUndefinedMoment, t.dof)
	}
	return t.mu, nil
}

// Variance returns σ²ν/(ν-2) for dof > 2 and an error otherwise (the
// variance is infinite for 1 < dof ≤ 2 and undefined below).
func (t StudentT) Variance() (float64, error) {
	if t.dof <= 2 {
		return 0, fmt.Errorf("%w: t variance needs dof > 2, have %v", ErrUndefinedMoment, t.dof)
	}
	return t.sigma * t.sigma * t.dof / (t.dof - 2), nil
}

func (t StudentT) PDF(x float64) float64 {
	return math.Exp(t.LogPDF(x))
}

func (t StudentT) LogPDF(x float64) float64 {
	z := (x - t.mu) / t.sigma
	return t.logCoef - (t.dof+1)/2*math.Log1p(z*z/t.dof)
}

func (t StudentT) CDF(x float64) float64 {
	// Reduce to the regularized incomplete beta function via
	// I_{ν/(ν+z²)}(ν/2, 1/2), splitting on the sign of z.
	z := (x - t.mu) / t.sigma
	if z == 0 {
		return 0.5
	}
	p := 0.5 * mathx.BetaInc(t.dof/(t.dof+z*z), t.dof/2, 0.5)
	if z > 0 {
		return 1 - p
	}
	return p
}

func (t StudentT) Bounds() (float64, float64) {
	// The t tails are heavy for small dof, so widen the window as
	// dof shrinks.
	w := 4.0
	if t.dof < 4 {
		w = 16 / t.dof
	}
	return t.mu - w*t.sigma, t.mu + w*t.sigma
}

// Rand draws a value as a standard normal divided by the square root
// of an independent chi-square over its degrees of freedom.
func (t StudentT) Rand(r *rand.Rand) float64 {
	chi2 := Gamma{shape: t.dof / 2, scale: 2}
	chi2.recompute()
	z := normFloat64(r)
	return t.mu + t.sigma*z/math.Sqrt(chi2.Rand(r)/t.dof)
}

// Parameters returns the parameter vector [dof, mu, sigma].
func (t StudentT) Parameters() []float64 {
	return []float64{t.dof, t.mu, t.sigma}
}

// SetParameters sets the parameters from the vector [dof, mu, sigma].
func (t *StudentT) SetParameters(p []float64) error {
	if len(p) != 3 {
		return fmt.Errorf("%w: t wants 3, got %d", ErrDimension, len(p))
	}
	if err := t.SetDof(p[0]); err != nil {
		return err
	}
	t.mu = p[1]
	return t.SetSigma(p[2])
}

// StudentTEstimator fits a Student's t distribution by moment
// matching. The degrees of freedom come from the sample excess
// kurtosis κ by the closed-form mapping ν = 6/κ + 4 (the excess
// kurtosis of a t distribution is 6/(ν-4) for ν > 4), clamped to
// MinDof when the kurtosis estimate is non-positive or wild.
type StudentTEstimator struct {
	// MinDof is the smallest degrees of freedom the fit will
	// report. Zero means 2.5, which keeps the fitted variance
	// finite.
	MinDof float64
}

func (e StudentTEstimator) minDof() float64 {
	if e.MinDof == 0 {
		return 2.5
	}
	return e.MinDof
}

// Estimate fits a StudentT to xs.
func (e StudentTEstimator) Estimate(xs []float64) (StudentT, error) {
	ws := make([]float64, len(xs))
	for i := range ws {
		ws[i] = 1
	}
	return e.EstimateWeighted(xs, ws)
}

// EstimateWeighted fits a StudentT to xs with nonnegative per-sample
// weights.
func (e StudentTEstimator) EstimateWeighted(xs, weights []float64) (StudentT, error) {
	if len(xs) != len(weights) {
		return StudentT{}, fmt.Errorf("%w: %d observations, %d weights", ErrDimension, len(xs), len(weights))
	}
	var m Moments
	for i, x := range xs {
		m.AddWeighted(x, weights[i])
	}
	if m.TotalWeight() <= 0 {
		return StudentT{}, fmt.Errorf("%w: total weight is zero", ErrInsufficientData)
	}
	v := m.PopulationVariance()
	if !(v > 0) {
		return StudentT{}, fmt.Errorf("%w: zero-variance data", ErrInsufficientData)
	}

	dof := inf
	if k := m.ExcessKurtosis(); k > 0 {
		dof = 6/k + 4
	}
	if dof < e.minDof() {
		dof = e.minDof()
	}

	// Recover the scale from the variance relation v = σ²ν/(ν-2);
	// for effectively infinite dof the distribution is a normal
	// and σ² = v.
	sigma2 := v
	if !math.IsInf(dof, 1) {
		sigma2 = v * (dof - 2) / dof
	} else {
		dof = 1e6
	}
	return NewStudentT(dof, m.Mean(), math.Sqrt(sigma2))
}
