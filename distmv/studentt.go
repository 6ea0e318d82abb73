// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmv

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-probdist/mathx"
)

// StudentT is a multivariate Student's t distribution with location
// Mu, scale matrix Sigma, and Dof degrees of freedom. As dof → ∞ it
// approaches the multivariate normal with covariance Sigma.
type StudentT struct {
	dof  float64
	norm *Normal // carries mu, sigma, and the cached factorization
}

// NewStudentT returns a multivariate t distribution. dof must be
// positive; sigma must be symmetric within tolerance.
func NewStudentT(dof float64, mu []float64, sigma mat.Matrix) (*StudentT, error) {
	if !(dof > 0) {
		return nil, fmt.Errorf("%w: degrees of freedom %v must be positive", ErrInvalidParameter, dof)
	}
	n, err := NewNormal(mu, sigma)
	if err != nil {
		return nil, err
	}
	return &StudentT{dof: dof, norm: n}, nil
}

// Dim returns the dimension of the distribution's variates.
func (t *StudentT) Dim() int { return t.norm.Dim() }

// Dof returns the degrees of freedom.
func (t *StudentT) Dof() float64 { return t.dof }

// Mu returns the location vector. The caller must not modify it.
func (t *StudentT) Mu() *mat.VecDense { return t.norm.Mu() }

// Sigma returns the scale matrix. The caller must not modify it.
func (t *StudentT) Sigma() *mat.SymDense { return t.norm.Sigma() }

// SetDof sets the degrees of freedom, which must be positive.
func (t *StudentT) SetDof(dof float64) error {
	if !(dof > 0) {
		return fmt.Errorf("%w: degrees of freedom %v must be positive", ErrInvalidParameter, dof)
	}
	t.dof = dof
	return nil
}

// SetMu sets the location vector.
func (t *StudentT) SetMu(mu []float64) error { return t.norm.SetMu(mu) }

// SetSigma sets the scale matrix and invalidates cached factors.
func (t *StudentT) SetSigma(sigma mat.Matrix) error { return t.norm.SetSigma(sigma) }

// Mean returns the location for dof > 1 and an error otherwise.
func (t *StudentT) Mean() ([]float64, error) {
	if t.dof <= 1 {
		return nil, fmt.Errorf("%w: t mean needs dof > 1, have %v", ErrUndefinedMoment, t.dof)
	}
	return t.norm.Mean()
}

// Covariance returns Σ·ν/(ν-2) for dof > 2 and an error otherwise.
func (t *StudentT) Covariance() (*mat.SymDense, error) {
	if t.dof <= 2 {
		return nil, fmt.Errorf("%w: t covariance needs dof > 2, have %v", ErrUndefinedMoment, t.dof)
	}
	cov, _ := t.norm.Covariance()
	d := cov.SymmetricDim()
	f := t.dof / (t.dof - 2)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			cov.SetSym(i, j, cov.At(i, j)*f)
		}
	}
	return cov, nil
}

// PDF returns the density at x.
func (t *StudentT) PDF(x []float64) float64 {
	return math.Exp(t.LogPDF(x))
}

// LogPDF returns the log density at x, from the closed-form log
// expression over the cached factorization of Sigma.
func (t *StudentT) LogPDF(x []float64) float64 {
	if len(x) != t.Dim() {
		panic(fmt.Sprintf("distmv: variate length %d, dimension %d", len(x), t.Dim()))
	}
	chol, logDet, err := t.norm.cholesky()
	if err != nil {
		panic(err)
	}
	d := t.Dim()
	p := float64(d)
	delta := mat.NewVecDense(d, nil)
	for i := 0; i < d; i++ {
		delta.SetVec(i, x[i]-t.norm.mu.AtVec(i))
	}
	var solved mat.VecDense
	if err := chol.SolveVecTo(&solved, delta); err != nil {
		panic(err)
	}
	maha := mat.Dot(delta, &solved)
	return mathx.Lgamma((t.dof+p)/2) - mathx.Lgamma(t.dof/2) -
		0.5*(p*math.Log(t.dof*math.Pi)+logDet) -
		(t.dof+p)/2*math.Log1p(maha/t.dof)
}

// Rand draws a variate as μ + Lz·√(ν/χ²), the multivariate normal
// draw divided by the square root of an independent normalized
// chi-square.
func (t *StudentT) Rand(r *rand.Rand) []float64 {
	x := t.norm.Rand(r)
	chi2 := gammaRand(t.dof/2, 2, r)
	f := math.Sqrt(t.dof / chi2)
	for i := range x {
		x[i] = t.norm.mu.AtVec(i) + (x[i]-t.norm.mu.AtVec(i))*f
	}
	return x
}

// Parameters returns the flat parameter vector: dof, then the
// location elements, then the scale matrix in row-major order.
func (t *StudentT) Parameters() []float64 {
	return append([]float64{t.dof}, t.norm.Parameters()...)
}

// SetParameters sets the parameters from the layout Parameters
// produces.
func (t *StudentT) SetParameters(p []float64) error {
	d := t.Dim()
	if len(p) != 1+d+d*d {
		return fmt.Errorf("%w: %d-dimensional t wants %d, got %d", ErrDimension, d, 1+d+d*d, len(p))
	}
	if err := t.SetDof(p[0]); err != nil {
		return err
	}
	return t.norm.SetParameters(p[1:])
}
