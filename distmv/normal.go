// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmv

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Normal is a multivariate normal distribution with mean vector Mu
// and covariance matrix Sigma.
type Normal struct {
	mu    *mat.VecDense
	sigma *mat.SymDense

	// Cached factorization of sigma, valid only while cholOK.
	// Recomputing it is idempotent, so a racing read at worst
	// repeats the factorization.
	chol   mat.Cholesky
	logDet float64
	cholOK bool
}

// NewNormal returns a multivariate normal with the given mean and
// covariance. The covariance may be any square matrix that is
// symmetric within tolerance; off-diagonal pairs are averaged.
func NewNormal(mu []float64, sigma mat.Matrix) (*Normal, error) {
	n := &Normal{mu: mat.NewVecDense(len(mu), append([]float64(nil), mu...))}
	if err := n.SetSigma(sigma); err != nil {
		return nil, err
	}
	return n, nil
}

// Dim returns the dimension of the distribution's variates.
func (n *Normal) Dim() int { return n.mu.Len() }

// Mu returns the mean vector. The caller must not modify it.
func (n *Normal) Mu() *mat.VecDense { return n.mu }

// Sigma returns the covariance matrix. The caller must not modify
// it.
func (n *Normal) Sigma() *mat.SymDense { return n.sigma }

// SetMu sets the mean vector.
func (n *Normal) SetMu(mu []float64) error {
	if len(mu) != n.mu.Len() {
		return fmt.Errorf("%w: mean length %d, dimension %d", ErrDimension, len(mu), n.mu.Len())
	}
	copy(n.mu.RawVector().Data, mu)
	return nil
}

// SetSigma sets the covariance matrix and refreshes the cached
// factorization. sigma must be square, match the mean's dimension,
// be symmetric within tolerance, and be positive definite; it is
// never silently clamped beyond the off-diagonal averaging. A
// covariance that fails any of these checks is rejected here, before
// it can surface from an evaluation or a draw.
func (n *Normal) SetSigma(sigma mat.Matrix) error {
	sym, err := symmetrize(sigma)
	if err != nil {
		return err
	}
	if r := sym.SymmetricDim(); r != n.mu.Len() {
		return fmt.Errorf("%w: covariance %dx%d, dimension %d", ErrDimension, r, r, n.mu.Len())
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return fmt.Errorf("%w: covariance", ErrNotPositiveDefinite)
	}
	n.sigma = sym
	n.chol = chol
	n.logDet = chol.LogDet()
	n.cholOK = true
	return nil
}

// symmetrize converts a square matrix to a SymDense, averaging
// off-diagonal pairs that agree within tolerance and rejecting
// matrices that do not.
func symmetrize(a mat.Matrix) (*mat.SymDense, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d is not square", ErrDimension, r, c)
	}
	if s, ok := a.(*mat.SymDense); ok {
		out := mat.NewSymDense(r, nil)
		out.CopySym(s)
		return out, nil
	}
	out := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetSym(i, i, a.At(i, i))
		for j := i + 1; j < r; j++ {
			u, l := a.At(i, j), a.At(j, i)
			scale := math.Max(math.Abs(u), math.Abs(l))
			if math.Abs(u-l) > symTol*math.Max(scale, 1) {
				return nil, fmt.Errorf("%w: a[%d,%d]=%v, a[%d,%d]=%v", ErrNotSymmetric, i, j, u, j, i, l)
			}
			out.SetSym(i, j, (u+l)/2)
		}
	}
	return out, nil
}

// cholesky returns the cached Cholesky factorization of sigma.
// SetSigma keeps the cache fresh; the recompute branch only runs for
// a zero-value struct and repeating it is idempotent.
func (n *Normal) cholesky() (*mat.Cholesky, float64, error) {
	if !n.cholOK {
		if ok := n.chol.Factorize(n.sigma); !ok {
			return nil, 0, fmt.Errorf("%w: covariance", ErrNotPositiveDefinite)
		}
		n.logDet = n.chol.LogDet()
		n.cholOK = true
	}
	return &n.chol, n.logDet, nil
}

// Mean returns a copy of the mean vector.
func (n *Normal) Mean() ([]float64, error) {
	out := make([]float64, n.mu.Len())
	copy(out, n.mu.RawVector().Data)
	return out, nil
}

// Covariance returns a copy of the covariance matrix.
func (n *Normal) Covariance() (*mat.SymDense, error) {
	out := mat.NewSymDense(n.sigma.SymmetricDim(), nil)
	out.CopySym(n.sigma)
	return out, nil
}

// PDF returns the density at x.
func (n *Normal) PDF(x []float64) float64 {
	return math.Exp(n.LogPDF(x))
}

// LogPDF returns the log density at x, computed directly as
// -½(d·log 2π + log|Σ| + δᵀΣ⁻¹δ) so it stays finite where PDF
// underflows. It panics if the covariance is not positive definite.
func (n *Normal) LogPDF(x []float64) float64 {
	if len(x) != n.mu.Len() {
		panic(fmt.Sprintf("distmv: variate length %d, dimension %d", len(x), n.mu.Len()))
	}
	chol, logDet, err := n.cholesky()
	if err != nil {
		panic(err)
	}
	d := n.mu.Len()
	delta := mat.NewVecDense(d, nil)
	for i := 0; i < d; i++ {
		delta.SetVec(i, x[i]-n.mu.AtVec(i))
	}
	var solved mat.VecDense
	if err := chol.SolveVecTo(&solved, delta); err != nil {
		panic(err)
	}
	maha := mat.Dot(delta, &solved)
	return -0.5 * (float64(d)*log2Pi + logDet + maha)
}

// Rand draws a variate by the affine transform μ + Lz of a standard
// normal vector z, where L is the lower Cholesky factor of Σ.
func (n *Normal) Rand(r *rand.Rand) []float64 {
	chol, _, err := n.cholesky()
	if err != nil {
		panic(err)
	}
	d := n.mu.Len()
	var l mat.TriDense
	chol.LTo(&l)

	z := mat.NewVecDense(d, nil)
	for i := 0; i < d; i++ {
		if r == nil {
			z.SetVec(i, rand.NormFloat64())
		} else {
			z.SetVec(i, r.NormFloat64())
		}
	}
	var x mat.VecDense
	x.MulVec(&l, z)
	out := make([]float64, d)
	for i := 0; i < d; i++ {
		out[i] = n.mu.AtVec(i) + x.AtVec(i)
	}
	return out
}

// Sample draws m independent variates as the rows of a matrix.
func (n *Normal) Sample(r *rand.Rand, m int) *mat.Dense {
	out := mat.NewDense(m, n.Dim(), nil)
	for i := 0; i < m; i++ {
		out.SetRow(i, n.Rand(r))
	}
	return out
}

// Parameters returns the flat parameter vector: the mean elements
// followed by the covariance in row-major order.
func (n *Normal) Parameters() []float64 {
	d := n.mu.Len()
	out := make([]float64, 0, d+d*d)
	out = append(out, n.mu.RawVector().Data...)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out = append(out, n.sigma.At(i, j))
		}
	}
	return out
}

// SetParameters sets the parameters from the layout Parameters
// produces. The dimension is fixed at construction.
func (n *Normal) SetParameters(p []float64) error {
	d := n.mu.Len()
	if len(p) != d+d*d {
		return fmt.Errorf("%w: %d-dimensional normal wants %d, got %d", ErrDimension, d, d+d*d, len(p))
	}
	if err := n.SetSigma(mat.NewDense(d, d, append([]float64(nil), p[d:]...))); err != nil {
		return err
	}
	copy(n.mu.RawVector().Data, p[:d])
	return nil
}

// EstimateNormal fits a multivariate normal to the rows of xs by
// maximum likelihood. It needs at least two rows.
func EstimateNormal(xs *mat.Dense) (*Normal, error) {
	r, _ := xs.Dims()
	if r < 2 {
		return nil, fmt.Errorf("%w: covariance estimate needs ≥ 2 samples, have %d", ErrInsufficientData, r)
	}
	ws := make([]float64, r)
	for i := range ws {
		ws[i] = 1
	}
	return EstimateNormalWeighted(xs, ws)
}

// EstimateNormalWeighted fits a multivariate normal to the rows of
// xs with nonnegative per-row weights.
func EstimateNormalWeighted(xs *mat.Dense, weights []float64) (*Normal, error) {
	r, _ := xs.Dims()
	if len(weights) != r {
		return nil, fmt.Errorf("%w: %d rows, %d weights", ErrDimension, r, len(weights))
	}
	var m MomentsMV
	for i := 0; i < r; i++ {
		m.AddWeighted(mat.Row(nil, i, xs), weights[i])
	}
	if m.TotalWeight() <= 0 {
		return nil, fmt.Errorf("%w: total weight is zero", ErrInsufficientData)
	}
	return NewNormal(m.Mean(), m.PopulationCovariance())
}
