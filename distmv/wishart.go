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

// Wishart is a Wishart distribution over p×p positive-definite
// matrices with Dof degrees of freedom and scale matrix V. It is the
// distribution of Xᵀ·X for X a stack of Dof independent multivariate
// normal rows with covariance V.
type Wishart struct {
	dof float64
	v   *mat.SymDense

	// Cached factorization of v and derived constants, valid only
	// while cholOK.
	chol    mat.Cholesky
	logDetV float64
	cholOK  bool
}

// NewWishart returns a Wishart distribution. dof must exceed p-1,
// and v must be symmetric within tolerance and positive definite.
func NewWishart(dof float64, v mat.Matrix) (*Wishart, error) {
	w := &Wishart{}
	if err := w.SetV(v); err != nil {
		return nil, err
	}
	if err := w.SetDof(dof); err != nil {
		return nil, err
	}
	return w, nil
}

// Dim returns p, the order of the matrices the distribution ranges
// over.
func (w *Wishart) Dim() int { return w.v.SymmetricDim() }

// Dof returns the degrees of freedom.
func (w *Wishart) Dof() float64 { return w.dof }

// V returns the scale matrix. The caller must not modify it.
func (w *Wishart) V() *mat.SymDense { return w.v }

// SetDof sets the degrees of freedom, which must exceed p-1 so the
// density is proper.
func (w *Wishart) SetDof(dof float64) error {
	if w.v != nil && !(dof > float64(w.v.SymmetricDim()-1)) {
		return fmt.Errorf("%w: Wishart dof %v must exceed dimension-1 = %d", ErrInvalidParameter, dof, w.v.SymmetricDim()-1)
	}
	w.dof = dof
	return nil
}

// SetV sets the scale matrix and refreshes the cached factors. v
// must be symmetric within tolerance and positive definite; an
// invalid scale is rejected here, before it can surface from an
// evaluation or a draw.
func (w *Wishart) SetV(v mat.Matrix) error {
	sym, err := symmetrize(v)
	if err != nil {
		return err
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return fmt.Errorf("%w: Wishart scale", ErrNotPositiveDefinite)
	}
	w.v = sym
	w.chol = chol
	w.logDetV = chol.LogDet()
	w.cholOK = true
	return nil
}

// Parameters returns the flat parameter vector: the degrees of
// freedom followed by the scale matrix in row-major order.
func (w *Wishart) Parameters() []float64 {
	p := w.Dim()
	out := make([]float64, 0, 1+p*p)
	out = append(out, w.dof)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			out = append(out, w.v.At(i, j))
		}
	}
	return out
}

// SetParameters sets the parameters from the layout Parameters
// produces. The dimension is fixed at construction.
func (w *Wishart) SetParameters(params []float64) error {
	p := w.Dim()
	if len(params) != 1+p*p {
		return fmt.Errorf("%w: %d-dimensional Wishart wants %d, got %d", ErrDimension, p, 1+p*p, len(params))
	}
	if err := w.SetV(mat.NewDense(p, p, append([]float64(nil), params[1:]...))); err != nil {
		return err
	}
	return w.SetDof(params[0])
}

// cholesky returns the cached factorization of V.
func (w *Wishart) cholesky() (*mat.Cholesky, float64, error) {
	if !w.cholOK {
		if ok := w.chol.Factorize(w.v); !ok {
			return nil, 0, fmt.Errorf("%w: Wishart scale", ErrNotPositiveDefinite)
		}
		w.logDetV = w.chol.LogDet()
		w.cholOK = true
	}
	return &w.chol, w.logDetV, nil
}

// lmvGamma returns the log multivariate gamma function log Γ_p(a).
func lmvGamma(p int, a float64) float64 {
	out := float64(p) * float64(p-1) / 4 * math.Log(math.Pi)
	for j := 1; j <= p; j++ {
		out += mathx.Lgamma(a + float64(1-j)/2)
	}
	return out
}

// Mean returns Dof·V.
func (w *Wishart) Mean() (*mat.SymDense, error) {
	p := w.Dim()
	out := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			out.SetSym(i, j, w.dof*w.v.At(i, j))
		}
	}
	return out, nil
}

// PDF returns the density at the positive-definite matrix x.
func (w *Wishart) PDF(x *mat.SymDense) float64 {
	return math.Exp(w.LogPDF(x))
}

// LogPDF returns the log density at x, or -Inf if x is not positive
// definite (a zero-probability point, not an error).
func (w *Wishart) LogPDF(x *mat.SymDense) float64 {
	p := w.Dim()
	if x.SymmetricDim() != p {
		panic(fmt.Sprintf("distmv: variate is %dx%d, distribution is over %dx%d", x.SymmetricDim(), x.SymmetricDim(), p, p))
	}
	_, logDetV, err := w.cholesky()
	if err != nil {
		panic(err)
	}
	var cx mat.Cholesky
	if ok := cx.Factorize(x); !ok {
		return -inf
	}
	logDetX := cx.LogDet()

	// tr(V⁻¹X) via the cached factorization: solve V·S = X and
	// take the trace of S.
	var s mat.Dense
	if err := w.chol.SolveTo(&s, x); err != nil {
		return -inf
	}
	tr := 0.0
	for i := 0; i < p; i++ {
		tr += s.At(i, i)
	}

	n, pf := w.dof, float64(p)
	return (n-pf-1)/2*logDetX - tr/2 -
		n*pf/2*math.Ln2 - n/2*logDetV - lmvGamma(p, n/2)
}

// Rand draws a matrix variate by the Bartlett decomposition: W =
// L·A·Aᵀ·Lᵀ where L is the Cholesky factor of V and A is lower
// triangular with χ²-distributed squared diagonals and standard
// normal subdiagonals. Unlike stacking dof normal draws, this works
// for non-integer dof and costs O(p²) draws.
func (w *Wishart) Rand(r *rand.Rand) *mat.SymDense {
	chol, _, err := w.cholesky()
	if err != nil {
		panic(err)
	}
	p := w.Dim()
	var l mat.TriDense
	chol.LTo(&l)

	a := mat.NewTriDense(p, mat.Lower, nil)
	for i := 0; i < p; i++ {
		a.SetTri(i, i, math.Sqrt(gammaRand((w.dof-float64(i))/2, 2, r)))
		for j := 0; j < i; j++ {
			a.SetTri(i, j, normFloat64(r))
		}
	}

	var la mat.Dense
	la.Mul(&l, a)
	var prod mat.Dense
	prod.Mul(&la, la.T())

	out := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			out.SetSym(i, j, prod.At(i, j))
		}
	}
	return out
}

// InverseWishart is an inverse-Wishart distribution over p×p
// positive-definite matrices with Dof degrees of freedom and scale
// matrix Psi: the distribution of W⁻¹ for W Wishart with scale
// Psi⁻¹.
type InverseWishart struct {
	wish *Wishart // Wishart with scale Psi⁻¹, drives sampling
	psi  *mat.SymDense
}

// NewInverseWishart returns an inverse-Wishart distribution. dof
// must exceed p-1; psi must be symmetric within tolerance and
// positive definite.
func NewInverseWishart(dof float64, psi mat.Matrix) (*InverseWishart, error) {
	iw := &InverseWishart{}
	if err := iw.SetPsi(psi); err != nil {
		return nil, err
	}
	if err := iw.wish.SetDof(dof); err != nil {
		return nil, err
	}
	return iw, nil
}

// Dim returns p, the order of the matrices the distribution ranges
// over.
func (iw *InverseWishart) Dim() int { return iw.psi.SymmetricDim() }

// Dof returns the degrees of freedom.
func (iw *InverseWishart) Dof() float64 { return iw.wish.dof }

// Psi returns the scale matrix. The caller must not modify it.
func (iw *InverseWishart) Psi() *mat.SymDense { return iw.psi }

// SetPsi sets the scale matrix, which must be positive definite.
func (iw *InverseWishart) SetPsi(psi mat.Matrix) error {
	sym, err := symmetrize(psi)
	if err != nil {
		return err
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return fmt.Errorf("%w: inverse-Wishart scale", ErrNotPositiveDefinite)
	}
	var psiInv mat.SymDense
	if err := chol.InverseTo(&psiInv); err != nil {
		return err
	}
	dof := float64(sym.SymmetricDim())
	if iw.wish != nil {
		dof = iw.wish.dof
	}
	w, err := NewWishart(dof, &psiInv)
	if err != nil {
		return err
	}
	iw.wish, iw.psi = w, sym
	return nil
}

// Parameters returns the flat parameter vector: the degrees of
// freedom followed by the scale matrix in row-major order.
func (iw *InverseWishart) Parameters() []float64 {
	p := iw.Dim()
	out := make([]float64, 0, 1+p*p)
	out = append(out, iw.wish.dof)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			out = append(out, iw.psi.At(i, j))
		}
	}
	return out
}

// SetParameters sets the parameters from the layout Parameters
// produces. The dimension is fixed at construction.
func (iw *InverseWishart) SetParameters(params []float64) error {
	p := iw.Dim()
	if len(params) != 1+p*p {
		return fmt.Errorf("%w: %d-dimensional inverse-Wishart wants %d, got %d", ErrDimension, p, 1+p*p, len(params))
	}
	if err := iw.SetPsi(mat.NewDense(p, p, append([]float64(nil), params[1:]...))); err != nil {
		return err
	}
	return iw.wish.SetDof(params[0])
}

// PDF returns the density at the positive-definite matrix x.
func (iw *InverseWishart) PDF(x *mat.SymDense) float64 {
	return math.Exp(iw.LogPDF(x))
}

// LogPDF returns the log density at x, or -Inf if x is not positive
// definite.
func (iw *InverseWishart) LogPDF(x *mat.SymDense) float64 {
	p := iw.Dim()
	if x.SymmetricDim() != p {
		panic(fmt.Sprintf("distmv: variate is %dx%d, distribution is over %dx%d", x.SymmetricDim(), x.SymmetricDim(), p, p))
	}
	var cx mat.Cholesky
	if ok := cx.Factorize(x); !ok {
		return -inf
	}
	logDetX := cx.LogDet()

	var cpsi mat.Cholesky
	if ok := cpsi.Factorize(iw.psi); !ok {
		panic(fmt.Errorf("%w: inverse-Wishart scale", ErrNotPositiveDefinite))
	}
	logDetPsi := cpsi.LogDet()

	// tr(Ψ·X⁻¹) = tr(X⁻¹·Ψ): solve X·S = Ψ.
	var s mat.Dense
	if err := cx.SolveTo(&s, iw.psi); err != nil {
		return -inf
	}
	tr := 0.0
	for i := 0; i < p; i++ {
		tr += s.At(i, i)
	}

	n, pf := iw.wish.dof, float64(p)
	return n/2*logDetPsi - (n+pf+1)/2*logDetX - tr/2 -
		n*pf/2*math.Ln2 - lmvGamma(p, n/2)
}

// Mean returns Ψ/(ν-p-1) for dof > p+1 and an error otherwise.
func (iw *InverseWishart) Mean() (*mat.SymDense, error) {
	p := iw.Dim()
	denom := iw.wish.dof - float64(p) - 1
	if !(denom > 0) {
		return nil, fmt.Errorf("%w: inverse-Wishart mean needs dof > p+1", ErrUndefinedMoment)
	}
	out := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			out.SetSym(i, j, iw.psi.At(i, j)/denom)
		}
	}
	return out, nil
}

// Rand draws a matrix variate as the inverse of a Wishart draw with
// scale Ψ⁻¹.
func (iw *InverseWishart) Rand(r *rand.Rand) *mat.SymDense {
	w := iw.wish.Rand(r)
	var chol mat.Cholesky
	if ok := chol.Factorize(w); !ok {
		// A singular draw has probability zero; if numerics
		// produce one anyway, redraw.
		return iw.Rand(r)
	}
	var out mat.SymDense
	if err := chol.InverseTo(&out); err != nil {
		return iw.Rand(r)
	}
	return &out
}
