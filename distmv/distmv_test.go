// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmv

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStudentTLogPDF(t *testing.T) {
	// The standard 2-D t density at the origin reduces to
	// Γ((ν+2)/2)/(Γ(ν/2)·νπ).
	sigma := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	for _, dof := range []float64{3, 10} {
		st, err := NewStudentT(dof, []float64{0, 0}, sigma)
		if err != nil {
			t.Fatal(err)
		}
		lg1, _ := math.Lgamma((dof + 2) / 2)
		lg2, _ := math.Lgamma(dof / 2)
		want := lg1 - lg2 - math.Log(dof*math.Pi)
		if got := st.LogPDF([]float64{0, 0}); !aeqTol(want, got, 1e-12) {
			t.Errorf("dof=%v: LogPDF(0) = %v, want %v", dof, got, want)
		}
	}
}

func TestStudentTMoments(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{2, 0.3, 0.3, 1})
	st, err := NewStudentT(5, []float64{1, 2}, sigma)
	if err != nil {
		t.Fatal(err)
	}
	cov, err := st.Covariance()
	if err != nil {
		t.Fatal(err)
	}
	// ν/(ν-2) = 5/3.
	if !aeqTol(2*5.0/3, cov.At(0, 0), 1e-12) {
		t.Errorf("cov[0,0] = %v, want %v", cov.At(0, 0), 2*5.0/3)
	}

	low, err := NewStudentT(2, []float64{0, 0}, sigma)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := low.Covariance(); !errors.Is(err, ErrUndefinedMoment) {
		t.Errorf("dof=2 covariance: got %v", err)
	}
	if _, err := low.Mean(); err != nil {
		t.Errorf("dof=2 mean should exist: %v", err)
	}
}

func TestStudentTSampling(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{2, 0.3, 0.3, 1})
	st, err := NewStudentT(8, []float64{1, 2}, sigma)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(6))
	var m MomentsMV
	for i := 0; i < 200000; i++ {
		m.Add(st.Rand(r))
	}
	mean := m.Mean()
	if !aeqTol(1, mean[0], 0.03) || !aeqTol(2, mean[1], 0.03) {
		t.Errorf("sample mean = %v, want [1 2]", mean)
	}
	want, _ := st.Covariance()
	got := m.PopulationCovariance()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !aeqTol(want.At(i, j), got.At(i, j), 0.08) {
				t.Errorf("sample cov[%d,%d] = %v, want %v", i, j, got.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestDirichletPDF(t *testing.T) {
	// Dirichlet(1,1,1) is uniform over the simplex with density
	// 1/B(1,1,1) = 2.
	d, err := NewDirichlet([]float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range [][]float64{{0.2, 0.3, 0.5}, {0.9, 0.05, 0.05}} {
		if got := d.PDF(x); !aeqTol(2, got, 1e-12) {
			t.Errorf("uniform Dirichlet PDF(%v) = %v, want 2", x, got)
		}
	}

	// Off-simplex points have zero density, not errors.
	if got := d.PDF([]float64{0.5, 0.5, 0.5}); got != 0 {
		t.Errorf("off-simplex PDF = %v, want 0", got)
	}
	if got := d.LogPDF([]float64{-0.1, 0.6, 0.5}); !math.IsInf(got, -1) {
		t.Errorf("negative-component LogPDF = %v, want -Inf", got)
	}
	if got := d.LogPDF([]float64{0, 0.5, 0.5}); !math.IsInf(got, -1) {
		t.Errorf("zero-component LogPDF = %v, want -Inf", got)
	}

	// Invalid concentrations are rejected at the boundary.
	if _, err := NewDirichlet([]float64{1, -1}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative concentration: got %v", err)
	}
	if _, err := NewDirichlet([]float64{1}); !errors.Is(err, ErrDimension) {
		t.Errorf("single concentration: got %v", err)
	}
}

func TestDirichletSampling(t *testing.T) {
	alpha := []float64{2, 5, 3}
	d, err := NewDirichlet(alpha)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(14))
	var m MomentsMV
	for i := 0; i < 100000; i++ {
		x := d.Rand(r)
		sum := x[0] + x[1] + x[2]
		if !aeqTol(1, sum, 1e-12) {
			t.Fatalf("draw %v does not lie on the simplex", x)
		}
		m.Add(x)
	}
	want, _ := d.Mean()
	got := m.Mean()
	for i := range want {
		if !aeqTol(want[i], got[i], 0.005) {
			t.Errorf("sample mean[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWishartLogPDF(t *testing.T) {
	// In one dimension a Wishart with scale v is a gamma with
	// shape dof/2 and scale 2v; check the densities agree.
	v := mat.NewSymDense(1, []float64{1.5})
	w, err := NewWishart(4, v)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0.5, 2, 7} {
		lgx := (4.0/2-1)*math.Log(x) - x/(2*1.5) -
			4.0/2*math.Log(2*1.5) - lgamma(4.0/2)
		got := w.LogPDF(mat.NewSymDense(1, []float64{x}))
		if !aeqTol(lgx, got, 1e-12) {
			t.Errorf("1-D Wishart LogPDF(%v) = %v, want gamma %v", x, got, lgx)
		}
	}

	// Non-positive-definite arguments are zero-probability
	// points.
	w2, err := NewWishart(5, mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	bad := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	if got := w2.LogPDF(bad); !math.IsInf(got, -1) {
		t.Errorf("non-PD LogPDF = %v, want -Inf", got)
	}

	// dof must exceed p-1.
	if _, err := NewWishart(0.5, mat.NewSymDense(2, []float64{1, 0, 0, 1})); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("small dof: got %v", err)
	}
	// A non-positive-definite scale fails at the constructor.
	if _, err := NewWishart(5, bad); !errors.Is(err, ErrNotPositiveDefinite) {
		t.Errorf("non-positive-definite scale: got %v", err)
	}
}

func lgamma(x float64) float64 {
	y, _ := math.Lgamma(x)
	return y
}

func TestWishartSamplingMean(t *testing.T) {
	v := mat.NewSymDense(2, []float64{1, 0.4, 0.4, 2})
	w, err := NewWishart(6, v)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(25))
	sum := mat.NewDense(2, 2, nil)
	const n = 50000
	for i := 0; i < n; i++ {
		x := w.Rand(r)
		sum.Add(sum, x)
	}
	want, _ := w.Mean()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			got := sum.At(i, j) / n
			if !aeqTol(want.At(i, j), got, 0.25) {
				t.Errorf("sample mean[%d,%d] = %v, want %v", i, j, got, want.At(i, j))
			}
		}
	}
}

func TestMatrixVariateParameterRoundTrip(t *testing.T) {
	v := mat.NewSymDense(2, []float64{1, 0.4, 0.4, 2})
	w, err := NewWishart(6, v)
	if err != nil {
		t.Fatal(err)
	}
	p := w.Parameters()
	if err := w.SetParameters(p); err != nil {
		t.Fatal(err)
	}
	for i, got := range w.Parameters() {
		if got != p[i] {
			t.Errorf("Wishart parameter %d: %v != %v", i, got, p[i])
		}
	}

	iw, err := NewInverseWishart(6, v)
	if err != nil {
		t.Fatal(err)
	}
	p = iw.Parameters()
	if err := iw.SetParameters(p); err != nil {
		t.Fatal(err)
	}
	for i, got := range iw.Parameters() {
		if got != p[i] {
			t.Errorf("inverse-Wishart parameter %d: %v != %v", i, got, p[i])
		}
	}

	d, err := NewDirichlet([]float64{2, 5, 3})
	if err != nil {
		t.Fatal(err)
	}
	q := d.Parameters()
	if err := d.SetParameters(q); err != nil {
		t.Fatal(err)
	}
	for i, got := range d.Parameters() {
		if got != q[i] {
			t.Errorf("Dirichlet parameter %d: %v != %v", i, got, q[i])
		}
	}
}

func TestInverseWishartMean(t *testing.T) {
	psi := mat.NewSymDense(2, []float64{2, 0.5, 0.5, 1})
	iw, err := NewInverseWishart(6, psi)
	if err != nil {
		t.Fatal(err)
	}
	want, err := iw.Mean()
	if err != nil {
		t.Fatal(err)
	}
	// Ψ/(ν-p-1) = Ψ/3.
	if !aeqTol(2.0/3, want.At(0, 0), 1e-12) {
		t.Errorf("mean[0,0] = %v, want %v", want.At(0, 0), 2.0/3)
	}

	r := rand.New(rand.NewSource(31))
	sum := mat.NewDense(2, 2, nil)
	const n = 50000
	for i := 0; i < n; i++ {
		sum.Add(sum, iw.Rand(r))
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			got := sum.At(i, j) / n
			if !aeqTol(want.At(i, j), got, 0.05) {
				t.Errorf("sample mean[%d,%d] = %v, want %v", i, j, got, want.At(i, j))
			}
		}
	}

	low, err := NewInverseWishart(3, psi)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := low.Mean(); !errors.Is(err, ErrUndefinedMoment) {
		t.Errorf("dof=p+1 mean: got %v", err)
	}
}
