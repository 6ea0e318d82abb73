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
	gdistmv "gonum.org/v1/gonum/stat/distmv"
)

func aeqTol(expect, got, tol float64) bool {
	return math.Abs(expect-got) <= tol
}

var (
	testMu    = []float64{1, -2}
	testSigma = mat.NewSymDense(2, []float64{2, 0.5, 0.5, 1})
)

func TestNormalLogPDFAgainstGonum(t *testing.T) {
	n, err := NewNormal(testMu, testSigma)
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := gdistmv.NewNormal(testMu, testSigma, nil)
	if !ok {
		t.Fatal("gonum reference rejected covariance")
	}
	for _, x := range [][]float64{{0, 0}, {1, -2}, {3, 1}, {-5, -5}, {40, 40}} {
		if want := ref.LogProb(x); !aeqTol(want, n.LogPDF(x), 1e-10) {
			t.Errorf("LogPDF(%v) = %v, want %v", x, n.LogPDF(x), want)
		}
	}
	// The far tail must stay finite in log space even where PDF
	// underflows to zero.
	far := []float64{1e3, -1e3}
	if lp := n.LogPDF(far); math.IsInf(lp, 0) || math.IsNaN(lp) {
		t.Errorf("LogPDF(%v) = %v, want finite", far, lp)
	}
	if pdf := n.PDF(far); pdf != 0 {
		t.Errorf("PDF(%v) = %v, want underflow to 0", far, pdf)
	}
}

func TestNormalValidation(t *testing.T) {
	// Covariance dimension must match the mean.
	if _, err := NewNormal([]float64{0}, testSigma); !errors.Is(err, ErrDimension) {
		t.Errorf("mismatched dimensions: got %v", err)
	}
	// Asymmetric beyond tolerance is rejected, never clamped.
	bad := mat.NewDense(2, 2, []float64{1, 0.3, 0.1, 1})
	if _, err := NewNormal(testMu, bad); !errors.Is(err, ErrNotSymmetric) {
		t.Errorf("asymmetric covariance: got %v", err)
	}
	// Asymmetry within tolerance is averaged.
	nearly := mat.NewDense(2, 2, []float64{2, 0.5 + 1e-12, 0.5 - 1e-12, 1})
	n, err := NewNormal(testMu, nearly)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Sigma().At(0, 1); got != n.Sigma().At(1, 0) {
		t.Errorf("off-diagonals not symmetrized: %v vs %v", got, n.Sigma().At(1, 0))
	}
	// Non-square is a dimension error.
	if _, err := NewNormal(testMu, mat.NewDense(2, 3, nil)); !errors.Is(err, ErrDimension) {
		t.Errorf("non-square covariance: got %v", err)
	}
	// A symmetric but non-positive-definite covariance is
	// rejected at the boundary, not left to blow up in PDF or
	// Rand.
	notPD := mat.NewSymDense(2, []float64{-1, 0, 0, 1})
	if _, err := NewNormal(testMu, notPD); !errors.Is(err, ErrNotPositiveDefinite) {
		t.Errorf("non-positive-definite covariance: got %v", err)
	}
	if err := n.SetSigma(notPD); !errors.Is(err, ErrNotPositiveDefinite) {
		t.Errorf("SetSigma non-positive-definite: got %v", err)
	}
	// The failed setter leaves the previous parameters intact and
	// the distribution usable.
	if got := n.PDF([]float64{0, 0}); math.IsNaN(got) || got <= 0 {
		t.Errorf("PDF after rejected SetSigma = %v, want positive", got)
	}
}

func TestNormalCacheInvalidation(t *testing.T) {
	n, err := NewNormal(testMu, testSigma)
	if err != nil {
		t.Fatal(err)
	}
	x := []float64{0.5, 0.5}
	before := n.LogPDF(x)

	// Mutating the covariance must invalidate the cached
	// factorization: the new density must match a fresh instance,
	// not the stale factors.
	wider := mat.NewSymDense(2, []float64{8, 1, 1, 4})
	if err := n.SetSigma(wider); err != nil {
		t.Fatal(err)
	}
	fresh, err := NewNormal(testMu, wider)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n.LogPDF(x), fresh.LogPDF(x); got != want {
		t.Errorf("after SetSigma: LogPDF = %v, fresh instance = %v", got, want)
	}
	if n.LogPDF(x) == before {
		t.Errorf("LogPDF unchanged after covariance change")
	}
}

func TestNormalSamplingMoments(t *testing.T) {
	n, err := NewNormal(testMu, testSigma)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(33))
	var m MomentsMV
	for i := 0; i < 200000; i++ {
		m.Add(n.Rand(r))
	}
	mean := m.Mean()
	if !aeqTol(1, mean[0], 0.02) || !aeqTol(-2, mean[1], 0.02) {
		t.Errorf("sample mean = %v, want [1 -2]", mean)
	}
	cov := m.PopulationCovariance()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !aeqTol(testSigma.At(i, j), cov.At(i, j), 0.03) {
				t.Errorf("sample cov[%d,%d] = %v, want %v", i, j, cov.At(i, j), testSigma.At(i, j))
			}
		}
	}
}

func TestNormalParameterRoundTrip(t *testing.T) {
	n, err := NewNormal(testMu, testSigma)
	if err != nil {
		t.Fatal(err)
	}
	p := n.Parameters()
	if err := n.SetParameters(p); err != nil {
		t.Fatal(err)
	}
	p2 := n.Parameters()
	for i := range p {
		if p[i] != p2[i] {
			t.Errorf("parameter %d: %v != %v", i, p[i], p2[i])
		}
	}
	if err := n.SetParameters(p[:3]); !errors.Is(err, ErrDimension) {
		t.Errorf("short vector: got %v", err)
	}
}

func TestEstimateNormal(t *testing.T) {
	n, err := NewNormal(testMu, testSigma)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(8))
	xs := n.Sample(r, 100000)

	got, err := EstimateNormal(xs)
	if err != nil {
		t.Fatal(err)
	}
	mean, _ := got.Mean()
	if !aeqTol(1, mean[0], 0.03) || !aeqTol(-2, mean[1], 0.03) {
		t.Errorf("fit mean = %v", mean)
	}
	cov, _ := got.Covariance()
	if !aeqTol(2, cov.At(0, 0), 0.05) || !aeqTol(0.5, cov.At(0, 1), 0.05) {
		t.Errorf("fit covariance = %v", mat.Formatted(cov))
	}

	// Fewer than two samples cannot produce a covariance.
	one := mat.NewDense(1, 2, []float64{0, 0})
	if _, err := EstimateNormal(one); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("single sample: got %v", err)
	}
}

func TestMomentsMVMerge(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	n, _ := NewNormal(testMu, testSigma)

	var whole, left, right MomentsMV
	for i := 0; i < 400; i++ {
		x := n.Rand(r)
		whole.Add(x)
		if i%3 == 0 {
			left.Add(x)
		} else {
			right.Add(x)
		}
	}
	left.Merge(right)

	wm, lm := whole.Mean(), left.Mean()
	for i := range wm {
		if !aeqTol(wm[i], lm[i], 1e-10) {
			t.Errorf("merged mean[%d] = %v, want %v", i, lm[i], wm[i])
		}
	}
	wc, lc := whole.PopulationCovariance(), left.PopulationCovariance()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !aeqTol(wc.At(i, j), lc.At(i, j), 1e-10) {
				t.Errorf("merged cov[%d,%d] = %v, want %v", i, j, lc.At(i, j), wc.At(i, j))
			}
		}
	}
	if left.Count() != whole.Count() {
		t.Errorf("merged count = %d, want %d", left.Count(), whole.Count())
	}
}
