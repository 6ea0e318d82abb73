// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestNormalCDF(t *testing.T) {
	// Standard normal CDF values from Abramowitz & Stegun table
	// 26.1.
	cases := []struct{ z, phi float64 }{
		{0, 0.5},
		{1, 0.8413447460685429},
		{2, 0.9772498680518208},
		{-1, 0.15865525393145707},
		{3, 0.9986501019683699},
	}
	for _, c := range cases {
		if got := StdNormal.CDF(c.z); !aeqTol(c.phi, got, 1e-12) {
			t.Errorf("Φ(%v) = %v, want %v", c.z, got, c.phi)
		}
	}
}

func TestNormalInvCDF(t *testing.T) {
	n := mustNormal(5, 2)
	for _, p := range []float64{0.001, 0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 0.999} {
		x := n.InvCDF(p)
		if got := n.CDF(x); !aeqTol(p, got, 1e-9) {
			t.Errorf("CDF(InvCDF(%v)) = %v", p, got)
		}
	}
	if n.InvCDF(0) != -inf || n.InvCDF(1) != inf {
		t.Errorf("InvCDF endpoints should be ±Inf")
	}
	if !math.IsNaN(n.InvCDF(-0.1)) || !math.IsNaN(n.InvCDF(1.1)) {
		t.Errorf("InvCDF outside [0,1] should be NaN")
	}
}

func TestNormalSamplingConverges(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	n := mustNormal(5, 2)
	xs := Sample(n, r, 100000)

	mean, variance := stat.MeanVariance(xs, nil)
	if !aeqTol(5, mean, 0.05) {
		t.Errorf("sample mean = %v, want 5±0.05", mean)
	}
	if !aeqTol(2, variance, 0.05) {
		t.Errorf("sample variance = %v, want 2±0.05", variance)
	}
}

func TestNormalEstimator(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	want := mustNormal(-3, 4)
	xs := Sample(want, r, 50000)

	got, err := NormalEstimator{}.Estimate(xs)
	if err != nil {
		t.Fatal(err)
	}
	if !aeqTol(-3, got.Mu(), 0.05) || !aeqTol(4, got.Sigma2(), 0.1) {
		t.Errorf("fit = N(%v, %v), want N(-3, 4)", got.Mu(), got.Sigma2())
	}
}

func TestNormalEstimatorVarianceFloor(t *testing.T) {
	// Duplicate data has zero sample variance; the floor keeps
	// the fit non-degenerate.
	xs := []float64{2, 2, 2, 2}
	got, err := NormalEstimator{}.Estimate(xs)
	if err != nil {
		t.Fatal(err)
	}
	if got.Sigma2() != DefaultVarianceFloor {
		t.Errorf("variance = %v, want floor %v", got.Sigma2(), DefaultVarianceFloor)
	}

	// A custom floor takes precedence.
	got, err = NormalEstimator{VarianceFloor: 0.5}.Estimate(xs)
	if err != nil {
		t.Fatal(err)
	}
	if got.Sigma2() != 0.5 {
		t.Errorf("variance = %v, want floor 0.5", got.Sigma2())
	}

	// A disabled floor fails construction on degenerate data.
	if _, err = (NormalEstimator{VarianceFloor: -1}).Estimate(xs); err == nil {
		t.Errorf("disabled floor on duplicate data should fail")
	}
}

func TestNormalEstimatorWeighted(t *testing.T) {
	// Down-weighting one cluster to zero leaves the fit on the
	// other.
	xs := []float64{0, 0.1, -0.1, 100, 101, 99}
	ws := []float64{1, 1, 1, 0, 0, 0}
	got, err := NormalEstimator{}.EstimateWeighted(xs, ws)
	if err != nil {
		t.Fatal(err)
	}
	if !aeqTol(0, got.Mu(), 0.01) {
		t.Errorf("weighted mean = %v, want ~0", got.Mu())
	}
}
