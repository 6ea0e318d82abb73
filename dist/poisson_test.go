// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math/rand"
	"testing"
)

func TestPoissonPMF(t *testing.T) {
	p, _ := NewPoisson(4)
	// PMF(k) = e⁻⁴ 4ᵏ/k!.
	cases := []struct{ k, want float64 }{
		{0, 0.018315638888734179},
		{1, 0.07326255555493671},
		{4, 0.19536681481316454},
		{10, 0.00529247667642012},
	}
	for _, c := range cases {
		if got := p.PMF(c.k); !aeqTol(c.want, got, 1e-12) {
			t.Errorf("PMF(%v) = %v, want %v", c.k, got, c.want)
		}
	}
	if p.PMF(-1) != 0 {
		t.Errorf("PMF(-1) should be 0")
	}
}

func TestPoissonCDFIsPMFSum(t *testing.T) {
	// The incomplete-gamma CDF must agree with the direct PMF
	// sum.
	for _, lambda := range []float64{0.5, 3, 12} {
		p, _ := NewPoisson(lambda)
		sum := 0.0
		for k := 0; k <= 40; k++ {
			sum += p.PMF(float64(k))
			if !aeqTol(sum, p.CDF(float64(k)), 1e-10) {
				t.Errorf("λ=%v: CDF(%d) = %v, want ΣPMF = %v", lambda, k, p.CDF(float64(k)), sum)
			}
		}
	}
}

func TestPoissonSampling(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for _, lambda := range []float64{2.5, 80} {
		p, _ := NewPoisson(lambda)
		var m Moments
		for i := 0; i < 100000; i++ {
			m.Add(p.Rand(r))
		}
		if !aeqTol(lambda, m.Mean(), 0.05*lambda) {
			t.Errorf("λ=%v: sample mean = %v", lambda, m.Mean())
		}
		if !aeqTol(lambda, m.PopulationVariance(), 0.05*lambda) {
			t.Errorf("λ=%v: sample variance = %v", lambda, m.PopulationVariance())
		}
	}
}

func TestPoissonEstimator(t *testing.T) {
	r := rand.New(rand.NewSource(19))
	want, _ := NewPoisson(6.5)
	var xs []float64
	for i := 0; i < 50000; i++ {
		xs = append(xs, want.Rand(r))
	}
	got, err := PoissonEstimator{}.Estimate(xs)
	if err != nil {
		t.Fatal(err)
	}
	if !aeqTol(6.5, got.Lambda(), 0.1) {
		t.Errorf("fit λ = %v, want 6.5", got.Lambda())
	}
}
