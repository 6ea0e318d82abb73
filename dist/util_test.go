// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

func aeqTol(expect, got, tol float64) bool {
	return math.Abs(expect-got) <= tol
}

// integrate computes ∫f over [lo, hi] by composite Simpson's rule.
func integrate(f func(float64) float64, lo, hi float64, n int) float64 {
	if n%2 == 1 {
		n++
	}
	h := (hi - lo) / float64(n)
	sum := f(lo) + f(hi)
	for i := 1; i < n; i++ {
		x := lo + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}
	return sum * h / 3
}

// checkRoundTrip verifies that SetParameters(Parameters()) is exact.
func checkRoundTrip(t *testing.T, name string, d Parametric) {
	t.Helper()
	p := d.Parameters()
	cp := make([]float64, len(p))
	copy(cp, p)
	if err := d.SetParameters(cp); err != nil {
		t.Errorf("%s: SetParameters(Parameters()): %v", name, err)
		return
	}
	p2 := d.Parameters()
	for i := range p {
		if p[i] != p2[i] {
			t.Errorf("%s: parameter %d: want %v, got %v", name, i, p[i], p2[i])
		}
	}
}
