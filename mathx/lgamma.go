// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import "math"

// Lgamma returns the natural logarithm of Γ(x).
//
// Unlike math.Lgamma, it discards the sign of Γ(x), which is always
// positive on the x > 0 domain the distributions in this module care
// about.
func Lgamma(x float64) float64 {
	y, _ := math.Lgamma(x)
	return y
}

// Lbeta returns the natural logarithm of the complete beta function
// B(a, b).
//
// B(a, b) overflows for quite modest arguments, so there is
// deliberately no non-log variant.
func Lbeta(a, b float64) float64 {
	// B(a,b) = Γ(a)Γ(b) / Γ(a+b)
	return Lgamma(a) + Lgamma(b) - Lgamma(a+b)
}

// LMultinomialBeta returns the natural logarithm of the multinomial
// beta function B(a) = ∏Γ(aᵢ) / Γ(∑aᵢ), the normalizing constant of
// the Dirichlet distribution. All aᵢ must be positive.
func LMultinomialBeta(a []float64) float64 {
	sum, lg := 0.0, 0.0
	for _, ai := range a {
		sum += ai
		lg += Lgamma(ai)
	}
	return lg - Lgamma(sum)
}

// Choose returns the binomial coefficient of n and k.
func Choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	return math.Exp(Lgamma(float64(n)+1) - Lgamma(float64(k)+1) - Lgamma(float64(n-k)+1))
}
