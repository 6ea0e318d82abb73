// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import "math"

// Erf returns the value of the error function at z.
//
// This uses the Chebyshev-fitted Horner polynomial from Numerical
// Recipes in C, section 6.2, whose fractional error is everywhere
// below 1.2e-7. Callers needing full double precision should use
// math.Erf; this form exists because ErfInv refines its seed against
// the same polynomial family and because it is cheap to evaluate
// inside sampling loops.
func Erf(z float64) float64 {
	return 1 - Erfc(z)
}

// Erfc returns the value of the complementary error function at z.
func Erfc(z float64) float64 {
	x := math.Abs(z)
	t := 1 / (1 + x/2)
	ans := t * math.Exp(-x*x-1.26551223+t*(1.00002368+t*(0.37409196+
		t*(0.09678418+t*(-0.18628806+t*(0.27886807+t*(-1.13520398+
			t*(1.48851587+t*(-0.82215223+t*0.17087277)))))))))
	if z < 0 {
		return 2 - ans
	}
	return ans
}

// twoOverSqrtPi is 2/√π, the derivative of Erf at 0.
const twoOverSqrtPi = 1.1283791670955125738961589031215451716881012586579977136881714434

// ErfInv returns the inverse of the error function, the x such that
// Erf(x) = y. y must be in (-1, 1); ErfInv(±1) is ±Inf and values
// outside [-1, 1] return NaN.
//
// The seed is Giles's Horner polynomial approximation ("Approximating
// the erfinv function", GPU Computing Gems, 2010), good to about six
// digits, followed by two Newton-Raphson steps against math.Erf that
// bring the result to near machine precision.
func ErfInv(y float64) float64 {
	switch {
	case math.IsNaN(y) || y < -1 || y > 1:
		return math.NaN()
	case y == -1:
		return math.Inf(-1)
	case y == 1:
		return math.Inf(1)
	case y == 0:
		return 0
	}

	w := -math.Log((1 - y) * (1 + y))
	var p float64
	if w < 5 {
		w -= 2.5
		p = 2.81022636e-08
		p = 3.43273939e-07 + p*w
		p = -3.5233877e-06 + p*w
		p = -4.39150654e-06 + p*w
		p = 0.00021858087 + p*w
		p = -0.00125372503 + p*w
		p = -0.00417768164 + p*w
		p = 0.246640727 + p*w
		p = 1.50140941 + p*w
	} else {
		w = math.Sqrt(w) - 3
		p = -0.000200214257
		p = 0.000100950558 + p*w
		p = 0.00134934322 + p*w
		p = -0.00367342844 + p*w
		p = 0.00573950773 + p*w
		p = -0.0076224613 + p*w
		p = 0.00943887047 + p*w
		p = 1.00167406 + p*w
		p = 2.83297682 + p*w
	}
	x := p * y

	// Two Newton-Raphson refinement steps:
	//   x ← x - (erf(x) - y) / erf'(x),  erf'(x) = 2/√π e^(-x²)
	for i := 0; i < 2; i++ {
		err := math.Erf(x) - y
		x -= err / (twoOverSqrtPi * math.Exp(-x*x))
	}
	return x
}
