// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import "math/rand"

// A Dist is a continuous statistical distribution.
type Dist interface {
	// PDF returns the value of the probability density function
	// of this distribution at x. Outside the distribution's
	// support it returns 0.
	PDF(x float64) float64

	// LogPDF returns the natural logarithm of PDF(x). It is
	// computed from a closed-form log expression rather than as
	// log(PDF(x)), so it stays finite and accurate where PDF
	// underflows. Outside the support it returns -Inf.
	LogPDF(x float64) float64

	// CDF returns the value of the cumulative distribution
	// function for this distribution at x. This is the integral
	// of the PDF from the lower end of the support to x.
	CDF(x float64) float64

	// Bounds returns reasonable bounds for this distribution's
	// PDF and CDF. The total weight outside of these bounds
	// should be approximately 0.
	Bounds() (float64, float64)
}

// A DiscreteDist is a discrete statistical distribution.
type DiscreteDist interface {
	// PMF returns the probability mass at k.
	PMF(k float64) float64

	// CDF returns the probability of a value ≤ k.
	CDF(k float64) float64

	// Step returns the spacing of the distribution's support.
	Step() float64

	Bounds() (float64, float64)
}

// An InvCDFer is a distribution whose CDF has a closed-form or
// numerically-stable inverse.
type InvCDFer interface {
	// InvCDF returns the x such that CDF(x) = y. The value of y
	// must be in [0, 1].
	InvCDF(y float64) float64
}

// A Sampler can draw random values from a distribution.
//
// Every draw uses only the supplied random source, so
// reproducibility is entirely determined by the caller's seed. A nil
// source uses the shared top-level math/rand source.
type Sampler interface {
	Rand(r *rand.Rand) float64
}

// A ClosedForm distribution has closed-form moments.
//
// Moments that do not exist for the current parameters are reported
// as an ErrUndefinedMoment error, never as a silent NaN.
type ClosedForm interface {
	Mean() (float64, error)
	Variance() (float64, error)
}

// A Parametric distribution converts to and from a flat parameter
// vector, in a fixed per-distribution field order, for generic
// optimization routines. SetParameters validates exactly as the
// individual setters do and reports ErrDimension for a vector of the
// wrong length. The round trip SetParameters(Parameters()) is exact.
type Parametric interface {
	Parameters() []float64
	SetParameters(p []float64) error
}

// Sample draws n independent values from d. Consecutive calls with
// the same source continue its stream; calls with separately seeded
// sources are independent.
func Sample(d Sampler, r *rand.Rand, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = d.Rand(r)
	}
	return xs
}

// uniform returns a uniform variate in (0, 1), never exactly 0, so
// that -log(u) and division by u are safe.
func uniform(r *rand.Rand) float64 {
	for {
		var u float64
		if r == nil {
			u = rand.Float64()
		} else {
			u = r.Float64()
		}
		if u > 0 {
			return u
		}
	}
}

// normFloat64 draws a standard normal variate from r, falling back
// to the shared source when r is nil.
func normFloat64(r *rand.Rand) float64 {
	if r == nil {
		return rand.NormFloat64()
	}
	return r.NormFloat64()
}
