// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// distmv implements parametric multivariate probability
// distributions over gonum vector and matrix types.
//
// As in package dist, distributions are mutable value objects with
// no internal synchronization. Derived quantities (Cholesky factors,
// log-determinants) are cached behind a dirty flag and recomputed
// idempotently, so concurrent readers racing on a cache fill all
// compute the same value; concurrent mutation is the caller's bug.
package distmv // import "github.com/aclements/go-probdist/distmv"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)

var (
	// ErrInvalidParameter is returned when a parameter is outside
	// its legal range.
	ErrInvalidParameter = errors.New("invalid distribution parameter")

	// ErrDimension is returned when vector or matrix dimensions
	// do not agree.
	ErrDimension = errors.New("dimension mismatch")

	// ErrNotSymmetric is returned when a covariance argument is
	// asymmetric beyond tolerance.
	ErrNotSymmetric = errors.New("matrix asymmetric beyond tolerance")

	// ErrNotPositiveDefinite is returned when a covariance or
	// scale matrix has no Cholesky factorization.
	ErrNotPositiveDefinite = errors.New("matrix not positive definite")

	// ErrUndefinedMoment is returned by moment accessors when the
	// moment does not exist for the current parameters.
	ErrUndefinedMoment = errors.New("moment undefined for these parameters")

	// ErrInsufficientData is returned by estimators that need
	// more observations than they were given.
	ErrInsufficientData = errors.New("insufficient data")
)

const log2Pi = 1.8378770664093454835606594728112352797227949472755668256343030809

// symTol is the relative tolerance within which an off-diagonal pair
// may disagree and still be averaged into a symmetric matrix.
const symTol = 1e-8
