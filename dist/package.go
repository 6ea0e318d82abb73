// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dist implements parametric univariate probability distributions.
//
// Each distribution is a small value type whose parameters are
// validated at construction and mutation time. Distributions are not
// safe for concurrent mutation; callers that share an instance across
// goroutines must either treat it as read-only or clone it.
package dist // import "github.com/aclements/go-probdist/dist"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

var (
	// ErrInvalidParameter is returned when a distribution
	// parameter is outside its legal range, such as a non-positive
	// shape or variance.
	ErrInvalidParameter = errors.New("invalid distribution parameter")

	// ErrUndefinedMoment is returned by Mean or Variance when the
	// moment does not exist for the current parameters, such as
	// the mean of a Cauchy distribution.
	ErrUndefinedMoment = errors.New("moment undefined for these parameters")

	// ErrInsufficientData is returned by estimators that need more
	// observations than they were given.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDimension is returned when a parameter vector has the
	// wrong number of elements for the target distribution.
	ErrDimension = errors.New("wrong parameter vector length")
)
