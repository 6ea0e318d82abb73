// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixture implements finite mixture densities over univariate
// components and learners that fit them to data.
//
// A Model pairs an ordered list of components with a parallel slice
// of nonnegative prior weights. The weights need not be normalized;
// their sum is the normalizing denominator for every prior-weighted
// computation. EMLearner fits a model by soft expectation
// maximization and HardLearner by hard (winner-take-all) assignment.
// Neither learner fails on non-convergence; both return the estimate
// reached at the iteration cap.
package mixture // import "github.com/aclements/go-probdist/mixture"

import "math"

var inf = math.Inf(1)
