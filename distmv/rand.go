// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmv

import (
	"math/rand"

	"github.com/aclements/go-probdist/dist"
)

// gammaRand draws one gamma variate. The multivariate samplers here
// (Dirichlet normalization, chi-square mixing for the t, Bartlett
// diagonals for the Wishart) all reduce to univariate gamma draws.
func gammaRand(shape, scale float64, r *rand.Rand) float64 {
	g, err := dist.NewGamma(shape, scale)
	if err != nil {
		panic(err)
	}
	return g.Rand(r)
}

func normFloat64(r *rand.Rand) float64 {
	if r == nil {
		return rand.NormFloat64()
	}
	return r.NormFloat64()
}
