// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmv

import (
	"gonum.org/v1/gonum/mat"
)

// MomentsMV is a streaming estimator of the mean vector and
// covariance matrix of a sequence of vector observations. It keeps a
// running weight total, running mean, and running scatter matrix
// (the sum of weighted outer products of deviations), the
// multivariate form of Welford's recurrence.
//
// The zero value is an empty accumulator; its dimension is fixed by
// the first observation. Accumulators over disjoint subsequences
// combine with Merge.
type MomentsMV struct {
	weight  float64
	mean    *mat.VecDense
	scatter *mat.SymDense
	n       int
}

// Add incorporates the observation x with weight 1.
func (m *MomentsMV) Add(x []float64) { m.AddWeighted(x, 1) }

// AddWeighted incorporates the observation x with the given
// nonnegative weight. It panics if x's length disagrees with
// earlier observations.
func (m *MomentsMV) AddWeighted(x []float64, weight float64) {
	m.n++
	if weight <= 0 {
		return
	}
	if m.mean == nil {
		m.mean = mat.NewVecDense(len(x), nil)
		m.scatter = mat.NewSymDense(len(x), nil)
	}
	d := m.mean.Len()
	if len(x) != d {
		panic("distmv: observation dimension changed mid-stream")
	}

	w := m.weight + weight
	// delta = x - mean (pre-update); the scatter update uses the
	// product of pre- and post-update deviations, which is the
	// exact weighted recurrence.
	delta := make([]float64, d)
	for i := 0; i < d; i++ {
		delta[i] = x[i] - m.mean.AtVec(i)
	}
	for i := 0; i < d; i++ {
		m.mean.SetVec(i, m.mean.AtVec(i)+delta[i]*weight/w)
	}
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			// delta'_j = x_j - mean'_j = delta_j * (1 - weight/w)
			m.scatter.SetSym(i, j, m.scatter.At(i, j)+weight*delta[i]*delta[j]*m.weight/w)
		}
	}
	m.weight = w
}

// Merge combines the observations accumulated in other into m using
// the closed-form pairwise formula, without replaying observations.
func (m *MomentsMV) Merge(other MomentsMV) {
	if other.mean == nil {
		m.n += other.n
		return
	}
	if m.mean == nil {
		m.mean = mat.VecDenseCopyOf(other.mean)
		m.scatter = mat.NewSymDense(other.scatter.SymmetricDim(), nil)
		m.scatter.CopySym(other.scatter)
		m.weight = other.weight
		m.n += other.n
		return
	}
	d := m.mean.Len()
	wa, wb := m.weight, other.weight
	w := wa + wb
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			di := other.mean.AtVec(i) - m.mean.AtVec(i)
			dj := other.mean.AtVec(j) - m.mean.AtVec(j)
			m.scatter.SetSym(i, j, m.scatter.At(i, j)+other.scatter.At(i, j)+di*dj*wa*wb/w)
		}
	}
	for i := 0; i < d; i++ {
		di := other.mean.AtVec(i) - m.mean.AtVec(i)
		m.mean.SetVec(i, m.mean.AtVec(i)+di*wb/w)
	}
	m.weight = w
	m.n += other.n
}

// Count returns the number of incorporated observations.
func (m MomentsMV) Count() int { return m.n }

// TotalWeight returns the sum of incorporated weights.
func (m MomentsMV) TotalWeight() float64 { return m.weight }

// Mean returns the weighted mean vector, or nil if no observations
// have been incorporated.
func (m MomentsMV) Mean() []float64 {
	if m.mean == nil {
		return nil
	}
	out := make([]float64, m.mean.Len())
	copy(out, m.mean.RawVector().Data)
	return out
}

// PopulationCovariance returns the biased (maximum-likelihood)
// covariance matrix, or nil if no observations have been
// incorporated.
func (m MomentsMV) PopulationCovariance() *mat.SymDense {
	if m.scatter == nil || m.weight == 0 {
		return nil
	}
	d := m.scatter.SymmetricDim()
	out := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.SetSym(i, j, m.scatter.At(i, j)/m.weight)
		}
	}
	return out
}
