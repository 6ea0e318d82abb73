// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import "fmt"

// Moments is a streaming estimator of the mean and variance of a
// sequence of observations. It maintains a running count (or weight
// total), running mean, and running sum of squared differences using
// Welford's algorithm, so it is numerically stable and never needs to
// revisit past observations.
//
// The zero value is an empty accumulator ready for use. Two
// accumulators filled from disjoint subsequences can be combined
// with Merge.
type Moments struct {
	weight float64 // count for unweighted use
	mean   float64
	m2     float64 // sum of weighted squared deviations from mean
	m3, m4 float64 // higher central sums, for skewness/kurtosis
	n      int     // number of Add* calls, regardless of weight
}

// Add incorporates the observation x with weight 1.
func (m *Moments) Add(x float64) {
	m.AddWeighted(x, 1)
}

// AddWeighted incorporates the observation x with the given
// nonnegative weight. A zero weight only bumps the observation
// count.
func (m *Moments) AddWeighted(x, weight float64) {
	// West's weighted extension of Welford's recurrence. The
	// update is the Pébay (2008) pairwise combination specialized
	// to a singleton right-hand side, so the higher sums must be
	// updated from highest order down, each seeing the
	// lower-order sums from before the update.
	m.n++
	if weight <= 0 {
		return
	}
	wa := m.weight
	w := wa + weight
	d := x - m.mean

	m.m4 += d*d*d*d*wa*weight*(wa*wa-wa*weight+weight*weight)/(w*w*w) +
		6*d*d*weight*weight*m.m2/(w*w) - 4*d*weight*m.m3/w
	m.m3 += d*d*d*wa*weight*(wa-weight)/(w*w) - 3*d*weight*m.m2/w
	m.m2 += d * d * wa * weight / w
	m.mean += d * weight / w
	m.weight = w
}

// Merge combines the observations accumulated in other into m, as if
// every observation given to other had been given to m. It uses the
// closed-form parallel combination of the running sums (Chan,
// Golub, LeVeque 1979; Pébay 2008), so neither side replays data.
func (m *Moments) Merge(other Moments) {
	if other.weight == 0 {
		m.n += other.n
		return
	}
	if m.weight == 0 {
		*m = other
		return
	}
	wa, wb := m.weight, other.weight
	w := wa + wb
	d := other.mean - m.mean

	m4 := m.m4 + other.m4 +
		d*d*d*d*wa*wb*(wa*wa-wa*wb+wb*wb)/(w*w*w) +
		6*d*d*(wa*wa*other.m2+wb*wb*m.m2)/(w*w) +
		4*d*(wa*other.m3-wb*m.m3)/w
	m3 := m.m3 + other.m3 +
		d*d*d*wa*wb*(wa-wb)/(w*w) +
		3*d*(wa*other.m2-wb*m.m2)/w
	m2 := m.m2 + other.m2 + d*d*wa*wb/w

	m.mean += d * wb / w
	m.m2, m.m3, m.m4 = m2, m3, m4
	m.weight = w
	m.n += other.n
}

// Count returns the number of incorporated observations.
func (m Moments) Count() int { return m.n }

// TotalWeight returns the sum of incorporated weights. For
// unweighted use this equals Count.
func (m Moments) TotalWeight() float64 { return m.weight }

// Mean returns the weighted mean of the observations, or NaN if none
// have been incorporated.
func (m Moments) Mean() float64 {
	if m.weight == 0 {
		return nan
	}
	return m.mean
}

// PopulationVariance returns the biased (maximum-likelihood) variance
// of the observations.
func (m Moments) PopulationVariance() float64 {
	if m.weight == 0 {
		return nan
	}
	return m.m2 / m.weight
}

// SampleVariance returns the unbiased sample variance of the
// observations. It requires at least two observations carrying
// weight.
func (m Moments) SampleVariance() (float64, error) {
	if m.weight <= 1 {
		return 0, fmt.Errorf("%w: sample variance needs total weight > 1", ErrInsufficientData)
	}
	return m.m2 / (m.weight - 1), nil
}

// ExcessKurtosis returns the sample excess kurtosis m₄/m₂² - 3 of
// the observations.
func (m Moments) ExcessKurtosis() float64 {
	if m.m2 == 0 {
		return nan
	}
	return m.weight*m.m4/(m.m2*m.m2) - 3
}
