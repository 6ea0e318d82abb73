// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// distfit reads newline-separated numbers from stdin, summarizes
// them, and optionally fits a distribution to them.
//
// With -dist it fits the named parametric family by maximum
// likelihood or method of moments and prints the fitted parameters
// and a sketch of the fitted density. With -k it fits a k-component
// Gaussian mixture by expectation maximization.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-probdist/dist"
	"github.com/aclements/go-probdist/mixture"
)

var (
	distFlag = flag.String("dist", "", "fit the named distribution (normal, gamma, beta, lognormal, studentt, poisson)")
	kFlag    = flag.Int("k", 0, "fit a k-component Gaussian mixture by EM")
	seedFlag = flag.Int64("seed", 1, "random seed for mixture initialization")
)

func main() {
	flag.Parse()
	xs := readInput(os.Stdin)
	if len(xs) == 0 {
		fmt.Fprintln(os.Stderr, "no input")
		os.Exit(1)
	}

	var m dist.Moments
	for _, x := range xs {
		m.Add(x)
	}
	fmt.Printf("N %d  mean %.6g  variance %.6g  kurtosis %+.4g\n",
		m.Count(), m.Mean(), m.PopulationVariance(), m.ExcessKurtosis())

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	labels := map[int]string{0: "min", 50: "median", 100: "max"}
	for _, p := range []int{0, 5, 25, 50, 75, 95, 100} {
		label, ok := labels[p]
		if !ok {
			label = fmt.Sprintf("%d%%ile", p)
		}
		fmt.Printf("%8s %.6g\n", label, percentile(sorted, float64(p)/100))
	}

	if *distFlag != "" {
		fitNamed(*distFlag, xs)
	}
	if *kFlag > 0 {
		fitMixture(*kFlag, xs)
	}
}

func readInput(r io.Reader) []float64 {
	var xs []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		xs = append(xs, value)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return xs
}

// percentile interpolates the p'th quantile of sorted xs.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 1 {
		return xs[0]
	}
	pos := p * float64(len(xs)-1)
	lo := int(pos)
	if lo == len(xs)-1 {
		return xs[lo]
	}
	frac := pos - float64(lo)
	return xs[lo] + frac*(xs[lo+1]-xs[lo])
}

func fitNamed(name string, xs []float64) {
	var (
		d    dist.Dist
		desc string
		err  error
	)
	switch name {
	case "normal":
		var n dist.Normal
		n, err = dist.NormalEstimator{}.Estimate(xs)
		d, desc = n, fmt.Sprintf("normal  mu %.6g  sigma2 %.6g", n.Mu(), n.Sigma2())
	case "gamma":
		var g dist.Gamma
		g, err = dist.GammaEstimator{}.Estimate(xs)
		d, desc = g, fmt.Sprintf("gamma  shape %.6g  scale %.6g", g.Shape(), g.Scale())
	case "beta":
		var b dist.Beta
		b, err = dist.BetaEstimator{}.Estimate(xs)
		d, desc = b, fmt.Sprintf("beta  alpha %.6g  beta %.6g", b.Alpha(), b.Beta())
	case "lognormal":
		var l dist.LogNormal
		l, err = dist.LogNormalEstimator{}.Estimate(xs)
		p := l.Parameters()
		d, desc = l, fmt.Sprintf("lognormal  mu %.6g  sigma2 %.6g", p[0], p[1])
	case "studentt":
		var t dist.StudentT
		t, err = dist.StudentTEstimator{}.Estimate(xs)
		p := t.Parameters()
		d, desc = t, fmt.Sprintf("studentt  dof %.6g  mu %.6g  sigma %.6g", p[0], p[1], p[2])
	case "poisson":
		var p dist.Poisson
		p, err = dist.PoissonEstimator{}.Estimate(xs)
		if err == nil {
			fmt.Printf("\npoisson  lambda %.6g\n", p.Lambda())
		}
		d = nil
	default:
		fmt.Fprintf(os.Stderr, "unknown distribution %q\n", name)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if d != nil {
		fmt.Printf("\n%s\n\n", desc)
		printPDF(os.Stdout, d)
	}
}

func fitMixture(k int, xs []float64) {
	l := mixture.EMLearner{K: k, Estimator: mixture.Normals(dist.NormalEstimator{})}
	res, err := l.Fit(xs, rand.New(rand.NewSource(*seedFlag)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("\nmixture of %d normals  (%v after %d iterations)\n",
		k, res.Termination, res.Iterations)
	total := 0.0
	for _, w := range res.Model.Weights() {
		total += w
	}
	for i := 0; i < res.Model.Len(); i++ {
		n := res.Model.Component(i).(dist.Normal)
		fmt.Printf("  %d: weight %.4g  mu %.6g  sigma2 %.6g\n",
			i, res.Model.Weight(i)/total, n.Mu(), n.Sigma2())
	}
	fmt.Println()
	printPDF(os.Stdout, res.Model)
}

// printPDF sketches d's density as rows of bars over its bounds.
func printPDF(w io.Writer, d dist.Dist) {
	const rows = 20
	lo, hi := d.Bounds()
	step := (hi - lo) / rows
	max := 0.0
	ys := make([]float64, rows)
	for i := range ys {
		ys[i] = d.PDF(lo + (float64(i)+0.5)*step)
		if ys[i] > max {
			max = ys[i]
		}
	}
	if max == 0 {
		return
	}
	for i, y := range ys {
		n := int(y / max * 50)
		fmt.Fprintf(w, "%10.4g %s\n", lo+(float64(i)+0.5)*step, strings.Repeat("*", n))
	}
}
