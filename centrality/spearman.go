// SPDX-License-Identifier: MIT
// Package: itemnet/centrality
//
// spearman.go — rank correlation for the case-dropping bootstrap.

package centrality

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Spearman returns the rank correlation of x and y (average ranks on ties).
// NaN when either side has no variance or the lengths differ.
func Spearman(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(ranks(x), ranks(y), nil)
}

// ranks returns 1-based average ranks.
func ranks(x []float64) []float64 {
	n := len(x)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[order[j+1]] == x[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[order[k]] = avg
		}
		i = j + 1
	}
	return out
}
