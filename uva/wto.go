// SPDX-License-Identifier: MIT
// Package: itemnet/uva
//
// wto.go — weighted topological overlap.

package uva

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// WTO returns the signed weighted topological overlap of the network with
// weights a (symmetric, diagonal ignored). The result is symmetric with a
// zero diagonal; |wTO| ≤ 1.
//
// Complexity: O(c³) time, O(c²) space.
func WTO(a mat.Symmetric) *mat.SymDense {
	c := a.SymmetricDim()
	w := func(i, j int) float64 {
		if i == j {
			return 0
		}
		return a.At(i, j)
	}

	k := make([]float64, c)
	for i := 0; i < c; i++ {
		for u := 0; u < c; u++ {
			k[i] += math.Abs(w(i, u))
		}
	}

	out := mat.NewSymDense(c, nil)
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			aij := w(i, j)
			var shared float64
			for u := 0; u < c; u++ {
				if u == i || u == j {
					continue
				}
				shared += w(i, u) * w(u, j)
			}
			den := math.Min(k[i], k[j]) + 1 - math.Abs(aij)
			if den <= 0 {
				continue
			}
			out.SetSym(i, j, (shared+aij)/den)
		}
	}
	return out
}
