// SPDX-License-Identifier: MIT
// Package: matrix
//
// build.go — constructors from embedding provider output.
//
// Providers return float32 vectors (one per item). The network estimators
// need float64 observations × items; Observations performs the widening and
// the transpose in one deterministic pass.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opFromRows     = "FromRows"
	opObservations = "Observations"
)

// FromRows builds an n×d dense matrix from n vectors of equal length d.
//
// Errors:
//   - ErrEmpty when there are no vectors or the vectors are empty.
//   - ErrRaggedRows when lengths differ.
//   - ErrNaNInf when a component is not finite.
//
// Complexity: O(n*d).
func FromRows(rows [][]float32) (*mat.Dense, error) {
	n, d, err := checkVectors(rows)
	if err != nil {
		return nil, matrixErrorf(opFromRows, err)
	}
	data := make([]float64, 0, n*d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			data = append(data, float64(rows[i][j]))
		}
	}
	return mat.NewDense(n, d, data), nil
}

// Observations builds the d×n observations × items matrix from n item vectors
// of length d: column j holds the embedding of item j.
//
// Errors: as FromRows.
//
// Complexity: O(n*d).
func Observations(vectors [][]float32) (*mat.Dense, error) {
	n, d, err := checkVectors(vectors)
	if err != nil {
		return nil, matrixErrorf(opObservations, err)
	}
	data := make([]float64, d*n)
	for j := 0; j < n; j++ { // item j becomes column j
		for i := 0; i < d; i++ {
			data[i*n+j] = float64(vectors[j][i])
		}
	}
	return mat.NewDense(d, n, data), nil
}

// checkVectors validates shape and finiteness; returns (n, d).
func checkVectors(vs [][]float32) (int, int, error) {
	n := len(vs)
	if n == 0 || len(vs[0]) == 0 {
		return 0, 0, ErrEmpty
	}
	d := len(vs[0])
	for i, v := range vs {
		if len(v) != d {
			return 0, 0, fmt.Errorf("vector %d has length %d, want %d: %w", i, len(v), d, ErrRaggedRows)
		}
		for _, x := range v {
			f := float64(x)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, 0, fmt.Errorf("vector %d: %w", i, ErrNaNInf)
			}
		}
	}
	return n, d, nil
}
