// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Single source of truth for nil/shape/finiteness guards.
//   - Return plain sentinels so call sites wrap uniformly with their op tag.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ValidateNotNil ensures the matrix reference is non-nil and non-empty.
// Returns ErrNilMatrix for nil, ErrEmpty for 0 rows or 0 columns.
// Complexity: O(1).
func ValidateNotNil(m mat.Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	if d, ok := m.(*mat.Dense); ok && d == nil {
		return ErrNilMatrix
	}
	if d, ok := m.(*mat.Dense); ok && d.IsEmpty() {
		return ErrEmpty
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return ErrEmpty
	}
	return nil
}

// ValidateFinite ensures every element of m is finite.
// Assumes m passed ValidateNotNil.
// Complexity: O(r*c).
func ValidateFinite(m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrNaNInf
			}
		}
	}
	return nil
}
