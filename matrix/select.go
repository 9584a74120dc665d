// SPDX-License-Identifier: MIT
// Package: matrix
//
// select.go — copy-based submatrix extraction.
//
// Behavior highlights:
//   - Results are independent copies; the source is never mutated, which lets
//     bootstrap replicates share one source read-only.
//   - Index lists may repeat entries (bootstrap row draws repeat rows).
//   - Output order follows the index list order exactly.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	opSelectColumns = "SelectColumns"
	opPickRows      = "PickRows"
)

// SelectColumns returns a copy of m restricted to the given column positions.
//
// Inputs:
//   - m: r×c source.
//   - cols: positions in [0,c); at least one.
//
// Errors:
//   - ErrNilMatrix / ErrEmpty from validation, ErrEmpty for an empty cols list.
//   - ErrOutOfRange for a position outside [0,c).
//
// Complexity: O(r*len(cols)).
func SelectColumns(m mat.Matrix, cols []int) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSelectColumns, err)
	}
	if len(cols) == 0 {
		return nil, matrixErrorf(opSelectColumns, ErrEmpty)
	}
	r, c := m.Dims()
	for _, j := range cols {
		if j < 0 || j >= c {
			return nil, matrixErrorf(opSelectColumns, fmt.Errorf("col %d: %w", j, ErrOutOfRange))
		}
	}
	cp := len(cols)
	data := make([]float64, r*cp)
	for i := 0; i < r; i++ {
		base := i * cp
		for k, j := range cols {
			data[base+k] = m.At(i, j)
		}
	}
	return mat.NewDense(r, cp, data), nil
}

// PickRows returns a copy of m whose row k is row rows[k] of m.
//
// Errors:
//   - ErrNilMatrix / ErrEmpty from validation, ErrEmpty for an empty rows list.
//   - ErrOutOfRange for an index outside [0,r).
//
// Complexity: O(len(rows)*c).
func PickRows(m mat.Matrix, rows []int) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opPickRows, err)
	}
	if len(rows) == 0 {
		return nil, matrixErrorf(opPickRows, ErrEmpty)
	}
	r, c := m.Dims()
	data := make([]float64, len(rows)*c)
	for k, i := range rows {
		if i < 0 || i >= r {
			return nil, matrixErrorf(opPickRows, fmt.Errorf("row %d: %w", i, ErrOutOfRange))
		}
		base := k * c
		if d, ok := m.(*mat.Dense); ok {
			copy(data[base:base+c], d.RawRowView(i))
			continue
		}
		for j := 0; j < c; j++ {
			data[base+j] = m.At(i, j)
		}
	}
	return mat.NewDense(len(rows), c, data), nil
}

// Column returns a copy of column j of m.
// Assumes m is valid; returns ErrOutOfRange for a bad j.
func Column(m mat.Matrix, j int) ([]float64, error) {
	_, c := m.Dims()
	if j < 0 || j >= c {
		return nil, fmt.Errorf("Column(%d): %w", j, ErrOutOfRange)
	}
	return mat.Col(nil, j, m), nil
}
