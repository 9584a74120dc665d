// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics over observations × items data: centering, z-scoring
//     and Pearson correlation, composed from one centering kernel.
//   - One degenerate-column policy for all of them: a column with zero sample
//     standard deviation becomes an all-zero column (and a zero row/column in
//     the correlation matrix), never NaN.
//
// Exposed API:
//   - CenterColumns(X) -> (Xc, means)
//   - ZScoreColumns(X) -> (Z, means, stds)
//   - Correlation(X)   -> Corr (c×c, symmetric)
//
// Determinism:
//   - Fixed i→j traversal for explicit loops; Gram product delegated to gonum.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opCenterColumns = "CenterColumns"
	opZScoreColumns = "ZScoreColumns"
	opCorrelation   = "Correlation"
)

// CenterColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: validate X (non-nil, non-empty).
//   - Stage 2: accumulate column sums in a deterministic i→j pass.
//   - Stage 3: build the centered copy.
//
// Returns:
//   - *mat.Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Errors:
//   - ErrNilMatrix, ErrEmpty from validation.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(X mat.Matrix) (*mat.Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Dims()

	means := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			means[j] += X.At(i, j)
		}
	}
	invR := 1.0 / float64(r)
	for j := range means {
		means[j] *= invR
	}

	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			data[base+j] = X.At(i, j) - means[j]
		}
	}
	return mat.NewDense(r, c, data), means, nil
}

// ZScoreColumns standardizes every column to mean 0 and sample std 1.
// Degenerate columns (std==0) become all zeros.
//
// Errors:
//   - ErrNilMatrix, ErrEmpty, ErrTooFewObservations (r<2).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ZScoreColumns(X mat.Matrix) (*mat.Dense, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opZScoreColumns, err)
	}
	r, c := X.Dims()
	if r < 2 {
		return nil, nil, nil, matrixErrorf(opZScoreColumns, ErrTooFewObservations)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opZScoreColumns, err)
	}
	stds, invStd := columnStds(Xc)

	// Z = Xc * diag(invStd), in place on the private copy.
	raw := Xc.RawMatrix()
	for i := 0; i < r; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+c]
		for j := range row {
			row[j] *= invStd[j]
		}
	}
	return Xc, means, stds, nil
}

// Correlation computes the Pearson correlation matrix of the columns of X via
// z-scoring: Corr = (Zᵀ Z)/(r-1).
//
// Behavior highlights:
//   - Symmetric; diagonal is 1 for non-degenerate columns, 0 for degenerate ones.
//   - Scale-invariant: Correlation(α*X) == Correlation(X) for α>0.
//
// Errors:
//   - ErrNilMatrix, ErrEmpty, ErrTooFewObservations (r<2).
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func Correlation(X mat.Matrix) (*mat.SymDense, error) {
	Z, _, _, err := ZScoreColumns(X)
	if err != nil {
		return nil, matrixErrorf(opCorrelation, err)
	}
	r, c := Z.Dims()

	corr := mat.NewSymDense(c, nil)
	corr.SymOuterK(1.0/float64(r-1), Z.T())

	// Clamp rounding drift so downstream |ρ|≤1 checks hold exactly.
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			v := corr.At(i, j)
			switch {
			case v > 1:
				corr.SetSym(i, j, 1)
			case v < -1:
				corr.SetSym(i, j, -1)
			}
		}
	}
	return corr, nil
}

// columnStds returns the sample standard deviations of the centered columns of
// Xc and their inverses (0 for degenerate columns).
func columnStds(Xc *mat.Dense) ([]float64, []float64) {
	r, c := Xc.Dims()
	sumsq := make([]float64, c)
	for i := 0; i < r; i++ {
		row := Xc.RawRowView(i)
		for j, v := range row {
			sumsq[j] += v * v
		}
	}
	stds := make([]float64, c)
	invStd := make([]float64, c)
	inv := 1.0 / float64(r-1)
	for j := range sumsq {
		stds[j] = math.Sqrt(sumsq[j] * inv)
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
		}
	}
	return stds, invStd
}
