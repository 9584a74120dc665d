// SPDX-License-Identifier: MIT

// Package matrix holds the item-observation matrix helpers used by every
// itemnet stage.
//
// Layout convention:
//
//	rows    = observations (embedding dimensions, or resampled cases)
//	columns = items (variables)
//
// Embedding providers return one vector per item (items × dims); Observations
// transposes that natural output into the dims × items layout the network
// estimators consume.
//
// The package provides:
//
//   - Observations / FromRows: build dense matrices from provider output.
//   - SelectColumns / PickRows: copy-based submatrix extraction used when the
//     iteration loop drops items and when bootstrap replicates resample rows.
//   - CenterColumns / Correlation / ZScoreColumns: column statistics with a
//     fixed degenerate-column policy (std==0 ⇒ zeroed column).
//
// Storage is gonum's *mat.Dense / *mat.SymDense. All helpers return new
// matrices and never mutate their inputs, so one matrix can be shared
// read-only by concurrent bootstrap replicates.
//
// Determinism:
//   - Fixed i→j loop orders, no map iteration.
package matrix
