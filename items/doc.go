// SPDX-License-Identifier: MIT

// Package items owns the item texts of one run and the bookkeeping that maps
// working-matrix columns back to them.
//
// Model:
//   - Arena: the immutable, deduplicated phrase sequence. An item is identified
//     by its arena index for the whole run.
//   - Selection: the arena indices of the columns of the current working
//     matrix, in column order. Every column drop goes through Restrict, so the
//     selection always describes the matrix it travels with.
//   - Labels: "i<k>" names the k-th column (1-based) of the current matrix.
//     They are display names only; Resolve goes through the selection and never
//     parses a label to recover an arena index.
//
// Input:
//
//	Load(path)                 YAML/JSON file with one key holding a string list,
//	                           or a bare top-level list
//	Prepare(raw, exclude)      manual exclusion (0-based raw positions), then dedup
//
// Errors:
//   - ErrInputMissing, ErrInputMalformed, ErrInputShape, ErrEmptyInput,
//     ErrBadExclusion, ErrTooFewItems for loading and preparation.
//   - ErrUnknownIdentifier for a label or index that does not resolve.
package items
