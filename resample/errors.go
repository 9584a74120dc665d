// SPDX-License-Identifier: MIT
// Package: itemnet/resample
//
// errors.go — sentinel errors for the resample package.
// Callers branch with errors.Is; sentinels are never re-created with
// formatted strings.

package resample

import "errors"

// ErrBadSize indicates a negative population size or a sample size outside [0,n].
var ErrBadSize = errors.New("resample: invalid sample size")
