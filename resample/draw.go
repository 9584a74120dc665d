// SPDX-License-Identifier: MIT
// Package: itemnet/resample
//
// draw.go — index draws over a population of n observations.

package resample

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Bootstrap draws n indices from [0,n) with replacement.
// If rng==nil, the DefaultSeed stream is used.
//
// Errors: ErrBadSize when n<0.
//
// Complexity: O(n) time and space.
func Bootstrap(n int, rng *rand.Rand) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("Bootstrap(%d): %w", n, ErrBadSize)
	}
	if rng == nil {
		rng = New(0)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.IntN(n)
	}
	return idx, nil
}

// Subsample draws k distinct indices from [0,n) without replacement and
// returns them in ascending order, so row order of the source is preserved.
//
// Implementation:
//   - Stage 1: validate 0<=k<=n.
//   - Stage 2: partial Fisher–Yates over the identity permutation (first k slots).
//   - Stage 3: sort the selected prefix.
//
// Errors: ErrBadSize when n<0, k<0 or k>n.
//
// Complexity: O(n + k log k) time, O(n) space.
func Subsample(n, k int, rng *rand.Rand) ([]int, error) {
	if n < 0 || k < 0 || k > n {
		return nil, fmt.Errorf("Subsample(%d,%d): %w", n, k, ErrBadSize)
	}
	if rng == nil {
		rng = New(0)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	out := perm[:k:k]
	sort.Ints(out)
	return out, nil
}

// Shuffle performs an in-place Fisher–Yates shuffle of a.
// If rng==nil, the DefaultSeed stream is used.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(a []int, rng *rand.Rand) {
	if len(a) <= 1 {
		return
	}
	if rng == nil {
		rng = New(0)
	}
	for i := len(a) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
