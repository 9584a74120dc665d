// SPDX-License-Identifier: MIT
// Package: itemnet/resample
//
// rng.go — seeded stream construction.
//
// Streams are PCG generators from math/rand/v2; the same *rand.Rand type is
// accepted by gonum's community detection, so one stream can drive both the
// row draw and the estimator of a replicate.

package resample

import "math/rand/v2"

// DefaultSeed is the fixed seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const DefaultSeed uint64 = 1

// pcgIncrement is the second PCG word; fixed so that a stream is fully
// identified by its seed.
const pcgIncrement uint64 = 0xda3e39cb94b95bdb

// New returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewPCG(seed, pcgIncrement))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer. Small changes in either input produce large,
// well-distributed changes in the output.
//
// Complexity: O(1).
func DeriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		// keep the seed==0 ⇒ DefaultSeed policy from silently merging streams
		x = DefaultSeed
	}
	return x
}

// Stream returns the independent stream number `stream` of the run seeded by seed.
// Use one stream per bootstrap replicate.
//
// Complexity: O(1).
func Stream(seed, stream uint64) *rand.Rand {
	return New(DeriveSeed(seed, stream))
}
