// SPDX-License-Identifier: MIT

// Package resample provides the deterministic random streams and index draws
// shared by every bootstrap procedure in itemnet.
//
// Goals:
//   - Determinism: the same seed yields the same draws on every platform.
//   - Independence: each replicate gets its own stream derived from
//     (seed, replicate index), so results never depend on which worker ran
//     which replicate or in which order.
//   - Encapsulation: no time-based sources anywhere; seed==0 maps to DefaultSeed.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Never share one across goroutines;
//     derive a stream per replicate with Stream(seed, b).
//
// Draws:
//
//	Bootstrap(n, rng)    n indices in [0,n) with replacement (row resampling)
//	Subsample(n, k, rng) k distinct indices in [0,n), ascending (case dropping)
//	Shuffle(a, rng)      in-place Fisher–Yates
package resample
