// SPDX-License-Identifier: MIT

// Package synth builds seeded item-observation data with a planted cluster
// structure, for tests, benchmarks and examples.
//
// Model (one-factor-per-cluster):
//
//	x[o][j] = λ·f[o][c(j)] + sqrt(1-λ²)·e[o][j]
//
// where c(j) is the planted cluster of item j, f and e are independent
// standard normal draws and λ is the loading. Items of one cluster correlate
// at λ², items of different clusters at (about) 0. Twins are near-copies of an
// existing item and exist to exercise redundancy detection.
//
// Determinism: the same sizes, observation count and options give the same
// matrix on every run. The RNG comes from itemnet/resample.
package synth
