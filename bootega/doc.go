// SPDX-License-Identifier: MIT

// Package bootega measures how stably every item lands in the same dimension
// when the observations are resampled (bootstrap Exploratory Graph Analysis).
//
// Procedure:
//  1. Estimate the empirical network on the full data.
//  2. For b = 0..B-1 draw n rows with replacement from stream
//     resample.Stream(seed, b), estimate again, and homogenize the replicate's
//     labels onto the empirical ones (greedy one-to-one matching by overlap;
//     unmatched replicate communities get fresh labels above the empirical ones).
//  3. Per item, count labels over replicates. The score is the frequency of
//     the modal label (ties: smaller label); the empirical agreement is the
//     frequency of the item's empirical label.
//
// Replicates run in an errgroup pool. Each writes only labels[b], and every
// aggregate is computed after Wait by walking b in order, so the result for a
// given seed is independent of the worker count.
package bootega
