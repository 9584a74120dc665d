// SPDX-License-Identifier: MIT

// Package uva detects and eliminates redundant items with Unique Variable
// Analysis: items whose network neighbourhoods overlap too strongly are
// treated as measuring the same thing, and one of each such pair is removed
// (or merged into its partner).
//
// Redundancy is measured by the signed weighted topological overlap of the
// estimated network a:
//
//	wTO_ij = (Σ_u a_iu·a_uj + a_ij) / (min(k_i, k_j) + 1 − |a_ij|),  k_i = Σ_u |a_iu|
//
// Reduce repeats "estimate → find the most overlapping pair → drop one" until
// no |wTO| exceeds the cutoff or fewer than two items remain. Of a redundant
// pair, the item more entangled with the rest of the network (larger maximum
// |wTO| to the remaining items) goes; on a tie the later column goes.
//
// The column count never grows. A collinear input may shrink to one column;
// callers decide what that means.
package uva
