// SPDX-License-Identifier: MIT

// Package centrality computes node centralities of the final item network
// and measures how far they can be trusted.
//
// Indices (node j, signed weights w):
//
//	Strength           Σ_u |w_ju|
//	ExpectedInfluence  Σ_u  w_ju
//	Closeness          1 / Σ_u d(j,u)   shortest paths on d = 1/|w|
//	Betweenness        share of shortest paths through j, same distances
//
// Every index is z-standardized across items; an index with zero variance
// standardizes to zeros.
//
// Stability comes from two bootstraps. The nonparametric bootstrap redraws
// all observations with replacement and reports 2.5% and 97.5% quantiles of
// every raw index per item. The case-dropping bootstrap keeps a random
// subset of observations for drop proportions 0.05, 0.10, ..., 0.75 and
// correlates (Spearman) the subsample index with the full-sample one. The
// CS coefficient of an index is the largest drop proportion at which at
// least 95% of draws correlate at 0.7 or more; 0 when no proportion does.
//
// Draws run in an errgroup pool and write private slots, so a seed gives the
// same report for every worker count.
package centrality
