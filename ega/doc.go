// SPDX-License-Identifier: MIT

// Package ega estimates an item network from observations × items data and
// partitions the items into communities ("dimensions"), in the manner of
// Exploratory Graph Analysis.
//
// Pipeline of one estimation:
//
//	data (obs × items)
//	  → Pearson correlation R                      (itemnet/matrix)
//	  → ridge-regularized partial correlations     (gonum mat.Cholesky)
//	      S = (1-λ)·R + λ·I,  P = S⁻¹,  w_ij = -P_ij / sqrt(P_ii·P_jj)
//	  → edges with |w| below the threshold removed
//	  → Louvain on |w|, labels renumbered 1..k     (gonum graph/community)
//
// The threshold defaults to the two-sided 5% significance level of a
// (partial) correlation at the available degrees of freedom; WithMinWeight
// sets a fixed one instead. MethodCorrelation skips the inversion and uses R.
//
// Determinism:
//   - Community detection is seeded per call (Estimate's seed argument).
//   - Labels are renumbered by first appearance in column order, so equal
//     partitions always carry equal labels.
//   - Graphs are gonum UndirectedMatrix values, whose neighbor iteration is
//     ordered by node ID.
//
// Estimator is the narrow interface the reducer, the bootstrap, the finalizer
// and the centrality analyzer all call. Tests substitute EstimatorFunc fakes.
package ega
