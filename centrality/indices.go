// SPDX-License-Identifier: MIT
// Package: itemnet/centrality
//
// indices.go — the four node indices and their standardization.

package centrality

import (
	"math"

	"github.com/katalvlaran/itemnet/ega"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/stat"
)

// Index names one centrality index.
type Index int

const (
	Strength Index = iota
	Closeness
	Betweenness
	ExpectedInfluence
)

// NumIndices is the number of centrality indices.
const NumIndices = 4

// Indices lists every index in report order.
var Indices = [NumIndices]Index{Strength, Closeness, Betweenness, ExpectedInfluence}

// String returns the index name used in reports.
func (i Index) String() string {
	switch i {
	case Strength:
		return "Strength"
	case Closeness:
		return "Closeness"
	case Betweenness:
		return "Betweenness"
	case ExpectedInfluence:
		return "ExpectedInfluence"
	default:
		return "Index(?)"
	}
}

// Values holds one slice per index, each with one entry per item.
type Values [NumIndices][]float64

// Compute returns the raw indices of every node of net.
//
// Implementation:
//   - Strength and expected influence are row sums of |w| and w.
//   - Closeness and betweenness share one all-pairs Dijkstra on the 1/|w|
//     distance graph. An isolated node has closeness 0. Betweenness is halved
//     because gonum counts both directions of an undirected path.
//
// Complexity: O(c³) for the all-pairs paths plus path enumeration.
func Compute(net *ega.Network) Values {
	c := net.Len()
	var v Values
	for k := range v {
		v[k] = make([]float64, c)
	}
	for j := 0; j < c; j++ {
		for u := 0; u < c; u++ {
			if u == j {
				continue
			}
			w := net.Weights.At(j, u)
			v[Strength][j] += math.Abs(w)
			v[ExpectedInfluence][j] += w
		}
	}

	g := net.DistanceGraph()
	paths := path.DijkstraAllPaths(g)
	closeness := network.Closeness(g, paths)
	between := network.BetweennessWeighted(g, paths)
	for j := 0; j < c; j++ {
		cl := closeness[int64(j)]
		if math.IsInf(cl, 0) || math.IsNaN(cl) {
			cl = 0
		}
		v[Closeness][j] = cl
		v[Betweenness][j] = between[int64(j)] / 2
	}
	return v
}

// Standardize returns (x-mean)/sd with the sample sd; zero variance gives zeros.
func Standardize(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) < 2 {
		return out
	}
	mean, sd := stat.MeanStdDev(x, nil)
	if !(sd > 0) {
		return out
	}
	for i, xi := range x {
		out[i] = (xi - mean) / sd
	}
	return out
}
