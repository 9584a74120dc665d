// SPDX-License-Identifier: MIT
// Package: itemnet/ega
//
// network.go — the estimated network and its graph views.

package ega

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// Network is one estimated item network.
// Node/column j of every view is column j of the estimated data.
type Network struct {
	// Weights holds signed edge weights; zero diagonal, zero for absent edges.
	Weights *mat.SymDense
	// Communities holds the 1-based community of every column.
	Communities []int
	// Dimensions is the number of distinct communities.
	Dimensions int
	// Threshold is the |w| cut applied to the edges.
	Threshold float64
	// Modularity is Louvain's Q for the partition on |w|.
	Modularity float64
	// Method records how the weights were derived.
	Method Method
}

// Len returns the number of items, the order of Weights.
func (n *Network) Len() int {
	if n.Weights == nil {
		return len(n.Communities)
	}
	return n.Weights.SymmetricDim()
}

// Edges returns the number of non-zero edges.
func (n *Network) Edges() int {
	c := n.Len()
	e := 0
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			if n.Weights.At(i, j) != 0 {
				e++
			}
		}
	}
	return e
}

// Graph returns the signed weighted graph; absent edges weigh 0.
func (n *Network) Graph() *simple.UndirectedMatrix {
	return n.view(0, func(w float64) float64 { return w })
}

// AbsGraph returns the graph weighted by |w|, the input of community detection.
func (n *Network) AbsGraph() *simple.UndirectedMatrix {
	return n.view(0, math.Abs)
}

// DistanceGraph returns the graph weighted by 1/|w| with +Inf for absent
// edges, the input of shortest-path centralities.
func (n *Network) DistanceGraph() *simple.UndirectedMatrix {
	return n.view(math.Inf(1), func(w float64) float64 { return 1 / math.Abs(w) })
}

func (n *Network) view(absent float64, f func(float64) float64) *simple.UndirectedMatrix {
	c := n.Len()
	g := simple.NewUndirectedMatrix(c, absent, 0, absent)
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			w := n.Weights.At(i, j)
			if w == 0 {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: f(w)})
		}
	}
	return g
}

// Members returns the column positions of every community, indexed by
// label-1, each in ascending order.
func (n *Network) Members() [][]int {
	out := make([][]int, n.Dimensions)
	for j, c := range n.Communities {
		out[c-1] = append(out[c-1], j)
	}
	return out
}
