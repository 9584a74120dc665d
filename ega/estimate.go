// SPDX-License-Identifier: MIT
// Package: itemnet/ega
//
// estimate.go — network estimation and community detection.

package ega

import (
	"fmt"
	"math"

	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/resample"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

const opEstimate = "Estimate"

// Estimator estimates a network with communities from obs × items data.
// seed drives every random choice of one call.
type Estimator interface {
	Estimate(data mat.Matrix, seed uint64) (*Network, error)
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(data mat.Matrix, seed uint64) (*Network, error)

// Estimate calls f.
func (f EstimatorFunc) Estimate(data mat.Matrix, seed uint64) (*Network, error) {
	return f(data, seed)
}

// EGA is the default Estimator. Safe for concurrent use: it holds only
// immutable options.
type EGA struct {
	opts Options
}

// New returns an EGA estimator with DefaultOptions modified by opts.
func New(opts ...Option) *EGA {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &EGA{opts: o}
}

// NewWithOptions returns an EGA estimator using o as given.
func NewWithOptions(o Options) *EGA { return &EGA{opts: o} }

// Options returns the estimator's options.
func (e *EGA) Options() Options { return e.opts }

// Estimate builds the network and its communities.
//
// Implementation:
//   - Stage 1: validate shape (≥3 rows, ≥2 columns) and finiteness.
//   - Stage 2: correlation matrix with zeroed degenerate columns.
//   - Stage 3: partial correlations through a Cholesky inverse of the
//     ridge-shrunk correlation matrix (MethodPartial only).
//   - Stage 4: threshold edges.
//   - Stage 5: Louvain on |w|, seeded; canonical relabelling.
//
// Errors:
//   - ErrTooFewItems, ErrTooFewObservations, ErrSingular;
//     matrix sentinels for nil/empty/non-finite data.
//
// Complexity:
//   - Time O(r·c² + c³) plus Louvain, Space O(r·c + c²).
func (e *EGA) Estimate(data mat.Matrix, seed uint64) (*Network, error) {
	if err := matrix.ValidateNotNil(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	if err := matrix.ValidateFinite(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	r, c := data.Dims()
	if c < 2 {
		return nil, fmt.Errorf("%s(%d items): %w", opEstimate, c, ErrTooFewItems)
	}
	if r < 3 {
		return nil, fmt.Errorf("%s(%d observations): %w", opEstimate, r, ErrTooFewObservations)
	}

	R, err := matrix.Correlation(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	var W *mat.SymDense
	switch e.opts.Method {
	case MethodCorrelation:
		W = mat.NewSymDense(c, nil)
		W.CopySym(R)
	default:
		W, err = partialCorrelations(R, e.opts.Shrinkage)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opEstimate, err)
		}
	}
	for i := 0; i < c; i++ {
		W.SetSym(i, i, 0)
	}

	thr := e.threshold(r, c)
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			if math.Abs(W.At(i, j)) < thr {
				W.SetSym(i, j, 0)
			}
		}
	}

	net := &Network{Weights: W, Threshold: thr, Method: e.opts.Method}
	net.Communities, net.Modularity = detect(net, e.opts.Resolution, seed)
	net.Dimensions = countLabels(net.Communities)
	return net, nil
}

// threshold returns the |w| cut for r observations and c items.
func (e *EGA) threshold(r, c int) float64 {
	if !e.opts.Auto {
		return e.opts.MinWeight
	}
	// Fisher z: atanh(w)·sqrt(df) ~ N(0,1) under w=0.
	df := float64(r - 3)
	if e.opts.Method == MethodPartial {
		df -= float64(c - 2)
	}
	if df < 1 {
		df = 1
	}
	return math.Max(e.opts.MinWeight, math.Tanh(DefaultCriticalZ/math.Sqrt(df)))
}

// partialCorrelations inverts (1-λ)R + λI and standardizes the precision matrix.
func partialCorrelations(R *mat.SymDense, lambda float64) (*mat.SymDense, error) {
	c := R.SymmetricDim()
	S := mat.NewSymDense(c, nil)
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			v := (1 - lambda) * R.At(i, j)
			if i == j {
				v += lambda
			}
			S.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(S); !ok {
		return nil, ErrSingular
	}
	var P mat.SymDense
	if err := chol.InverseTo(&P); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	W := mat.NewSymDense(c, nil)
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			d := P.At(i, i) * P.At(j, j)
			if d <= 0 {
				continue
			}
			W.SetSym(i, j, -P.At(i, j)/math.Sqrt(d))
		}
	}
	return W, nil
}

// detect runs seeded Louvain on |w| and returns canonical labels and Q.
// A network without edges puts every item in its own community.
func detect(net *Network, resolution float64, seed uint64) ([]int, float64) {
	c := net.Weights.SymmetricDim()
	labels := make([]int, c)
	if net.Edges() == 0 {
		for j := range labels {
			labels[j] = j + 1
		}
		return labels, 0
	}

	g := net.AbsGraph()
	reduced := community.Modularize(g, resolution, resample.New(seed))
	comms := reduced.Communities()
	raw := make([]int, c)
	for k, members := range comms {
		for _, n := range members {
			raw[n.ID()] = k
		}
	}
	labels = Canonical(raw)
	return labels, community.Q(g, groups(labels), resolution)
}

// groups turns 1-based labels into gonum community membership lists.
func groups(labels []int) [][]graph.Node {
	out := make([][]graph.Node, countLabels(labels))
	for j, l := range labels {
		out[l-1] = append(out[l-1], simple.Node(j))
	}
	return out
}

// Canonical renumbers arbitrary labels to 1..k in order of first appearance,
// so that equal partitions get equal label vectors.
func Canonical(raw []int) []int {
	next := 1
	seen := make(map[int]int, len(raw))
	out := make([]int, len(raw))
	for j, l := range raw {
		m, ok := seen[l]
		if !ok {
			m = next
			seen[l] = m
			next++
		}
		out[j] = m
	}
	return out
}

func countLabels(labels []int) int {
	k := 0
	for _, l := range labels {
		if l > k {
			k = l
		}
	}
	return k
}
