// SPDX-License-Identifier: MIT
// Package: itemnet/uva
//
// reduce.go — iterative redundancy elimination.

package uva

import (
	"fmt"
	"math"

	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/matrix"
	"gonum.org/v1/gonum/mat"
)

const opReduce = "Reduce"

// Record documents one eliminated item. Positions refer to the columns of
// the matrix passed to Reduce.
type Record struct {
	Kept    int     // surviving member of the pair
	Dropped int     // eliminated member
	WTO     float64 // signed overlap of the pair when it was eliminated
	Merged  bool    // true when Dropped was merged into Kept
}

// Result is the outcome of Reduce.
type Result struct {
	// Kept lists the surviving input column positions in input order.
	Kept []int
	// Data is the reduced matrix; column k is input column Kept[k], or the
	// merged composite that replaced it.
	Data *mat.Dense
	// Records lists eliminations in the order they happened.
	Records []Record
	// Network is the last estimation, on Data; nil when fewer than two
	// columns remain.
	Network *ega.Network
}

// Reduce removes redundant columns of data.
//
// Implementation:
//   - Stage 1: estimate the network on the live columns and compute wTO.
//   - Stage 2: pick the pair with the largest |wTO| (first in row-major order
//     on ties); stop when it does not exceed the cutoff.
//   - Stage 3: drop the member with the larger maximum |wTO| to the other
//     live columns (the later column on a tie); with MethodMerge, fold it
//     into the keeper first.
//   - Repeat while at least two columns remain.
//
// Errors:
//   - ErrTooFewColumns for fewer than two columns; the Result then holds the
//     input unchanged.
//   - Estimation errors, wrapped.
//
// Complexity: O(d·(E + c³)) for d eliminations and estimation cost E.
func Reduce(data mat.Matrix, est ega.Estimator, seed uint64, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := matrix.ValidateNotNil(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opReduce, err)
	}

	_, c := data.Dims()
	cur := mat.DenseCopyOf(data)
	alive := make([]int, c)
	for j := range alive {
		alive[j] = j
	}
	res := &Result{Kept: alive, Data: cur}
	if c < 2 {
		return res, fmt.Errorf("%s(%d columns): %w", opReduce, c, ErrTooFewColumns)
	}

	for len(alive) >= 2 {
		net, err := est.Estimate(cur, seed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opReduce, err)
		}
		res.Network = net

		wto := WTO(net.Weights)
		i, j, v := maxPair(wto)
		if math.Abs(v) <= o.Cutoff {
			break
		}

		keep, drop := i, j
		if peak(wto, i, j) > peak(wto, j, i) {
			keep, drop = j, i
		}
		rec := Record{Kept: alive[keep], Dropped: alive[drop], WTO: v}
		if o.Method == MethodMerge {
			if err = merge(cur, keep, drop, v); err != nil {
				return nil, fmt.Errorf("%s: %w", opReduce, err)
			}
			rec.Merged = true
		}
		res.Records = append(res.Records, rec)

		cols := make([]int, 0, len(alive)-1)
		next := make([]int, 0, len(alive)-1)
		for k := range alive {
			if k == drop {
				continue
			}
			cols = append(cols, k)
			next = append(next, alive[k])
		}
		if cur, err = matrix.SelectColumns(cur, cols); err != nil {
			return nil, fmt.Errorf("%s: %w", opReduce, err)
		}
		alive = next
		res.Network = nil
	}

	res.Kept = alive
	res.Data = cur
	return res, nil
}

// maxPair returns the upper-triangle pair with the largest |wTO|.
func maxPair(wto *mat.SymDense) (int, int, float64) {
	c := wto.SymmetricDim()
	bi, bj, best := 0, 1, 0.0
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			if v := wto.At(i, j); math.Abs(v) > math.Abs(best) {
				bi, bj, best = i, j, v
			}
		}
	}
	return bi, bj, best
}

// peak returns the largest |wTO| of item i to any column except i and partner.
func peak(wto *mat.SymDense, i, partner int) float64 {
	c := wto.SymmetricDim()
	m := 0.0
	for u := 0; u < c; u++ {
		if u == i || u == partner {
			continue
		}
		m = math.Max(m, math.Abs(wto.At(i, u)))
	}
	return m
}

// merge overwrites column keep of m with the mean of the z-scored columns
// keep and drop, drop's sign flipped when the pair overlaps negatively.
func merge(m *mat.Dense, keep, drop int, overlap float64) error {
	pair, err := matrix.SelectColumns(m, []int{keep, drop})
	if err != nil {
		return err
	}
	z, _, _, err := matrix.ZScoreColumns(pair)
	if err != nil {
		return err
	}
	sign := 1.0
	if overlap < 0 {
		sign = -1
	}
	r, _ := z.Dims()
	for i := 0; i < r; i++ {
		m.Set(i, keep, (z.At(i, 0)+sign*z.At(i, 1))/2)
	}
	return nil
}
