// SPDX-License-Identifier: MIT
// Package: itemnet/bootega
//
// estimate.go — the bootstrap loop and its aggregates.

package bootega

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/resample"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const opEstimate = "Estimate"

// ItemStability is the stability record of one column.
type ItemStability struct {
	Column    int     // position in the estimated matrix
	Empirical int     // community in the empirical network
	Modal     int     // most frequent homogenized label across replicates
	Score     float64 // frequency of Modal, in [0,1]
	Agreement float64 // frequency of Empirical, in [0,1]
}

// DimensionCount is how many replicates found Dimensions communities.
type DimensionCount struct {
	Dimensions int
	Replicates int
}

// Result is the outcome of Estimate.
type Result struct {
	Empirical *ega.Network
	Items     []ItemStability
	// Labels[b] holds the homogenized labels of replicate b.
	Labels [][]int
	// Dimensions is the distribution of the number of communities across
	// replicates, ascending by Dimensions.
	Dimensions       []DimensionCount
	MedianDimensions float64
	Resamples        int
}

// Scores returns the per-column modal frequencies.
func (r *Result) Scores() []float64 {
	out := make([]float64, len(r.Items))
	for j, it := range r.Items {
		out[j] = it.Score
	}
	return out
}

// Estimate runs the bootstrap on obs × items data.
//
// Errors:
//   - ErrTooFewColumns for fewer than two columns.
//   - ErrReplicate wrapping the first failing replicate.
//   - ctx.Err() when cancelled.
//   - Errors of the empirical estimation, wrapped.
func Estimate(ctx context.Context, data mat.Matrix, est ega.Estimator, seed uint64, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := matrix.ValidateNotNil(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	n, c := data.Dims()
	if c < 2 {
		return nil, fmt.Errorf("%s(%d columns): %w", opEstimate, c, ErrTooFewColumns)
	}

	empirical, err := est.Estimate(data, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: empirical: %w", opEstimate, err)
	}

	B := o.Resamples
	labels := make([][]int, B)
	dims := make([]int, B)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers())
	for b := 0; b < B; b++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := resample.Stream(seed, uint64(b))
			rows, err := resample.Bootstrap(n, rng)
			if err != nil {
				return err
			}
			sample, err := matrix.PickRows(data, rows)
			if err != nil {
				return err
			}
			net, err := est.Estimate(sample, rng.Uint64())
			if err != nil {
				return fmt.Errorf("%w: replicate %d: %w", ErrReplicate, b, err)
			}
			labels[b] = Homogenize(net.Communities, empirical.Communities)
			dims[b] = net.Dimensions
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	res := &Result{
		Empirical: empirical,
		Items:     aggregate(labels, empirical.Communities),
		Labels:    labels,
		Resamples: B,
	}
	res.Dimensions, res.MedianDimensions = dimensionDistribution(dims)
	o.Logger.Debug("bootstrap finished",
		zap.Int("items", c),
		zap.Int("resamples", B),
		zap.Int("empirical_dimensions", empirical.Dimensions),
		zap.Float64("median_dimensions", res.MedianDimensions),
	)
	return res, nil
}

// aggregate walks replicates in index order and builds the per-item records.
func aggregate(labels [][]int, empirical []int) []ItemStability {
	c := len(empirical)
	B := float64(len(labels))
	out := make([]ItemStability, c)
	for j := 0; j < c; j++ {
		counts := make(map[int]int)
		for _, l := range labels {
			counts[l[j]]++
		}
		modal, best := 0, -1
		for lab, n := range counts {
			if n > best || (n == best && lab < modal) {
				modal, best = lab, n
			}
		}
		out[j] = ItemStability{
			Column:    j,
			Empirical: empirical[j],
			Modal:     modal,
			Score:     float64(best) / B,
			Agreement: float64(counts[empirical[j]]) / B,
		}
	}
	return out
}

// dimensionDistribution counts replicates per dimension count and returns
// the empirical median.
func dimensionDistribution(dims []int) ([]DimensionCount, float64) {
	freq := make(map[int]int)
	sorted := make([]float64, len(dims))
	for i, d := range dims {
		freq[d]++
		sorted[i] = float64(d)
	}
	out := make([]DimensionCount, 0, len(freq))
	for d, n := range freq {
		out = append(out, DimensionCount{Dimensions: d, Replicates: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Dimensions < out[b].Dimensions })
	sort.Float64s(sorted)
	return out, stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
