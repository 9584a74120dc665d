// SPDX-License-Identifier: MIT
// Package: itemnet/synth
//
// planted.go — planted-cluster generators.

package synth

import (
	"fmt"
	"math"

	"github.com/katalvlaran/itemnet/resample"
	"gonum.org/v1/gonum/mat"
)

// Clusters returns an obs × items matrix and the planted cluster label of
// every item (1-based, in size-list order). Items of cluster k are contiguous;
// twins follow the planted items in WithTwin order.
//
// Errors:
//   - ErrTooFewObservations when obs < 2.
//   - ErrBadClusterSize for an empty list or a non-positive size.
//   - ErrBadTwin for a twin of a non-existent item.
//
// Complexity: O(obs·items) time and space.
func Clusters(sizes []int, obs int, opts ...Option) (*mat.Dense, []int, error) {
	if obs < 2 {
		return nil, nil, fmt.Errorf("Clusters(obs=%d): %w", obs, ErrTooFewObservations)
	}
	if len(sizes) == 0 {
		return nil, nil, fmt.Errorf("Clusters: %w", ErrBadClusterSize)
	}
	planted := 0
	for _, s := range sizes {
		if s <= 0 {
			return nil, nil, fmt.Errorf("Clusters(size=%d): %w", s, ErrBadClusterSize)
		}
		planted += s
	}
	cfg := newConfig(opts...)
	for _, src := range cfg.twins {
		if src >= planted {
			return nil, nil, fmt.Errorf("Clusters(twin=%d of %d): %w", src, planted, ErrBadTwin)
		}
	}

	labels := make([]int, 0, planted+len(cfg.twins))
	for k, s := range sizes {
		for i := 0; i < s; i++ {
			labels = append(labels, k+1)
		}
	}
	for _, src := range cfg.twins {
		labels = append(labels, labels[src])
	}

	rng := resample.New(cfg.seed)
	items := len(labels)
	noise := math.Sqrt(1 - cfg.loading*cfg.loading)
	data := make([]float64, obs*items)
	factors := make([]float64, len(sizes))
	for o := 0; o < obs; o++ {
		for k := range factors {
			factors[k] = rng.NormFloat64()
		}
		row := data[o*items : (o+1)*items]
		for j := 0; j < planted; j++ {
			row[j] = cfg.loading*factors[labels[j]-1] + noise*rng.NormFloat64()
		}
		for t, src := range cfg.twins {
			row[planted+t] = row[src] + cfg.twinNoise*rng.NormFloat64()
		}
	}
	return mat.NewDense(obs, items, data), labels, nil
}

// Vectors is Clusters laid out the way an embedding provider returns data:
// one float32 vector per item, of length dims.
func Vectors(sizes []int, dims int, opts ...Option) ([][]float32, []int, error) {
	m, labels, err := Clusters(sizes, dims, opts...)
	if err != nil {
		return nil, nil, err
	}
	r, c := m.Dims()
	out := make([][]float32, c)
	for j := 0; j < c; j++ {
		v := make([]float32, r)
		for i := 0; i < r; i++ {
			v[i] = float32(m.At(i, j))
		}
		out[j] = v
	}
	return out, labels, nil
}

// Bridged returns an obs × (2·size+1) matrix: two planted clusters of size
// items each, then one bridge item loading μ on both cluster factors.
// Labels are 1 and 2 for the clusters and 0 for the bridge.
//
// Rows come in mirrored pairs: the second row of a pair swaps the two
// clusters' factor and noise draws and repeats the bridge value. The sample
// correlation matrix is therefore exactly invariant under swapping the
// clusters, so the bridge has no preferred side in the data. Twins are
// ignored.
//
// Errors:
//   - ErrTooFewObservations when obs < 4.
//   - ErrOddObservations for an odd obs.
//   - ErrBadClusterSize for size < 2.
func Bridged(size, obs int, opts ...Option) (*mat.Dense, []int, error) {
	if obs < 4 {
		return nil, nil, fmt.Errorf("Bridged(obs=%d): %w", obs, ErrTooFewObservations)
	}
	if obs%2 != 0 {
		return nil, nil, fmt.Errorf("Bridged(obs=%d): %w", obs, ErrOddObservations)
	}
	if size < 2 {
		return nil, nil, fmt.Errorf("Bridged(size=%d): %w", size, ErrBadClusterSize)
	}
	cfg := newConfig(opts...)

	items := 2*size + 1
	labels := make([]int, items)
	for j := 0; j < 2*size; j++ {
		labels[j] = 1 + j/size
	}

	rng := resample.New(cfg.seed)
	noise := math.Sqrt(1 - cfg.loading*cfg.loading)
	bridgeNoise := math.Sqrt(1 - 2*cfg.bridge*cfg.bridge)
	ea := make([]float64, size)
	eb := make([]float64, size)
	data := make([]float64, obs*items)
	for o := 0; o < obs; o += 2 {
		fa, fb := rng.NormFloat64(), rng.NormFloat64()
		for i := range ea {
			ea[i] = rng.NormFloat64()
			eb[i] = rng.NormFloat64()
		}
		x := cfg.bridge*(fa+fb) + bridgeNoise*rng.NormFloat64()

		row := data[o*items : (o+1)*items]
		mirror := data[(o+1)*items : (o+2)*items]
		for i := 0; i < size; i++ {
			row[i] = cfg.loading*fa + noise*ea[i]
			row[size+i] = cfg.loading*fb + noise*eb[i]
			mirror[i] = row[size+i]
			mirror[size+i] = row[i]
		}
		row[items-1], mirror[items-1] = x, x
	}
	return mat.NewDense(obs, items, data), labels, nil
}
