// SPDX-License-Identifier: MIT
// Package: itemnet/centrality
//
// analyze.go — full-sample indices, bootstrap bands and CS coefficients.

package centrality

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/resample"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const opAnalyze = "Analyze"

// Stream identifiers keep band and case-drop draws apart for one seed.
const (
	bandStream     uint64 = 0xB4D
	caseDropStream uint64 = 0xCA5E
)

// Band is a bootstrap percentile interval of a raw index.
type Band struct {
	Lower float64 // 2.5% quantile
	Upper float64 // 97.5% quantile
}

// ItemCentrality holds the indices of one column.
type ItemCentrality struct {
	Column int
	Raw    [NumIndices]float64
	Z      [NumIndices]float64
	// Bands is zero when the band bootstrap was skipped.
	Bands [NumIndices]Band
}

// DropLevel is the outcome of one case-dropping proportion.
type DropLevel struct {
	Proportion float64
	// Share[k] is the fraction of draws whose Spearman correlation with the
	// full-sample index k reached the CS correlation.
	Share [NumIndices]float64
}

// Report is the outcome of Analyze.
type Report struct {
	Network           *ega.Network
	Items             []ItemCentrality
	CS                [NumIndices]float64
	CaseDrop          []DropLevel
	Observations      int
	Resamples         int
	CaseDropResamples int
}

// Analyze estimates the network of data (observations × items) and reports
// its centralities with bootstrap bands and CS coefficients.
//
// Implementation:
//   - Stage 1: empirical network and raw indices; z-standardization.
//   - Stage 2: band draws (rows with replacement) and case-drop draws
//     (rows without replacement) in one errgroup pool.
//   - Stage 3: per-item percentile bands; per-proportion shares; CS.
//
// A case-drop draw that keeps fewer than three observations counts as a
// draw below the CS correlation. Undefined correlations (an index without
// variance) count the same way.
//
// Errors:
//   - ErrTooFewItems for fewer than two columns.
//   - ErrReplicate wrapping the first failing draw.
//   - ctx.Err() when cancelled; estimation errors, wrapped.
func Analyze(ctx context.Context, data mat.Matrix, est ega.Estimator, seed uint64, opts ...Option) (*Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := matrix.ValidateNotNil(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opAnalyze, err)
	}
	n, c := data.Dims()
	if c < 2 {
		return nil, fmt.Errorf("%s(%d items): %w", opAnalyze, c, ErrTooFewItems)
	}

	net, err := est.Estimate(data, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: empirical: %w", opAnalyze, err)
	}
	full := Compute(net)

	rep := &Report{
		Network:           net,
		Items:             make([]ItemCentrality, c),
		Observations:      n,
		Resamples:         o.Resamples,
		CaseDropResamples: o.CaseDropResamples,
	}
	for k := range Indices {
		z := Standardize(full[k])
		for j := 0; j < c; j++ {
			rep.Items[j].Column = j
			rep.Items[j].Raw[k] = full[k][j]
			rep.Items[j].Z[k] = z[j]
		}
	}

	B, D, P := o.Resamples, o.CaseDropResamples, len(DropProportions)
	bands := make([]Values, B)
	corr := make([][NumIndices]float64, P*D)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers())
	for b := 0; b < B; b++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := resample.Stream(resample.DeriveSeed(seed, bandStream), uint64(b))
			rows, err := resample.Bootstrap(n, rng)
			if err != nil {
				return err
			}
			v, err := drawIndices(data, rows, est, rng.Uint64())
			if err != nil {
				return fmt.Errorf("%w: band draw %d: %w", ErrReplicate, b, err)
			}
			bands[b] = v
			return nil
		})
	}
	for p, prop := range DropProportions {
		keep := n - int(math.Round(prop*float64(n)))
		for d := 0; d < D; d++ {
			slot := p*D + d
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if keep < 3 {
					corr[slot] = nanRow()
					return nil
				}
				rng := resample.Stream(resample.DeriveSeed(seed, caseDropStream), uint64(slot))
				rows, err := resample.Subsample(n, keep, rng)
				if err != nil {
					return err
				}
				v, err := drawIndices(data, rows, est, rng.Uint64())
				if err != nil {
					return fmt.Errorf("%w: case-drop %.2f draw %d: %w", ErrReplicate, prop, d, err)
				}
				for k := range Indices {
					corr[slot][k] = Spearman(full[k], v[k])
				}
				return nil
			})
		}
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opAnalyze, err)
	}

	if B > 0 {
		fillBands(rep, bands)
	}
	if D > 0 {
		rep.CaseDrop, rep.CS = stability(corr, D, o.CSCorrelation, o.CSShare)
	}
	o.Logger.Debug("centrality finished",
		zap.Int("items", c),
		zap.Int("resamples", B),
		zap.Int("case_drop_resamples", D),
		zap.Float64s("cs", rep.CS[:]),
	)
	return rep, nil
}

// drawIndices estimates the network on the picked rows and returns its raw indices.
func drawIndices(data mat.Matrix, rows []int, est ega.Estimator, seed uint64) (Values, error) {
	sample, err := matrix.PickRows(data, rows)
	if err != nil {
		return Values{}, err
	}
	net, err := est.Estimate(sample, seed)
	if err != nil {
		return Values{}, err
	}
	return Compute(net), nil
}

func nanRow() [NumIndices]float64 {
	var r [NumIndices]float64
	for k := range r {
		r[k] = math.NaN()
	}
	return r
}

// fillBands sets the 2.5%/97.5% empirical quantiles of every raw index.
func fillBands(rep *Report, bands []Values) {
	buf := make([]float64, len(bands))
	for j := range rep.Items {
		for k := range Indices {
			for b, v := range bands {
				buf[b] = v[k][j]
			}
			sort.Float64s(buf)
			rep.Items[j].Bands[k] = Band{
				Lower: stat.Quantile(0.025, stat.Empirical, buf, nil),
				Upper: stat.Quantile(0.975, stat.Empirical, buf, nil),
			}
		}
	}
}

// stability turns the correlation slots into per-proportion shares and CS
// coefficients. Slots are laid out proportion-major, D per proportion.
func stability(corr [][NumIndices]float64, D int, cut, share float64) ([]DropLevel, [NumIndices]float64) {
	levels := make([]DropLevel, len(DropProportions))
	var cs [NumIndices]float64
	for p, prop := range DropProportions {
		levels[p].Proportion = prop
		for k := range Indices {
			hits := 0
			for d := 0; d < D; d++ {
				if r := corr[p*D+d][k]; r >= cut { // NaN never passes
					hits++
				}
			}
			levels[p].Share[k] = float64(hits) / float64(D)
			if levels[p].Share[k] >= share {
				cs[k] = prop
			}
		}
	}
	return levels, cs
}
