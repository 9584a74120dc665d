package centrality_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// chain builds the network 0 -(a)- 1 -(b)- 2 -(c)- 3.
func chain(a, b, c float64) *ega.Network {
	w := mat.NewSymDense(4, []float64{
		0, a, 0, 0,
		a, 0, b, 0,
		0, b, 0, c,
		0, 0, c, 0,
	})
	return &ega.Network{Weights: w, Communities: []int{1, 1, 1, 1}, Dimensions: 1}
}

// fixed returns an estimator that ignores the data.
func fixed(net *ega.Network) ega.Estimator {
	return ega.EstimatorFunc(func(mat.Matrix, uint64) (*ega.Network, error) { return net, nil })
}

func noise(r, c int) *mat.Dense {
	d := make([]float64, r*c)
	for i := range d {
		d[i] = math.Sin(float64(i) * 1.7)
	}
	return mat.NewDense(r, c, d)
}

func TestCompute_Path(t *testing.T) {
	w := mat.NewSymDense(3, []float64{
		0, 0.5, 0,
		0.5, 0, -0.5,
		0, -0.5, 0,
	})
	v := centrality.Compute(&ega.Network{Weights: w, Communities: []int{1, 1, 1}, Dimensions: 1})

	assert.InDeltaSlice(t, []float64{0.5, 1, 0.5}, v[centrality.Strength], 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 0, -0.5}, v[centrality.ExpectedInfluence], 1e-12)
	// every edge has distance 2
	assert.InDeltaSlice(t, []float64{1.0 / 6, 1.0 / 4, 1.0 / 6}, v[centrality.Closeness], 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, v[centrality.Betweenness], 1e-12)
}

func TestCompute_IsolatedNodeHasZeroCloseness(t *testing.T) {
	w := mat.NewSymDense(3, []float64{
		0, 0.4, 0,
		0.4, 0, 0,
		0, 0, 0,
	})
	v := centrality.Compute(&ega.Network{Weights: w, Communities: []int{1, 1, 2}, Dimensions: 2})
	assert.Equal(t, 0.0, v[centrality.Closeness][2])
	assert.Equal(t, 0.0, v[centrality.Strength][2])
	assert.False(t, math.IsInf(v[centrality.Closeness][0], 0))
}

func TestStandardize(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0}, centrality.Standardize([]float64{2, 2, 2}))
	assert.Equal(t, []float64{0}, centrality.Standardize([]float64{5}))
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, centrality.Standardize([]float64{1, 2, 3}), 1e-12)
}

func TestSpearman(t *testing.T) {
	assert.InDelta(t, 1, centrality.Spearman([]float64{1, 2, 3, 4}, []float64{10, 20, 30, 400}), 1e-12)
	assert.InDelta(t, -1, centrality.Spearman([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	// ties take average ranks
	assert.InDelta(t, 0.9486832980505138, centrality.Spearman([]float64{1, 2, 2, 3}, []float64{1, 2, 3, 4}), 1e-9)
	assert.True(t, math.IsNaN(centrality.Spearman([]float64{1, 1, 1}, []float64{1, 2, 3})))
	assert.True(t, math.IsNaN(centrality.Spearman([]float64{1, 2}, []float64{1, 2, 3})))
}

func TestAnalyze_TooFewItems(t *testing.T) {
	_, err := centrality.Analyze(context.Background(), noise(10, 1), ega.New(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, centrality.ErrTooFewItems))
}

// A data-independent network reproduces itself in every draw: bands collapse
// onto the raw values and every varying index reaches the largest proportion.
func TestAnalyze_FixedNetworkIsPerfectlyStable(t *testing.T) {
	rep, err := centrality.Analyze(context.Background(), noise(40, 4), fixed(chain(0.5, 0.3, 0.2)), 3,
		centrality.WithResamples(20), centrality.WithCaseDropResamples(10))
	require.NoError(t, err)

	for _, k := range centrality.Indices {
		assert.Equal(t, 0.75, rep.CS[k], k.String())
	}
	for _, it := range rep.Items {
		for _, k := range centrality.Indices {
			assert.InDelta(t, it.Raw[k], it.Bands[k].Lower, 1e-12)
			assert.InDelta(t, it.Raw[k], it.Bands[k].Upper, 1e-12)
		}
	}
	require.Len(t, rep.CaseDrop, len(centrality.DropProportions))
	assert.Equal(t, 0.05, rep.CaseDrop[0].Proportion)
	assert.Equal(t, 1.0, rep.CaseDrop[0].Share[centrality.Strength])
}

func TestAnalyze_ConstantIndexHasZeroCS(t *testing.T) {
	w := mat.NewSymDense(3, []float64{
		0, 0.3, 0.3,
		0.3, 0, 0.3,
		0.3, 0.3, 0,
	})
	net := &ega.Network{Weights: w, Communities: []int{1, 1, 1}, Dimensions: 1}
	rep, err := centrality.Analyze(context.Background(), noise(30, 3), fixed(net), 3,
		centrality.WithResamples(5), centrality.WithCaseDropResamples(5))
	require.NoError(t, err)

	assert.Equal(t, 0.0, rep.CS[centrality.Strength])
	for _, it := range rep.Items {
		assert.Equal(t, 0.0, it.Z[centrality.Strength])
	}
}

func TestAnalyze_SmallSampleDropsCountAsFailures(t *testing.T) {
	// 8 observations: dropping 70% or more keeps fewer than three rows.
	rep, err := centrality.Analyze(context.Background(), noise(8, 4), fixed(chain(0.5, 0.3, 0.2)), 3,
		centrality.WithResamples(0), centrality.WithCaseDropResamples(4))
	require.NoError(t, err)
	assert.Equal(t, 0.65, rep.CS[centrality.Strength])
	assert.Equal(t, centrality.Band{}, rep.Items[0].Bands[centrality.Strength])
}

func TestAnalyze_WorkerCountDoesNotChangeReport(t *testing.T) {
	X, _, err := synth.Clusters([]int{3, 3}, 120, synth.WithSeed(5))
	require.NoError(t, err)

	run := func(w int) *centrality.Report {
		rep, err := centrality.Analyze(context.Background(), X, ega.New(), 11,
			centrality.WithResamples(12), centrality.WithCaseDropResamples(4), centrality.WithWorkers(w))
		require.NoError(t, err)
		return rep
	}
	one, many := run(1), run(6)
	assert.Equal(t, one.Items, many.Items)
	assert.Equal(t, one.CS, many.CS)

	for _, it := range one.Items {
		for _, k := range centrality.Indices {
			assert.LessOrEqual(t, it.Bands[k].Lower, it.Bands[k].Upper)
		}
	}
	for _, k := range centrality.Indices {
		assert.GreaterOrEqual(t, one.CS[k], 0.0)
		assert.LessOrEqual(t, one.CS[k], 0.75)
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := centrality.Analyze(ctx, noise(20, 4), fixed(chain(0.5, 0.3, 0.2)), 1,
		centrality.WithResamples(3), centrality.WithCaseDropResamples(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { centrality.WithResamples(-1) })
	assert.Panics(t, func() { centrality.WithCSCorrelation(1) })
	assert.Panics(t, func() { centrality.WithCSShare(0) })
	assert.Panics(t, func() { centrality.WithWorkers(-2) })
	assert.Panics(t, func() { centrality.WithLogger(nil) })
}
