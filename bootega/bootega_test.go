package bootega_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/itemnet/bootega"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestHomogenize(t *testing.T) {
	cases := []struct {
		name                 string
		replicate, empirical []int
		want                 []int
	}{
		{"identity", []int{1, 1, 2, 2}, []int{1, 1, 2, 2}, []int{1, 1, 2, 2}},
		{"swapped", []int{2, 2, 1, 1}, []int{1, 1, 2, 2}, []int{1, 1, 2, 2}},
		{"split gets fresh label", []int{1, 2, 3, 3}, []int{1, 1, 2, 2}, []int{1, 3, 2, 2}},
		{"merge keeps larger overlap", []int{1, 1, 1, 1}, []int{1, 2, 2, 2}, []int{2, 2, 2, 2}},
		{"tie goes to smaller empirical", []int{1, 1}, []int{1, 2}, []int{1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bootega.Homogenize(tc.replicate, tc.empirical))
		})
	}
}

// TestEstimate_StablePlantedStructure: clean clusters are stable.
func TestEstimate_StablePlantedStructure(t *testing.T) {
	X, planted, err := synth.Clusters([]int{4, 4, 4}, 500, synth.WithSeed(21))
	require.NoError(t, err)

	res, err := bootega.Estimate(context.Background(), X, ega.New(), 7, bootega.WithResamples(40))
	require.NoError(t, err)

	assert.Equal(t, 40, res.Resamples)
	assert.Len(t, res.Labels, 40)
	assert.Equal(t, planted, res.Empirical.Communities)
	assert.Equal(t, 3.0, res.MedianDimensions)
	for _, it := range res.Items {
		assert.GreaterOrEqual(t, it.Score, 0.9, "item %d", it.Column)
		assert.Equal(t, it.Empirical, it.Modal)
		assert.Equal(t, it.Score, it.Agreement)
	}

	total := 0
	for _, d := range res.Dimensions {
		total += d.Replicates
	}
	assert.Equal(t, 40, total)
	assert.Len(t, res.Scores(), 12)
}

// TestEstimate_WorkerCountIndependent: a fixed seed gives identical results
// for one worker and many.
func TestEstimate_WorkerCountIndependent(t *testing.T) {
	X, _, err := synth.Clusters([]int{3, 3}, 80, synth.WithSeed(3), synth.WithLoading(0.7))
	require.NoError(t, err)
	ctx := context.Background()

	one, err := bootega.Estimate(ctx, X, ega.New(), 99, bootega.WithResamples(30), bootega.WithWorkers(1))
	require.NoError(t, err)
	many, err := bootega.Estimate(ctx, X, ega.New(), 99, bootega.WithResamples(30), bootega.WithWorkers(8))
	require.NoError(t, err)

	assert.Equal(t, one.Labels, many.Labels)
	assert.Equal(t, one.Items, many.Items)
	assert.Equal(t, one.Dimensions, many.Dimensions)
}

// TestEstimate_ScoresAreFrequencies checks bounds on a noisy structure.
func TestEstimate_ScoresAreFrequencies(t *testing.T) {
	X, _, err := synth.Clusters([]int{2, 2, 2}, 30, synth.WithSeed(5), synth.WithLoading(0.4))
	require.NoError(t, err)
	res, err := bootega.Estimate(context.Background(), X, ega.New(), 1, bootega.WithResamples(25))
	require.NoError(t, err)
	for _, it := range res.Items {
		assert.True(t, it.Score > 0 && it.Score <= 1)
		assert.GreaterOrEqual(t, it.Score, it.Agreement, "modal frequency is maximal")
		assert.InDelta(t, 0, it.Score*25-float64(int(it.Score*25+0.5)), 1e-9, "multiple of 1/B")
	}
}

func TestEstimate_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := bootega.Estimate(ctx, mat.NewDense(3, 1, []float64{1, 2, 3}), ega.New(), 1)
	assert.ErrorIs(t, err, bootega.ErrTooFewColumns)

	X, _, err := synth.Clusters([]int{2, 2}, 50)
	require.NoError(t, err)
	boom := errors.New("boom")
	base := ega.New()
	replicatesFail := ega.EstimatorFunc(func(m mat.Matrix, seed uint64) (*ega.Network, error) {
		if m == mat.Matrix(X) {
			return base.Estimate(m, seed)
		}
		return nil, boom
	})
	_, err = bootega.Estimate(ctx, X, replicatesFail, 1, bootega.WithResamples(5))
	assert.ErrorIs(t, err, bootega.ErrReplicate)
	assert.ErrorIs(t, err, boom)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = bootega.Estimate(cancelled, X, base, 1, bootega.WithResamples(5))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { bootega.WithResamples(0) })
	assert.Panics(t, func() { bootega.WithWorkers(-1) })
	assert.Panics(t, func() { bootega.WithLogger(nil) })
}

func BenchmarkEstimate(b *testing.B) {
	X, _, err := synth.Clusters([]int{6, 6, 6}, 256)
	require.NoError(b, err)
	e := ega.New()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bootega.Estimate(ctx, X, e, uint64(i), bootega.WithResamples(50))
	}
}
