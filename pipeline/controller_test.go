package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/itemnet/items"
	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_InclusiveThreshold(t *testing.T) {
	stable, unstable := pipeline.Partition([]float64{0.75, 0.7499, 1, 0}, 0.75)
	assert.Equal(t, []int{0, 2}, stable)
	assert.Equal(t, []int{1, 3}, unstable)

	stable, unstable = pipeline.Partition([]float64{1, 1}, 1)
	assert.Equal(t, []int{0, 1}, stable)
	assert.Empty(t, unstable)
}

// 8 items, one redundant, the other 7 stable: done after one iteration.
func TestIterate_ConvergesInOneIteration(t *testing.T) {
	_, arena, data := fixture(8)
	red := &scriptReducer{drops: [][]int{{3}}}
	as := &scriptAssessor{}
	out, err := pipeline.NewController(red, as).Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Iterations)
	assert.True(t, out.Converged())
	assert.Empty(t, out.Warnings)
	assert.Equal(t, []int{0, 1, 2, 4, 5, 6, 7}, out.Selection.Indices())
	require.Len(t, out.Trace, 1)
	assert.Equal(t, 8, out.Trace[0].Input)
	assert.Equal(t, 7, out.Trace[0].Kept)
	assert.Equal(t, 7, out.Trace[0].Stable)
	require.Len(t, out.Trace[0].Redundant, 1)
	assert.Equal(t, pipeline.ItemRef{Label: "i4", ArenaIndex: 3, Phrase: "phrase 3"}, out.Trace[0].Redundant[0].Dropped)
}

// Iteration 1 keeps 7 and finds 2 unstable; iteration 2 reduces 5 to 4, all
// stable. Selections follow arena indices, not labels.
func TestIterate_TwoIterations(t *testing.T) {
	_, arena, data := fixture(8)
	red := &scriptReducer{drops: [][]int{{0}, {2}}}
	as := &scriptAssessor{unstable: [][]int{{1, 4}}}
	out, err := pipeline.NewController(red, as).Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	assert.Equal(t, 2, out.Iterations)
	assert.True(t, out.Converged())
	assert.Equal(t, []int{1, 3, 6, 7}, out.Selection.Indices())
	for k, ai := range out.Selection.Indices() {
		assert.Equal(t, ai, columnItem(out.Data, k), "column %d", k)
	}

	require.Len(t, out.Trace, 2)
	first := out.Trace[0]
	require.Len(t, first.Unstable, 2)
	assert.Equal(t, "phrase 2", first.Unstable[0].Phrase)
	assert.Equal(t, "i2", first.Unstable[0].Label)
	assert.Equal(t, "phrase 5", first.Unstable[1].Phrase)
	assert.Equal(t, 0.5, first.Unstable[0].Score)

	second := out.Trace[1]
	assert.Equal(t, 5, second.Input)
	require.Len(t, second.Redundant, 1)
	assert.Equal(t, "i3", second.Redundant[0].Dropped.Label)
	assert.Equal(t, 4, second.Redundant[0].Dropped.ArenaIndex)
}

// K=3 with instability every time: the third stable set is final.
func TestIterate_NonConvergence(t *testing.T) {
	_, arena, data := fixture(8)
	red := &scriptReducer{}
	as := &scriptAssessor{unstable: [][]int{{0}, {0}, {0}}}
	out, err := pipeline.NewController(red, as, pipeline.WithMaxIterations(3)).
		Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	assert.Equal(t, 3, out.Iterations)
	assert.False(t, out.Converged())
	require.Len(t, out.Warnings, 1)
	assert.True(t, errors.Is(out.Warnings[0], pipeline.WarnNonConvergence))
	assert.Equal(t, 3, out.Warnings[0].Iteration)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, out.Selection.Indices())
	assert.Equal(t, 3, as.calls)
}

func TestIterate_CountsNeverGrow(t *testing.T) {
	_, arena, data := fixture(10)
	red := &scriptReducer{drops: [][]int{{1, 2}, {0}, {}}}
	as := &scriptAssessor{unstable: [][]int{{0}, {3}, {}}}
	out, err := pipeline.NewController(red, as, pipeline.WithMaxIterations(5)).
		Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	prev := 10
	for _, tr := range out.Trace {
		assert.LessOrEqual(t, tr.Input, prev)
		assert.LessOrEqual(t, tr.Kept, tr.Input)
		assert.LessOrEqual(t, tr.Stable, tr.Kept)
		prev = tr.Stable
	}
	assert.LessOrEqual(t, out.Iterations, 5)
	assert.Equal(t, out.Selection.Len(), prev)
}

// A reduction to one column stops the loop before assessment.
func TestIterate_DegenerateReductionSkipsAssessor(t *testing.T) {
	_, arena, data := fixture(3)
	red := &scriptReducer{drops: [][]int{{0, 2}}}
	as := &scriptAssessor{}
	out, err := pipeline.NewController(red, as).Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	assert.Equal(t, 0, as.calls)
	assert.True(t, out.Warned(pipeline.WarnDegenerateReduction))
	assert.Equal(t, []int{1}, out.Selection.Indices())
	assert.Nil(t, out.Trace[0].Scores)
}

// A reduction to zero columns falls back to the iteration's input.
func TestIterate_ZeroColumnReductionKeepsInput(t *testing.T) {
	_, arena, data := fixture(4)
	red := &scriptReducer{drops: [][]int{{0}, {0, 1}}}
	as := &scriptAssessor{unstable: [][]int{{0}}}
	out, err := pipeline.NewController(red, as).Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	assert.Equal(t, 2, out.Iterations)
	assert.True(t, out.Warned(pipeline.WarnDegenerateReduction))
	assert.Equal(t, []int{2, 3}, out.Selection.Indices())
	assert.Equal(t, 2, columnItem(out.Data, 0))
}

func TestIterate_DegenerateStability(t *testing.T) {
	_, arena, data := fixture(4)
	as := &scriptAssessor{unstable: [][]int{{0, 1, 3}}}
	out, err := pipeline.NewController(&scriptReducer{}, as).Iterate(context.Background(), data, items.All(arena))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Iterations)
	assert.True(t, out.Warned(pipeline.WarnDegenerateStability))
	assert.Equal(t, []int{2}, out.Selection.Indices())
}

func TestIterate_Errors(t *testing.T) {
	_, arena, data := fixture(4)
	ctx := context.Background()
	all := items.All(arena)

	three, err := all.Restrict([]int{0, 1, 2})
	require.NoError(t, err)
	_, err = pipeline.NewController(&scriptReducer{}, &scriptAssessor{}).Iterate(ctx, data, three)
	assert.True(t, errors.Is(err, matrix.ErrDimensionMismatch))

	one, err := all.Restrict([]int{0})
	require.NoError(t, err)
	col, err := matrix.SelectColumns(data, []int{0})
	require.NoError(t, err)
	_, err = pipeline.NewController(&scriptReducer{}, &scriptAssessor{}).Iterate(ctx, col, one)
	assert.True(t, errors.Is(err, items.ErrTooFewItems))

	boom := errors.New("boom")
	_, err = pipeline.NewController(&scriptReducer{err: boom}, &scriptAssessor{}).Iterate(ctx, data, all)
	assert.True(t, errors.Is(err, boom))

	_, err = pipeline.NewController(&scriptReducer{}, &scriptAssessor{short: true}).Iterate(ctx, data, all)
	assert.True(t, errors.Is(err, matrix.ErrDimensionMismatch))
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { pipeline.WithThreshold(0) })
	assert.Panics(t, func() { pipeline.WithThreshold(1.01) })
	assert.NotPanics(t, func() { pipeline.WithThreshold(1) })
	assert.Panics(t, func() { pipeline.WithMaxIterations(0) })
	assert.Panics(t, func() { pipeline.WithLogger(nil) })
	assert.Panics(t, func() { pipeline.NewController(nil, &scriptAssessor{}) })
}
