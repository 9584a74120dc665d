package pipeline_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/itemnet/items"
	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/pipeline"
	"github.com/katalvlaran/itemnet/uva"
	"gonum.org/v1/gonum/mat"
)

// scriptReducer drops drops[call] (input positions) on each call.
type scriptReducer struct {
	drops [][]int
	calls int
	err   error
}

func (s *scriptReducer) Reduce(_ context.Context, data *mat.Dense, _ uint64) (*pipeline.Reduction, error) {
	if s.err != nil {
		return nil, s.err
	}
	var drop []int
	if s.calls < len(s.drops) {
		drop = s.drops[s.calls]
	}
	s.calls++

	_, c := data.Dims()
	gone := make(map[int]bool, len(drop))
	for _, d := range drop {
		gone[d] = true
	}
	var kept []int
	for j := 0; j < c; j++ {
		if !gone[j] {
			kept = append(kept, j)
		}
	}
	red := &pipeline.Reduction{Kept: kept}
	for _, d := range drop {
		keeper := 0
		if len(kept) > 0 {
			keeper = kept[0]
		}
		red.Records = append(red.Records, uva.Record{Kept: keeper, Dropped: d, WTO: 0.4})
	}
	if len(kept) > 0 {
		m, err := matrix.SelectColumns(data, kept)
		if err != nil {
			return nil, err
		}
		red.Data = m
	}
	return red, nil
}

// scriptAssessor scores unstable[call] (positions) at 0.5, the rest at 1.
type scriptAssessor struct {
	unstable [][]int
	calls    int
	short    bool // return one score too few
}

func (s *scriptAssessor) Assess(_ context.Context, data *mat.Dense, _ uint64) (*pipeline.Assessment, error) {
	_, c := data.Dims()
	scores := make([]float64, c)
	for j := range scores {
		scores[j] = 1
	}
	if s.calls < len(s.unstable) {
		for _, j := range s.unstable[s.calls] {
			scores[j] = 0.5
		}
	}
	s.calls++
	if s.short {
		scores = scores[1:]
	}
	return &pipeline.Assessment{Scores: scores, MedianDimensions: 1}, nil
}

// fixture returns n phrases, their arena and a 5×n matrix whose column j
// holds 100*j + row, so a column identifies its arena item.
func fixture(n int) ([]string, *items.Arena, *mat.Dense) {
	phrases := make([]string, n)
	for j := range phrases {
		phrases[j] = fmt.Sprintf("phrase %d", j)
	}
	arena, err := items.NewArena(phrases)
	if err != nil {
		panic(err)
	}
	data := mat.NewDense(5, n, nil)
	for i := 0; i < 5; i++ {
		for j := 0; j < n; j++ {
			data.Set(i, j, float64(100*j+i))
		}
	}
	return phrases, arena, data
}

// columnItem returns the arena item a fixture column came from.
func columnItem(m *mat.Dense, k int) int { return int(m.At(0, k)) / 100 }

// vectorProvider embeds known phrases with fixed vectors.
type vectorProvider struct {
	vecs map[string][]float32
	dims int
	err  error
}

func (p *vectorProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := p.vecs[t]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", t)
		}
		out[i] = v
	}
	return out, nil
}
func (p *vectorProvider) Dimensions() int { return p.dims }
func (p *vectorProvider) Model() string   { return "fixed" }
func (p *vectorProvider) Close() error    { return nil }
