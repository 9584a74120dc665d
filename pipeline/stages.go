// SPDX-License-Identifier: MIT
// Package: itemnet/pipeline
//
// stages.go — the Reducer and StabilityAssessor contracts and their
// uva/bootega implementations.

package pipeline

import (
	"context"

	"github.com/katalvlaran/itemnet/bootega"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/uva"
	"gonum.org/v1/gonum/mat"
)

// Reduction is the outcome of one redundancy reduction.
type Reduction struct {
	// Kept lists surviving input column positions in input order.
	Kept []int
	// Data is the reduced matrix; column k corresponds to input column Kept[k].
	Data *mat.Dense
	// Records lists the eliminations; positions refer to the input matrix.
	Records []uva.Record
}

// Reducer removes redundant columns. It must never add columns.
type Reducer interface {
	Reduce(ctx context.Context, data *mat.Dense, seed uint64) (*Reduction, error)
}

// Assessment is the outcome of one stability assessment.
type Assessment struct {
	// Scores holds one score in [0,1] per column.
	Scores []float64
	// Modal holds the modal community per column; optional.
	Modal []int
	// MedianDimensions is the median replicate dimension count; optional.
	MedianDimensions float64
}

// StabilityAssessor scores how stably every column keeps its community.
type StabilityAssessor interface {
	Assess(ctx context.Context, data *mat.Dense, seed uint64) (*Assessment, error)
}

// UVAReducer reduces with uva.Reduce.
type UVAReducer struct {
	Estimator ega.Estimator
	Options   []uva.Option
}

// Reduce implements Reducer.
func (r UVAReducer) Reduce(ctx context.Context, data *mat.Dense, seed uint64) (*Reduction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := uva.Reduce(data, r.Estimator, seed, r.Options...)
	if err != nil {
		return nil, err
	}
	return &Reduction{Kept: res.Kept, Data: res.Data, Records: res.Records}, nil
}

// BootEGAAssessor assesses with bootega.Estimate.
type BootEGAAssessor struct {
	Estimator ega.Estimator
	Options   []bootega.Option
}

// Assess implements StabilityAssessor.
func (a BootEGAAssessor) Assess(ctx context.Context, data *mat.Dense, seed uint64) (*Assessment, error) {
	res, err := bootega.Estimate(ctx, data, a.Estimator, seed, a.Options...)
	if err != nil {
		return nil, err
	}
	modal := make([]int, len(res.Items))
	for j, it := range res.Items {
		modal[j] = it.Modal
	}
	return &Assessment{Scores: res.Scores(), Modal: modal, MedianDimensions: res.MedianDimensions}, nil
}
