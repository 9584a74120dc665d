// SPDX-License-Identifier: MIT
// Package: itemnet/pipeline
//
// errors.go — error taxonomy, stage errors and warnings.

package pipeline

import (
	"errors"
	"fmt"
)

// Fatal error classes. A *StageError wraps exactly one of them.
var (
	// ErrInput: missing or malformed item file, empty list, bad exclusion,
	// fewer than two unique items.
	ErrInput = errors.New("pipeline: invalid input")

	// ErrEmbedding: provider failure or embedding shape mismatch.
	ErrEmbedding = errors.New("pipeline: embedding failed")

	// ErrEstimation: a statistical stage could not be computed.
	ErrEstimation = errors.New("pipeline: estimation failed")

	// ErrMapping: an identifier did not resolve to exactly one phrase.
	ErrMapping = errors.New("pipeline: item mapping failed")
)

// Recoverable conditions, carried as Warning.Err.
var (
	// WarnDegenerateReduction: redundancy reduction left fewer than two items.
	WarnDegenerateReduction = errors.New("pipeline: reduction left fewer than two items")

	// WarnDegenerateStability: fewer than two stable items before the cap.
	WarnDegenerateStability = errors.New("pipeline: fewer than two stable items")

	// WarnNonConvergence: unstable items remained at the iteration cap;
	// results are provisional.
	WarnNonConvergence = errors.New("pipeline: unstable items remain at the iteration cap")
)

// Stage names.
const (
	StageLoad       = "load"
	StagePrepare    = "prepare"
	StageEmbed      = "embed"
	StageIterate    = "iterate"
	StageFinalize   = "finalize"
	StageMap        = "map"
	StageCentrality = "centrality"
)

// StageError is a fatal failure of one stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return "stage " + e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError tags err with its class and stage. An err already of that
// class is not wrapped twice.
func NewStageError(stage string, class, err error) error {
	if errors.Is(err, class) {
		return &StageError{Stage: stage, Err: err}
	}
	return &StageError{Stage: stage, Err: fmt.Errorf("%w: %w", class, err)}
}

// Warning is a recoverable condition observed during a run.
type Warning struct {
	Err       error // one of the Warn* sentinels
	Iteration int   // 0 when not tied to an iteration
	Detail    string
}

func (w Warning) Error() string {
	if w.Detail == "" {
		return w.Err.Error()
	}
	return w.Err.Error() + ": " + w.Detail
}

func (w Warning) Unwrap() error { return w.Err }
