// SPDX-License-Identifier: MIT
// Package: itemnet/pipeline
//
// controller.go — the bounded reduce/assess loop.

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/itemnet/items"
	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/resample"
	"github.com/katalvlaran/itemnet/uva"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

const opIterate = "Iterate"

// ItemRef names one item: its label in the matrix it was named in, its arena
// index and its phrase.
type ItemRef struct {
	Label      string
	ArenaIndex int
	Phrase     string
}

// Redundancy is one elimination of a reduction. Labels refer to the matrix
// the iteration started from.
type Redundancy struct {
	Dropped ItemRef
	Keeper  ItemRef
	WTO     float64
	Merged  bool
}

// ScoredItem is one assessed item. Labels refer to the reduced matrix.
type ScoredItem struct {
	ItemRef
	Score float64
	Modal int
}

// IterationTrace records one loop iteration.
type IterationTrace struct {
	Iteration int
	Input     int // columns entering the iteration
	Kept      int // columns after reduction
	Redundant []Redundancy
	// Scores is nil when the assessor was not called.
	Scores           []ScoredItem
	Stable           int
	Unstable         []ScoredItem
	MedianDimensions float64
}

// Outcome is the result of Iterate.
type Outcome struct {
	// Data is the final matrix; nil when no item is left.
	Data       *mat.Dense
	Selection  *items.Selection
	Iterations int
	Trace      []IterationTrace
	Warnings   []Warning
}

// Converged reports whether the loop ended without WarnNonConvergence.
func (o *Outcome) Converged() bool { return !o.Warned(WarnNonConvergence) }

// Warned reports whether a warning wrapping target was raised.
func (o *Outcome) Warned(target error) bool {
	for _, w := range o.Warnings {
		if errors.Is(w, target) {
			return true
		}
	}
	return false
}

// Partition splits column positions into stable (score ≥ tau) and unstable,
// both ascending.
func Partition(scores []float64, tau float64) (stable, unstable []int) {
	for j, s := range scores {
		if s >= tau {
			stable = append(stable, j)
		} else {
			unstable = append(unstable, j)
		}
	}
	return stable, unstable
}

// Controller runs the stability-filtering loop.
type Controller struct {
	reducer  Reducer
	assessor StabilityAssessor
	opts     Options
}

// NewController wires a reducer and an assessor. Panics on nil arguments.
func NewController(r Reducer, a StabilityAssessor, opts ...Option) *Controller {
	if r == nil || a == nil {
		panic("pipeline: NewController requires a reducer and an assessor")
	}
	return &Controller{reducer: r, assessor: a, opts: buildOptions(opts)}
}

// Options returns the controller's options.
func (c *Controller) Options() Options { return c.opts }

// Iterate runs the loop on data (observations × items) whose column k holds
// item sel.ArenaIndex(k).
//
// Implementation (iteration i = 1..K):
//   - Reduce; restrict the selection to the kept positions.
//   - Fewer than two columns left: warn, stop. Zero columns fall back to the
//     iteration's input set.
//   - Assess; Partition by the threshold.
//   - No unstable item: stop. At K: keep the stable items, warn, stop.
//     Fewer than two stable items before K: keep them, warn, stop.
//   - Otherwise continue on the stable columns.
//
// Errors:
//   - matrix.ErrDimensionMismatch when sel and data disagree;
//     items.ErrTooFewItems for fewer than two columns.
//   - Reducer/assessor errors, wrapped, and a score count mismatch.
func (c *Controller) Iterate(ctx context.Context, data *mat.Dense, sel *items.Selection) (*Outcome, error) {
	if err := matrix.ValidateNotNil(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opIterate, err)
	}
	_, cols := data.Dims()
	if sel == nil || sel.Len() != cols {
		return nil, fmt.Errorf("%s: %d columns: %w", opIterate, cols, matrix.ErrDimensionMismatch)
	}
	if cols < 2 {
		return nil, fmt.Errorf("%s: %w", opIterate, items.ErrTooFewItems)
	}

	log := c.opts.Logger
	out := &Outcome{}
	cur, curSel := data, sel
	for i := 1; i <= c.opts.MaxIterations; i++ {
		out.Iterations = i
		done, err := c.step(ctx, i, cur, curSel, out)
		if err != nil {
			return nil, fmt.Errorf("%s: iteration %d: %w", opIterate, i, err)
		}
		if done {
			break
		}
		cur, curSel = out.Data, out.Selection
	}
	for _, w := range out.Warnings {
		log.Warn("iteration warning", zap.Int("iteration", w.Iteration), zap.Error(w))
	}
	return out, nil
}

// step runs iteration i. It always leaves the iteration's result in
// out.Data/out.Selection and reports whether the loop is over.
func (c *Controller) step(ctx context.Context, i int, data *mat.Dense, sel *items.Selection, out *Outcome) (done bool, err error) {
	ctx, span := c.opts.Tracer.Start(ctx, "iteration", trace.WithAttributes(
		attribute.Int("iteration", i),
		attribute.Int("items", sel.Len()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tr := IterationTrace{Iteration: i, Input: sel.Len()}
	defer func() { out.Trace = append(out.Trace, tr) }()

	red, err := c.reduce(ctx, data, resample.DeriveSeed(c.opts.Seed, uint64(2*i)))
	if err != nil {
		return true, err
	}
	if tr.Redundant, err = redundancies(red.Records, sel); err != nil {
		return true, err
	}
	reduced, err := sel.Restrict(red.Kept)
	if err != nil {
		return true, err
	}
	tr.Kept = reduced.Len()

	if reduced.Len() < 2 {
		out.Warnings = append(out.Warnings, Warning{
			Err:       WarnDegenerateReduction,
			Iteration: i,
			Detail:    fmt.Sprintf("%d of %d items kept", reduced.Len(), sel.Len()),
		})
		if reduced.Len() == 0 {
			out.Data, out.Selection = data, sel
		} else {
			out.Data, out.Selection = red.Data, reduced
		}
		c.logIteration(tr)
		return true, nil
	}

	as, err := c.assess(ctx, red.Data, resample.DeriveSeed(c.opts.Seed, uint64(2*i+1)))
	if err != nil {
		return true, err
	}
	if len(as.Scores) != reduced.Len() {
		return true, fmt.Errorf("%d scores for %d items: %w", len(as.Scores), reduced.Len(), matrix.ErrDimensionMismatch)
	}
	tr.MedianDimensions = as.MedianDimensions
	tr.Scores = scored(as, reduced)
	stable, unstable := Partition(as.Scores, c.opts.Threshold)
	tr.Stable = len(stable)
	for _, j := range unstable {
		tr.Unstable = append(tr.Unstable, tr.Scores[j])
	}
	c.logIteration(tr)

	if len(unstable) == 0 {
		out.Data, out.Selection = red.Data, reduced
		return true, nil
	}
	if out.Data, out.Selection, err = keep(red.Data, reduced, stable); err != nil {
		return true, err
	}
	switch {
	case i == c.opts.MaxIterations:
		out.Warnings = append(out.Warnings, Warning{
			Err:       WarnNonConvergence,
			Iteration: i,
			Detail:    fmt.Sprintf("%d unstable items at the cap of %d iterations", len(unstable), i),
		})
		return true, nil
	case len(stable) < 2:
		out.Warnings = append(out.Warnings, Warning{
			Err:       WarnDegenerateStability,
			Iteration: i,
			Detail:    fmt.Sprintf("%d stable items", len(stable)),
		})
		return true, nil
	}
	return false, nil
}

func (c *Controller) reduce(ctx context.Context, data *mat.Dense, seed uint64) (*Reduction, error) {
	ctx, span := c.opts.Tracer.Start(ctx, "reduce")
	defer span.End()
	red, err := c.reducer.Reduce(ctx, data, seed)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	_, cols := data.Dims()
	if len(red.Kept) > cols {
		return nil, fmt.Errorf("reduce: %d columns from %d: %w", len(red.Kept), cols, matrix.ErrDimensionMismatch)
	}
	span.SetAttributes(attribute.Int("kept", len(red.Kept)))
	return red, nil
}

func (c *Controller) assess(ctx context.Context, data *mat.Dense, seed uint64) (*Assessment, error) {
	ctx, span := c.opts.Tracer.Start(ctx, "bootstrap")
	defer span.End()
	as, err := c.assessor.Assess(ctx, data, seed)
	if err != nil {
		return nil, fmt.Errorf("assess: %w", err)
	}
	return as, nil
}

func (c *Controller) logIteration(tr IterationTrace) {
	c.opts.Logger.Info("iteration",
		zap.Int("iteration", tr.Iteration),
		zap.Int("items", tr.Input),
		zap.Int("kept", tr.Kept),
		zap.Int("stable", tr.Stable),
		zap.Int("unstable", len(tr.Unstable)),
	)
}

// keep restricts data and sel to the given positions. No positions yield a
// nil matrix and an empty selection.
func keep(data *mat.Dense, sel *items.Selection, positions []int) (*mat.Dense, *items.Selection, error) {
	next, err := sel.Restrict(positions)
	if err != nil {
		return nil, nil, err
	}
	if len(positions) == 0 {
		return nil, next, nil
	}
	m, err := matrix.SelectColumns(data, positions)
	if err != nil {
		return nil, nil, err
	}
	return m, next, nil
}

func ref(sel *items.Selection, k int) (ItemRef, error) {
	label := items.Label(k)
	ai, phrase, err := sel.Resolve(label)
	if err != nil {
		return ItemRef{}, err
	}
	return ItemRef{Label: label, ArenaIndex: ai, Phrase: phrase}, nil
}

func redundancies(recs []uva.Record, sel *items.Selection) ([]Redundancy, error) {
	var out []Redundancy
	for _, r := range recs {
		d, err := ref(sel, r.Dropped)
		if err != nil {
			return nil, err
		}
		k, err := ref(sel, r.Kept)
		if err != nil {
			return nil, err
		}
		out = append(out, Redundancy{Dropped: d, Keeper: k, WTO: r.WTO, Merged: r.Merged})
	}
	return out, nil
}

func scored(as *Assessment, sel *items.Selection) []ScoredItem {
	out := make([]ScoredItem, len(as.Scores))
	for j, s := range as.Scores {
		r, _ := ref(sel, j) // j < sel.Len() was checked by the caller
		out[j] = ScoredItem{ItemRef: r, Score: s}
		if j < len(as.Modal) {
			out[j].Modal = as.Modal[j]
		}
	}
	return out
}
