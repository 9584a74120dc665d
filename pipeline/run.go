// SPDX-License-Identifier: MIT
// Package: itemnet/pipeline
//
// run.go — the end-to-end run.

package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/embedding"
	"github.com/katalvlaran/itemnet/items"
	"github.com/katalvlaran/itemnet/matrix"
	"github.com/katalvlaran/itemnet/resample"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Stream identifiers of the post-loop stages.
const (
	finalizeStream   uint64 = 0xF1
	centralityStream uint64 = 0xCE
)

// Result is everything a report needs.
type Result struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration

	Source      items.Source
	Preparation items.Preparation
	Arena       *items.Arena

	Model               string
	EmbeddingDimensions int

	Threshold     float64
	MaxIterations int
	Seed          uint64

	Outcome   *Outcome
	Structure *Structure
	Clusters  []Cluster

	// Centrality is nil when CentralitySkipped says why.
	Centrality        *centrality.Report
	CentralitySkipped string
}

// Warnings returns the warnings raised by the loop.
func (r *Result) Warnings() []Warning {
	if r.Outcome == nil {
		return nil
	}
	return r.Outcome.Warnings
}

// Runner wires the stages of a run.
type Runner struct {
	provider  embedding.Provider
	estimator ega.Estimator
	ctrl      *Controller
	central   []centrality.Option
}

// NewRunner builds a runner. The controller's options (seed, logger, tracer)
// govern the whole run. Panics on nil arguments.
func NewRunner(p embedding.Provider, est ega.Estimator, ctrl *Controller, central ...centrality.Option) *Runner {
	if p == nil || est == nil || ctrl == nil {
		panic("pipeline: NewRunner requires a provider, an estimator and a controller")
	}
	return &Runner{provider: p, estimator: est, ctrl: ctrl, central: central}
}

// RunFile loads the item file at path and runs on it.
func (r *Runner) RunFile(ctx context.Context, path string, exclude []int) (*Result, error) {
	raw, src, err := items.Load(path)
	if err != nil {
		return nil, NewStageError(StageLoad, ErrInput, err)
	}
	res, err := r.Run(ctx, raw, exclude)
	if res != nil {
		res.Source = src
	}
	return res, err
}

// Run executes prepare → embed → iterate → finalize → map → centrality.
//
// Errors: a *StageError naming the failed stage and wrapping ErrInput,
// ErrEmbedding, ErrEstimation or ErrMapping. Nothing is returned with it.
// A centrality section that cannot be computed for lack of items is
// skipped, not failed.
func (r *Runner) Run(ctx context.Context, raw []string, exclude []int) (res *Result, err error) {
	o := r.ctrl.opts
	res = &Result{
		RunID:         uuid.NewString(),
		Started:       time.Now(),
		Threshold:     o.Threshold,
		MaxIterations: o.MaxIterations,
		Seed:          o.Seed,
	}
	log := o.Logger.With(zap.String("run_id", res.RunID))

	ctx, span := o.Tracer.Start(ctx, "run", trace.WithAttributes(attribute.String("run_id", res.RunID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error("run failed", zap.Error(err))
		}
		span.End()
	}()

	arena, prep, err := items.Prepare(raw, exclude)
	if err != nil {
		return nil, NewStageError(StagePrepare, ErrInput, err)
	}
	res.Arena, res.Preparation = arena, prep
	log.Info("items prepared",
		zap.String("stage", StagePrepare),
		zap.Int("raw", prep.Raw),
		zap.Int("excluded", len(prep.Excluded)),
		zap.Int("duplicates", prep.Duplicates),
		zap.Int("items", prep.Unique),
	)

	data, err := r.embed(ctx, arena)
	if err != nil {
		return nil, NewStageError(StageEmbed, ErrEmbedding, err)
	}
	res.Model = r.provider.Model()
	res.EmbeddingDimensions, _ = data.Dims()
	log.Info("items embedded",
		zap.String("stage", StageEmbed),
		zap.String("model", res.Model),
		zap.Int("dimensions", res.EmbeddingDimensions),
	)

	res.Outcome, err = r.ctrl.Iterate(ctx, data, items.All(arena))
	if err != nil {
		return nil, NewStageError(StageIterate, ErrEstimation, err)
	}

	_, fspan := o.Tracer.Start(ctx, "finalize")
	res.Structure, err = Finalize(r.estimator, res.Outcome.Data, res.Outcome.Selection,
		resample.DeriveSeed(o.Seed, finalizeStream))
	fspan.End()
	if err != nil {
		return nil, NewStageError(StageFinalize, ErrEstimation, err)
	}
	log.Info("structure estimated",
		zap.String("stage", StageFinalize),
		zap.Int("items", res.Outcome.Selection.Len()),
		zap.Int("dimensions", res.Structure.Dimensions),
		zap.Int("iterations", res.Outcome.Iterations),
	)

	if res.Clusters, err = res.Structure.Clusters(); err != nil {
		return nil, NewStageError(StageMap, ErrMapping, err)
	}

	if err = r.centrality(ctx, res); err != nil {
		return nil, NewStageError(StageCentrality, ErrEstimation, err)
	}
	res.Elapsed = time.Since(res.Started)
	log.Info("run finished", zap.Duration("elapsed", res.Elapsed), zap.Int("warnings", len(res.Warnings())))
	return res, nil
}

func (r *Runner) embed(ctx context.Context, arena *items.Arena) (*mat.Dense, error) {
	ctx, span := r.ctrl.opts.Tracer.Start(ctx, "embed", trace.WithAttributes(attribute.Int("items", arena.Len())))
	defer span.End()
	vecs, err := embedding.EmbedAll(ctx, r.provider, arena.Phrases())
	if err != nil {
		return nil, err
	}
	return matrix.Observations(vecs)
}

func (r *Runner) centrality(ctx context.Context, res *Result) error {
	if res.Outcome.Data == nil || res.Outcome.Selection.Len() < 2 {
		res.CentralitySkipped = "fewer than two items remain"
		return nil
	}
	ctx, span := r.ctrl.opts.Tracer.Start(ctx, "centrality")
	defer span.End()
	rep, err := centrality.Analyze(ctx, res.Outcome.Data, r.estimator,
		resample.DeriveSeed(r.ctrl.opts.Seed, centralityStream), r.central...)
	if errors.Is(err, centrality.ErrTooFewItems) {
		res.CentralitySkipped = "fewer than two items remain"
		return nil
	}
	if err != nil {
		return err
	}
	res.Centrality = rep
	return nil
}
