// SPDX-License-Identifier: MIT
// Package: itemnet/pipeline
//
// options.go — loop and run options.

package pipeline

import (
	"github.com/katalvlaran/itemnet/resample"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the minimum stability score of a kept item.
	DefaultThreshold = 0.75
	// DefaultMaxIterations is the iteration cap K.
	DefaultMaxIterations = 3
	// TracerName names the pipeline's OpenTelemetry tracer.
	TracerName = "github.com/katalvlaran/itemnet/pipeline"
)

// Options configures Controller and Runner.
type Options struct {
	Threshold     float64 // τ in (0,1]; score ≥ τ is stable
	MaxIterations int     // K ≥ 1
	Seed          uint64
	Logger        *zap.Logger
	Tracer        trace.Tracer
}

// DefaultOptions returns τ=0.75, K=3, the default seed, a no-op logger and
// the global tracer.
func DefaultOptions() Options {
	return Options{
		Threshold:     DefaultThreshold,
		MaxIterations: DefaultMaxIterations,
		Seed:          resample.DefaultSeed,
		Logger:        zap.NewNop(),
		Tracer:        otel.Tracer(TracerName),
	}
}

// Option mutates Options.
type Option func(*Options)

// WithThreshold sets τ. Panics outside (0,1].
func WithThreshold(tau float64) Option {
	if !(tau > 0 && tau <= 1) {
		panic("pipeline: WithThreshold requires 0 < tau <= 1")
	}
	return func(o *Options) { o.Threshold = tau }
}

// WithMaxIterations sets K. Panics unless K ≥ 1.
func WithMaxIterations(k int) Option {
	if k < 1 {
		panic("pipeline: WithMaxIterations requires K >= 1")
	}
	return func(o *Options) { o.MaxIterations = k }
}

// WithSeed sets the run seed; every stage derives its streams from it.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("pipeline: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithTracer sets the tracer. Panics on nil.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic("pipeline: WithTracer(nil)")
	}
	return func(o *Options) { o.Tracer = t }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
