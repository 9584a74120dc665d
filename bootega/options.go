// SPDX-License-Identifier: MIT
// Package: itemnet/bootega
//
// options.go — bootstrap options.

package bootega

import (
	"runtime"

	"go.uber.org/zap"
)

// DefaultResamples is the number of bootstrap replicates.
const DefaultResamples = 500

// Options configures Estimate.
type Options struct {
	Resamples int // B ≥ 1
	Workers   int // pool size; 0 means runtime.NumCPU()
	Logger    *zap.Logger
}

// DefaultOptions returns B=500, one worker per CPU and a no-op logger.
func DefaultOptions() Options {
	return Options{Resamples: DefaultResamples, Logger: zap.NewNop()}
}

// Option mutates Options.
type Option func(*Options)

// WithResamples sets B. Panics unless B ≥ 1.
func WithResamples(b int) Option {
	if b < 1 {
		panic("bootega: WithResamples requires B >= 1")
	}
	return func(o *Options) { o.Resamples = b }
}

// WithWorkers bounds the pool. Panics on a negative value; 0 means NumCPU.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("bootega: WithWorkers(negative)")
	}
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("bootega: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
