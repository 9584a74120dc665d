// SPDX-License-Identifier: MIT
// Package: itemnet/centrality
//
// options.go — bootstrap sizes and the CS rule.

package centrality

import (
	"runtime"

	"go.uber.org/zap"
)

const (
	// DefaultResamples is the number of nonparametric bootstrap draws.
	DefaultResamples = 500
	// DefaultCaseDropResamples is the number of draws per drop proportion.
	DefaultCaseDropResamples = 100
	// DefaultCSCorrelation is the correlation a draw must reach to count.
	DefaultCSCorrelation = 0.7
	// DefaultCSShare is the share of draws that must reach it.
	DefaultCSShare = 0.95
)

// DropProportions are the case-dropping proportions, ascending.
var DropProportions = []float64{
	0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40,
	0.45, 0.50, 0.55, 0.60, 0.65, 0.70, 0.75,
}

// Options configures Analyze.
type Options struct {
	Resamples         int     // nonparametric draws; 0 skips the bands
	CaseDropResamples int     // draws per proportion; 0 skips CS
	CSCorrelation     float64 // in (0,1)
	CSShare           float64 // in (0,1]
	Workers           int     // 0 means runtime.NumCPU()
	Logger            *zap.Logger
}

// DefaultOptions returns 500 band draws, 100 draws per drop proportion and
// the 0.7 / 95% CS rule.
func DefaultOptions() Options {
	return Options{
		Resamples:         DefaultResamples,
		CaseDropResamples: DefaultCaseDropResamples,
		CSCorrelation:     DefaultCSCorrelation,
		CSShare:           DefaultCSShare,
		Logger:            zap.NewNop(),
	}
}

// Option mutates Options.
type Option func(*Options)

// WithResamples sets the number of band draws. Panics on a negative value.
func WithResamples(b int) Option {
	if b < 0 {
		panic("centrality: WithResamples(negative)")
	}
	return func(o *Options) { o.Resamples = b }
}

// WithCaseDropResamples sets the draws per drop proportion. Panics on a
// negative value.
func WithCaseDropResamples(b int) Option {
	if b < 0 {
		panic("centrality: WithCaseDropResamples(negative)")
	}
	return func(o *Options) { o.CaseDropResamples = b }
}

// WithCSCorrelation sets the correlation cut. Panics outside (0,1).
func WithCSCorrelation(r float64) Option {
	if !(r > 0 && r < 1) {
		panic("centrality: WithCSCorrelation requires 0 < r < 1")
	}
	return func(o *Options) { o.CSCorrelation = r }
}

// WithCSShare sets the required share of draws. Panics outside (0,1].
func WithCSShare(s float64) Option {
	if !(s > 0 && s <= 1) {
		panic("centrality: WithCSShare requires 0 < s <= 1")
	}
	return func(o *Options) { o.CSShare = s }
}

// WithWorkers bounds the pool. Panics on a negative value; 0 means NumCPU.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("centrality: WithWorkers(negative)")
	}
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("centrality: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
