// SPDX-License-Identifier: MIT
// Package: itemnet/ega
//
// options.go — estimation options.
//
// Contract:
//   - Options is a plain value; DefaultOptions documents every default.
//   - WithX constructors validate and panic on meaningless values.
//   - Estimate never panics.

package ega

import (
	"fmt"
	"strings"
)

// Method selects how edge weights are derived from the correlations.
type Method int

const (
	// MethodPartial uses ridge-regularized partial correlations.
	MethodPartial Method = iota
	// MethodCorrelation uses zero-order correlations.
	MethodCorrelation
)

// String returns the configuration name of m.
func (m Method) String() string {
	switch m {
	case MethodPartial:
		return "partial"
	case MethodCorrelation:
		return "correlation"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration name onto a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "partial", "pcor":
		return MethodPartial, nil
	case "correlation", "cor":
		return MethodCorrelation, nil
	default:
		return 0, fmt.Errorf("ParseMethod(%q): %w", s, ErrUnknownMethod)
	}
}

// Defaults.
const (
	DefaultShrinkage  = 0.1
	DefaultResolution = 1.0
	// DefaultCriticalZ is the two-sided 5% normal quantile used by the
	// automatic edge threshold.
	DefaultCriticalZ = 1.959963984540054
)

// Options configures an estimation.
type Options struct {
	Method     Method
	Shrinkage  float64 // λ in [0,1); ridge weight toward the identity
	MinWeight  float64 // fixed |w| threshold when Auto is false
	Auto       bool    // significance-based threshold
	Resolution float64 // Louvain resolution γ > 0
}

// DefaultOptions returns partial correlations, λ=0.1, automatic threshold, γ=1.
func DefaultOptions() Options {
	return Options{
		Method:     MethodPartial,
		Shrinkage:  DefaultShrinkage,
		Auto:       true,
		Resolution: DefaultResolution,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithMethod selects the edge-weight method. Panics on an unknown value.
func WithMethod(m Method) Option {
	if m != MethodPartial && m != MethodCorrelation {
		panic("ega: WithMethod(unknown)")
	}
	return func(o *Options) { o.Method = m }
}

// WithShrinkage sets λ. Panics unless 0 ≤ λ < 1.
func WithShrinkage(lambda float64) Option {
	if !(lambda >= 0 && lambda < 1) {
		panic("ega: WithShrinkage requires 0 <= λ < 1")
	}
	return func(o *Options) { o.Shrinkage = lambda }
}

// WithMinWeight replaces the automatic threshold with a fixed one.
// Panics unless 0 ≤ w < 1.
func WithMinWeight(w float64) Option {
	if !(w >= 0 && w < 1) {
		panic("ega: WithMinWeight requires 0 <= w < 1")
	}
	return func(o *Options) {
		o.MinWeight = w
		o.Auto = false
	}
}

// WithResolution sets the Louvain resolution. Panics unless γ > 0.
func WithResolution(gamma float64) Option {
	if !(gamma > 0) {
		panic("ega: WithResolution requires γ > 0")
	}
	return func(o *Options) { o.Resolution = gamma }
}
