// SPDX-License-Identifier: MIT
// Package: itemnet/uva
//
// options.go — reduction options.

package uva

import (
	"fmt"
	"strings"
)

// Method selects what happens to the redundant member of a pair.
type Method int

const (
	// MethodRemove drops the redundant item.
	MethodRemove Method = iota
	// MethodMerge replaces the keeper by the mean of the z-scored,
	// sign-aligned pair, then drops the redundant item.
	MethodMerge
)

// String returns the configuration name of m.
func (m Method) String() string {
	switch m {
	case MethodRemove:
		return "remove"
	case MethodMerge:
		return "merge"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration name onto a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "remove":
		return MethodRemove, nil
	case "merge", "sum":
		return MethodMerge, nil
	default:
		return 0, fmt.Errorf("ParseMethod(%q): %w", s, ErrUnknownMethod)
	}
}

// DefaultCutoff is the |wTO| above which a pair is redundant.
const DefaultCutoff = 0.25

// Options configures Reduce.
type Options struct {
	Cutoff float64
	Method Method
}

// DefaultOptions returns cutoff 0.25 with removal.
func DefaultOptions() Options {
	return Options{Cutoff: DefaultCutoff, Method: MethodRemove}
}

// Option mutates Options.
type Option func(*Options)

// WithCutoff sets the redundancy cutoff. Panics unless 0 < cut < 1.
func WithCutoff(cut float64) Option {
	if !(cut > 0 && cut < 1) {
		panic("uva: WithCutoff requires 0 < cutoff < 1")
	}
	return func(o *Options) { o.Cutoff = cut }
}

// WithMethod selects removal or merging. Panics on an unknown value.
func WithMethod(m Method) Option {
	if m != MethodRemove && m != MethodMerge {
		panic("uva: WithMethod(unknown)")
	}
	return func(o *Options) { o.Method = m }
}
