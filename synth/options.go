// SPDX-License-Identifier: MIT
// Package: itemnet/synth
//
// options.go — functional options and deterministic defaults.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//   - Generators never panic; they return sentinels.
//   - Later options override earlier ones.

package synth

// Option customizes a generator.
type Option func(*config)

type config struct {
	seed      uint64
	loading   float64
	twinNoise float64
	twins     []int
	bridge    float64
}

const (
	defaultSeed      = 1
	defaultLoading   = 0.8
	defaultTwinNoise = 0.05
	defaultBridge    = 0.6
)

func newConfig(opts ...Option) config {
	cfg := config{
		seed:      defaultSeed,
		loading:   defaultLoading,
		twinNoise: defaultTwinNoise,
		bridge:    defaultBridge,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSeed fixes the RNG seed. 0 maps to the resample default seed.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithLoading sets λ, the loading of every item on its cluster factor.
// Panics unless 0 < λ < 1.
func WithLoading(l float64) Option {
	if !(l > 0 && l < 1) {
		panic("synth: WithLoading requires 0 < λ < 1")
	}
	return func(c *config) { c.loading = l }
}

// WithTwin appends a near-copy of planted item src (0-based) after all
// planted items. The twin joins src's cluster. May be given repeatedly.
// Panics on a negative src; a src beyond the planted items is reported by the
// generator as ErrBadTwin.
func WithTwin(src int) Option {
	if src < 0 {
		panic("synth: WithTwin(negative)")
	}
	return func(c *config) { c.twins = append(c.twins, src) }
}

// WithTwinNoise sets the noise standard deviation added to twins.
// Panics unless 0 < σ < 1.
func WithTwinNoise(sigma float64) Option {
	if !(sigma > 0 && sigma < 1) {
		panic("synth: WithTwinNoise requires 0 < σ < 1")
	}
	return func(c *config) { c.twinNoise = sigma }
}

// WithBridgeLoading sets μ, the loading of a bridge item on each of its two
// factors. Panics unless 0 < μ < √½, so that the item variance stays 1.
func WithBridgeLoading(mu float64) Option {
	if !(mu > 0 && 2*mu*mu < 1) {
		panic("synth: WithBridgeLoading requires 0 < μ < √½")
	}
	return func(c *config) { c.bridge = mu }
}
