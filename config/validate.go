// SPDX-License-Identifier: MIT
// Package: itemnet/config
//
// validate.go — range and name checks.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/embedding"
	"github.com/katalvlaran/itemnet/uva"
)

// Validate reports every invalid value at once, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(key string, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalid, key, fmt.Sprintf(format, args...)))
	}

	if !(c.Threshold > 0 && c.Threshold <= 1) {
		bad("threshold", "%v not in (0,1]", c.Threshold)
	}
	if c.MaxIterations < 1 {
		bad("max_iterations", "%d < 1", c.MaxIterations)
	}
	if c.Resamples < 1 {
		bad("resamples", "%d < 1", c.Resamples)
	}
	if c.Workers < 0 {
		bad("workers", "%d < 0", c.Workers)
	}
	for _, i := range c.Exclude {
		if i < 0 {
			bad("exclude", "negative index %d", i)
		}
	}

	if !(c.UVA.Cutoff > 0 && c.UVA.Cutoff < 1) {
		bad("uva.cutoff", "%v not in (0,1)", c.UVA.Cutoff)
	}
	if _, err := uva.ParseMethod(c.UVA.Method); err != nil {
		bad("uva.method", "%q", c.UVA.Method)
	}
	if _, err := ega.ParseMethod(c.Network.Method); err != nil {
		bad("network.method", "%q", c.Network.Method)
	}
	if !(c.Network.Shrinkage >= 0 && c.Network.Shrinkage < 1) {
		bad("network.shrinkage", "%v not in [0,1)", c.Network.Shrinkage)
	}
	if !(c.Network.MinWeight >= 0 && c.Network.MinWeight < 1) {
		bad("network.min_weight", "%v not in [0,1)", c.Network.MinWeight)
	}
	if !(c.Network.Resolution > 0) {
		bad("network.resolution", "%v not > 0", c.Network.Resolution)
	}

	if c.Centrality.Resamples < 0 {
		bad("centrality.resamples", "%d < 0", c.Centrality.Resamples)
	}
	if c.Centrality.CaseDropResamples < 0 {
		bad("centrality.case_drop_resamples", "%d < 0", c.Centrality.CaseDropResamples)
	}
	if !(c.Centrality.CSCorrelation > 0 && c.Centrality.CSCorrelation < 1) {
		bad("centrality.cs_correlation", "%v not in (0,1)", c.Centrality.CSCorrelation)
	}

	switch strings.ToLower(c.Embedding.Provider) {
	case embedding.BackendOpenAI, embedding.BackendHashing:
	case embedding.BackendCommand:
		if len(c.Embedding.Command) == 0 {
			bad("embedding.command", "required by the command provider")
		}
	default:
		bad("embedding.provider", "%q", c.Embedding.Provider)
	}
	if c.Embedding.Dimensions < 0 {
		bad("embedding.dimensions", "%d < 0", c.Embedding.Dimensions)
	}
	if c.Embedding.Timeout < 0 {
		bad("embedding.timeout", "%v < 0", c.Embedding.Timeout)
	}

	switch strings.ToLower(c.Cache.Kind) {
	case "", CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			bad("cache.redis_addr", "required by the redis cache")
		}
	default:
		bad("cache.kind", "%q", c.Cache.Kind)
	}
	return errors.Join(errs...)
}
