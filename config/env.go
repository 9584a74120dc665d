// SPDX-License-Identifier: MIT
// Package: itemnet/config
//
// env.go — ITEMNET_* environment overrides.

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment key.
const EnvPrefix = "ITEMNET_"

// LookupFunc reads one environment variable; os.LookupEnv fits.
type LookupFunc func(key string) (string, bool)

type envKey struct {
	key string // dotted file key
	set func(c *Config, v string) error
}

var envKeys = []envKey{
	{"input", str(func(c *Config) *string { return &c.Input })},
	{"exclude", func(c *Config, v string) (err error) { c.Exclude, err = intList(v); return }},
	{"threshold", float(func(c *Config) *float64 { return &c.Threshold })},
	{"resamples", integer(func(c *Config) *int { return &c.Resamples })},
	{"max_iterations", integer(func(c *Config) *int { return &c.MaxIterations })},
	{"seed", func(c *Config, v string) (err error) { c.Seed, err = strconv.ParseUint(v, 10, 64); return }},
	{"workers", integer(func(c *Config) *int { return &c.Workers })},
	{"uva.cutoff", float(func(c *Config) *float64 { return &c.UVA.Cutoff })},
	{"uva.method", str(func(c *Config) *string { return &c.UVA.Method })},
	{"network.method", str(func(c *Config) *string { return &c.Network.Method })},
	{"network.shrinkage", float(func(c *Config) *float64 { return &c.Network.Shrinkage })},
	{"network.min_weight", float(func(c *Config) *float64 { return &c.Network.MinWeight })},
	{"network.resolution", float(func(c *Config) *float64 { return &c.Network.Resolution })},
	{"centrality.resamples", integer(func(c *Config) *int { return &c.Centrality.Resamples })},
	{"centrality.case_drop_resamples", integer(func(c *Config) *int { return &c.Centrality.CaseDropResamples })},
	{"centrality.cs_correlation", float(func(c *Config) *float64 { return &c.Centrality.CSCorrelation })},
	{"embedding.provider", str(func(c *Config) *string { return &c.Embedding.Provider })},
	{"embedding.model", str(func(c *Config) *string { return &c.Embedding.Model })},
	{"embedding.base_url", str(func(c *Config) *string { return &c.Embedding.BaseURL })},
	{"embedding.api_key", str(func(c *Config) *string { return &c.Embedding.APIKey })},
	{"embedding.dimensions", integer(func(c *Config) *int { return &c.Embedding.Dimensions })},
	{"embedding.command", func(c *Config, v string) error { c.Embedding.Command = strings.Fields(v); return nil }},
	{"embedding.timeout", duration(func(c *Config) *time.Duration { return &c.Embedding.Timeout })},
	{"cache.kind", str(func(c *Config) *string { return &c.Cache.Kind })},
	{"cache.redis_addr", str(func(c *Config) *string { return &c.Cache.RedisAddr })},
	{"cache.ttl", duration(func(c *Config) *time.Duration { return &c.Cache.TTL })},
	{"report.text", str(func(c *Config) *string { return &c.Report.Text })},
	{"report.yaml", str(func(c *Config) *string { return &c.Report.YAML })},
	{"report.plot", str(func(c *Config) *string { return &c.Report.Plot })},
	{"log.mode", str(func(c *Config) *string { return &c.Log.Mode })},
	{"log.level", str(func(c *Config) *string { return &c.Log.Level })},
	{"trace.file", str(func(c *Config) *string { return &c.Trace.File })},
}

// EnvName returns the environment variable of a dotted file key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ApplyEnv overlays every set ITEMNET_* variable on c, then falls back to
// OPENAI_API_KEY for an empty embedding.api_key.
//
// Errors: ErrParse naming the variable whose value does not parse.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, k := range envKeys {
		name := EnvName(k.key)
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := k.set(c, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrParse, name, v, err)
		}
	}
	if c.Embedding.APIKey == "" {
		if v, ok := lookup("OPENAI_API_KEY"); ok {
			c.Embedding.APIKey = v
		}
	}
	return nil
}

func str(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error { *field(c) = v; return nil }
}

func integer(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func float(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func duration(field func(*Config) *time.Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}

// intList parses "1, 4,7" (empty means none).
func intList(v string) ([]int, error) {
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseIntList parses a comma-separated index list, as the exclude key takes.
func ParseIntList(v string) ([]int, error) { return intList(strings.TrimSpace(v)) }
