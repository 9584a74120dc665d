// SPDX-License-Identifier: MIT
// Package: itemnet/config
//
// wire.go — translation of a validated Config into package options.

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/itemnet/bootega"
	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/embedding"
	"github.com/katalvlaran/itemnet/pipeline"
	"github.com/katalvlaran/itemnet/uva"
	"go.uber.org/zap"
)

// The helpers below assume Validate passed; option constructors panic on
// the values Validate rejects.

// Estimator builds the network estimator.
func (c *Config) Estimator() ega.Estimator {
	m, _ := ega.ParseMethod(c.Network.Method)
	opts := []ega.Option{
		ega.WithMethod(m),
		ega.WithShrinkage(c.Network.Shrinkage),
		ega.WithResolution(c.Network.Resolution),
	}
	if c.Network.MinWeight > 0 {
		opts = append(opts, ega.WithMinWeight(c.Network.MinWeight))
	}
	return ega.New(opts...)
}

// UVAOptions returns the redundancy options.
func (c *Config) UVAOptions() []uva.Option {
	m, _ := uva.ParseMethod(c.UVA.Method)
	return []uva.Option{uva.WithCutoff(c.UVA.Cutoff), uva.WithMethod(m)}
}

// BootEGAOptions returns the stability bootstrap options.
func (c *Config) BootEGAOptions(log *zap.Logger) []bootega.Option {
	return []bootega.Option{
		bootega.WithResamples(c.Resamples),
		bootega.WithWorkers(c.Workers),
		bootega.WithLogger(log),
	}
}

// CentralityOptions returns the centrality options.
func (c *Config) CentralityOptions(log *zap.Logger) []centrality.Option {
	return []centrality.Option{
		centrality.WithResamples(c.Centrality.Resamples),
		centrality.WithCaseDropResamples(c.Centrality.CaseDropResamples),
		centrality.WithCSCorrelation(c.Centrality.CSCorrelation),
		centrality.WithWorkers(c.Workers),
		centrality.WithLogger(log),
	}
}

// PipelineOptions returns the loop options.
func (c *Config) PipelineOptions(log *zap.Logger) []pipeline.Option {
	return []pipeline.Option{
		pipeline.WithThreshold(c.Threshold),
		pipeline.WithMaxIterations(c.MaxIterations),
		pipeline.WithSeed(c.Seed),
		pipeline.WithLogger(log),
	}
}

// Runner wires a pipeline runner around provider p.
func (c *Config) Runner(p embedding.Provider, log *zap.Logger) *pipeline.Runner {
	est := c.Estimator()
	ctrl := pipeline.NewController(
		pipeline.UVAReducer{Estimator: est, Options: c.UVAOptions()},
		pipeline.BootEGAAssessor{Estimator: est, Options: c.BootEGAOptions(log)},
		c.PipelineOptions(log)...,
	)
	return pipeline.NewRunner(p, est, ctrl, c.CentralityOptions(log)...)
}

// EmbeddingSpec returns the provider selection.
func (c *Config) EmbeddingSpec() embedding.Spec {
	return embedding.Spec{
		Provider:   c.Embedding.Provider,
		Model:      c.Embedding.Model,
		BaseURL:    c.Embedding.BaseURL,
		APIKey:     c.Embedding.APIKey,
		Dimensions: c.Embedding.Dimensions,
		Command:    c.Embedding.Command,
		Timeout:    c.Embedding.Timeout,
	}
}

// OpenProvider opens the configured provider behind the configured cache.
// The returned close function releases both.
func (c *Config) OpenProvider(ctx context.Context, log *zap.Logger) (embedding.Provider, func() error, error) {
	p, err := embedding.Open(ctx, c.EmbeddingSpec(), log)
	if err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(c.Cache.Kind) {
	case CacheMemory:
		return embedding.NewCached(p, embedding.NewMemoryCache(), log), p.Close, nil
	case CacheRedis:
		rc, err := embedding.NewRedisCache(ctx, c.Cache.RedisAddr, c.Cache.TTL)
		if err != nil {
			_ = p.Close()
			return nil, nil, fmt.Errorf("cache: %w", err)
		}
		closeAll := func() error { return errors.Join(p.Close(), rc.Close()) }
		return embedding.NewCached(p, rc, log), closeAll, nil
	default:
		return p, p.Close, nil
	}
}
