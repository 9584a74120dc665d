// SPDX-License-Identifier: MIT
// Package: itemnet/config
//
// config.go — the configuration tree, defaults and loading.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/itemnet/bootega"
	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/embedding"
	"github.com/katalvlaran/itemnet/pipeline"
	"github.com/katalvlaran/itemnet/resample"
	"github.com/katalvlaran/itemnet/uva"
	"gopkg.in/yaml.v3"
)

// Config is the whole run configuration.
type Config struct {
	Input         string  `yaml:"input"`
	Exclude       []int   `yaml:"exclude"`
	Threshold     float64 `yaml:"threshold"`
	Resamples     int     `yaml:"resamples"`
	MaxIterations int     `yaml:"max_iterations"`
	Seed          uint64  `yaml:"seed"`
	Workers       int     `yaml:"workers"`

	UVA        UVA        `yaml:"uva"`
	Network    Network    `yaml:"network"`
	Centrality Centrality `yaml:"centrality"`
	Embedding  Embedding  `yaml:"embedding"`
	Cache      Cache      `yaml:"cache"`
	Report     Report     `yaml:"report"`
	Log        Log        `yaml:"log"`
	Trace      Trace      `yaml:"trace"`
}

// UVA configures redundancy reduction.
type UVA struct {
	Cutoff float64 `yaml:"cutoff"`
	Method string  `yaml:"method"`
}

// Network configures estimation.
type Network struct {
	Method     string  `yaml:"method"`
	Shrinkage  float64 `yaml:"shrinkage"`
	MinWeight  float64 `yaml:"min_weight"` // 0 keeps the automatic threshold
	Resolution float64 `yaml:"resolution"`
}

// Centrality configures the centrality bootstraps.
type Centrality struct {
	Resamples         int     `yaml:"resamples"`
	CaseDropResamples int     `yaml:"case_drop_resamples"`
	CSCorrelation     float64 `yaml:"cs_correlation"`
}

// Embedding selects the provider.
type Embedding struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Dimensions int           `yaml:"dimensions"`
	Command    []string      `yaml:"command"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Cache kinds.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Cache selects the embedding cache.
type Cache struct {
	Kind      string        `yaml:"kind"`
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

// Report names the output files; "-" is stdout, "" skips the output.
type Report struct {
	Text string `yaml:"text"`
	YAML string `yaml:"yaml"`
	Plot string `yaml:"plot"`
}

// Log configures the logger.
type Log struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// Trace configures span export.
type Trace struct {
	File string `yaml:"file"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Threshold:     pipeline.DefaultThreshold,
		Resamples:     bootega.DefaultResamples,
		MaxIterations: pipeline.DefaultMaxIterations,
		Seed:          resample.DefaultSeed,
		UVA:           UVA{Cutoff: uva.DefaultCutoff, Method: uva.MethodRemove.String()},
		Network: Network{
			Method:     ega.MethodPartial.String(),
			Shrinkage:  ega.DefaultShrinkage,
			Resolution: ega.DefaultResolution,
		},
		Centrality: Centrality{
			Resamples:         centrality.DefaultResamples,
			CaseDropResamples: centrality.DefaultCaseDropResamples,
			CSCorrelation:     centrality.DefaultCSCorrelation,
		},
		Embedding: Embedding{Provider: embedding.BackendHashing, Timeout: 60 * time.Second},
		Cache:     Cache{Kind: CacheNone},
		Report:    Report{Text: "-"},
		Log:       Log{Mode: "dev"},
	}
}

// Load merges defaults, the YAML file at path ("" for none), the dotenv
// files and the process environment, then validates.
//
// dotenv lists .env files to load; missing files are skipped, malformed
// ones fail. Variables already set in the environment win over .env.
//
// Errors: ErrRead, ErrParse, ErrInvalid.
func Load(path string, dotenv ...string) (*Config, error) {
	for _, f := range dotenv {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, f, err)
		}
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
		}
		if err = cfg.Decode(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays a YAML document on c. Unknown keys are errors; an empty
// document changes nothing.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
