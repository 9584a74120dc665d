// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// provider.go — the Provider contract, backend selection and shape checks.

package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Provider generates embeddings for a batch of texts.
type Provider interface {
	// Embed returns one vector per text, rows in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector length, or 0 while still unknown
	// (an HTTP backend learns it from its first response).
	Dimensions() int

	// Model returns the model identifier, used in cache keys and reports.
	Model() string

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendOpenAI  = "openai"
	BackendCommand = "command"
	BackendHashing = "hashing"
)

// Spec selects and configures a backend.
type Spec struct {
	Provider   string        // BackendOpenAI, BackendCommand or BackendHashing
	Model      string        // model name; informational for hashing
	BaseURL    string        // openai: endpoint base URL, "" = api.openai.com
	APIKey     string        // openai: bearer key, optional for local servers
	Dimensions int           // requested/expected vector length, 0 = backend default
	Command    []string      // command: argv of the subprocess
	Timeout    time.Duration // per-request timeout, 0 = 60s
}

// Open builds the backend named by spec.Provider.
func Open(ctx context.Context, spec Spec, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(spec.Provider) {
	case BackendOpenAI:
		return NewOpenAI(OpenAIConfig{
			BaseURL:    spec.BaseURL,
			Model:      spec.Model,
			APIKey:     spec.APIKey,
			Dimensions: spec.Dimensions,
			Timeout:    spec.Timeout,
		})
	case BackendCommand:
		return StartCommand(ctx, CommandConfig{
			Argv:    spec.Command,
			Model:   spec.Model,
			Timeout: spec.Timeout,
			Logger:  logger,
		})
	case BackendHashing, "":
		dims := spec.Dimensions
		if dims == 0 {
			dims = DefaultHashingDimensions
		}
		return NewHashing(dims), nil
	default:
		return nil, fmt.Errorf("Open(%q): %w", spec.Provider, ErrUnknownProvider)
	}
}

// EmbedAll calls p.Embed and enforces the shape contract.
//
// Errors:
//   - ErrProvider (wrapping the backend error) when Embed fails.
//   - ErrShapeMismatch for a wrong row count, ragged or empty vectors,
//     a length different from p.Dimensions() when known, or non-finite values.
func EmbedAll(ctx context.Context, p Provider, texts []string) ([][]float32, error) {
	vecs, err := p.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("EmbedAll(%s): %w: %w", p.Model(), ErrProvider, err)
	}
	if err = CheckShape(vecs, len(texts), p.Dimensions()); err != nil {
		return nil, fmt.Errorf("EmbedAll(%s): %w", p.Model(), err)
	}
	return vecs, nil
}

// CheckShape verifies n rows of equal, non-zero length (dims when dims>0)
// holding finite values.
func CheckShape(vecs [][]float32, n, dims int) error {
	if len(vecs) != n {
		return fmt.Errorf("%w: %d vectors for %d texts", ErrShapeMismatch, len(vecs), n)
	}
	if n == 0 {
		return nil
	}
	want := dims
	if want <= 0 {
		want = len(vecs[0])
	}
	if want == 0 {
		return fmt.Errorf("%w: empty vectors", ErrShapeMismatch)
	}
	for i, v := range vecs {
		if len(v) != want {
			return fmt.Errorf("%w: vector %d has %d values, want %d", ErrShapeMismatch, i, len(v), want)
		}
		for _, x := range v {
			if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
				return fmt.Errorf("%w: vector %d holds NaN/Inf", ErrShapeMismatch, i)
			}
		}
	}
	return nil
}
