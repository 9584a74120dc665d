// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// openai.go — OpenAI-compatible HTTP backend.

package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when OpenAIConfig.Model is empty.
const DefaultOpenAIModel = string(openai.SmallEmbedding3)

// maxBatch is the largest input list sent in one request.
const maxBatch = 512

// OpenAIConfig configures the HTTP backend.
type OpenAIConfig struct {
	// BaseURL of the service, e.g. "https://api.openai.com/v1" or
	// "http://localhost:8082" for a TEI container. Empty keeps the client default.
	BaseURL string

	// Model name, e.g. "text-embedding-3-small" or "all-MiniLM-L6-v2".
	Model string

	// APIKey is optional for local services.
	APIKey string

	// Dimensions requests shortened vectors from models that support it.
	Dimensions int

	// Timeout per HTTP request (default 60s).
	Timeout time.Duration
}

// OpenAI calls an OpenAI-compatible /embeddings endpoint.
type OpenAI struct {
	client    *openai.Client
	model     string
	requested int

	mu   sync.Mutex
	dims int
}

// NewOpenAI creates the HTTP backend. No request is made until Embed.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.Dimensions < 0 {
		return nil, fmt.Errorf("NewOpenAI: negative dimensions %d", cfg.Dimensions)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		// local servers ignore the header but the client always sends one
		apiKey = "none"
	}

	config := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAI{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		requested: cfg.Dimensions,
		dims:      cfg.Dimensions,
	}, nil
}

// Embed sends the texts in batches of at most maxBatch and reassembles the
// rows by the response index, so server-side reordering is harmless.
func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))
		batch := texts[start:end]

		resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:      batch,
			Model:      openai.EmbeddingModel(o.model),
			Dimensions: o.requested,
		})
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) {
				return nil, fmt.Errorf("openai %s: status %d: %s", o.model, apiErr.HTTPStatusCode, apiErr.Message)
			}
			return nil, fmt.Errorf("openai %s: %w", o.model, err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("%w: %d embeddings for %d texts", ErrShapeMismatch, len(resp.Data), len(batch))
		}
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(batch) || out[start+d.Index] != nil {
				return nil, fmt.Errorf("%w: bad response index %d", ErrShapeMismatch, d.Index)
			}
			out[start+d.Index] = d.Embedding
		}
	}

	if len(out) > 0 {
		o.mu.Lock()
		if o.dims == 0 {
			o.dims = len(out[0])
		}
		o.mu.Unlock()
	}
	return out, nil
}

// Dimensions returns the requested length, or the length seen in the first
// response when none was requested.
func (o *OpenAI) Dimensions() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dims
}

// Model returns the model name.
func (o *OpenAI) Model() string { return o.model }

// Close is a no-op for the HTTP client.
func (o *OpenAI) Close() error { return nil }
