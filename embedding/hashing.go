// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// hashing.go — deterministic local backend.
//
// Each text becomes a signed feature-hashing vector over lowercase word
// unigrams, word bigrams and character trigrams, with sublinear term
// frequency, L2-normalized. The vector depends only on the text and the
// dimension count, so re-embedding a phrase reproduces it exactly.

package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashingDimensions is the vector length when none is configured.
const DefaultHashingDimensions = 256

// Hashing is a stateless feature-hashing embedder. Safe for concurrent use.
type Hashing struct {
	dims int
}

// NewHashing returns a hashing embedder producing dims-long vectors.
// Panics when dims<1, as option constructors do.
func NewHashing(dims int) *Hashing {
	if dims < 1 {
		panic("embedding: NewHashing(dims<1)")
	}
	return &Hashing{dims: dims}
}

// Embed hashes every text independently.
func (h *Hashing) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = h.vector(t)
	}
	return out, nil
}

func (h *Hashing) vector(text string) []float32 {
	counts := make(map[string]int)
	words := tokenize(text)
	for i, w := range words {
		counts["w:"+w]++
		if i > 0 {
			counts["b:"+words[i-1]+" "+w]++
		}
		padded := []rune(" " + w + " ")
		for j := 0; j+3 <= len(padded); j++ {
			counts["c:"+string(padded[j:j+3])]++
		}
	}

	acc := make([]float64, h.dims)
	for feat, n := range counts {
		hs := fnv.New64a()
		_, _ = hs.Write([]byte(feat))
		sum := hs.Sum64()
		slot := int(sum % uint64(h.dims))
		sign := 1.0
		if sum>>63 == 1 {
			sign = -1
		}
		acc[slot] += sign * (1 + math.Log(float64(n)))
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	vec := make([]float32, h.dims)
	if norm == 0 {
		return vec
	}
	inv := 1 / math.Sqrt(norm)
	for j, v := range acc {
		vec[j] = float32(v * inv)
	}
	return vec
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Dimensions returns the configured vector length.
func (h *Hashing) Dimensions() int { return h.dims }

// Model returns a name encoding the dimension count.
func (h *Hashing) Model() string { return fmt.Sprintf("hashing-%d", h.dims) }

// Close is a no-op.
func (h *Hashing) Close() error { return nil }
