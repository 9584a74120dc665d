// SPDX-License-Identifier: MIT

// Package embedding turns item texts into fixed-length vectors.
//
// The pipeline only sees the Provider interface; which backend produced the
// vectors never changes how the rest of the run behaves.
//
// Backends:
//   - OpenAI:  any OpenAI-compatible /embeddings endpoint (OpenAI, TEI,
//     LocalAI, vLLM) through github.com/sashabaranov/go-openai.
//   - Command: a long-lived subprocess speaking JSON lines on stdin/stdout,
//     e.g. a sentence-transformers script.
//   - Hashing: deterministic local feature hashing of words and character
//     trigrams. Needs no network; used offline and in tests.
//
// Caching:
//   - Cached wraps any Provider with a content-addressed Cache (MemoryCache or
//     RedisCache). Keys combine the model name with the SHA-256 of the text.
//
// Shape contract:
//   - Embed returns one vector per input text, in input order, all of the same
//     length. EmbedAll enforces it and reports violations as ErrShapeMismatch.
package embedding
