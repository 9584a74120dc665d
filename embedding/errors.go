// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// errors.go — sentinel errors. Backend failures are wrapped around
// ErrProvider so the pipeline can classify them with one errors.Is.

package embedding

import "errors"

var (
	// ErrShapeMismatch indicates a response whose row count or vector length
	// does not match the request.
	ErrShapeMismatch = errors.New("embedding: shape mismatch")

	// ErrProvider indicates that the backend failed (network, process, API error).
	ErrProvider = errors.New("embedding: provider failure")

	// ErrUnknownProvider indicates an unsupported backend name.
	ErrUnknownProvider = errors.New("embedding: unknown provider")

	// ErrClosed indicates use of a provider after Close.
	ErrClosed = errors.New("embedding: provider closed")

	// ErrCacheMiss indicates that a cache holds no entry for the key.
	ErrCacheMiss = errors.New("embedding: cache miss")
)
