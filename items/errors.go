// SPDX-License-Identifier: MIT
// Package: itemnet/items
//
// errors.go — sentinel errors for loading, preparation and resolution.

package items

import "errors"

var (
	// ErrInputMissing indicates that the item file does not exist or cannot be read.
	ErrInputMissing = errors.New("items: input file missing or unreadable")

	// ErrInputMalformed indicates that the item file is not valid YAML/JSON.
	ErrInputMalformed = errors.New("items: input file malformed")

	// ErrInputShape indicates a document that is not one named string list.
	ErrInputShape = errors.New("items: input must hold exactly one sequence of strings")

	// ErrEmptyInput indicates an empty item list.
	ErrEmptyInput = errors.New("items: empty item list")

	// ErrBadExclusion indicates an exclusion index outside the raw list.
	ErrBadExclusion = errors.New("items: exclusion index out of range")

	// ErrTooFewItems indicates fewer than two unique items after preparation.
	ErrTooFewItems = errors.New("items: fewer than two unique items")

	// ErrUnknownIdentifier indicates a label or index that resolves to no phrase.
	ErrUnknownIdentifier = errors.New("items: unknown item identifier")
)
