// SPDX-License-Identifier: MIT
// Package: itemnet/items
//
// selection.go — working-matrix column bookkeeping.
//
// Contract:
//   - A Selection is immutable; Restrict returns a new one.
//   - Column k of the working matrix holds arena item Indices()[k].
//   - Labels are rebuilt from positions on every Restrict, so "i1" always
//     names the first column of the matrix the selection travels with.

package items

import (
	"fmt"
	"strconv"
)

// Selection maps working-matrix columns to arena indices.
type Selection struct {
	arena  *Arena
	idx    []int
	labels map[string]int // label -> column position
}

// All returns the selection of every arena item in arena order.
func All(a *Arena) *Selection {
	idx := make([]int, a.Len())
	for i := range idx {
		idx[i] = i
	}
	return newSelection(a, idx)
}

// NewSelection builds a selection over explicit arena indices.
// Every index must be a distinct valid arena index.
func NewSelection(a *Arena, idx []int) (*Selection, error) {
	seen := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		if i < 0 || i >= a.Len() {
			return nil, fmt.Errorf("NewSelection: arena index %d: %w", i, ErrUnknownIdentifier)
		}
		if _, dup := seen[i]; dup {
			return nil, fmt.Errorf("NewSelection: arena index %d listed twice", i)
		}
		seen[i] = struct{}{}
	}
	return newSelection(a, append([]int(nil), idx...)), nil
}

func newSelection(a *Arena, idx []int) *Selection {
	labels := make(map[string]int, len(idx))
	for k := range idx {
		labels[Label(k)] = k
	}
	return &Selection{arena: a, idx: idx, labels: labels}
}

// Label returns the identifier of column position k (0-based): "i<k+1>".
func Label(k int) string { return "i" + strconv.Itoa(k+1) }

// Arena returns the arena the selection indexes into.
func (s *Selection) Arena() *Arena { return s.arena }

// Len returns the number of columns.
func (s *Selection) Len() int { return len(s.idx) }

// Indices returns a copy of the arena indices in column order.
func (s *Selection) Indices() []int { return append([]int(nil), s.idx...) }

// Labels returns the identifiers of all columns in column order.
func (s *Selection) Labels() []string {
	out := make([]string, len(s.idx))
	for k := range s.idx {
		out[k] = Label(k)
	}
	return out
}

// ArenaIndex returns the arena index held by column position k.
func (s *Selection) ArenaIndex(k int) (int, error) {
	if k < 0 || k >= len(s.idx) {
		return 0, fmt.Errorf("column %d of %d: %w", k, len(s.idx), ErrUnknownIdentifier)
	}
	return s.idx[k], nil
}

// Position returns the column position named by label.
func (s *Selection) Position(label string) (int, error) {
	k, ok := s.labels[label]
	if !ok {
		return 0, fmt.Errorf("label %q: %w", label, ErrUnknownIdentifier)
	}
	return k, nil
}

// Resolve maps a label of the current matrix to its arena index and phrase.
//
// Errors: ErrUnknownIdentifier for a label that names no column or a column
// whose arena index does not exist.
func (s *Selection) Resolve(label string) (int, string, error) {
	k, err := s.Position(label)
	if err != nil {
		return 0, "", err
	}
	ai := s.idx[k]
	p, err := s.arena.Phrase(ai)
	if err != nil {
		return 0, "", fmt.Errorf("label %q: %w", label, err)
	}
	return ai, p, nil
}

// Phrases returns the phrase of every column in column order.
func (s *Selection) Phrases() []string {
	out := make([]string, len(s.idx))
	for k, ai := range s.idx {
		out[k] = s.arena.phrases[ai]
	}
	return out
}

// Restrict keeps the given column positions, in the given order.
// Positions must be distinct and inside [0,Len()).
func (s *Selection) Restrict(positions []int) (*Selection, error) {
	idx := make([]int, len(positions))
	seen := make(map[int]struct{}, len(positions))
	for n, k := range positions {
		if k < 0 || k >= len(s.idx) {
			return nil, fmt.Errorf("Restrict: column %d of %d: %w", k, len(s.idx), ErrUnknownIdentifier)
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("Restrict: column %d listed twice", k)
		}
		seen[k] = struct{}{}
		idx[n] = s.idx[k]
	}
	return newSelection(s.arena, idx), nil
}
