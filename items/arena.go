// SPDX-License-Identifier: MIT
// Package: itemnet/items
//
// arena.go — exclusion, deduplication and the immutable item arena.

package items

import "fmt"

// Arena is the immutable, deduplicated phrase sequence of a run.
// The zero value is an empty arena; build real ones with Prepare or NewArena.
type Arena struct {
	phrases []string
	index   map[string]int
}

// Preparation summarizes what Prepare did to the raw list.
type Preparation struct {
	Raw        int   // entries in the raw list
	Excluded   []int // raw positions dropped by the exclusion list, ascending
	Duplicates int   // entries dropped as exact repeats of an earlier phrase
	Unique     int   // arena length
}

// NewArena builds an arena from phrases that are already unique.
// Returns ErrEmptyInput for an empty list; a repeated phrase is an error too,
// since two arena indices for one text would break Index.
func NewArena(phrases []string) (*Arena, error) {
	if len(phrases) == 0 {
		return nil, ErrEmptyInput
	}
	a := &Arena{
		phrases: append([]string(nil), phrases...),
		index:   make(map[string]int, len(phrases)),
	}
	for i, p := range a.phrases {
		if _, dup := a.index[p]; dup {
			return nil, fmt.Errorf("NewArena: phrase %d repeats %q", i, p)
		}
		a.index[p] = i
	}
	return a, nil
}

// Prepare applies the manual exclusion list, then removes exact duplicates
// keeping the first occurrence, and freezes the result into an Arena.
//
// Inputs:
//   - raw: phrases in file order.
//   - exclude: 0-based positions in raw; repeats are ignored.
//
// Errors:
//   - ErrEmptyInput for an empty raw list.
//   - ErrBadExclusion for a position outside [0,len(raw)).
//   - ErrTooFewItems when fewer than two unique phrases remain.
//
// Complexity: O(n) expected time and space.
func Prepare(raw []string, exclude []int) (*Arena, Preparation, error) {
	prep := Preparation{Raw: len(raw)}
	if len(raw) == 0 {
		return nil, prep, ErrEmptyInput
	}

	drop := make([]bool, len(raw))
	for _, x := range exclude {
		if x < 0 || x >= len(raw) {
			return nil, prep, fmt.Errorf("Prepare: exclude %d of %d: %w", x, len(raw), ErrBadExclusion)
		}
		drop[x] = true
	}
	kept := make([]string, 0, len(raw))
	for i, p := range raw {
		if drop[i] {
			prep.Excluded = append(prep.Excluded, i)
			continue
		}
		kept = append(kept, p)
	}

	unique := Dedup(kept)
	prep.Duplicates = len(kept) - len(unique)
	prep.Unique = len(unique)
	if len(unique) < 2 {
		return nil, prep, fmt.Errorf("Prepare: %d unique: %w", len(unique), ErrTooFewItems)
	}

	arena, err := NewArena(unique)
	if err != nil {
		return nil, prep, err
	}
	return arena, prep, nil
}

// Dedup returns phrases with exact repeats removed, first occurrence wins.
// Dedup(Dedup(x)) == Dedup(x).
func Dedup(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Len returns the number of items.
func (a *Arena) Len() int { return len(a.phrases) }

// Phrase returns the phrase at arena index i.
func (a *Arena) Phrase(i int) (string, error) {
	if i < 0 || i >= len(a.phrases) {
		return "", fmt.Errorf("arena index %d: %w", i, ErrUnknownIdentifier)
	}
	return a.phrases[i], nil
}

// Phrases returns a copy of the phrase sequence.
func (a *Arena) Phrases() []string {
	return append([]string(nil), a.phrases...)
}

// Index returns the arena index of phrase.
func (a *Arena) Index(phrase string) (int, bool) {
	i, ok := a.index[phrase]
	return i, ok
}
