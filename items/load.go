// SPDX-License-Identifier: MIT
// Package: itemnet/items
//
// load.go — item file decoding.
//
// JSON is a subset of YAML, so one yaml.v3 decoder handles both formats.
// The document is inspected as a yaml.Node first, which lets the loader
// report shape problems (two keys, nested maps, numbers) precisely instead of
// failing inside a typed unmarshal.

package items

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes where the raw items came from.
type Source struct {
	Path string // file path as given
	Key  string // top-level key, "" for a bare sequence
}

// Load reads the raw item list from path.
//
// Accepted documents:
//
//	items:            - first phrase
//	  - first phrase  - second phrase
//	  - second phrase
//	{"items": ["first phrase", "second phrase"]}
//
// Errors:
//   - ErrInputMissing when the file cannot be opened or read.
//   - ErrInputMalformed when it does not parse.
//   - ErrInputShape for anything but one string sequence.
//   - ErrEmptyInput for an empty sequence.
func Load(path string) ([]string, Source, error) {
	src := Source{Path: path}
	f, err := os.Open(path)
	if err != nil {
		return nil, src, fmt.Errorf("Load(%q): %w: %v", path, ErrInputMissing, err)
	}
	defer f.Close()

	raw, key, err := Decode(f)
	if err != nil {
		return nil, src, fmt.Errorf("Load(%q): %w", path, err)
	}
	src.Key = key
	return raw, src, nil
}

// Decode parses one item document from r. It returns the phrases in document
// order and the top-level key ("" for a bare sequence).
func Decode(r io.Reader) ([]string, string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, "", ErrEmptyInput
		}
		return nil, "", fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, "", ErrInputShape
	}

	root := doc.Content[0]
	key := ""
	seq := root
	switch root.Kind {
	case yaml.MappingNode:
		// Content alternates key, value.
		if len(root.Content) != 2 {
			return nil, "", fmt.Errorf("%w: found %d top-level keys", ErrInputShape, len(root.Content)/2)
		}
		key = root.Content[0].Value
		seq = root.Content[1]
	case yaml.SequenceNode:
	default:
		return nil, "", ErrInputShape
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, "", fmt.Errorf("%w: key %q is not a sequence", ErrInputShape, key)
	}
	if len(seq.Content) == 0 {
		return nil, key, ErrEmptyInput
	}

	out := make([]string, 0, len(seq.Content))
	for i, n := range seq.Content {
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
			return nil, key, fmt.Errorf("%w: entry %d is not a string", ErrInputShape, i)
		}
		out = append(out, n.Value)
	}
	return out, key, nil
}
