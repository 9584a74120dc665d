// SPDX-License-Identifier: MIT
// Package: itemnet/pipeline
//
// finalize.go — final structure estimation and phrase grouping.

package pipeline

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/items"
	"gonum.org/v1/gonum/mat"
)

const (
	opFinalize       = "Finalize"
	opGroupByCluster = "GroupByCluster"
)

// Structure is the cluster assignment of the final stable items.
type Structure struct {
	Selection *items.Selection
	// Labels[k] is the identifier of column k; Communities[k] its community.
	Labels      []string
	Communities []int
	Dimensions  int
	// Network is nil for fewer than two items.
	Network *ega.Network
}

// Finalize estimates the structure of the final items once, without
// resampling. A single item forms community 1 on its own; no item gives an
// empty structure.
//
// Errors: estimation errors, wrapped.
func Finalize(est ega.Estimator, data *mat.Dense, sel *items.Selection, seed uint64) (*Structure, error) {
	st := &Structure{Selection: sel, Labels: sel.Labels()}
	switch sel.Len() {
	case 0:
		return st, nil
	case 1:
		st.Communities, st.Dimensions = []int{1}, 1
		return st, nil
	}
	net, err := est.Estimate(data, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFinalize, err)
	}
	st.Network = net
	st.Communities = append([]int(nil), net.Communities...)
	st.Dimensions = net.Dimensions
	return st, nil
}

// MappedItem is a resolved item of a cluster.
type MappedItem struct {
	Label      string
	ArenaIndex int
	Phrase     string
}

// Cluster is one community with its phrases.
type Cluster struct {
	ID    int
	Items []MappedItem // arena order
}

// Phrases returns the cluster's phrases in arena order.
func (c Cluster) Phrases() []string {
	out := make([]string, len(c.Items))
	for i, it := range c.Items {
		out[i] = it.Phrase
	}
	return out
}

// GroupByCluster resolves every label through sel and groups the phrases by
// community. Clusters come in ascending ID order, phrases in arena order.
//
// Errors: ErrMapping wrapping items.ErrUnknownIdentifier for a label that
// does not resolve, or for labels and communities of different lengths.
func GroupByCluster(labels []string, communities []int, sel *items.Selection) ([]Cluster, error) {
	if len(labels) != len(communities) {
		return nil, fmt.Errorf("%w: %s: %d labels, %d communities: %w",
			ErrMapping, opGroupByCluster, len(labels), len(communities), items.ErrUnknownIdentifier)
	}
	byID := make(map[int][]MappedItem)
	for k, label := range labels {
		ai, phrase, err := sel.Resolve(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMapping, opGroupByCluster, err)
		}
		id := communities[k]
		byID[id] = append(byID[id], MappedItem{Label: label, ArenaIndex: ai, Phrase: phrase})
	}

	out := make([]Cluster, 0, len(byID))
	for id, its := range byID {
		sort.Slice(its, func(a, b int) bool { return its[a].ArenaIndex < its[b].ArenaIndex })
		out = append(out, Cluster{ID: id, Items: its})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

// Clusters groups the structure's items by community.
func (s *Structure) Clusters() ([]Cluster, error) {
	return GroupByCluster(s.Labels, s.Communities, s.Selection)
}
