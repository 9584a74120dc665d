// SPDX-License-Identifier: MIT
// Package: itemnet/report
//
// document.go — the YAML view of a result.

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/items"
	"github.com/katalvlaran/itemnet/pipeline"
	"gopkg.in/yaml.v3"
)

// Document is the machine-readable report.
type Document struct {
	RunID          string    `yaml:"run_id"`
	Started        time.Time `yaml:"started"`
	ElapsedSeconds float64   `yaml:"elapsed_seconds"`

	Input     InputDoc     `yaml:"input"`
	Embedding EmbeddingDoc `yaml:"embedding"`
	Settings  SettingsDoc  `yaml:"settings"`

	Iterations []IterationDoc `yaml:"iterations"`
	Converged  bool           `yaml:"converged"`
	Warnings   []string       `yaml:"warnings,omitempty"`

	Structure StructureDoc `yaml:"structure"`

	Centrality        *CentralityDoc `yaml:"centrality,omitempty"`
	CentralitySkipped string         `yaml:"centrality_skipped,omitempty"`
}

// InputDoc summarizes item preparation.
type InputDoc struct {
	Path       string `yaml:"path,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Raw        int    `yaml:"raw"`
	Excluded   []int  `yaml:"excluded,omitempty"`
	Duplicates int    `yaml:"duplicates"`
	Unique     int    `yaml:"unique"`
}

// EmbeddingDoc names the embedding model.
type EmbeddingDoc struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// SettingsDoc records the loop settings.
type SettingsDoc struct {
	Threshold     float64 `yaml:"threshold"`
	MaxIterations int     `yaml:"max_iterations"`
	Seed          uint64  `yaml:"seed"`
}

// IterationDoc is one loop iteration.
type IterationDoc struct {
	Iteration        int             `yaml:"iteration"`
	Input            int             `yaml:"input"`
	Kept             int             `yaml:"kept"`
	Stable           int             `yaml:"stable"`
	MedianDimensions float64         `yaml:"median_dimensions,omitempty"`
	Redundant        []RedundancyDoc `yaml:"redundant,omitempty"`
	Unstable         []ScoreDoc      `yaml:"unstable,omitempty"`
	// Scores holds every kept item's stability; empty when the iteration
	// ended before assessment.
	Scores []ScoreDoc `yaml:"scores,omitempty"`
}

// RedundancyDoc is one eliminated item.
type RedundancyDoc struct {
	Phrase string  `yaml:"phrase"`
	Keeper string  `yaml:"keeper"`
	WTO    float64 `yaml:"wto"`
	Merged bool    `yaml:"merged,omitempty"`
}

// ScoreDoc is the stability of one item.
type ScoreDoc struct {
	Phrase string  `yaml:"phrase"`
	Score  float64 `yaml:"score"`
	Modal  int     `yaml:"modal,omitempty"`
}

// StructureDoc is the final clustering.
type StructureDoc struct {
	Dimensions int          `yaml:"dimensions"`
	Clusters   []ClusterDoc `yaml:"clusters"`
}

// ClusterDoc is one cluster's phrases in arena order.
type ClusterDoc struct {
	ID      int      `yaml:"id"`
	Phrases []string `yaml:"phrases"`
}

// CentralityDoc is the centrality section.
type CentralityDoc struct {
	Resamples         int                 `yaml:"resamples"`
	CaseDropResamples int                 `yaml:"case_drop_resamples"`
	CS                map[string]float64  `yaml:"cs"`
	Items             []CentralityItemDoc `yaml:"items"`
	CaseDrop          []DropLevelDoc      `yaml:"case_drop,omitempty"`
}

// DropLevelDoc is the share of draws reaching the CS correlation at one
// drop proportion.
type DropLevelDoc struct {
	Proportion float64            `yaml:"proportion"`
	Share      map[string]float64 `yaml:"share"`
}

// CentralityItemDoc holds the indices of one item.
type CentralityItemDoc struct {
	Phrase  string              `yaml:"phrase"`
	Indices map[string]IndexDoc `yaml:"indices"`
}

// IndexDoc is one index of one item.
type IndexDoc struct {
	Raw   float64 `yaml:"raw"`
	Z     float64 `yaml:"z"`
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// Build converts a result into its Document.
//
// Errors: a column of the centrality report that does not resolve to a
// phrase, wrapping items.ErrUnknownIdentifier.
func Build(res *pipeline.Result) (*Document, error) {
	doc := &Document{
		RunID:          res.RunID,
		Started:        res.Started,
		ElapsedSeconds: res.Elapsed.Seconds(),
		Input: InputDoc{
			Path:       res.Source.Path,
			Key:        res.Source.Key,
			Raw:        res.Preparation.Raw,
			Excluded:   res.Preparation.Excluded,
			Duplicates: res.Preparation.Duplicates,
			Unique:     res.Preparation.Unique,
		},
		Embedding: EmbeddingDoc{Model: res.Model, Dimensions: res.EmbeddingDimensions},
		Settings: SettingsDoc{
			Threshold:     res.Threshold,
			MaxIterations: res.MaxIterations,
			Seed:          res.Seed,
		},
		CentralitySkipped: res.CentralitySkipped,
	}

	if out := res.Outcome; out != nil {
		doc.Converged = out.Converged()
		for _, tr := range out.Trace {
			it := IterationDoc{
				Iteration:        tr.Iteration,
				Input:            tr.Input,
				Kept:             tr.Kept,
				Stable:           tr.Stable,
				MedianDimensions: tr.MedianDimensions,
			}
			for _, r := range tr.Redundant {
				it.Redundant = append(it.Redundant, RedundancyDoc{
					Phrase: r.Dropped.Phrase, Keeper: r.Keeper.Phrase, WTO: r.WTO, Merged: r.Merged,
				})
			}
			for _, u := range tr.Unstable {
				it.Unstable = append(it.Unstable, ScoreDoc{Phrase: u.Phrase, Score: u.Score, Modal: u.Modal})
			}
			for _, s := range tr.Scores {
				it.Scores = append(it.Scores, ScoreDoc{Phrase: s.Phrase, Score: s.Score, Modal: s.Modal})
			}
			doc.Iterations = append(doc.Iterations, it)
		}
		for _, w := range out.Warnings {
			doc.Warnings = append(doc.Warnings, w.Error())
		}
	}

	if res.Structure != nil {
		doc.Structure.Dimensions = res.Structure.Dimensions
	}
	for _, c := range res.Clusters {
		doc.Structure.Clusters = append(doc.Structure.Clusters, ClusterDoc{ID: c.ID, Phrases: c.Phrases()})
	}

	if rep := res.Centrality; rep != nil {
		phrases, err := centralityPhrases(res)
		if err != nil {
			return nil, err
		}
		cd := &CentralityDoc{
			Resamples:         rep.Resamples,
			CaseDropResamples: rep.CaseDropResamples,
			CS:                make(map[string]float64, centrality.NumIndices),
		}
		for _, k := range centrality.Indices {
			cd.CS[k.String()] = rep.CS[k]
		}
		for j, it := range rep.Items {
			item := CentralityItemDoc{Phrase: phrases[j], Indices: make(map[string]IndexDoc, centrality.NumIndices)}
			for _, k := range centrality.Indices {
				item.Indices[k.String()] = IndexDoc{
					Raw:   it.Raw[k],
					Z:     it.Z[k],
					Lower: it.Bands[k].Lower,
					Upper: it.Bands[k].Upper,
				}
			}
			cd.Items = append(cd.Items, item)
		}
		for _, lvl := range rep.CaseDrop {
			d := DropLevelDoc{Proportion: lvl.Proportion, Share: make(map[string]float64, centrality.NumIndices)}
			for _, k := range centrality.Indices {
				d.Share[k.String()] = lvl.Share[k]
			}
			cd.CaseDrop = append(cd.CaseDrop, d)
		}
		doc.Centrality = cd
	}
	return doc, nil
}

// WriteYAML writes the Document of res to w.
func WriteYAML(w io.Writer, res *pipeline.Result) error {
	doc, err := Build(res)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(doc); err != nil {
		return fmt.Errorf("report: yaml: %w", err)
	}
	return enc.Close()
}

// centralityPhrases resolves column j of the centrality report, which is
// column j of the final matrix.
func centralityPhrases(res *pipeline.Result) ([]string, error) {
	sel := res.Outcome.Selection
	out := make([]string, len(res.Centrality.Items))
	for j := range out {
		_, p, err := sel.Resolve(items.Label(j))
		if err != nil {
			return nil, fmt.Errorf("report: centrality column %d: %w", j, err)
		}
		out[j] = p
	}
	return out, nil
}
