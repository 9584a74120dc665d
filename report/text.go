// SPDX-License-Identifier: MIT
// Package: itemnet/report
//
// text.go — the human-readable report.

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/pipeline"
)

// WriteText renders res as aligned plain text. Nothing is written when the
// report cannot be built.
func WriteText(w io.Writer, res *pipeline.Result) error {
	doc, err := Build(res)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "itemnet report\n\n")
	fmt.Fprintf(tw, "run id:\t%s\n", doc.RunID)
	fmt.Fprintf(tw, "started:\t%s (%.1fs)\n", doc.Started.Format(time.RFC3339), doc.ElapsedSeconds)
	if doc.Input.Path != "" {
		fmt.Fprintf(tw, "input:\t%s\n", doc.Input.Path)
	}
	fmt.Fprintf(tw, "items:\t%d raw, %d excluded, %d duplicates, %d unique\n",
		doc.Input.Raw, len(doc.Input.Excluded), doc.Input.Duplicates, doc.Input.Unique)
	fmt.Fprintf(tw, "embedding:\t%s (%d dimensions)\n", doc.Embedding.Model, doc.Embedding.Dimensions)
	fmt.Fprintf(tw, "settings:\tthreshold %.2f, max iterations %d, seed %d\n",
		doc.Settings.Threshold, doc.Settings.MaxIterations, doc.Settings.Seed)

	fmt.Fprintf(tw, "\nIterations\n")
	fmt.Fprintf(tw, "ITER\tIN\tKEPT\tSTABLE\tUNSTABLE\tMEDIAN DIMS\n")
	for _, it := range doc.Iterations {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\n",
			it.Iteration, it.Input, it.Kept, it.Stable, len(it.Unstable), orDash(it.MedianDimensions))
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	for _, it := range doc.Iterations {
		for _, r := range it.Redundant {
			verb := "removed"
			if r.Merged {
				verb = "merged into"
			}
			fmt.Fprintf(&buf, "  [%d] redundant: %q %s %q (wTO %.3f)\n", it.Iteration, r.Phrase, verb, r.Keeper, r.WTO)
		}
		for _, u := range it.Unstable {
			fmt.Fprintf(&buf, "  [%d] unstable:  %q (stability %.3f)\n", it.Iteration, u.Phrase, u.Score)
		}
	}

	for _, it := range doc.Iterations {
		if len(it.Scores) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\nItem stability, iteration %d\n", it.Iteration)
		for _, s := range it.Scores {
			fmt.Fprintf(&buf, "  %.3f  %q\n", s.Score, s.Phrase)
		}
	}

	if len(doc.Warnings) > 0 {
		fmt.Fprintf(&buf, "\nWarnings\n")
		for _, w := range doc.Warnings {
			fmt.Fprintf(&buf, "  - %s\n", w)
		}
	}

	status := ""
	if !doc.Converged {
		status = " (provisional: not converged)"
	}
	fmt.Fprintf(&buf, "\nStructure: %d dimensions, %d items%s\n",
		doc.Structure.Dimensions, countPhrases(doc.Structure.Clusters), status)
	for _, c := range doc.Structure.Clusters {
		fmt.Fprintf(&buf, "Cluster %d\n", c.ID)
		for _, p := range c.Phrases {
			fmt.Fprintf(&buf, "  - %s\n", p)
		}
	}

	fmt.Fprintf(&buf, "\nCentrality\n")
	if doc.Centrality == nil {
		fmt.Fprintf(&buf, "  skipped: %s\n", doc.CentralitySkipped)
	} else {
		writeCentrality(tw, doc.Centrality)
		if err = tw.Flush(); err != nil {
			return err
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func writeCentrality(tw *tabwriter.Writer, cd *CentralityDoc) {
	fmt.Fprintf(tw, "  z-scores; brackets hold 95%% bootstrap bands of the raw index (%d draws)\n", cd.Resamples)
	head := []string{"ITEM"}
	for _, k := range centrality.Indices {
		head = append(head, strings.ToUpper(k.String()))
	}
	fmt.Fprintf(tw, "  %s\n", strings.Join(head, "\t"))
	for _, it := range cd.Items {
		cells := []string{shorten(it.Phrase, 40)}
		for _, k := range centrality.Indices {
			v := it.Indices[k.String()]
			cells = append(cells, fmt.Sprintf("%+.2f [%.2f, %.2f]", v.Z, v.Lower, v.Upper))
		}
		fmt.Fprintf(tw, "  %s\n", strings.Join(cells, "\t"))
	}
	cs := make([]string, 0, centrality.NumIndices)
	for _, k := range centrality.Indices {
		cs = append(cs, fmt.Sprintf("%s %.2f", k, cd.CS[k.String()]))
	}
	fmt.Fprintf(tw, "  CS coefficients (%d draws per proportion): %s\n", cd.CaseDropResamples, strings.Join(cs, ", "))
}

func orDash(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

func countPhrases(cs []ClusterDoc) int {
	n := 0
	for _, c := range cs {
		n += len(c.Phrases)
	}
	return n
}

// shorten cuts s to at most n runes, marking the cut.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
