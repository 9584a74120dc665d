package report_test

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/items"
	"github.com/katalvlaran/itemnet/pipeline"
	"github.com/katalvlaran/itemnet/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// result builds a two-iteration run over five phrases: "d" was redundant,
// "b" unstable, and the final items are a, c, e.
func result(t *testing.T, converged bool) *pipeline.Result {
	t.Helper()
	arena, err := items.NewArena([]string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	final, err := items.All(arena).Restrict([]int{0, 2, 4})
	require.NoError(t, err)

	out := &pipeline.Outcome{
		Selection:  final,
		Iterations: 2,
		Trace: []pipeline.IterationTrace{
			{
				Iteration: 1, Input: 5, Kept: 4, Stable: 3, MedianDimensions: 2,
				Redundant: []pipeline.Redundancy{{
					Dropped: pipeline.ItemRef{Label: "i4", ArenaIndex: 3, Phrase: "d"},
					Keeper:  pipeline.ItemRef{Label: "i3", ArenaIndex: 2, Phrase: "c"},
					WTO:     0.41,
				}},
				Scores: []pipeline.ScoredItem{
					{ItemRef: pipeline.ItemRef{Label: "i1", ArenaIndex: 0, Phrase: "a"}, Score: 0.98, Modal: 2},
					{ItemRef: pipeline.ItemRef{Label: "i2", ArenaIndex: 1, Phrase: "b"}, Score: 0.52, Modal: 1},
					{ItemRef: pipeline.ItemRef{Label: "i3", ArenaIndex: 2, Phrase: "c"}, Score: 0.91, Modal: 1},
					{ItemRef: pipeline.ItemRef{Label: "i5", ArenaIndex: 4, Phrase: "e"}, Score: 1, Modal: 2},
				},
				Unstable: []pipeline.ScoredItem{{ItemRef: pipeline.ItemRef{Label: "i2", ArenaIndex: 1, Phrase: "b"}, Score: 0.52, Modal: 1}},
			},
			{Iteration: 2, Input: 3, Kept: 3, Stable: 3, MedianDimensions: 2},
		},
	}
	if !converged {
		out.Warnings = []pipeline.Warning{{Err: pipeline.WarnNonConvergence, Iteration: 2}}
	}
	st := &pipeline.Structure{Selection: final, Labels: final.Labels(), Communities: []int{2, 1, 2}, Dimensions: 2}
	clusters, err := st.Clusters()
	require.NoError(t, err)

	rep := &centrality.Report{Resamples: 100, CaseDropResamples: 10}
	for j := 0; j < 3; j++ {
		it := centrality.ItemCentrality{Column: j}
		for _, k := range centrality.Indices {
			it.Raw[k] = float64(j + 1)
			it.Z[k] = float64(j - 1)
			it.Bands[k] = centrality.Band{Lower: float64(j), Upper: float64(j + 2)}
		}
		rep.Items = append(rep.Items, it)
	}
	rep.CS = [centrality.NumIndices]float64{0.75, 0.5, 0.25, 0.7}
	rep.CaseDrop = []centrality.DropLevel{{Proportion: 0.05, Share: [centrality.NumIndices]float64{1, 1, 1, 1}}}

	return &pipeline.Result{
		RunID:               "run-1",
		Started:             time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:             1500 * time.Millisecond,
		Source:              items.Source{Path: "items.yaml", Key: "items"},
		Preparation:         items.Preparation{Raw: 6, Duplicates: 1, Unique: 5},
		Arena:               arena,
		Model:               "hashing-256",
		EmbeddingDimensions: 256,
		Threshold:           0.75,
		MaxIterations:       3,
		Seed:                7,
		Outcome:             out,
		Structure:           st,
		Clusters:            clusters,
		Centrality:          rep,
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, result(t, true)))
	text := buf.String()

	for _, want := range []string{
		"run-1",
		"6 raw, 0 excluded, 1 duplicates, 5 unique",
		"hashing-256 (256 dimensions)",
		`[1] redundant: "d" removed "c" (wTO 0.410)`,
		`[1] unstable:  "b" (stability 0.520)`,
		"Item stability, iteration 1\n  0.980  \"a\"\n  0.520  \"b\"\n",
		"Structure: 2 dimensions, 3 items\n",
		"Cluster 1\n  - c\n",
		"Cluster 2\n  - a\n  - e\n",
		"STRENGTH",
		"Strength 0.75, Closeness 0.50, Betweenness 0.25, ExpectedInfluence 0.70",
	} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "provisional")
	assert.NotContains(t, text, "Warnings")
}

func TestWriteText_ProvisionalAndSkipped(t *testing.T) {
	res := result(t, false)
	res.Centrality, res.CentralitySkipped = nil, "fewer than two items remain"

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, res))
	text := buf.String()
	assert.Contains(t, text, "provisional: not converged")
	assert.Contains(t, text, "Warnings\n  - pipeline: unstable items remain")
	assert.Contains(t, text, "skipped: fewer than two items remain")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf, result(t, true)))

	var doc report.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "run-1", doc.RunID)
	assert.True(t, doc.Converged)
	require.Len(t, doc.Structure.Clusters, 2)
	assert.Equal(t, []string{"a", "e"}, doc.Structure.Clusters[1].Phrases)
	require.NotNil(t, doc.Centrality)
	assert.Equal(t, "c", doc.Centrality.Items[1].Phrase)
	assert.Equal(t, 0.75, doc.Centrality.CS["Strength"])
	assert.Equal(t, report.IndexDoc{Raw: 3, Z: 1, Lower: 2, Upper: 4}, doc.Centrality.Items[2].Indices["Betweenness"])
	require.Len(t, doc.Iterations, 2)
	assert.Equal(t, "d", doc.Iterations[0].Redundant[0].Phrase)
}

// Every assessed item's score reaches the document, stable ones included.
func TestBuild_KeepsAllScores(t *testing.T) {
	doc, err := report.Build(result(t, true))
	require.NoError(t, err)

	first := doc.Iterations[0]
	require.Len(t, first.Scores, 4)
	assert.Equal(t, report.ScoreDoc{Phrase: "a", Score: 0.98, Modal: 2}, first.Scores[0])
	assert.Equal(t, report.ScoreDoc{Phrase: "e", Score: 1, Modal: 2}, first.Scores[3])
	assert.Equal(t, []report.ScoreDoc{{Phrase: "b", Score: 0.52, Modal: 1}}, first.Unstable)
	assert.Empty(t, doc.Iterations[1].Scores, "not assessed")

	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf, result(t, true)))
	assert.Contains(t, buf.String(), "scores:")
}

func TestBuild_UnresolvableCentralityColumn(t *testing.T) {
	res := result(t, true)
	res.Centrality.Items = append(res.Centrality.Items, centrality.ItemCentrality{Column: 3})
	_, err := report.Build(res)
	assert.True(t, errors.Is(err, items.ErrUnknownIdentifier))
}

func TestPlotCentrality(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.PlotCentrality(&buf, result(t, true)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), b.Dy())

	res := result(t, true)
	res.Centrality = nil
	assert.True(t, errors.Is(report.PlotCentrality(&buf, res), report.ErrNoCentrality))
}

func TestWriteText_FailingWriter(t *testing.T) {
	err := report.WriteText(failWriter{}, result(t, true))
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
