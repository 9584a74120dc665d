package embedding_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/katalvlaran/itemnet/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "ITEMNET_EMBED_HELPER"

// TestHelperProcess is not a real test: it is the embedding subprocess used by
// the Command tests, speaking the JSON-lines protocol over a hashing embedder.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	defer os.Exit(0)

	in := bufio.NewScanner(os.Stdin)
	out := json.NewEncoder(os.Stdout)
	if !in.Scan() {
		return
	}
	_ = out.Encode(map[string]any{"status": "ready", "embedding_dim": 16})

	h := embedding.NewHashing(16)
	for in.Scan() {
		var req struct {
			Texts []string `json:"texts"`
		}
		if err := json.Unmarshal(in.Bytes(), &req); err != nil {
			_ = out.Encode(map[string]string{"error": err.Error()})
			continue
		}
		if len(req.Texts) == 1 && req.Texts[0] == "__fail__" {
			_ = out.Encode(map[string]string{"error": "model crashed"})
			continue
		}
		vecs, _ := h.Embed(context.Background(), req.Texts)
		_ = out.Encode(map[string]any{"embeddings": vecs})
	}
}

func startHelper(t *testing.T) *embedding.Command {
	t.Helper()
	c, err := embedding.StartCommand(context.Background(), embedding.CommandConfig{
		Argv:  []string{os.Args[0], "-test.run=^TestHelperProcess$"},
		Env:   []string{helperEnv + "=1"},
		Model: "helper",
	})
	require.NoError(t, err)
	return c
}

// TestCommand_MatchesHashing checks the handshake and that vectors cross the
// process boundary unchanged.
func TestCommand_MatchesHashing(t *testing.T) {
	c := startHelper(t)
	defer c.Close()
	assert.Equal(t, 16, c.Dimensions())
	assert.Equal(t, "helper", c.Model())

	texts := []string{"I like parties", "I prefer quiet evenings"}
	got, err := embedding.EmbedAll(context.Background(), c, texts)
	require.NoError(t, err)
	want, err := embedding.NewHashing(16).Embed(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// the process survives several requests
	again, err := c.Embed(context.Background(), texts[:1])
	require.NoError(t, err)
	assert.Equal(t, want[0], again[0])
}

// TestCommand_ReportsProcessError surfaces an error line as a provider failure.
func TestCommand_ReportsProcessError(t *testing.T) {
	c := startHelper(t)
	defer c.Close()

	_, err := embedding.EmbedAll(context.Background(), c, []string{"__fail__"})
	assert.ErrorIs(t, err, embedding.ErrProvider)
	assert.Contains(t, err.Error(), "model crashed")
}

// TestCommand_ClosedAndMissing covers lifecycle failures.
func TestCommand_ClosedAndMissing(t *testing.T) {
	c := startHelper(t)
	require.NoError(t, c.Close())
	_, err := c.Embed(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, embedding.ErrClosed)

	_, err = embedding.StartCommand(context.Background(), embedding.CommandConfig{
		Argv: []string{"/nonexistent/itemnet-embedder"},
	})
	assert.Error(t, err)
}
