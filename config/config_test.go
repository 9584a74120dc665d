package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/itemnet/config"
	"github.com/katalvlaran/itemnet/ega"
	"github.com/katalvlaran/itemnet/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func envMap(m map[string]string) config.LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 0.75, c.Threshold)
	assert.Equal(t, 500, c.Resamples)
	assert.Equal(t, 3, c.MaxIterations)
	assert.Equal(t, "partial", c.Network.Method)
	assert.Equal(t, "remove", c.UVA.Method)
}

func TestDecode(t *testing.T) {
	c := config.Default()
	doc := `
input: items.yaml
exclude: [0, 4]
threshold: 0.8
uva:
  method: merge
embedding:
  provider: openai
  model: text-embedding-3-small
  timeout: 30s
cache:
  kind: redis
  redis_addr: localhost:6379
  ttl: 24h
`
	require.NoError(t, c.Decode(strings.NewReader(doc)))
	assert.Equal(t, "items.yaml", c.Input)
	assert.Equal(t, []int{0, 4}, c.Exclude)
	assert.Equal(t, 0.8, c.Threshold)
	assert.Equal(t, "merge", c.UVA.Method)
	assert.Equal(t, 0.25, c.UVA.Cutoff, "untouched keys keep defaults")
	assert.Equal(t, 30*time.Second, c.Embedding.Timeout)
	assert.Equal(t, 24*time.Hour, c.Cache.TTL)
	require.NoError(t, c.Validate())

	require.NoError(t, config.Default().Decode(strings.NewReader("")))

	err := config.Default().Decode(strings.NewReader("thresold: 0.5\n"))
	assert.True(t, errors.Is(err, config.ErrParse))
}

func TestApplyEnv(t *testing.T) {
	c := config.Default()
	err := c.ApplyEnv(envMap(map[string]string{
		"ITEMNET_THRESHOLD":          "0.9",
		"ITEMNET_EXCLUDE":            "1, 2,3",
		"ITEMNET_SEED":               "42",
		"ITEMNET_EMBEDDING_COMMAND":  "python3 embed.py --model mini",
		"ITEMNET_EMBEDDING_PROVIDER": "command",
		"ITEMNET_CACHE_TTL":          "90m",
		"OPENAI_API_KEY":             "sk-test",
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.9, c.Threshold)
	assert.Equal(t, []int{1, 2, 3}, c.Exclude)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, []string{"python3", "embed.py", "--model", "mini"}, c.Embedding.Command)
	assert.Equal(t, 90*time.Minute, c.Cache.TTL)
	assert.Equal(t, "sk-test", c.Embedding.APIKey)
	require.NoError(t, c.Validate())

	c = config.Default()
	c.Embedding.APIKey = "configured"
	require.NoError(t, c.ApplyEnv(envMap(map[string]string{"OPENAI_API_KEY": "other"})))
	assert.Equal(t, "configured", c.Embedding.APIKey)

	err = config.Default().ApplyEnv(envMap(map[string]string{"ITEMNET_RESAMPLES": "many"}))
	assert.True(t, errors.Is(err, config.ErrParse))
	assert.Contains(t, err.Error(), "ITEMNET_RESAMPLES")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "ITEMNET_EMBEDDING_API_KEY", config.EnvName("embedding.api_key"))
	assert.Equal(t, "ITEMNET_MAX_ITERATIONS", config.EnvName("max_iterations"))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := config.Default()
	c.Threshold = 0
	c.MaxIterations = 0
	c.UVA.Cutoff = 1
	c.Network.Method = "glasso"
	c.Embedding.Provider = "magic"
	c.Cache.Kind = config.CacheRedis

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))
	for _, key := range []string{"threshold", "max_iterations", "uva.cutoff", "network.method", "embedding.provider", "cache.redis_addr"} {
		assert.Contains(t, err.Error(), key)
	}

	c = config.Default()
	c.Embedding.Provider = embedding.BackendCommand
	assert.ErrorContains(t, c.Validate(), "embedding.command")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "itemnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resamples: 50\nmax_iterations: 2\n"), 0o600))
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("ITEMNET_MAX_ITERATIONS=5\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ITEMNET_MAX_ITERATIONS") })

	c, err := config.Load(path, dotenv, filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 50, c.Resamples)
	assert.Equal(t, 5, c.MaxIterations, "environment beats the file")

	_, err = config.Load(filepath.Join(dir, "nope.yaml"))
	assert.True(t, errors.Is(err, config.ErrRead))

	require.NoError(t, os.WriteFile(path, []byte("threshold: 2\n"), 0o600))
	_, err = config.Load(path)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestEstimatorOptions(t *testing.T) {
	c := config.Default()
	c.Network.Method = "cor"
	c.Network.MinWeight = 0.15
	est, ok := c.Estimator().(*ega.EGA)
	require.True(t, ok)
	o := est.Options()
	assert.Equal(t, ega.MethodCorrelation, o.Method)
	assert.False(t, o.Auto)
	assert.Equal(t, 0.15, o.MinWeight)

	est, _ = config.Default().Estimator().(*ega.EGA)
	assert.True(t, est.Options().Auto)
}

func TestOpenProvider(t *testing.T) {
	c := config.Default()
	c.Embedding.Dimensions = 32
	c.Cache.Kind = config.CacheMemory

	p, closeFn, err := c.OpenProvider(context.Background(), zap.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	cached, ok := p.(*embedding.Cached)
	require.True(t, ok)
	_, err = embedding.EmbedAll(context.Background(), p, []string{"a", "b", "a"})
	require.NoError(t, err)
	hits, misses := cached.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 3, misses)
	assert.Equal(t, 32, p.Dimensions())

	assert.NotNil(t, c.Runner(p, zap.NewNop()))
}
