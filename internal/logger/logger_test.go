package logger_test

import (
	"testing"

	"github.com/katalvlaran/itemnet/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := logger.New(logger.ModeProduction, "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = logger.New("", "")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = logger.New(logger.ModeQuiet, "")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))

	_, err = logger.New(logger.ModeDevelopment, "loud")
	assert.Error(t, err)
}

func TestSecret(t *testing.T) {
	assert.Equal(t, "[REDACTED]", logger.Secret("api_key", "sk-123").String)
	assert.Equal(t, "", logger.Secret("api_key", "").String)
}
