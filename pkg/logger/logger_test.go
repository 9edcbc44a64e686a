package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPackageLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := L()
	Set(zap.New(core))
	defer Set(prev)

	Info("matrix built", "products", 3)
	Error("load failed", errors.New("boom"))
	Debug("odd pair", "k", "v", "dangling")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "matrix built", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["products"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, "v", entries[2].ContextMap()["k"])
	assert.Equal(t, "dangling", entries[2].ContextMap()["detail"])
}

func TestNewForEnvironmentLevels(t *testing.T) {
	prod := New("production", zapcore.AddSync(&discard{}))
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	dev := New("development", zapcore.AddSync(&discard{}))
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
