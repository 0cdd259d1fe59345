package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "s", Value: "v"}, String("s", "v"))
	assert.Equal(t, Field{Key: "i", Value: 7}, Int("i", 7))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))

	assert.Equal(t, Field{Key: "error", Value: "boom"}, Err(errors.New("boom")))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestZapLoggerEmitsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromCore(core)

	logger.Info("laudo created", String("codigo", "L-2024-0001"), Int("total", 3))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "laudo created", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "L-2024-0001", fields["codigo"])
	assert.EqualValues(t, 3, fields["total"])
}

func TestWithAddsPersistentFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromCore(core).With(String("component", "resolver"))

	logger.Debug("miss")
	logger.Warn("slow lookup")

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "resolver", entry.ContextMap()["component"])
	}
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestNewLoggerAppliesDefaults(t *testing.T) {
	l, err := NewLogger(Config{})
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	// Must not panic and must chain.
	l.Debug("x")
	l.With(String("a", "b")).Named("child").Info("y")
}
