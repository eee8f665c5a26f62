package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/flashgen/internal/config"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWithWriter(t *testing.T) {
	tests := []struct {
		level        string
		debugVisible bool
		infoVisible  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, &buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")

			assert.Equal(t, tt.debugVisible, strings.Contains(buf.String(), "debug message"))
			assert.Equal(t, tt.infoVisible, strings.Contains(buf.String(), "info message"))
		})
	}
}

func TestSetupSetsDefaultJSONLogger(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)

	slog.Info("via default", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "via default", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestFromContextOrDefault(t *testing.T) {
	fallback, fallbackBuf := logger.GetTestLogger(t)
	scoped, scopedBuf := logger.GetTestLogger(t)

	logger.FromContextOrDefault(context.Background(), fallback).Info("no scoped logger")
	logger.AssertLogContains(t, fallbackBuf, "no scoped logger")

	ctx := logger.WithContext(context.Background(), scoped)
	logger.FromContextOrDefault(ctx, fallback).Info("scoped wins")
	logger.AssertLogContains(t, scopedBuf, "scoped wins")
	assert.NotContains(t, fallbackBuf.String(), "scoped wins")

	assert.Equal(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}

func TestWithRequestID(t *testing.T) {
	base, buf := logger.GetTestLogger(t)
	ctx := logger.WithContext(context.Background(), base)

	ctx = logger.WithRequestID(ctx, "req-123")
	logger.FromContext(ctx).Info("handled")

	logger.AssertLogField(t, buf, "request_id", "req-123")

	id, ok := logger.RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-123", id)

	_, ok = logger.RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	level, ok := logger.ParseLevel(" Warning ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}
