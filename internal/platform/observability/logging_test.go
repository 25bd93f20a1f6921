package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFromString(tt.in), "input %q", tt.in)
	}
}

func TestNewLoggerTo_JSONWithServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogConfig{Service: "credit-service", Level: "info"})

	logger.Info("analysis stored", "analysis_id", "a-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "analysis stored", record["msg"])
	assert.Equal(t, "credit-service", record["service"])
	assert.Equal(t, "a-1", record["analysis_id"])
}

func TestNewLoggerTo_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogConfig{Format: "text"})

	logger.Info("listening")

	assert.Contains(t, buf.String(), "msg=listening")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewLoggerTo_FiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogConfig{Level: "warn"})

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLoggerTo_DebugIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogConfig{Level: "debug"})

	logger.Debug("tracing")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Contains(t, record, "source")
}

func TestNewLoggerTo_NoServiceAttributeWhenUnset(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogConfig{})

	logger.Info("bare")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.NotContains(t, record, "service")
}
