package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", "debug", &buf)
	t.Cleanup(func() { InitWithWriter("production", "info", &bytes.Buffer{}) })

	Error("Failed to save", errors.New("boom"), "user_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Failed to save", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "error", entry["level"])
}

func TestLoggerUnpairedValue(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", "info", &buf)
	t.Cleanup(func() { InitWithWriter("production", "info", &bytes.Buffer{}) })

	Warn("odd args", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "42", entry["detail"])
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", "warn", &buf)
	t.Cleanup(func() { InitWithWriter("production", "info", &bytes.Buffer{}) })

	Info("hidden")
	Debug("hidden too")
	assert.Empty(t, buf.String())

	Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
