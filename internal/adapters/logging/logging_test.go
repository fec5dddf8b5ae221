package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/provisioner/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger_Methods(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	if logger.With(ports.F("key", "value")) != logger {
		t.Error("NopLogger.With should return itself")
	}
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelDebug),
		WithTimestamp(false),
	)

	logger.Debug(context.Background(), "rendered script", ports.F("steps", 3), ports.F("manifest", "site.yaml"))

	assert.Equal(t, "[DEBUG] rendered script steps=3 manifest=site.yaml\n", buf.String())
}

func TestConsoleLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn), WithTimestamp(false))
	ctx := context.Background()

	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "hidden")
	logger.Warn(ctx, "shown")
	logger.Error(ctx, "shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[WARN] shown", lines[0])
	assert.Equal(t, "[ERROR] shown too", lines[1])
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithJSONFormat(true), WithTimestamp(false))

	logger.Error(context.Background(), "check failed", ports.F("error", errors.New("boom")), ports.F("step", "Write /etc/motd"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "check failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "Write /etc/motd", entry["step"])
	assert.NotContains(t, entry, "time")
}

func TestConsoleLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(WithOutput(&buf), WithTimestamp(false))
	derived := base.With(ports.F("manifest", "site.yaml"))

	derived.Info(context.Background(), "loaded", ports.F("steps", 2))
	base.Info(context.Background(), "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[INFO] loaded manifest=site.yaml steps=2", lines[0])
	assert.Equal(t, "[INFO] plain", lines[1])
}
