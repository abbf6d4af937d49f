package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_FormatsMessageAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "info", Output: &buf})

	log.Debug("hidden %d", 1)
	log.Info("ingested %d matches for %s", 3, "Alpha#EUW")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ingested 3 matches for Alpha#EUW", line["msg"])
	assert.Equal(t, "INFO", line["level"])
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "debug", Format: "text", Output: &buf})

	log.With("player", "Alpha#EUW").Warn("%d%% done", 100)

	assert.Contains(t, buf.String(), "100% done")
	assert.Contains(t, buf.String(), "Alpha#EUW")
}

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, getLoggerLevel("WARN"))
	assert.Equal(t, slog.LevelDebug, getLoggerLevel("nonsense"))
}
