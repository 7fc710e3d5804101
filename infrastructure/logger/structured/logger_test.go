package structured

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: "json", Output: &buf})

	logger.Info("Feed loaded", map[string]interface{}{"feed_id": 2, "name": "CSS Tricks"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Feed loaded", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "CSS Tricks", entry["name"])
	assert.EqualValues(t, 2, entry["feed_id"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Format: "json", Output: &buf})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	logger.Warn("shown", nil)
	logger.Error("shown", map[string]interface{}{"error": "boom"})
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "chatty", Output: &buf})

	logger.Debug("hidden", nil)
	assert.Zero(t, buf.Len())

	logger.Info("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "json", Output: &buf}).With(map[string]interface{}{"component": "page"})

	logger.Info("Menu toggled", nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "page", entry["component"])
}
