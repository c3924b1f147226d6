package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("daily reset", "today", "2026-02-14")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "daily reset", entry["msg"])
	assert.Equal(t, "2026-02-14", entry["today"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTextIsDefault(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", "")
	require.NoError(t, err)

	log.Debug("card quota exhausted", "daily_cards", 1)
	assert.Contains(t, buf.String(), "msg=\"card quota exhausted\"")
	assert.Contains(t, buf.String(), "daily_cards=1")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.ErrorContains(t, err, "parse log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorContains(t, err, "unsupported log format")
}
