package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "loud", Output: &buf})

	logger.Info("hello")
	assert.Contains(t, buf.String(), `"hello"`)
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "debug", Output: &buf}).Zerolog()

	ctx := ContextWithRequestID(context.Background(), "req-123")
	l := WithContext(ctx, base)
	l.Info().Msg("tagged")

	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Equal(t, "req-123", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestHTTPRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Output: &buf})

	logger.HTTPRequest("r1", "POST", "/api/v1/events/1/sell", 409, 5*time.Millisecond)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(409), entry["status_code"])
	assert.Equal(t, "r1", entry["request_id"])
}

func TestInfoEventCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf})

	logger.InfoEvent().Uint("schema_version", 2).Msg("migrations applied")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(2), entry["schema_version"])
	assert.Equal(t, "migrations applied", entry["message"])
}
