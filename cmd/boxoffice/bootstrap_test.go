package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/config"
	"boxoffice/internal/domain"
	"boxoffice/internal/logging"
	"boxoffice/internal/store/memory"
)

func TestBootstrapDemoDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	logger := logging.New(logging.Config{Output: &bytes.Buffer{}})

	require.NoError(t, bootstrapDemoData(ctx, mem, mem, logger))
	require.NoError(t, bootstrapDemoData(ctx, mem, mem, logger))

	venues, err := mem.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)

	events, err := mem.ListEvents(ctx, domain.EventFilter{VenueID: &venues[0].ID})
	require.NoError(t, err)
	assert.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, e.TotalCapacity, e.AvailableTickets)
		assert.True(t, e.Active)
	}
}

func TestHTTPHandlerWithMemoryBackend(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New(logging.Config{Level: "debug", Output: &logs})
	mem := memory.New()
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}}

	handler := newHTTPHandler(cfg, &backend{events: mem, venues: mem}, logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Contains(t, logs.String(), "HTTP request completed")
}
