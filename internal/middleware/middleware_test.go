package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/logging"
)

func newLogger(buf *bytes.Buffer) *logging.Logger {
	return logging.New(logging.Config{Level: "debug", Output: buf})
}

func TestRequestLoggingAssignsID(t *testing.T) {
	var buf bytes.Buffer
	var seen string
	handler := RequestLogging(newLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusCreated), entry["status_code"])
	assert.Equal(t, seen, entry["request_id"])
}

func TestRequestLoggingKeepsIncomingID(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogging(newLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"status_code":200`)
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(newLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","code":"internal"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "Recovered from panic")
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", []string{"http://localhost:5173"}, "http://LOCALHOST:5173", http.MethodGet, "http://LOCALHOST:5173", http.StatusTeapot},
		{"unknown origin", []string{"http://localhost:5173"}, "http://evil.test", http.MethodGet, "", http.StatusTeapot},
		{"wildcard", []string{"*"}, "http://any.test", http.MethodGet, "*", http.StatusTeapot},
		{"preflight", []string{"http://localhost:5173"}, "http://localhost:5173", http.MethodOptions, "http://localhost:5173", http.StatusNoContent},
		{"disabled", nil, "http://localhost:5173", http.MethodGet, "", http.StatusTeapot},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/v1/events", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()

			CORS(tc.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
