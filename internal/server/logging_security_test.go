package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddlewareRedactsCredentials(t *testing.T) {
	// Header logging only happens at debug level.
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/v1/session/activate", nil)
	req.Header.Set(HeaderAPIKey, "miniapp-key-7f3a")
	req.Header.Set(HeaderAuthorization, "Bearer miniapp-token")
	req.Header.Set("User-Agent", "MiniApp/2.1")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)

	assert.NotContains(t, out, "miniapp-key-7f3a", "API key leaked into the request log")
	assert.NotContains(t, out, "miniapp-token", "bearer token leaked into the request log")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, "MiniApp/2.1", "non-sensitive headers should still be logged")
}

func TestLoggingMiddlewareSkipsHealthEndpoints(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	assert.Empty(t, buf.String())
}
