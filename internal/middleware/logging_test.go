package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLines は JSON ハンドラの出力を1行ずつ map にする
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestAccessLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, accessLevel(http.StatusOK))
	assert.Equal(t, slog.LevelInfo, accessLevel(http.StatusNoContent))
	assert.Equal(t, slog.LevelWarn, accessLevel(http.StatusNotFound))
	assert.Equal(t, slog.LevelError, accessLevel(http.StatusServiceUnavailable))
}

func TestNewStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(NewStructuredLogger(logger))
	r.Get("/api/v1/lookup/{character}", func(w http.ResponseWriter, r *http.Request) {
		GetLogger(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/lookup/%E9%B1%BC", nil))

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "inside handler", lines[0]["msg"])

	access := lines[1]
	assert.Equal(t, "Request completed", access["msg"])
	assert.Equal(t, "WARN", access["level"])
	assert.Equal(t, "/api/v1/lookup/{character}", access["route"])
	assert.EqualValues(t, 404, access["status"])
}

func TestLoggingMiddleware_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"jwt-value","token_type":"Bearer"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify", strings.NewReader(`{"token":"selector.verifier"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "Request detail")
	assert.Contains(t, out, "Response detail")
	assert.NotContains(t, out, "selector.verifier")
	assert.NotContains(t, out, "jwt-value")
	assert.NotContains(t, out, "Bearer secret")
}

func TestLoggingMiddleware_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/reset", strings.NewReader(`{"confirm":true}`)))

	assert.Empty(t, buf.String())
}
