package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg, fields})
}

func (l *captureLogger) Debug(msg string, f map[string]interface{}) { l.add("debug", msg, f) }
func (l *captureLogger) Info(msg string, f map[string]interface{})  { l.add("info", msg, f) }
func (l *captureLogger) Warn(msg string, f map[string]interface{})  { l.add("warn", msg, f) }
func (l *captureLogger) Error(msg string, f map[string]interface{}) { l.add("error", msg, f) }

func (l *captureLogger) last() logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[len(l.entries)-1]
}

func TestRequestLoggingMiddleware(t *testing.T) {
	logger := &captureLogger{}
	var seenID string
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/menu/toggle", nil))

	id := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seenID)

	entry := logger.last()
	assert.Equal(t, "info", entry.level)
	assert.Equal(t, "Request completed", entry.msg)
	assert.Equal(t, http.StatusCreated, entry.fields["status"])
	assert.Equal(t, "/menu/toggle", entry.fields["path"])
}

func TestRequestLoggingMiddleware_KeepsIncomingID(t *testing.T) {
	handler := RequestLoggingMiddleware(&captureLogger{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/feeds", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggingMiddleware_ServerErrors(t *testing.T) {
	logger := &captureLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/feeds/0/load", nil))

	entry := logger.last()
	assert.Equal(t, "error", entry.level)
	assert.Equal(t, http.StatusGatewayTimeout, entry.fields["status"])
}

func TestResponseWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := rw.Write([]byte("hi"))
	require.NoError(t, err)
	rw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.Equal(t, http.StatusOK, rec.Code)
}
