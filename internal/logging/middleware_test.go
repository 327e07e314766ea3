package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMiddleware_StampsRequestID(t *testing.T) {
	logs := observe(t, nil)

	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/terminal/sessions", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	entries := logs.FilterField(zap.String("request_id", seen)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "http", entries[0].LoggerName)
	assert.Equal(t, int64(http.StatusCreated), entries[0].ContextMap()["status"])
	assert.Equal(t, int64(2), entries[0].ContextMap()["size"])
}

func TestMiddleware_KeepsIncomingID(t *testing.T) {
	observe(t, nil)
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc-123", RequestID(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", RequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
