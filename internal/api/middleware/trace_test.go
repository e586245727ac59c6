package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/forget/internal/api/shared"
	"github.com/phrazzld/forget/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var seenTraceID string
	handler := Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("generates trace id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Len(t, seenTraceID, 32)
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
		logger.AssertLogField(t, buf, "trace_id", seenTraceID)
	})

	t.Run("reuses caller trace id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(shared.TraceIDHeader, "upstream-trace-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "upstream-trace-42", seenTraceID)
		assert.Equal(t, "upstream-trace-42", w.Header().Get(shared.TraceIDHeader))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "inside handler", entries[1]["msg"])
		assert.Equal(t, "upstream-trace-42", entries[1]["trace_id"])
	})
}
