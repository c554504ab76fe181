package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"boom","requestId":"abc123"}`, rr.Body.String())
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "bad", nil)
	assert.JSONEq(t, `{"error":"bad"}`, rr.Body.String())
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.NotZero(t, buf.Len())
}

func TestLoggerFromContext(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	scoped, _ := testutil.NewBufferLogger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, fallback, loggerFromContext(req, fallback))
	assert.NotNil(t, loggerFromContext(nil, nil))

	req = req.WithContext(logging.WithLogger(req.Context(), scoped))
	assert.Same(t, scoped, loggerFromContext(req, fallback))
}
