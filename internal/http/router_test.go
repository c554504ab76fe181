package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/pl-spend-service/internal/http/handlers"
	"github.com/preston-bernstein/pl-spend-service/internal/testutil"
)

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := NewRouter(handlers.NewHandler(testutil.NewLoadedService(t), nil, nil))

	cases := map[string]int{
		"/health":                 http.StatusOK,
		"/ready":                  http.StatusOK,
		"/seasons":                http.StatusOK,
		"/clubs?season=2013-14":   http.StatusOK,
		"/clubs?season=2030-31":   http.StatusNotFound,
		"/correlations":           http.StatusOK,
		"/models/1":               http.StatusOK,
		"/models/4":               http.StatusOK,
		"/models/7":               http.StatusNotFound,
		"/models/x":               http.StatusBadRequest,
		"/efficiency":             http.StatusOK,
		"/efficiency?season=bad!": http.StatusBadRequest,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		assert.Equal(t, expected, rr.Code, path)
	}
}

func TestRouterUnknownRouteReturnsJSON404(t *testing.T) {
	router := NewRouter(handlers.NewHandler(testutil.NewLoadedService(t), nil, nil))

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}

func TestRouterRejectsWrites(t *testing.T) {
	router := NewRouter(handlers.NewHandler(testutil.NewLoadedService(t), nil, nil))

	rr := testutil.Serve(router, http.MethodPost, "/seasons", nil)

	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rr.Body.String())
}
