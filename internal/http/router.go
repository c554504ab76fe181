package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/pl-spend-service/internal/http/handlers"
)

// NewRouter registers the read-only API routes.
func NewRouter(h *handlers.Handler) nethttp.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/seasons", h.Seasons).Methods(nethttp.MethodGet)
	r.HandleFunc("/clubs", h.Clubs).Methods(nethttp.MethodGet)
	r.HandleFunc("/correlations", h.Correlations).Methods(nethttp.MethodGet)
	r.HandleFunc("/models/{id}", h.Model).Methods(nethttp.MethodGet)
	r.HandleFunc("/efficiency", h.Efficiency).Methods(nethttp.MethodGet)
	return r
}
