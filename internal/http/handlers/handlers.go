package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/pl-spend-service/internal/app/analysis"
	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/poller"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Handler wires HTTP routes to the analysis service.
type Handler struct {
	svc      *analysis.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case
// readiness follows whether the service has loaded a dataset.
func NewHandler(svc *analysis.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// SeasonsResponse is the payload returned by /seasons.
type SeasonsResponse struct {
	Seasons []string `json:"seasons"`
}

// EfficiencyResponse is the payload returned by /efficiency.
type EfficiencyResponse struct {
	Season string               `json:"season,omitempty"`
	Clubs  []dataset.Efficiency `json:"clubs"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once the dataset is loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		if h.svc != nil && h.svc.Ready() {
			writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
			return
		}
		writeError(w, r, nethttp.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Seasons lists the loaded seasons.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	seasons, err := h.svc.Seasons(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if seasons == nil {
		seasons = []string{}
	}
	writeJSON(w, nethttp.StatusOK, SeasonsResponse{Seasons: seasons}, h.logger)
}

// Clubs returns every club-season for ?season=YYYY-YY.
func (h *Handler) Clubs(w nethttp.ResponseWriter, r *nethttp.Request) {
	s, ok := h.seasonParam(w, r, true)
	if !ok {
		return
	}
	rows, err := h.svc.ClubSeasons(r.Context(), s)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if len(rows) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "season not found", h.logger)
		return
	}
	loggerFromContext(r, h.logger).Debug("served club seasons", logging.FieldSeason, s, logging.FieldCount, len(rows))
	writeJSON(w, nethttp.StatusOK, clubs.NewSeasonResponse(s, rows), h.logger)
}

// Correlations returns the correlation tables for points and position.
func (h *Handler) Correlations(w nethttp.ResponseWriter, r *nethttp.Request) {
	corr, err := h.svc.Correlations()
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, newCorrelationsResponse(corr), h.logger)
}

// Model returns one fitted standard model.
func (h *Handler) Model(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid model id", h.logger)
		return
	}
	fitted, err := h.svc.Model(id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, newModelResponse(fitted), h.logger)
}

// Efficiency returns the spend-per-point ranking, optionally for one season.
func (h *Handler) Efficiency(w nethttp.ResponseWriter, r *nethttp.Request) {
	s, ok := h.seasonParam(w, r, false)
	if !ok {
		return
	}
	rows, err := h.svc.Efficiency(s)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if s != "" && len(rows) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "season not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, EfficiencyResponse{Season: s, Clubs: rows}, h.logger)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// seasonParam reads ?season=, accepting 2013-14, 13-14 or 2013-2014.
func (h *Handler) seasonParam(w nethttp.ResponseWriter, r *nethttp.Request, required bool) (string, bool) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		if required {
			writeError(w, r, nethttp.StatusBadRequest, "season is required (expected YYYY-YY)", h.logger)
			return "", false
		}
		return "", true
	}
	s := season.Canonical(raw)
	if !season.IsCanonical(s) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season format (expected YYYY-YY)", h.logger)
		return "", false
	}
	return s, true
}

func (h *Handler) serviceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case errors.Is(err, analysis.ErrNotLoaded):
		writeError(w, r, nethttp.StatusServiceUnavailable, "dataset not loaded", h.logger)
	case errors.Is(err, analysis.ErrModelNotFound):
		writeError(w, r, nethttp.StatusNotFound, "model not found", h.logger)
	default:
		loggerFromContext(r, h.logger).Warn("model unavailable", "error", err)
		writeError(w, r, nethttp.StatusUnprocessableEntity, err.Error(), h.logger)
	}
}

func (h *Handler) internalError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	logging.Error(loggerFromContext(r, h.logger), "request failed", err)
	writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
}
