package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/pl-spend-service/internal/http/middleware"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// loggerFromContext never returns nil.
func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	var logger *slog.Logger
	if r != nil {
		logger = logging.FromContext(r.Context(), fallback)
	} else {
		logger = fallback
	}
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
