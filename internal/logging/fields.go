package logging

import "log/slog"

// Structured log keys shared by the pipeline, the API and the reloader.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldRunID      = "run_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSeason     = "season"
	FieldStage      = "stage"
	FieldFile       = "file"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)

// WithCommon adds the service and version attributes, skipping blanks.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	for _, kv := range [][2]string{{FieldService, service}, {FieldVersion, version}} {
		if kv[1] == "" {
			continue
		}
		attrs = append(attrs, slog.String(kv[0], kv[1]))
	}
	return attrs
}
