package logging

import (
	"context"
	"log/slog"
)

// Info, Warn and Error are no-ops on a nil logger so optional loggers can be
// threaded through constructors without guards at every call site.

func Info(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelInfo, msg, nil, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelWarn, msg, nil, args)
}

// Error attaches err under the "error" key when it is non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	emit(logger, slog.LevelError, msg, err, args)
}

func emit(logger *slog.Logger, level slog.Level, msg string, err error, args []any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	logger.Log(context.Background(), level, msg, args...)
}
