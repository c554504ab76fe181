// Package artifacts publishes pipeline outputs to local disk or S3-compatible storage.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/timeutil"
)

// ErrInvalidKey is returned for empty or escaping object keys.
var ErrInvalidKey = errors.New("invalid artifact key")

// ArtifactStore stores one object per key.
type ArtifactStore interface {
	// Put uploads size bytes from r. size may be -1 when unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Location describes where keys end up, for logs and CLI output.
	Location() string
}

// File is a local file to publish.
type File struct {
	Path        string
	ContentType string
}

// Published records one uploaded artifact.
type Published struct {
	Key  string
	Size int64
}

// RunPrefix returns the key prefix for a publish run started at t.
func RunPrefix(t time.Time) string {
	return "runs/" + timeutil.FormatStamp(t) + "/"
}

// ContentTypeFor guesses a content type from the file extension.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Publish uploads every file under prefix, keyed by base name. It stops at the
// first failure and returns what was uploaded so far.
func Publish(ctx context.Context, store ArtifactStore, prefix string, files []File, logger *slog.Logger) ([]Published, error) {
	out := make([]Published, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		p, err := publishFile(ctx, store, prefix, f)
		if err != nil {
			logging.Error(logger, "artifact publish failed", err, logging.FieldFile, f.Path)
			return out, err
		}
		logging.Info(logger, "artifact published",
			logging.FieldFile, f.Path,
			"key", p.Key,
			"bytes", p.Size,
		)
		out = append(out, p)
	}
	return out, nil
}

func publishFile(ctx context.Context, store ArtifactStore, prefix string, f File) (Published, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return Published{}, fmt.Errorf("open artifact %s: %w", f.Path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Published{}, fmt.Errorf("stat artifact %s: %w", f.Path, err)
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(f.Path)
	}
	key := path.Join(prefix, filepath.Base(f.Path))
	if err := store.Put(ctx, key, file, info.Size(), contentType); err != nil {
		return Published{}, fmt.Errorf("put %s: %w", key, err)
	}
	return Published{Key: key, Size: info.Size()}, nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return "", ErrInvalidKey
	}
	return key, nil
}
