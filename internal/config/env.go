package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// invalidDuration marks a duration variable that failed to parse. It is
// negative so every defaulting helper replaces it.
const invalidDuration = Duration(-1)

// ParseEnv populates target from environment variables. Duration fields that
// fail to parse are set to invalidDuration so callers can apply their own
// defaults.
func ParseEnv(target any) error {
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): func(v string) (any, error) {
				d, err := time.ParseDuration(v)
				if err != nil {
					return invalidDuration, nil
				}
				return d, nil
			},
		},
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotenv reads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win; a missing file is not an error.
func LoadDotenv(path string) error {
	if path == "" {
		path = defaultDotenvPath
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// nonNegativeOr keeps an explicit zero, for pauses that may be switched off.
func nonNegativeOr(d, fallback time.Duration) time.Duration {
	if d < 0 {
		return fallback
	}
	return d
}

func positiveIntOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
