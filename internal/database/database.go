// Package database opens the SQL store backing club-season persistence.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/pl-spend-service/internal/config"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

var sqlOpen = sql.Open

// ParseDialect maps a configured driver name onto a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) systemAttr() attribute.KeyValue {
	if d == Postgres {
		return semconv.DBSystemPostgreSQL
	}
	return semconv.DBSystemSqlite
}

// Open connects through an otelsql-wrapped driver, applies pool settings and
// verifies the connection within PingTimeout.
func Open(ctx context.Context, c config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(c.Driver)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(c.DSN) == "" {
		return nil, "", fmt.Errorf("invalid database config: dsn is required")
	}

	driverName, err := otelsql.Register(dialect.driverName(),
		otelsql.WithAttributes(dialect.systemAttr()),
		otelsql.WithSQLCommenter(dialect == Postgres),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, c.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("sql open: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}

	pingCtx := ctx
	if c.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, c.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping: %w", err)
	}

	return db, dialect, nil
}

// Rebind rewrites ? placeholders as $n for Postgres.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
