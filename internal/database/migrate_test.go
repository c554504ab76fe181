package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", extractUp(content))
	assert.Equal(t, "CREATE TABLE b (id INT);", extractUp("CREATE TABLE b (id INT);"))
	assert.Equal(t, "\nCREATE TABLE c (id INT);", extractUp("-- +migrate Up\nCREATE TABLE c (id INT);"))
}

func TestApplyMigrationsSkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/0001_a.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE a (id INT);")},
		"m/0002_b.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"m/README.txt": {Data: []byte("ignored")},
		"m/0003_c.sql": {Data: []byte("-- +migrate Up\n\n-- +migrate Down\nDROP TABLE c;")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM schema_migrations WHERE name = $1")).
		WithArgs("0001_a.sql").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM schema_migrations WHERE name = $1")).
		WithArgs("0002_b.sql").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (name, applied_at) VALUES ($1, $2)")).
		WithArgs("0002_b.sql", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM schema_migrations WHERE name = $1")).
		WithArgs("0003_c.sql").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	require.NoError(t, applyMigrations(context.Background(), db, Postgres, fsys, "m"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{"m/0001_a.sql": {Data: []byte("CREATE TABLE a (id INT);")}}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE a").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = applyMigrations(context.Background(), db, SQLite, fsys, "m")
	assert.ErrorContains(t, err, "exec migration 0001_a.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	assert.Error(t, applyMigrations(context.Background(), nil, SQLite, fstest.MapFS{}, "m"))
}
