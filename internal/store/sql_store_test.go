package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/pl-spend-service/internal/config"
	"github.com/preston-bernstein/pl-spend-service/internal/database"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

func TestSQLStoreReplaceSeasonPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM club_seasons WHERE season = $1`)).
		WithArgs("2013-14").
		WillReturnResult(sqlmock.NewResult(0, 20))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO club_seasons`)).
		WithArgs("2013-14", 0, "Arsenal", 0, 42.5, nil, 4, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	s := NewSQLStore(db, database.Postgres)
	err = s.ReplaceSeason(context.Background(), "2013-14", []clubs.ClubSeason{
		{Season: "2013-14", Club: "Arsenal", TransferSpend: floatPtr(42.5), Position: intPtr(4)},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreReplaceSeasonRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM club_seasons`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO club_seasons`).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	s := NewSQLStore(db, database.SQLite)
	err = s.ReplaceSeason(context.Background(), "2013-14", []clubs.ClubSeason{{Season: "2013-14", Club: "Arsenal"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Arsenal")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreClubSeasonsScansNulls(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"season", "club", "promoted", "spend", "wages", "position", "points"}).
		AddRow("2013-14", "Arsenal", 0, 42.5, 166.0, 4, 79).
		AddRow("2013-14", "Hull City", 1, nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT season, club, promoted`).WithArgs("2013-14").WillReturnRows(rows)

	s := NewSQLStore(db, database.SQLite)
	got, err := s.ClubSeasons(context.Background(), "2013-14")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].Promoted)
	require.NotNil(t, got[0].WageBill)
	assert.InDelta(t, 166.0, *got[0].WageBill, 1e-9)
	assert.Equal(t, 79, *got[0].Points)

	assert.True(t, got[1].Promoted)
	assert.Nil(t, got[1].TransferSpend)
	assert.Nil(t, got[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreListSeasonsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT season`).WillReturnError(errors.New("down"))

	_, err = NewSQLStore(db, database.SQLite).ListSeasons(context.Background())
	require.Error(t, err)
}

func TestSQLStoreRoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "store.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db, dialect))

	s := NewSQLStore(db, dialect)
	n, err := ReplaceAll(ctx, s, []clubs.ClubSeason{
		{Season: "2013-14", Club: "Chelsea", WageBill: floatPtr(190.6), Position: intPtr(3), Points: intPtr(82)},
		{Season: "2013-14", Club: "Arsenal", Promoted: false, TransferSpend: floatPtr(42.5)},
		{Season: "2014-15", Club: "Burnley", Promoted: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	seasons, err := s.ListSeasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2013-14", "2014-15"}, seasons)

	got, err := s.ClubSeasons(ctx, "2013-14")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Arsenal", got[0].Club)
	assert.Nil(t, got[0].WageBill)
	assert.Equal(t, 82, *got[1].Points)

	promoted, err := s.ClubSeasons(ctx, "2014-15")
	require.NoError(t, err)
	require.Len(t, promoted, 1)
	assert.True(t, promoted[0].Promoted)

	missing, err := s.ClubSeasons(ctx, "1999-00")
	require.NoError(t, err)
	assert.Empty(t, missing)

	sw := wages.SeasonWages{Season: "2013-14", Provider: "fbref", Rows: []wages.Row{
		{Club: "Chelsea", Season: "2013-14", TotalWageBillGBP: 190_600_000},
		{Club: "Arsenal", Season: "2013-14", TotalWageBillGBP: 166_000_000},
	}}
	require.NoError(t, s.ReplaceWages(ctx, sw))
	require.NoError(t, s.ReplaceWages(ctx, sw))

	back, err := s.SeasonWages(ctx, "2013-14", "fbref")
	require.NoError(t, err)
	require.Len(t, back.Rows, 2)
	assert.Equal(t, "Arsenal", back.Rows[0].Club)
	assert.InDelta(t, 166_000_000, back.Rows[0].TotalWageBillGBP, 1e-6)
}

func TestSQLStoreKeepsDuplicateClubSeasons(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "dupes.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db, dialect))

	rows := []clubs.ClubSeason{
		{Season: "2013-14", Club: "Arsenal", Points: intPtr(79)},
		{Season: "2013-14", Club: "Arsenal", Points: intPtr(80)},
		{Season: "2013-14", Club: "Chelsea"},
	}

	sqlStore := NewSQLStore(db, dialect)
	_, err = ReplaceAll(ctx, sqlStore, rows)
	require.NoError(t, err)
	_, err = ReplaceAll(ctx, sqlStore, rows)
	require.NoError(t, err, "replacing a season with duplicates twice")

	mem := NewMemoryStore()
	_, err = ReplaceAll(ctx, mem, rows)
	require.NoError(t, err)

	fromSQL, err := sqlStore.ClubSeasons(ctx, "2013-14")
	require.NoError(t, err)
	fromMem, err := mem.ClubSeasons(ctx, "2013-14")
	require.NoError(t, err)

	require.Len(t, fromSQL, 3)
	assert.Equal(t, fromMem, fromSQL)
	assert.Equal(t, 79, *fromSQL[0].Points)
	assert.Equal(t, 80, *fromSQL[1].Points)
}
