package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/preston-bernstein/pl-spend-service/internal/database"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

const (
	deleteSeasonSQL = `DELETE FROM club_seasons WHERE season = ?`
	insertSeasonSQL = `INSERT INTO club_seasons (season, row_seq, club, promoted, gross_transfer_spend_gbp_m, total_wage_bill_gbp_m, league_position, points_total) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	listSeasonsSQL  = `SELECT DISTINCT season FROM club_seasons ORDER BY season`
	clubSeasonsSQL  = `SELECT season, club, promoted, gross_transfer_spend_gbp_m, total_wage_bill_gbp_m, league_position, points_total FROM club_seasons WHERE season = ? ORDER BY club, row_seq`
	deleteWagesSQL  = `DELETE FROM wage_bills WHERE season = ? AND provider = ?`
	insertWageSQL   = `INSERT INTO wage_bills (season, club, provider, total_wage_bill_gbp) VALUES (?, ?, ?, ?)`
	seasonWagesSQL  = `SELECT club, total_wage_bill_gbp FROM wage_bills WHERE season = ? AND provider = ? ORDER BY club`
)

// SQLStore persists club seasons and scraped wage bills in SQLite or Postgres.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) q(query string) string {
	return database.Rebind(s.dialect, query)
}

// ReplaceSeason deletes and reinserts a season in one transaction. Rows are
// keyed by their position in the input, so a club listed twice in a season is
// stored twice, as the memory store does.
func (s *SQLStore) ReplaceSeason(ctx context.Context, season string, rows []clubs.ClubSeason) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", season, err)
	}
	if _, err := tx.ExecContext(ctx, s.q(deleteSeasonSQL), season); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete season %s: %w", season, err)
	}
	for i, r := range rows {
		if _, err := tx.ExecContext(ctx, s.q(insertSeasonSQL),
			season, i, r.Club, boolToInt(r.Promoted),
			nullFloat(r.TransferSpend), nullFloat(r.WageBill),
			nullInt(r.Position), nullInt(r.Points),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s %s: %w", season, r.Club, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit season %s: %w", season, err)
	}
	return nil
}

// ListSeasons returns the distinct stored seasons.
func (s *SQLStore) ListSeasons(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q(listSeasonsSQL))
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	seasons := []string{}
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, err
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// ClubSeasons returns the stored records for season.
func (s *SQLStore) ClubSeasons(ctx context.Context, season string) ([]clubs.ClubSeason, error) {
	rows, err := s.db.QueryContext(ctx, s.q(clubSeasonsSQL), season)
	if err != nil {
		return nil, fmt.Errorf("club seasons %s: %w", season, err)
	}
	defer rows.Close()

	out := []clubs.ClubSeason{}
	for rows.Next() {
		var (
			rec             clubs.ClubSeason
			promoted        int64
			spend, wageBill sql.NullFloat64
			position, pts   sql.NullInt64
		)
		if err := rows.Scan(&rec.Season, &rec.Club, &promoted, &spend, &wageBill, &position, &pts); err != nil {
			return nil, err
		}
		rec.Promoted = promoted != 0
		rec.TransferSpend = floatFromNull(spend)
		rec.WageBill = floatFromNull(wageBill)
		rec.Position = intFromNull(position)
		rec.Points = intFromNull(pts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ReplaceWages stores one provider's scraped wage bills for a season.
func (s *SQLStore) ReplaceWages(ctx context.Context, sw wages.SeasonWages) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wages %s: %w", sw.Season, err)
	}
	if _, err := tx.ExecContext(ctx, s.q(deleteWagesSQL), sw.Season, sw.Provider); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete wages %s: %w", sw.Season, err)
	}
	for _, r := range sw.Rows {
		if _, err := tx.ExecContext(ctx, s.q(insertWageSQL), sw.Season, r.Club, sw.Provider, r.TotalWageBillGBP); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert wage %s %s: %w", sw.Season, r.Club, err)
		}
	}
	return tx.Commit()
}

// SeasonWages reads back one provider's wage bills for a season.
func (s *SQLStore) SeasonWages(ctx context.Context, season, provider string) (wages.SeasonWages, error) {
	out := wages.SeasonWages{Season: season, Provider: provider, Rows: []wages.Row{}}
	rows, err := s.db.QueryContext(ctx, s.q(seasonWagesSQL), season, provider)
	if err != nil {
		return out, fmt.Errorf("season wages %s: %w", season, err)
	}
	defer rows.Close()
	for rows.Next() {
		r := wages.Row{Season: season}
		if err := rows.Scan(&r.Club, &r.TotalWageBillGBP); err != nil {
			return out, err
		}
		out.Rows = append(out.Rows, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatFromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func intFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
