// Package store persists club-season records for the API and the store command.
package store

import (
	"context"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// ClubSeasonStore is implemented by MemoryStore and SQLStore.
type ClubSeasonStore interface {
	// ReplaceSeason swaps every record of one season for rows.
	ReplaceSeason(ctx context.Context, season string, rows []clubs.ClubSeason) error
	// ListSeasons returns the distinct seasons in ascending order.
	ListSeasons(ctx context.Context) ([]string, error)
	// ClubSeasons returns a season's records ordered by club; unknown seasons yield none.
	ClubSeasons(ctx context.Context, season string) ([]clubs.ClubSeason, error)
}

// ReplaceAll groups rows by season and replaces each season in turn.
func ReplaceAll(ctx context.Context, s ClubSeasonStore, rows []clubs.ClubSeason) (int, error) {
	bySeason := make(map[string][]clubs.ClubSeason)
	var order []string
	for _, r := range rows {
		if _, ok := bySeason[r.Season]; !ok {
			order = append(order, r.Season)
		}
		bySeason[r.Season] = append(bySeason[r.Season], r)
	}
	for _, season := range order {
		if err := s.ReplaceSeason(ctx, season, bySeason[season]); err != nil {
			return 0, err
		}
	}
	return len(order), nil
}
