package dataset

import (
	"math"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// ClubSeasons converts a prepared table into typed records. Rows without a
// season or club are skipped.
func ClubSeasons(t *Table) []clubs.ClubSeason {
	out := make([]clubs.ClubSeason, 0, t.Len())
	for i := range t.Rows {
		rec := clubs.ClubSeason{
			Season: t.Value(i, clubs.ColSeason),
			Club:   t.Value(i, clubs.ColClub),
		}
		if rec.Season == "" || rec.Club == "" {
			continue
		}
		if v, ok := ParseNumber(t.Value(i, clubs.ColPromoted)); ok {
			rec.Promoted = v != 0
		}
		rec.TransferSpend = floatPtr(t.Value(i, clubs.ColTransferSpend))
		rec.WageBill = floatPtr(t.Value(i, clubs.ColWageBill))
		rec.Position = intPtr(t.Value(i, clubs.ColPosition))
		rec.Points = intPtr(t.Value(i, clubs.ColPoints))
		out = append(out, rec)
	}
	return out
}

func floatPtr(raw string) *float64 {
	v, ok := ParseNumber(raw)
	if !ok {
		return nil
	}
	return &v
}

func intPtr(raw string) *int {
	v, ok := ParseNumber(raw)
	if !ok {
		return nil
	}
	n := int(math.Round(v))
	return &n
}
