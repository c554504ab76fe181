package fixture

import (
	"context"
	"strconv"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Clubs is the fixed club list served for every season.
var Clubs = []string{
	"Manchester City",
	"Manchester Utd",
	"Chelsea",
	"Arsenal",
	"Liverpool",
	"Tottenham",
	"Everton",
	"Newcastle Utd",
	"West Ham",
	"Southampton",
}

// Provider returns deterministic wage rows for offline runs and tests.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "fixture"
}

// FetchWages returns one row per club. Bills grow 5m a season from a base
// that falls by 15m per place in Clubs.
func (p *Provider) FetchWages(ctx context.Context, s string) ([]wages.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slug, err := season.Slug(s)
	if err != nil {
		return nil, err
	}
	startYear, _ := strconv.Atoi(slug[:4])

	rows := make([]wages.Row, 0, len(Clubs))
	for i, club := range Clubs {
		millions := 200 - 15*float64(i) + 5*float64(startYear-2013)
		rows = append(rows, wages.Row{
			Club:             club,
			Season:           slug,
			TotalWageBillGBP: millions * 1_000_000,
		})
	}
	return rows, nil
}
