package dataset

import (
	"sort"
	"strconv"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// Efficiency is the spend-to-points view of one club-season, in GBP millions
// per league point. Every ratio is nil when points are missing or zero. The
// wage-based ratios are also nil without a wage bill. Missing transfer spend
// counts as zero, so SpendPerPoint is then 0 rather than nil.
type Efficiency struct {
	Season            string   `json:"season"`
	Club              string   `json:"club"`
	Points            *int     `json:"pointsTotal,omitempty"`
	WagesPerPoint     *float64 `json:"wagesPerPoint,omitempty"`
	SpendPerPoint     *float64 `json:"spendPerPoint,omitempty"`
	TotalCostPerPoint *float64 `json:"totalCostPerPoint,omitempty"`
	Rank              int      `json:"rank,omitempty"`
}

// ComputeEfficiency derives per-point ratios for every record. Missing
// transfer spend counts as zero, matching the regression inputs.
func ComputeEfficiency(rows []clubs.ClubSeason) []Efficiency {
	out := make([]Efficiency, 0, len(rows))
	for _, r := range rows {
		e := Efficiency{Season: r.Season, Club: r.Club, Points: r.Points}
		if r.Points != nil && *r.Points > 0 {
			pts := float64(*r.Points)
			spend := 0.0
			if r.TransferSpend != nil {
				spend = *r.TransferSpend
			}
			e.SpendPerPoint = ratio(spend, pts)
			if r.WageBill != nil {
				e.WagesPerPoint = ratio(*r.WageBill, pts)
				e.TotalCostPerPoint = ratio(*r.WageBill+spend, pts)
			}
		}
		out = append(out, e)
	}
	return out
}

// RankEfficiency orders each season's clubs by total cost per point,
// cheapest first, and assigns 1-based ranks. Unrankable clubs keep rank 0
// and sort after ranked ones.
func RankEfficiency(es []Efficiency) []Efficiency {
	out := append([]Efficiency(nil), es...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if (a.TotalCostPerPoint == nil) != (b.TotalCostPerPoint == nil) {
			return a.TotalCostPerPoint != nil
		}
		if a.TotalCostPerPoint == nil {
			return a.Club < b.Club
		}
		return *a.TotalCostPerPoint < *b.TotalCostPerPoint
	})

	rank, season := 0, ""
	for i := range out {
		if out[i].Season != season {
			season, rank = out[i].Season, 0
		}
		if out[i].TotalCostPerPoint == nil {
			continue
		}
		rank++
		out[i].Rank = rank
	}
	return out
}

// Efficiency output columns.
const (
	ColWagesPerPoint     = "wages_per_point"
	ColSpendPerPoint     = "spend_per_point"
	ColTotalCostPerPoint = "total_cost_per_point"
	ColRank              = "cost_rank"
)

// EfficiencyTable renders ranked efficiency rows as a table. Undefined ratios
// and unranked clubs are left empty.
func EfficiencyTable(es []Efficiency) *Table {
	t := NewTable(clubs.ColSeason, clubs.ColClub, clubs.ColPoints,
		ColWagesPerPoint, ColSpendPerPoint, ColTotalCostPerPoint, ColRank)
	for _, e := range es {
		row := map[string]string{
			clubs.ColSeason:      e.Season,
			clubs.ColClub:        e.Club,
			ColWagesPerPoint:     optFloat(e.WagesPerPoint),
			ColSpendPerPoint:     optFloat(e.SpendPerPoint),
			ColTotalCostPerPoint: optFloat(e.TotalCostPerPoint),
		}
		if e.Points != nil {
			row[clubs.ColPoints] = strconv.Itoa(*e.Points)
		}
		if e.Rank > 0 {
			row[ColRank] = strconv.Itoa(e.Rank)
		}
		t.Append(row)
	}
	return t
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatNumber(*v)
}

func ratio(num, den float64) *float64 {
	v := num / den
	return &v
}
