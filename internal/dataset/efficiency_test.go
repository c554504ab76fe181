package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestComputeEfficiency(t *testing.T) {
	rows := []clubs.ClubSeason{
		{Season: "2013-14", Club: "A", WageBill: ptrF(100), TransferSpend: ptrF(50), Points: ptrI(75)},
		{Season: "2013-14", Club: "B", WageBill: ptrF(40), Points: ptrI(40)},
		{Season: "2013-14", Club: "C", WageBill: ptrF(40), Points: ptrI(0)},
		{Season: "2013-14", Club: "D", Points: ptrI(20)},
	}

	got := ComputeEfficiency(rows)
	require.Len(t, got, 4)

	assert.InDelta(t, 2.0, *got[0].TotalCostPerPoint, 1e-12)
	assert.InDelta(t, 100.0/75, *got[0].WagesPerPoint, 1e-12)
	assert.InDelta(t, 1.0, *got[1].TotalCostPerPoint, 1e-12)
	assert.InDelta(t, 0.0, *got[1].SpendPerPoint, 1e-12)
	assert.Nil(t, got[2].TotalCostPerPoint)
	assert.Nil(t, got[2].SpendPerPoint, "zero points leaves every ratio undefined")
	assert.Nil(t, got[3].WagesPerPoint)
	assert.NotNil(t, got[3].SpendPerPoint)
}

func TestRankEfficiencyPerSeason(t *testing.T) {
	es := []Efficiency{
		{Season: "2014-15", Club: "X", TotalCostPerPoint: ptrF(3)},
		{Season: "2013-14", Club: "A", TotalCostPerPoint: ptrF(2)},
		{Season: "2013-14", Club: "B", TotalCostPerPoint: ptrF(1)},
		{Season: "2013-14", Club: "C"},
	}

	got := RankEfficiency(es)

	assert.Equal(t, "B", got[0].Club)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "A", got[1].Club)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "C", got[2].Club)
	assert.Equal(t, 0, got[2].Rank)
	assert.Equal(t, "X", got[3].Club)
	assert.Equal(t, 1, got[3].Rank)
}

func TestClubSeasonsSkipsIncompleteRows(t *testing.T) {
	tbl := NewTable(clubs.ColSeason, clubs.ColClub, clubs.ColPoints, clubs.ColPromoted, clubs.ColWageBill)
	tbl.Rows = [][]string{
		{"2013-14", "Arsenal", "79", "0", "166.4"},
		{"2013-14", "", "10", "0", ""},
		{"2013-14", "Hull City", "", "1", ""},
	}

	recs := ClubSeasons(tbl)
	require.Len(t, recs, 2)
	assert.Equal(t, 79, *recs[0].Points)
	assert.InDelta(t, 166.4, *recs[0].WageBill, 1e-9)
	assert.True(t, recs[1].Promoted)
	assert.Nil(t, recs[1].Points)
}

func TestEfficiencyTableLeavesUndefinedEmpty(t *testing.T) {
	tbl := EfficiencyTable([]Efficiency{
		{Season: "2013-14", Club: "A", Points: ptrI(80), TotalCostPerPoint: ptrF(2.5), Rank: 1},
		{Season: "2013-14", Club: "C"},
	})

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "80", tbl.Value(0, clubs.ColPoints))
	assert.Equal(t, "2.5", tbl.Value(0, ColTotalCostPerPoint))
	assert.Equal(t, "1", tbl.Value(0, ColRank))
	assert.Equal(t, "", tbl.Value(1, ColRank))
	assert.Equal(t, "", tbl.Value(1, ColWagesPerPoint))
}
