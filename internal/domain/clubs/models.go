package clubs

// Canonical column names shared by every pipeline stage.
const (
	ColSeason        = "season"
	ColClub          = "club"
	ColPromoted      = "promoted"
	ColTransferSpend = "gross_transfer_spend_gbp_m"
	ColWageBill      = "total_wage_bill_gbp_m"
	ColPosition      = "league_position"
	ColPoints        = "points_total"
)

// KeyColumns are the columns checked for missing values before modelling.
var KeyColumns = []string{
	ColWageBill,
	ColPosition,
	ColPoints,
	ColTransferSpend,
	ColPromoted,
}

// ClubSeason is one club's financial and sporting record for one season.
// Nil numeric fields mean the value was missing, which is distinct from zero.
type ClubSeason struct {
	Season        string   `json:"season"`
	Club          string   `json:"club"`
	Promoted      bool     `json:"promoted"`
	TransferSpend *float64 `json:"grossTransferSpendGbpM,omitempty"`
	WageBill      *float64 `json:"totalWageBillGbpM,omitempty"`
	Position      *int     `json:"leaguePosition,omitempty"`
	Points        *int     `json:"pointsTotal,omitempty"`
}

// Key identifies a club-season.
func (c ClubSeason) Key() string {
	return c.Season + "|" + c.Club
}

// SeasonResponse is the payload returned by /clubs?season=YYYY-YY.
type SeasonResponse struct {
	Season string       `json:"season"`
	Clubs  []ClubSeason `json:"clubs"`
}

// NewSeasonResponse builds a SeasonResponse payload.
func NewSeasonResponse(season string, rows []ClubSeason) SeasonResponse {
	if rows == nil {
		rows = []ClubSeason{}
	}
	return SeasonResponse{Season: season, Clubs: rows}
}
