package wages

// Row is one club's annual wage bill as published by an upstream source.
type Row struct {
	Club             string  `json:"club"`
	Season           string  `json:"season"`
	TotalWageBillGBP float64 `json:"totalWageBillGbp"`
}

// SeasonWages groups the rows fetched for a single season.
type SeasonWages struct {
	Season   string `json:"season"`
	Provider string `json:"provider"`
	Rows     []Row  `json:"rows"`
}

// Millions converts the wage bill to GBP millions, the unit used by the dataset.
func (r Row) Millions() float64 {
	return r.TotalWageBillGBP / 1_000_000
}
