package fbref

import (
	"strings"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/providers"
)

// findWageTable picks the first table with a club column and an annual wages column.
func findWageTable(tables []Table) (Table, int, int, error) {
	for _, t := range tables {
		clubIdx, wageIdx := -1, -1
		for i, h := range t.Header {
			lower := strings.ToLower(strings.TrimSpace(h))
			switch {
			case clubIdx < 0 && (lower == "squad" || lower == "club" || lower == "team"):
				clubIdx = i
			case wageIdx < 0 && isAnnualWageHeader(lower):
				wageIdx = i
			}
		}
		if clubIdx >= 0 && wageIdx >= 0 {
			return t, clubIdx, wageIdx, nil
		}
	}
	return Table{}, -1, -1, providers.ErrNoWageTable
}

func isAnnualWageHeader(lower string) bool {
	if lower == "annual wages" || lower == "annual_wages" {
		return true
	}
	return strings.Contains(lower, "annual") && strings.Contains(lower, "wage")
}

// mapWages converts the chosen table into rows, dropping blank clubs and
// unparsable wage figures.
func mapWages(tables []Table, season string) ([]wages.Row, error) {
	t, clubIdx, wageIdx, err := findWageTable(tables)
	if err != nil {
		return nil, err
	}

	rows := make([]wages.Row, 0, len(t.Rows))
	for _, cells := range t.Rows {
		if clubIdx >= len(cells) || wageIdx >= len(cells) {
			continue
		}
		club := strings.TrimSpace(cells[clubIdx])
		if club == "" {
			continue
		}
		amount, ok := ParseMoney(cells[wageIdx])
		if !ok {
			continue
		}
		rows = append(rows, wages.Row{
			Club:             club,
			Season:           season,
			TotalWageBillGBP: amount,
		})
	}
	return rows, nil
}
