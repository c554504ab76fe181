package regression

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
)

// ModelSpec names one of the standard specifications.
type ModelSpec struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Formula string `json:"formula"`
}

// StandardModels are fitted by the regress command, in order.
var StandardModels = []ModelSpec{
	{
		ID:      1,
		Title:   "points_total ~ total_wage_bill_gbp_m (robust SE)",
		Formula: "points_total ~ total_wage_bill_gbp_m",
	},
	{
		ID:      2,
		Title:   "points_total ~ wages + transfers (robust SE)",
		Formula: "points_total ~ total_wage_bill_gbp_m + gross_transfer_spend_gbp_m",
	},
	{
		ID:      3,
		Title:   "wages + transfers + promoted + season fixed effects (robust SE)",
		Formula: "points_total ~ total_wage_bill_gbp_m + gross_transfer_spend_gbp_m + promoted + C(season)",
	},
	{
		ID:      4,
		Title:   "league_position ~ wages + transfers + promoted + season FE (robust SE)",
		Formula: "league_position ~ total_wage_bill_gbp_m + gross_transfer_spend_gbp_m + promoted + C(season)",
	},
}

// Fitted pairs a spec with its estimates.
type Fitted struct {
	Spec   ModelSpec `json:"spec"`
	Result *Result   `json:"result"`
}

// PrepareInputs applies the modelling defaults to an analysis-ready table:
// numeric coercion, missing transfer spend as zero, missing promoted as zero,
// and dropping rows without points or wages.
func PrepareInputs(t *dataset.Table) *dataset.Table {
	out := t.Clone()
	for _, col := range []string{clubs.ColPoints, clubs.ColPosition, clubs.ColWageBill, clubs.ColTransferSpend, clubs.ColPromoted} {
		dataset.Coerce(out, col)
	}
	dataset.FillMissing(out, clubs.ColTransferSpend, "0")
	dataset.FillMissing(out, clubs.ColPromoted, "0")
	out.EnsureColumn(clubs.ColPoints)
	out.EnsureColumn(clubs.ColWageBill)
	return out.Filter(func(i int) bool {
		return out.Value(i, clubs.ColPoints) != "" && out.Value(i, clubs.ColWageBill) != ""
	})
}

// FitModel parses and fits a single formula.
func FitModel(t *dataset.Table, formula string) (*Result, error) {
	f, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	d, err := BuildDesign(t, f)
	if err != nil {
		return nil, err
	}
	res, err := Fit(d)
	if err != nil {
		return nil, err
	}
	res.Formula = f.String()
	return res, nil
}

// RunStandard fits every standard model against prepared inputs.
func RunStandard(ctx context.Context, inputs *dataset.Table, logger *slog.Logger) ([]Fitted, error) {
	logger = logging.FromContext(ctx, logger)
	out := make([]Fitted, 0, len(StandardModels))
	for _, spec := range StandardModels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := FitModel(inputs, spec.Formula)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", spec.ID, err)
		}
		logging.Info(logger, "model fitted",
			slog.Int("model", spec.ID),
			slog.Int("nobs", res.N),
			slog.Float64("r_squared", res.RSquared),
		)
		out = append(out, Fitted{Spec: spec, Result: res})
	}
	return out, nil
}

// WriteOutputs writes every summary under a MODEL n header.
func WriteOutputs(w io.Writer, fitted []Fitted) error {
	for i, f := range fitted {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "MODEL %d\n", f.Spec.ID); err != nil {
			return err
		}
		if _, err := io.WriteString(w, f.Result.Summary()); err != nil {
			return err
		}
	}
	return nil
}
