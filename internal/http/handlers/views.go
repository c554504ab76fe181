package handlers

import (
	"math"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/regression"
)

// NaN and Inf cannot be encoded as JSON; statistics that are undefined for
// a dataset are reported as null instead.

type correlationView struct {
	Column string   `json:"column"`
	R      *float64 `json:"r"`
	N      int      `json:"n"`
	Valid  bool     `json:"valid"`
}

// CorrelationsResponse is the payload returned by /correlations.
type CorrelationsResponse struct {
	Points   []correlationView `json:"points"`
	Position []correlationView `json:"position"`
}

type coefficientView struct {
	Name   string   `json:"name"`
	Coef   *float64 `json:"coef"`
	StdErr *float64 `json:"stdErr"`
	Z      *float64 `json:"z"`
	P      *float64 `json:"p"`
	CILow  *float64 `json:"ciLow"`
	CIHigh *float64 `json:"ciHigh"`
}

// ModelResponse is the payload returned by /models/{id}.
type ModelResponse struct {
	ID           int               `json:"id"`
	Title        string            `json:"title"`
	Formula      string            `json:"formula"`
	CovType      string            `json:"covType"`
	N            int               `json:"nobs"`
	DFModel      int               `json:"dfModel"`
	DFResid      int               `json:"dfResid"`
	RSquared     *float64          `json:"rSquared"`
	AdjRSquared  *float64          `json:"adjRSquared"`
	FStatistic   *float64          `json:"fStatistic"`
	FPValue      *float64          `json:"fPValue"`
	Coefficients []coefficientView `json:"coefficients"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func newCorrelationsResponse(c dataset.Correlations) CorrelationsResponse {
	return CorrelationsResponse{
		Points:   correlationViews(c.Points),
		Position: correlationViews(c.Position),
	}
}

func correlationViews(in []dataset.Correlation) []correlationView {
	out := make([]correlationView, 0, len(in))
	for _, c := range in {
		out = append(out, correlationView{Column: c.Column, R: finite(c.R), N: c.N, Valid: c.Valid})
	}
	return out
}

func newModelResponse(f regression.Fitted) ModelResponse {
	resp := ModelResponse{
		ID:           f.Spec.ID,
		Title:        f.Spec.Title,
		Formula:      f.Spec.Formula,
		Coefficients: []coefficientView{},
	}
	if f.Result == nil {
		return resp
	}
	r := f.Result
	resp.CovType = r.CovType
	resp.N = r.N
	resp.DFModel = r.DFModel
	resp.DFResid = r.DFResid
	resp.RSquared = finite(r.RSquared)
	resp.AdjRSquared = finite(r.AdjRSquared)
	resp.FStatistic = finite(r.FStatistic)
	resp.FPValue = finite(r.FPValue)
	for _, c := range r.Coefficients {
		resp.Coefficients = append(resp.Coefficients, coefficientView{
			Name:   c.Name,
			Coef:   finite(c.Coef),
			StdErr: finite(c.StdErr),
			Z:      finite(c.Z),
			P:      finite(c.P),
			CILow:  finite(c.CILow),
			CIHigh: finite(c.CIHigh),
		})
	}
	return resp
}
