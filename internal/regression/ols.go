package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CovHC3 is the only covariance estimator produced.
const CovHC3 = "HC3"

var (
	// ErrInsufficientObservations means there are no more rows than parameters.
	ErrInsufficientObservations = errors.New("insufficient observations")
	// ErrSingularDesign means X'X could not be factorised.
	ErrSingularDesign = errors.New("singular design matrix")
	// ErrFullLeverage means an observation has leverage 1 and HC3 is undefined.
	ErrFullLeverage = errors.New("observation with full leverage")
)

// leverageTolerance guards the HC3 (1-h)^2 divisor.
const leverageTolerance = 1e-10

// Coefficient is one estimated parameter with robust inference.
type Coefficient struct {
	Name   string  `json:"name"`
	Coef   float64 `json:"coef"`
	StdErr float64 `json:"stdErr"`
	Z      float64 `json:"z"`
	P      float64 `json:"p"`
	CILow  float64 `json:"ciLow"`
	CIHigh float64 `json:"ciHigh"`
}

// Result is a fitted OLS model.
type Result struct {
	Formula      string        `json:"formula"`
	Response     string        `json:"response"`
	CovType      string        `json:"covType"`
	N            int           `json:"nobs"`
	DFModel      int           `json:"dfModel"`
	DFResid      int           `json:"dfResid"`
	RSquared     float64       `json:"rSquared"`
	AdjRSquared  float64       `json:"adjRSquared"`
	FStatistic   float64       `json:"fStatistic"`
	FPValue      float64       `json:"fPValue"`
	Coefficients []Coefficient `json:"coefficients"`
}

// Coefficient returns the named coefficient.
func (r *Result) Coefficient(name string) (Coefficient, bool) {
	for _, c := range r.Coefficients {
		if c.Name == name {
			return c, true
		}
	}
	return Coefficient{}, false
}

// Fit estimates beta = (X'X)^-1 X'y and the HC3 sandwich covariance
// (X'X)^-1 X' diag(e_i^2 / (1-h_ii)^2) X (X'X)^-1.
func Fit(d *Design) (*Result, error) {
	n, p := d.X.Dims()
	if n <= p {
		return nil, fmt.Errorf("%w: %d rows for %d parameters", ErrInsufficientObservations, n, p)
	}

	xtx := mat.NewSymDense(p, nil)
	xtx.SymOuterK(1, d.X.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(xtx); !ok {
		return nil, ErrSingularDesign
	}
	var bread mat.SymDense
	if err := chol.InverseTo(&bread); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	var xty, beta mat.VecDense
	xty.MulVec(d.X.T(), d.Y)
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(d.X, &beta)
	resid.SubVec(d.Y, &fitted)

	// Scale each row of X by e_i/(1-h_ii) so that meat = Xs'Xs.
	scaled := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		row := d.X.RawRowView(i)
		xi := mat.NewVecDense(p, row)
		var tmp mat.VecDense
		tmp.MulVec(&bread, xi)
		h := mat.Dot(xi, &tmp)
		if 1-h < leverageTolerance {
			return nil, fmt.Errorf("%w: row %d", ErrFullLeverage, d.Rows[i])
		}
		w := resid.AtVec(i) / (1 - h)
		for j := 0; j < p; j++ {
			scaled.Set(i, j, row[j]*w)
		}
	}
	var meat, left, cov mat.Dense
	meat.Mul(scaled.T(), scaled)
	left.Mul(&bread, &meat)
	cov.Mul(&left, &bread)

	res := &Result{
		Response: d.Response,
		CovType:  CovHC3,
		N:        n,
		DFModel:  p - 1,
		DFResid:  n - p,
	}
	res.RSquared, res.AdjRSquared = rSquared(d.Y, &resid, n, p)
	res.FStatistic, res.FPValue = waldF(&beta, &cov, res.DFResid)

	normal := distuv.UnitNormal
	crit := normal.Quantile(0.975)
	for j := 0; j < p; j++ {
		b := beta.AtVec(j)
		se := math.Sqrt(cov.At(j, j))
		z := b / se
		res.Coefficients = append(res.Coefficients, Coefficient{
			Name:   d.Names[j],
			Coef:   b,
			StdErr: se,
			Z:      z,
			P:      2 * normal.Survival(math.Abs(z)),
			CILow:  b - crit*se,
			CIHigh: b + crit*se,
		})
	}
	return res, nil
}

func rSquared(y, resid *mat.VecDense, n, p int) (float64, float64) {
	mean := 0.0
	for i := 0; i < n; i++ {
		mean += y.AtVec(i)
	}
	mean /= float64(n)

	var ssr, sst float64
	for i := 0; i < n; i++ {
		e := resid.AtVec(i)
		ssr += e * e
		dev := y.AtVec(i) - mean
		sst += dev * dev
	}
	if sst == 0 {
		return math.NaN(), math.NaN()
	}
	r2 := 1 - ssr/sst
	adj := 1 - (1-r2)*float64(n-1)/float64(n-p)
	return r2, adj
}

// waldF tests that every non-intercept coefficient is zero using the robust
// covariance. It returns NaN when the restricted covariance is singular.
func waldF(beta *mat.VecDense, cov *mat.Dense, dfResid int) (float64, float64) {
	p := beta.Len()
	q := p - 1
	if q < 1 {
		return math.NaN(), math.NaN()
	}
	b := mat.NewVecDense(q, nil)
	for j := 0; j < q; j++ {
		b.SetVec(j, beta.AtVec(j+1))
	}
	sub := mat.DenseCopyOf(cov.Slice(1, p, 1, p))

	var sol mat.VecDense
	if err := sol.SolveVec(sub, b); err != nil {
		return math.NaN(), math.NaN()
	}
	f := mat.Dot(b, &sol) / float64(q)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return math.NaN(), math.NaN()
	}
	dist := distuv.F{D1: float64(q), D2: float64(dfResid)}
	return f, dist.Survival(f)
}
