package regression

import (
	"fmt"
	"math"
	"strings"
)

const summaryWidth = 78

// Summary renders the fit as a fixed-width text table.
func (r *Result) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", summaryWidth)
	thin := strings.Repeat("-", summaryWidth)

	title := "OLS Regression Results"
	pad := (summaryWidth - len(title)) / 2
	b.WriteString(strings.Repeat(" ", pad) + title + "\n")
	b.WriteString(rule + "\n")
	pair(&b, "Dep. Variable:", r.Response, "R-squared:", fmtStat(r.RSquared, 3))
	pair(&b, "Model:", "OLS", "Adj. R-squared:", fmtStat(r.AdjRSquared, 3))
	pair(&b, "No. Observations:", fmt.Sprint(r.N), "F-statistic:", fmtStat(r.FStatistic, 2))
	pair(&b, "Df Residuals:", fmt.Sprint(r.DFResid), "Prob (F-statistic):", fmtP(r.FPValue))
	pair(&b, "Df Model:", fmt.Sprint(r.DFModel), "Covariance Type:", r.CovType)
	b.WriteString(rule + "\n")

	nameWidth := 16
	for _, c := range r.Coefficients {
		if len(c.Name) > nameWidth {
			nameWidth = len(c.Name)
		}
	}
	fmt.Fprintf(&b, "%-*s %10s %10s %10s %10s %10s %10s\n", nameWidth, "", "coef", "std err", "z", "P>|z|", "[0.025", "0.975]")
	b.WriteString(thin + "\n")
	for _, c := range r.Coefficients {
		fmt.Fprintf(&b, "%-*s %10.4f %10.3f %10.3f %10.3f %10.3f %10.3f\n",
			nameWidth, c.Name, c.Coef, c.StdErr, c.Z, c.P, c.CILow, c.CIHigh)
	}
	b.WriteString(rule + "\n")
	b.WriteString("Notes:\n[1] Standard Errors are heteroscedasticity robust (" + r.CovType + ")\n")
	return b.String()
}

func pair(b *strings.Builder, lk, lv, rk, rv string) {
	fmt.Fprintf(b, "%-20s%18s   %-20s%17s\n", lk, lv, rk, rv)
}

func fmtStat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func fmtP(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.3g", v)
}
