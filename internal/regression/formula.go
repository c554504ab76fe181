// Package regression fits ordinary least squares models with
// heteroskedasticity-robust (HC3) standard errors.
package regression

import (
	"fmt"
	"strings"
)

// Term is one right-hand side variable. Categorical terms are written C(col)
// and expand into treatment-coded dummies.
type Term struct {
	Column      string
	Categorical bool
}

// Formula is a parsed "y ~ x1 + x2 + C(group)" model description.
// An intercept is always included.
type Formula struct {
	Response string
	Terms    []Term
}

// ParseFormula parses the small formula language used by the standard models.
func ParseFormula(raw string) (Formula, error) {
	lhs, rhs, ok := strings.Cut(raw, "~")
	if !ok {
		return Formula{}, fmt.Errorf("formula %q: missing ~", raw)
	}
	f := Formula{Response: strings.TrimSpace(lhs)}
	if f.Response == "" {
		return Formula{}, fmt.Errorf("formula %q: missing response", raw)
	}

	seen := make(map[string]bool)
	for _, part := range strings.Split(rhs, "+") {
		part = strings.TrimSpace(part)
		if part == "" || part == "1" {
			continue
		}
		term := Term{Column: part}
		if strings.HasPrefix(part, "C(") && strings.HasSuffix(part, ")") {
			term = Term{Column: strings.TrimSpace(part[2 : len(part)-1]), Categorical: true}
		}
		if term.Column == "" {
			return Formula{}, fmt.Errorf("formula %q: empty term", raw)
		}
		if seen[term.Column] {
			continue
		}
		seen[term.Column] = true
		f.Terms = append(f.Terms, term)
	}
	if len(f.Terms) == 0 {
		return Formula{}, fmt.Errorf("formula %q: no regressors", raw)
	}
	return f, nil
}

// String renders the formula back in canonical spacing.
func (f Formula) String() string {
	parts := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		if t.Categorical {
			parts[i] = "C(" + t.Column + ")"
		} else {
			parts[i] = t.Column
		}
	}
	return f.Response + " ~ " + strings.Join(parts, " + ")
}
