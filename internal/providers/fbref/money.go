package fbref

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	millionsPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)[mM]$`)
	plainPattern    = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	moneyStripper   = strings.NewReplacer("£", "", ",", "", " ", "", " ", "")
)

// ParseMoney converts "£113,900,000" or "£113.9m" into GBP. Alternative
// currencies in parentheses, as in "£ 113,900,000 (€ 130,000,000)", are ignored.
func ParseMoney(raw string) (float64, bool) {
	s := raw
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	s = moneyStripper.Replace(strings.TrimSpace(s))
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return 0, false
	}

	if m := millionsPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return v * 1_000_000, true
	}
	if plainPattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
