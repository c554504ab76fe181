// Package season parses and converts Premier League season labels.
//
// Two spellings circulate in the data: the workbook's short form ("2013-14",
// sometimes typed "13-14" or with an en-dash) and FBref's long form
// ("2013-2014"). Short is canonical inside the dataset.
package season

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	twoDigitPattern = regexp.MustCompile(`^(\d{2})-(\d{2})$`)
	shortPattern    = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	longPattern     = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
)

// ErrLongFormat is returned when a YYYY-YYYY season is required.
var ErrLongFormat = errors.New("season must be in YYYY-YYYY format, for example 2013-2014")

// Normalize tidies a raw sheet or cell label: YY-YY becomes 20YY-YY and
// YYYY-YY is kept. Anything else, long form included, is returned trimmed with
// en-dashes replaced.
func Normalize(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "–", "-")
	if m := twoDigitPattern.FindStringSubmatch(s); m != nil {
		return "20" + m[1] + "-" + m[2]
	}
	return s
}

// Canonical is Normalize plus long-to-short conversion, for labels that may
// arrive in FBref's YYYY-YYYY spelling. Long labels that do not span
// consecutive years are returned as Normalize leaves them.
func Canonical(raw string) string {
	s := Normalize(raw)
	if short, err := Short(s); err == nil {
		return short
	}
	return s
}

// IsCanonical reports whether s is already in YYYY-YY form.
func IsCanonical(s string) bool {
	return shortPattern.MatchString(s)
}

// Slug validates a YYYY-YYYY season spanning consecutive years and returns it
// trimmed.
func Slug(long string) (string, error) {
	s := strings.TrimSpace(long)
	m := longPattern.FindStringSubmatch(s)
	if m == nil {
		return "", ErrLongFormat
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return "", fmt.Errorf("%w: %s does not span consecutive years", ErrLongFormat, s)
	}
	return s, nil
}

// Range builds the inclusive list of YYYY-YYYY seasons from start to end.
func Range(start, end string) ([]string, error) {
	first, err := Slug(start)
	if err != nil {
		return nil, err
	}
	last, err := Slug(end)
	if err != nil {
		return nil, err
	}
	startYear, _ := strconv.Atoi(first[:4])
	endYear, _ := strconv.Atoi(last[:4])
	if endYear < startYear {
		return nil, fmt.Errorf("end season %s must not be before start season %s", end, start)
	}

	seasons := make([]string, 0, endYear-startYear+1)
	for y := startYear; y <= endYear; y++ {
		seasons = append(seasons, fmt.Sprintf("%d-%d", y, y+1))
	}
	return seasons, nil
}

// Long converts YYYY-YY (or YY-YY) into YYYY-YYYY. Valid long input passes
// through.
func Long(s string) (string, error) {
	s = Normalize(s)
	if slug, err := Slug(s); err == nil {
		return slug, nil
	}
	m := shortPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unrecognised season %q", s)
	}
	year, _ := strconv.Atoi(m[1])
	if fmt.Sprintf("%02d", (year+1)%100) != m[2] {
		return "", fmt.Errorf("season %q does not span consecutive years", s)
	}
	return fmt.Sprintf("%d-%d", year, year+1), nil
}

// Short converts YYYY-YYYY into the canonical YYYY-YY form.
func Short(long string) (string, error) {
	slug, err := Slug(long)
	if err != nil {
		return "", err
	}
	return slug[:4] + "-" + slug[7:], nil
}

// FileStem turns 2013-2014 into 2013_2014 for file names.
func FileStem(long string) string {
	return strings.ReplaceAll(long, "-", "_")
}
