package ingest

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// NormalizeHeader trims header cells, suffixes repeated names (X, X.1, X.2)
// and maps the club, promoted and transfer spend spellings used across sheets
// onto canonical names. Only the first matching header is renamed, and never
// onto a name already present.
func NormalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		header[i] = h
	}
	dedupe(header)

	if !contains(header, clubs.ColClub) {
		renameFirst(header, clubs.ColClub, func(l string) bool {
			return strings.Contains(l, "club")
		})
	}
	renameFirst(header, clubs.ColPromoted, func(l string) bool {
		return strings.Contains(l, "promot")
	})
	renameFirst(header, clubs.ColTransferSpend, func(l string) bool {
		return strings.Contains(l, "transfer") &&
			(strings.Contains(l, "spend") || strings.Contains(l, "expend"))
	})
	return header
}

// dedupe renames repeats in place. A generated name that collides with a later
// or earlier header is bumped again, so every column stays addressable.
func dedupe(header []string) {
	counts := make(map[string]int, len(header))
	for i, h := range header {
		n := counts[h]
		for n > 0 {
			counts[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
			n = counts[h]
		}
		header[i] = h
		counts[h] = n + 1
	}
}

func renameFirst(header []string, target string, match func(lower string) bool) {
	for i, h := range header {
		if !match(strings.ToLower(h)) {
			continue
		}
		if h != target && !contains(header, target) {
			header[i] = target
		}
		return
	}
}

func contains(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
