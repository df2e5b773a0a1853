// Package derive computes the filtered view and its statistics.
package derive

import (
	"strings"

	"github.com/verte-zerg/uelist/internal/model"
)

// Matches reports whether ue passes the criteria: the lowered query is a
// substring of the lowered title or code, and the credits reach MinEcts.
func Matches(ue model.Ue, c model.Criteria) bool {
	return matchesQuery(ue, strings.ToLower(c.Query)) && ue.Ects >= c.MinEcts
}

func matchesQuery(ue model.Ue, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ue.Title), lowered) ||
		strings.Contains(strings.ToLower(ue.Code), lowered)
}

// Filter returns the matching records in their original order.
func Filter(records []model.Ue, c model.Criteria) []model.Ue {
	lowered := strings.ToLower(c.Query)
	out := make([]model.Ue, 0, len(records))
	for _, ue := range records {
		if ue.Ects < c.MinEcts {
			continue
		}
		if !matchesQuery(ue, lowered) {
			continue
		}
		out = append(out, ue)
	}
	return out
}

// IDs returns the ids of records in order.
func IDs(records []model.Ue) []int {
	ids := make([]int, len(records))
	for i, ue := range records {
		ids[i] = ue.ID
	}
	return ids
}
