package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/vehicledesk/internal/api"
)

// Suggest returns the record name, category or model closest to term when
// it is within a third of the term's length (at least two edits). It returns
// "" when nothing is close enough or the term is blank.
func Suggest(records []api.Vehicle, term string) string {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return ""
	}
	limit := max(2, len([]rune(needle))/3)
	best, bestDist := "", limit+1
	for _, v := range records {
		for _, cand := range []string{v.Name, v.Category, v.Model} {
			cand = strings.TrimSpace(cand)
			if cand == "" {
				continue
			}
			d := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
			if d < bestDist {
				best, bestDist = cand, d
			}
		}
	}
	if bestDist > limit {
		return ""
	}
	return best
}
