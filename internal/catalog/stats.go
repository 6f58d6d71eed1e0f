package catalog

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jask/vehicledesk/internal/api"
)

// DefaultActiveSince is the first model year counted as active.
const DefaultActiveSince = 2020

// Stats are the dashboard aggregates.
type Stats struct {
	Total     int
	Favorites int
	Active    int
}

// ComputeStats counts records, favorites, and records with year >= activeSince.
func ComputeStats(records []api.Vehicle, activeSince int) Stats {
	s := Stats{Total: len(records)}
	for _, v := range records {
		if v.Favorite {
			s.Favorites++
		}
		if v.Year >= activeSince {
			s.Active++
		}
	}
	return s
}

// Bucket is one labelled count.
type Bucket struct {
	Label string
	Count int
}

// Breakdown groups a collection for the statistics panel.
type Breakdown struct {
	ByCategory []Bucket
	ByDecade   []Bucket
	Oldest     int
	Newest     int
}

// ComputeBreakdown groups records by category (largest first, then by name)
// and by decade (oldest first). Category names are grouped case-insensitively
// under the first spelling seen.
func ComputeBreakdown(records []api.Vehicle) Breakdown {
	var b Breakdown
	if len(records) == 0 {
		return b
	}
	catIdx := map[string]int{}
	perDecade := map[int]int{}
	b.Oldest, b.Newest = records[0].Year, records[0].Year
	for _, v := range records {
		key := strings.ToLower(strings.TrimSpace(v.Category))
		if i, ok := catIdx[key]; ok {
			b.ByCategory[i].Count++
		} else {
			catIdx[key] = len(b.ByCategory)
			label := strings.TrimSpace(v.Category)
			if label == "" {
				label = "(none)"
			}
			b.ByCategory = append(b.ByCategory, Bucket{Label: label, Count: 1})
		}

		perDecade[v.Year-v.Year%10]++

		b.Oldest = min(b.Oldest, v.Year)
		b.Newest = max(b.Newest, v.Year)
	}

	slices.SortStableFunc(b.ByCategory, func(x, y Bucket) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(x.Label), strings.ToLower(y.Label))
	})
	// ordered by decade value; "990s" comes before "2020s"
	for _, dec := range slices.Sorted(maps.Keys(perDecade)) {
		b.ByDecade = append(b.ByDecade, Bucket{Label: fmt.Sprintf("%ds", dec), Count: perDecade[dec]})
	}
	return b
}
