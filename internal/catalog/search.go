// Package catalog keeps the displayed vehicle list in step with the backend.
// Lists are always rebuilt from a fresh fetch; actions mutate the backend and
// then refetch instead of patching local state.
package catalog

import (
	"strconv"
	"strings"

	"github.com/jask/vehicledesk/internal/api"
)

// Filter is the server-side narrowing applied to a list fetch.
type Filter int

const (
	FilterAll Filter = iota
	FilterFavorites
	FilterNormal
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterFavorites, FilterNormal}

func (f Filter) String() string {
	switch f {
	case FilterFavorites:
		return "favorites"
	case FilterNormal:
		return "normal"
	default:
		return "all"
	}
}

// Label is the button caption for f.
func (f Filter) Label() string {
	switch f {
	case FilterFavorites:
		return "Favorites"
	case FilterNormal:
		return "Normal"
	default:
		return "All"
	}
}

// ParseFilter accepts the String() forms. Unknown input yields FilterAll and
// false.
func ParseFilter(s string) (Filter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, true
	case "favorites", "favorite", "fav":
		return FilterFavorites, true
	case "normal", "non-favorite", "nonfavorite":
		return FilterNormal, true
	}
	return FilterAll, false
}

func (f Filter) favorite() api.FavoriteFilter {
	switch f {
	case FilterFavorites:
		return api.FavoriteOnly
	case FilterNormal:
		return api.FavoriteExcluded
	default:
		return api.FavoriteAny
	}
}

// Search keeps records whose name, category or model contains term
// (case-insensitive) or whose year contains it as a decimal string. The term
// is matched as typed, surrounding spaces included; only an empty term keeps
// everything. Order is preserved.
func Search(records []api.Vehicle, term string) []api.Vehicle {
	needle := strings.ToLower(term)
	out := make([]api.Vehicle, 0, len(records))
	for _, v := range records {
		if needle == "" || Matches(v, needle) {
			out = append(out, v)
		}
	}
	return out
}

// Matches reports whether v matches an already lower-cased needle.
func Matches(v api.Vehicle, needle string) bool {
	return strings.Contains(strings.ToLower(v.Name), needle) ||
		strings.Contains(strings.ToLower(v.Category), needle) ||
		strings.Contains(strings.ToLower(v.Model), needle) ||
		strings.Contains(strconv.Itoa(v.Year), needle)
}
