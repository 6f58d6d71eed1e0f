package catalog

import (
	"strconv"
	"strings"
	"testing"

	"github.com/jask/vehicledesk/internal/api"
)

var fleet = []api.Vehicle{
	{ID: 1, Name: "Snow Plough", Category: "Road Maintenance", Model: "KKA-2022", Year: 2022},
	{ID: 2, Name: "Gritter", Category: "Road Maintenance", Model: "TA-2021", Year: 2021, Favorite: true},
	{ID: 3, Name: "Refuse Truck", Category: "Cleaning", Model: "CK-2020", Year: 2020},
	{ID: 4, Name: "Grader", Category: "Earthworks", Model: "G-14", Year: 1987},
}

func ids(vs []api.Vehicle) []int64 {
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		term string
		want []int64
	}{
		{term: "", want: []int64{1, 2, 3, 4}},
		{term: "   ", want: []int64{1, 2, 3, 4}},
		{term: "plough", want: []int64{1}},
		{term: "ROAD", want: []int64{1, 2}},
		{term: "ck-", want: []int64{3}},
		{term: "198", want: []int64{4}},
		{term: "202", want: []int64{1, 2, 3}},
		{term: "gr", want: []int64{2, 4}},
		{term: "bulldozer", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := ids(Search(fleet, tt.term))
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.term, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Search(%q) = %v, want %v", tt.term, got, tt.want)
				}
			}
		})
	}
}

// Membership must be exactly "some field or the year contains the term".
func TestSearchMembershipProperty(t *testing.T) {
	terms := []string{"a", "r", "Road", "20", "1", "k", "truck", "x", "-", "MAINT", " a", " ", "a "}
	for _, term := range terms {
		needle := strings.ToLower(term)
		kept := map[int64]bool{}
		for _, v := range Search(fleet, term) {
			kept[v.ID] = true
		}
		for _, v := range fleet {
			want := strings.Contains(strings.ToLower(v.Name), needle) ||
				strings.Contains(strings.ToLower(v.Category), needle) ||
				strings.Contains(strings.ToLower(v.Model), needle) ||
				strings.Contains(strconv.Itoa(v.Year), needle)
			if kept[v.ID] != want {
				t.Fatalf("term %q record %d: kept=%v want=%v", term, v.ID, kept[v.ID], want)
			}
		}
	}
}

func TestSearchKeepsSurroundingSpaces(t *testing.T) {
	cab := []api.Vehicle{{ID: 1, Name: "Cab", Category: "Light", Model: "C1", Year: 2020}}
	if got := Search(cab, " a"); len(got) != 0 {
		t.Fatalf("Search(%q) = %v, want no match", " a", ids(got))
	}
	if got := Search(cab, " "); len(got) != 0 {
		t.Fatalf("Search(%q) = %v, want no match", " ", ids(got))
	}
	if got := Search(cab, ""); len(got) != 1 {
		t.Fatalf("Search(\"\") = %v, want every record", ids(got))
	}
}

func TestBuildModelBlankTermIsNoResult(t *testing.T) {
	cab := []api.Vehicle{{ID: 1, Name: "Cab", Category: "Light", Model: "C1", Year: 2020}}
	m := BuildModel(cab, " ")
	if len(m.Records) != 0 || m.Empty == nil {
		t.Fatalf("BuildModel(%q) = %+v, want empty model", " ", m)
	}
	if m.Empty.Term != " " || m.Empty.Reason != `No results for " ".` {
		t.Fatalf("empty state = %+v", *m.Empty)
	}
}

func TestSearchPreservesServerOrder(t *testing.T) {
	reversed := []api.Vehicle{fleet[3], fleet[2], fleet[1], fleet[0]}
	got := ids(Search(reversed, "r"))
	want := []int64{4, 3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	for _, f := range Filters {
		got, ok := ParseFilter(f.String())
		if !ok || got != f {
			t.Fatalf("ParseFilter(%q) = %v,%v", f.String(), got, ok)
		}
	}
	if _, ok := ParseFilter("trucks"); ok {
		t.Fatalf("expected unknown filter to be rejected")
	}
}

func TestFilterMapsToServerConstraint(t *testing.T) {
	if FilterAll.favorite() != api.FavoriteAny {
		t.Fatalf("all should add no constraint")
	}
	if FilterFavorites.favorite() != api.FavoriteOnly {
		t.Fatalf("favorites should ask favorite=true")
	}
	if FilterNormal.favorite() != api.FavoriteExcluded {
		t.Fatalf("normal should ask favorite=false")
	}
}
