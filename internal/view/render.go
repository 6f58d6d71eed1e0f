package view

import (
	"fmt"
	"strconv"

	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/state"
)

// FieldLabels are the add form captions, in focus order.
var FieldLabels = []string{"Name", "Category", "Model", "Year"}

var fieldPlaceholders = []string{"Truck A", "Heavy", "X100", "2021"}

// Render builds the frame for s.
func Render(s state.AppState) Tree {
	t := Tree{
		Header: renderHeader(s),
		Nav:    renderNav(s.View.Panel),
		Panel:  s.View.Panel,
		Title:  s.View.Panel.Title(),
	}
	switch s.View.Panel {
	case state.PanelList, state.PanelFavorites:
		t.List = renderList(s)
	case state.PanelAdd:
		t.Form = renderForm(s)
	case state.PanelStatistics:
		t.Statistics = renderStatistics(s)
	case state.PanelSettings:
		t.Settings = renderSettings(s)
	default:
		t.Dashboard = renderDashboard(s)
	}
	if s.Detail != nil {
		t.Detail = renderDetail(*s.Detail)
	}
	if s.Confirm != nil {
		t.Confirm = &Confirm{
			ID:      s.Confirm.ID,
			Title:   "Delete vehicle",
			Message: fmt.Sprintf("Delete %q? This cannot be undone.", s.Confirm.Name),
		}
	}
	if s.Notice != nil {
		t.Notice = &Notice{Text: s.Notice.Text, Error: s.Notice.Kind == state.NoticeError}
	}
	return t
}

func renderHeader(s state.AppState) Header {
	h := Header{Greeting: s.Session.DisplayName, Backend: s.BackendURL}
	if s.Session.IsAdmin {
		h.Greeting = fmt.Sprintf("Welcome, %s! (Admin)", s.Session.DisplayName)
		h.Admin = true
		h.ShowLogout = true
	}
	return h
}

func renderNav(active state.Panel) []NavItem {
	items := make([]NavItem, 0, len(state.Panels))
	for _, p := range state.Panels {
		items = append(items, NavItem{Panel: p, Label: p.Title(), Active: p == active})
	}
	return items
}

func statCards(st catalog.Stats, activeSince int) []StatCard {
	return []StatCard{
		{Label: "Total vehicles", Value: st.Total},
		{Label: "Favorites", Value: st.Favorites},
		{Label: fmt.Sprintf("Active (%d+)", activeSince), Value: st.Active},
	}
}

func renderDashboard(s state.AppState) *Dashboard {
	return &Dashboard{
		Cards:   statCards(s.Stats(), s.ActiveSince),
		Loading: s.Loading,
	}
}

func renderList(s state.AppState) *List {
	l := &List{
		Search:        s.View.Search,
		SearchFocused: s.View.SearchFocused,
		Loading:       s.Loading,
	}
	if s.View.Panel == state.PanelList {
		for _, f := range catalog.Filters {
			l.Filters = append(l.Filters, FilterButton{Filter: f, Label: f.Label(), Active: f == s.View.Filter})
		}
	}
	if !s.Loaded {
		if !s.Loading {
			l.Empty = &Empty{Reason: "Vehicles could not be loaded."}
		}
		return l
	}
	if e := s.Model.Empty; e != nil {
		l.Empty = &Empty{Reason: e.Reason}
		if e.Suggestion != "" {
			l.Empty.Suggestion = fmt.Sprintf("Did you mean %q?", e.Suggestion)
		}
		return l
	}
	l.Cards = make([]Card, 0, len(s.Model.Records))
	for i, v := range s.Model.Records {
		l.Cards = append(l.Cards, renderCard(v, i == s.Cursor, s.Session.IsAdmin))
	}
	l.Summary = summary(len(l.Cards))
	return l
}

func summary(n int) string {
	if n == 1 {
		return "1 vehicle"
	}
	return fmt.Sprintf("%d vehicles", n)
}

func renderCard(v api.Vehicle, selected, admin bool) Card {
	c := Card{
		ID:       v.ID,
		Title:    v.Name,
		Category: v.Category,
		Model:    v.Model,
		Year:     v.Year,
		Favorite: v.Favorite,
		Selected: selected,
	}
	fav := "Favorite"
	if v.Favorite {
		fav = "Unfavorite"
	}
	c.Actions = []Action{
		{Kind: ActionDetail, Label: "Details"},
		{Kind: ActionFavorite, Label: fav},
	}
	if admin {
		c.Actions = append(c.Actions, Action{Kind: ActionDelete, Label: "Delete"})
	}
	return c
}

func renderForm(s state.AppState) *Form {
	vals := []string{s.Form.Values.Name, s.Form.Values.Category, s.Form.Values.Model, s.Form.Values.Year}
	f := &Form{CanSubmit: s.Session.IsAdmin}
	for i, label := range FieldLabels {
		f.Fields = append(f.Fields, Field{
			Label:       label,
			Value:       vals[i],
			Placeholder: fieldPlaceholders[i],
			Focused:     i == s.Form.Focus,
		})
	}
	if f.CanSubmit {
		f.Hint = fmt.Sprintf("All fields are required. Year must be between %d and %d.", catalog.MinYear, catalog.MaxYear)
	} else {
		f.Hint = "Only administrators can add vehicles."
	}
	return f
}

func renderStatistics(s state.AppState) *Statistics {
	st := &Statistics{
		Cards:   statCards(s.Stats(), s.ActiveSince),
		Loading: s.Loading,
	}
	if len(s.Collection) == 0 {
		if !s.Loading {
			st.Empty = &Empty{Reason: "No vehicles added yet."}
		}
		return st
	}
	b := catalog.ComputeBreakdown(s.Collection)
	st.Categories = b.ByCategory
	st.Decades = b.ByDecade
	if b.Oldest == b.Newest {
		st.Range = strconv.Itoa(b.Oldest)
	} else {
		st.Range = fmt.Sprintf("%d-%d", b.Oldest, b.Newest)
	}
	return st
}

func renderSettings(s state.AppState) *Settings {
	role := "Guest"
	switch {
	case s.Session.IsAdmin:
		role = "Administrator"
	case s.SignedIn:
		role = "User"
	}
	path := s.SessionPath
	if path == "" {
		path = "(default)"
	}
	return &Settings{
		Rows: []Row{
			{Label: "Signed in as", Value: s.Session.DisplayName},
			{Label: "Role", Value: role},
			{Label: "Backend", Value: s.BackendURL},
			{Label: "Session file", Value: path},
			{Label: "Active since", Value: strconv.Itoa(s.ActiveSince)},
		},
		CanLogout: s.SignedIn,
	}
}

func renderDetail(v api.Vehicle) *Detail {
	fav := "No"
	if v.Favorite {
		fav = "Yes"
	}
	return &Detail{
		ID:    v.ID,
		Title: v.Name,
		Rows: []Row{
			{Label: "ID", Value: strconv.FormatInt(v.ID, 10)},
			{Label: "Name", Value: v.Name},
			{Label: "Category", Value: v.Category},
			{Label: "Model", Value: v.Model},
			{Label: "Year", Value: strconv.Itoa(v.Year)},
			{Label: "Favorite", Value: fav},
		},
	}
}
