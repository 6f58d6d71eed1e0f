package state

import (
	"testing"

	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/session"
)

var records = []api.Vehicle{
	{ID: 1, Name: "A", Year: 2021, Favorite: true},
	{ID: 2, Name: "B", Year: 2010},
	{ID: 3, Name: "C", Year: 2023},
}

func loaded(s AppState) AppState {
	return s.ApplyModel(catalog.BuildModel(records, ""), records)
}

func TestQueryDependsOnPanel(t *testing.T) {
	s := New(session.Guest(), false, "http://x", 0).SetFilter(catalog.FilterNormal).SetSearch("truck")

	tests := []struct {
		panel Panel
		want  catalog.Query
	}{
		{PanelDashboard, catalog.Query{Filter: catalog.FilterAll}},
		{PanelStatistics, catalog.Query{Filter: catalog.FilterAll}},
		{PanelFavorites, catalog.Query{Filter: catalog.FilterFavorites, Search: "truck"}},
		{PanelList, catalog.Query{Filter: catalog.FilterNormal, Search: "truck"}},
		{PanelAdd, catalog.Query{Filter: catalog.FilterNormal, Search: "truck"}},
	}
	for _, tt := range tests {
		if got := s.SelectPanel(tt.panel).Query(); got != tt.want {
			t.Fatalf("%s: Query() = %+v, want %+v", tt.panel, got, tt.want)
		}
	}
}

func TestSelectPanelClosesOverlays(t *testing.T) {
	s := loaded(New(session.Session{DisplayName: "root", IsAdmin: true}, true, "", 0)).SelectPanel(PanelList)
	s = s.OpenDetail(records[0]).AskDelete(records[1]).MoveCursor(2)
	if s.Detail == nil || s.Confirm == nil || s.Cursor != 2 {
		t.Fatalf("setup failed: %+v", s)
	}
	s = s.SelectPanel(PanelFavorites)
	if s.Detail != nil || s.Confirm != nil || s.Cursor != 0 {
		t.Fatalf("overlays should close on panel switch")
	}
	if s.View.Panel != PanelFavorites {
		t.Fatalf("panel = %s", s.View.Panel)
	}
}

func TestAskDeleteIgnoredForNonAdmin(t *testing.T) {
	s := loaded(New(session.Guest(), false, "", 0))
	if s.AskDelete(records[0]).Confirm != nil {
		t.Fatalf("guest should not get a delete prompt")
	}
}

func TestApplyFailureKeepsModel(t *testing.T) {
	s := loaded(New(session.Guest(), false, "", 0)).BeginLoading()
	if !s.Loading {
		t.Fatalf("expected loading")
	}
	s = s.ApplyFailure("boom")
	if s.Loading {
		t.Fatalf("loading should clear on failure")
	}
	if len(s.Model.Records) != 3 {
		t.Fatalf("last good model should stay, got %d records", len(s.Model.Records))
	}
	if s.Notice == nil || s.Notice.Kind != NoticeError || s.Notice.Text != "boom" {
		t.Fatalf("expected error notice, got %+v", s.Notice)
	}
}

func TestDismissNoticeIgnoresStaleSeq(t *testing.T) {
	s := New(session.Guest(), false, "", 0).WithNotice("first", NoticeSuccess)
	first := s.Notice.Seq
	s = s.WithNotice("second", NoticeSuccess)
	s = s.DismissNotice(first)
	if s.Notice == nil || s.Notice.Text != "second" {
		t.Fatalf("stale dismiss hid the newer notice")
	}
	s = s.DismissNotice(s.Notice.Seq)
	if s.Notice != nil {
		t.Fatalf("expected notice dismissed")
	}
	if s.WithNotice("", NoticeError).Notice != nil {
		t.Fatalf("empty text should not raise a notice")
	}
}

func TestCursorClamps(t *testing.T) {
	s := loaded(New(session.Guest(), false, "", 0)).SelectPanel(PanelList)
	s = s.MoveCursor(-5)
	if s.Cursor != 0 {
		t.Fatalf("cursor = %d", s.Cursor)
	}
	s = s.MoveCursor(10)
	if s.Cursor != 2 {
		t.Fatalf("cursor = %d", s.Cursor)
	}
	v, ok := s.Selected()
	if !ok || v.ID != 3 {
		t.Fatalf("selected = %+v, %v", v, ok)
	}
	s = s.ApplyModel(catalog.BuildModel(records[:1], ""), records[:1])
	if s.Cursor != 0 {
		t.Fatalf("cursor should clamp to shorter list, got %d", s.Cursor)
	}
	if _, ok := s.SelectPanel(PanelDashboard).Selected(); ok {
		t.Fatalf("dashboard has no selection")
	}
}

func TestStatsUseCollection(t *testing.T) {
	s := New(session.Guest(), false, "", 0)
	s = s.ApplyModel(catalog.BuildModel(records, "zzz"), records)
	got := s.Stats()
	if got.Total != 3 || got.Favorites != 1 || got.Active != 2 {
		t.Fatalf("stats = %+v", got)
	}
}

func TestLogoutLeavesAddPanel(t *testing.T) {
	s := New(session.Session{DisplayName: "root", IsAdmin: true}, true, "", 0).SelectPanel(PanelAdd)
	s = s.Logout()
	if s.Session.IsAdmin || s.SignedIn {
		t.Fatalf("expected guest after logout")
	}
	if s.View.Panel != PanelDashboard {
		t.Fatalf("panel = %s", s.View.Panel)
	}
}

func TestFocusSearchOnlyOnListPanels(t *testing.T) {
	s := New(session.Guest(), false, "", 0)
	if s.FocusSearch(true).View.SearchFocused {
		t.Fatalf("dashboard has no search box")
	}
	if !s.SelectPanel(PanelList).FocusSearch(true).View.SearchFocused {
		t.Fatalf("list should focus search")
	}
}

func TestSetSearchRebuildsFromCollection(t *testing.T) {
	s := loaded(New(session.Guest(), false, "", 0)).SelectPanel(PanelList).BeginLoading()
	s = s.SetSearch("b")
	if len(s.Model.Records) != 1 || s.Model.Records[0].ID != 2 {
		t.Fatalf("search b = %+v", s.Model.Records)
	}
	if !s.Loading {
		t.Fatalf("search must not end an in-flight load")
	}
	s = s.SetSearch("nothing")
	if s.Model.Empty == nil {
		t.Fatalf("expected empty state")
	}
	if s.EndLoading().Loading {
		t.Fatalf("EndLoading left loading set")
	}
}
