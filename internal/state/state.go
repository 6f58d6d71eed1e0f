// Package state holds the application state as a plain value. Transitions
// return a new AppState and never perform I/O; the terminal front end owns
// the side effects and feeds their results back in.
package state

import (
	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/session"
)

// Panel is one of the mutually exclusive screens.
type Panel int

const (
	PanelDashboard Panel = iota
	PanelList
	PanelFavorites
	PanelAdd
	PanelStatistics
	PanelSettings
)

// Panels lists every panel in navigation order.
var Panels = []Panel{PanelDashboard, PanelList, PanelFavorites, PanelAdd, PanelStatistics, PanelSettings}

func (p Panel) String() string {
	switch p {
	case PanelList:
		return "list"
	case PanelFavorites:
		return "favorites"
	case PanelAdd:
		return "add"
	case PanelStatistics:
		return "statistics"
	case PanelSettings:
		return "settings"
	default:
		return "dashboard"
	}
}

// Title is the navigation caption.
func (p Panel) Title() string {
	switch p {
	case PanelList:
		return "Vehicles"
	case PanelFavorites:
		return "Favorites"
	case PanelAdd:
		return "Add"
	case PanelStatistics:
		return "Statistics"
	case PanelSettings:
		return "Settings"
	default:
		return "Dashboard"
	}
}

// ShowsList reports whether the panel renders vehicle cards.
func (p Panel) ShowsList() bool {
	return p == PanelList || p == PanelFavorites
}

// ViewState is what the user selected. Filter and Panel are single values,
// so exactly one of each is active.
type ViewState struct {
	Filter        catalog.Filter
	Search        string
	SearchFocused bool
	Panel         Panel
}

// NoticeKind styles a notice.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient message. Seq identifies it so a stale dismiss timer
// cannot hide a newer notice.
type Notice struct {
	Text string
	Kind NoticeKind
	Seq  int
}

// Confirm is a pending destructive action awaiting an answer.
type Confirm struct {
	ID   int64
	Name string
}

// FormState mirrors the add-vehicle inputs.
type FormState struct {
	Values catalog.Form
	Focus  int
}

// AppState is everything the renderer needs.
type AppState struct {
	Session     session.Session
	SignedIn    bool
	BackendURL  string
	SessionPath string
	ActiveSince int

	View ViewState
	Form FormState

	Loading    bool
	Loaded     bool
	Model      catalog.RenderModel
	Collection []api.Vehicle
	Cursor     int

	Detail  *api.Vehicle
	Confirm *Confirm
	Notice  *Notice

	noticeSeq int
}

// New builds the start-up state on the dashboard.
func New(sess session.Session, signedIn bool, backendURL string, activeSince int) AppState {
	if activeSince == 0 {
		activeSince = catalog.DefaultActiveSince
	}
	return AppState{
		Session:     sess,
		SignedIn:    signedIn,
		BackendURL:  backendURL,
		ActiveSince: activeSince,
		View:        ViewState{Filter: catalog.FilterAll, Panel: PanelDashboard},
	}
}

// Query is the fetch the current panel needs. The dashboard and statistics
// panels always aggregate the whole collection; favorites is fixed to the
// favorite filter; everything else uses the list's filter and search.
func (s AppState) Query() catalog.Query {
	switch s.View.Panel {
	case PanelDashboard, PanelStatistics:
		return catalog.Query{Filter: catalog.FilterAll}
	case PanelFavorites:
		return catalog.Query{Filter: catalog.FilterFavorites, Search: s.View.Search}
	default:
		return catalog.Query{Filter: s.View.Filter, Search: s.View.Search}
	}
}

// SelectPanel switches panel and closes any overlay.
func (s AppState) SelectPanel(p Panel) AppState {
	s.View.Panel = p
	s.View.SearchFocused = false
	s.Detail = nil
	s.Confirm = nil
	s.Cursor = 0
	return s
}

// SetFilter changes the server-side filter.
func (s AppState) SetFilter(f catalog.Filter) AppState {
	s.View.Filter = f
	s.Cursor = 0
	return s
}

// SetSearch changes the client-side search term and re-runs it over the
// collection already held, without a fetch.
func (s AppState) SetSearch(term string) AppState {
	s.View.Search = term
	s.Cursor = 0
	if s.Loaded {
		s.Model = catalog.BuildModel(s.Collection, term)
	}
	return s
}

// FocusSearch toggles keyboard focus on the search box.
func (s AppState) FocusSearch(on bool) AppState {
	s.View.SearchFocused = on && s.View.Panel.ShowsList()
	return s
}

// BeginLoading marks a fetch as in flight.
func (s AppState) BeginLoading() AppState {
	s.Loading = true
	return s
}

// EndLoading clears the loading flag without touching the model.
func (s AppState) EndLoading() AppState {
	s.Loading = false
	return s
}

// ApplyModel installs a fresh render model and the collection it came from.
func (s AppState) ApplyModel(m catalog.RenderModel, collection []api.Vehicle) AppState {
	s.Loading = false
	s.Loaded = true
	s.Model = m
	s.Collection = collection
	s.Cursor = clamp(s.Cursor, len(m.Records))
	return s
}

// ApplyFailure clears the loading flag and raises an error notice. The last
// render model stays in place.
func (s AppState) ApplyFailure(text string) AppState {
	s.Loading = false
	return s.WithNotice(text, NoticeError)
}

// WithNotice replaces the current notice.
func (s AppState) WithNotice(text string, kind NoticeKind) AppState {
	if text == "" {
		return s
	}
	s.noticeSeq++
	s.Notice = &Notice{Text: text, Kind: kind, Seq: s.noticeSeq}
	return s
}

// DismissNotice hides the notice if it is still the one numbered seq.
func (s AppState) DismissNotice(seq int) AppState {
	if s.Notice != nil && s.Notice.Seq == seq {
		s.Notice = nil
	}
	return s
}

// MoveCursor moves the card selection by delta, clamped to the list.
func (s AppState) MoveCursor(delta int) AppState {
	s.Cursor = clamp(s.Cursor+delta, len(s.Model.Records))
	return s
}

// Selected returns the card under the cursor.
func (s AppState) Selected() (api.Vehicle, bool) {
	if !s.View.Panel.ShowsList() || s.Cursor < 0 || s.Cursor >= len(s.Model.Records) {
		return api.Vehicle{}, false
	}
	return s.Model.Records[s.Cursor], true
}

// OpenDetail shows v in the detail overlay.
func (s AppState) OpenDetail(v api.Vehicle) AppState {
	s.Detail = &v
	return s
}

// CloseDetail hides the detail overlay.
func (s AppState) CloseDetail() AppState {
	s.Detail = nil
	return s
}

// AskDelete opens the confirmation prompt. Non-admins never see the delete
// control, so the prompt is not offered to them either. This is presentation
// only; the backend decides whether a delete is allowed.
func (s AppState) AskDelete(v api.Vehicle) AppState {
	if !s.Session.IsAdmin {
		return s
	}
	s.Confirm = &Confirm{ID: v.ID, Name: v.Name}
	return s
}

// CancelConfirm drops the pending prompt.
func (s AppState) CancelConfirm() AppState {
	s.Confirm = nil
	return s
}

// SetForm mirrors the add form inputs.
func (s AppState) SetForm(values catalog.Form, focus int) AppState {
	s.Form = FormState{Values: values, Focus: focus}
	return s
}

// Logout drops to the guest identity.
func (s AppState) Logout() AppState {
	s.Session = session.Guest()
	s.SignedIn = false
	s.Confirm = nil
	if s.View.Panel == PanelAdd {
		s.View.Panel = PanelDashboard
	}
	return s
}

// Stats aggregates the cached full collection.
func (s AppState) Stats() catalog.Stats {
	return catalog.ComputeStats(s.Collection, s.ActiveSince)
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
