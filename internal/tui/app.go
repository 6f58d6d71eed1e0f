// Package tui is the interactive terminal front end. It keeps a state.AppState,
// turns key presses into transitions and backend commands, and draws the
// view.Tree rendered from that state.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/config"
	"github.com/jask/vehicledesk/internal/session"
	"github.com/jask/vehicledesk/internal/state"
	"github.com/jask/vehicledesk/internal/view"
)

// Backend is everything the console asks of the vehicle service.
type Backend interface {
	catalog.Backend
	Logout(ctx context.Context) error
}

// Options carries the start-up identity and configuration.
type Options struct {
	Config   config.Config
	Session  session.Session
	SignedIn bool
	Sessions *session.Store
	// Save persists settings edits; nil means config.Save.
	Save func(config.Config) error
}

// App ties together the state, the backend and the widgets.
type App struct {
	ctx      context.Context
	backend  Backend
	list     *catalog.Controller
	actions  *catalog.Dispatcher
	sessions *session.Store
	cfg      config.Config
	save     func(config.Config) error

	st   state.AppState
	mode mode

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	search   textinput.Model
	fields   []textinput.Model
	urlInput textinput.Model

	width  int
	height int
}

func New(ctx context.Context, backend Backend, opts Options) *App {
	cfg := opts.Config
	if cfg.UI.NoticeTTL <= 0 {
		cfg.UI.NoticeTTL = 5 * time.Second
	}
	list := catalog.NewController(backend)

	st := state.New(opts.Session, opts.SignedIn, cfg.API.BaseURL, cfg.UI.ActiveSince)
	if opts.Sessions != nil {
		st.SessionPath = opts.Sessions.Path()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = keyStyle

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search name, category, model or year"
	search.CharLimit = 64

	fields := make([]textinput.Model, len(view.FieldLabels))
	for i, label := range view.FieldLabels {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = label
		in.CharLimit = 80
		if label == "Year" {
			in.CharLimit = 4
			in.Validate = digitsOnly
		}
		fields[i] = in
	}

	url := textinput.New()
	url.Prompt = ""
	url.CharLimit = 256

	return &App{
		ctx:      ctx,
		backend:  backend,
		list:     list,
		actions:  catalog.NewDispatcher(backend, list),
		sessions: opts.Sessions,
		cfg:      cfg,
		save:     opts.Save,
		st:       st.BeginLoading(),
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  sp,
		search:   search,
		fields:   fields,
		urlInput: url,
	}
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return strconv.ErrSyntax
		}
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.refreshCmd())
}

// State exposes the current state, mainly for tests.
func (a *App) State() state.AppState { return a.st }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(m)
	case tea.MouseMsg:
		a.handleMouse(m)
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case refreshedMsg:
		if m.err != nil {
			a.st = a.st.ApplyFailure("Could not load vehicles: " + api.Message(m.err, ""))
			return a, a.expireCmd()
		}
		a.st = a.st.ApplyModel(m.model, m.collection)
	case actionMsg:
		return a, a.applyOutcome(m.outcome)
	case detailMsg:
		return a, a.applyDetail(m)
	case loggedOutMsg:
		a.st = a.st.Logout()
		if a.mode == modeForm {
			a.blurAll()
		}
		if m.err != nil {
			a.st = a.st.WithNotice("Signed out, but the session file could not be removed: "+m.err.Error(), state.NoticeError)
		} else {
			a.st = a.st.WithNotice("Signed out.", state.NoticeSuccess)
		}
		return a, a.expireCmd()
	case configSavedMsg:
		if m.err != nil {
			a.st = a.st.WithNotice("Could not save settings: "+m.err.Error(), state.NoticeError)
			return a, a.expireCmd()
		}
		a.cfg.API.BaseURL = m.baseURL
		a.blurAll()
		a.st = a.st.WithNotice("Backend URL saved. Restart vehicledesk to connect to "+m.baseURL+".", state.NoticeSuccess)
		return a, a.expireCmd()
	case noticeExpiredMsg:
		a.st = a.st.DismissNotice(m.seq)
	}
	return a, nil
}

func (a *App) applyOutcome(out catalog.Outcome) tea.Cmd {
	if out.Aborted {
		a.st = a.st.EndLoading()
		return nil
	}
	if out.Model != nil {
		a.st = a.st.ApplyModel(*out.Model, out.Collection)
	} else {
		a.st = a.st.EndLoading()
	}
	if out.ClearForm {
		a.resetForm()
	}
	kind := state.NoticeSuccess
	if out.Failed() {
		kind = state.NoticeError
	}
	a.st = a.st.WithNotice(out.Notice, kind)
	return a.expireCmd()
}

func (a *App) applyDetail(m detailMsg) tea.Cmd {
	if a.st.Detail == nil || a.st.Detail.ID != m.id {
		// closed or replaced while loading
		return nil
	}
	if m.err != nil {
		if m.v.ID == 0 {
			a.st = a.st.CloseDetail()
		}
		a.st = a.st.WithNotice("Could not load vehicle details: "+api.Message(m.err, ""), state.NoticeError)
		return a.expireCmd()
	}
	a.st = a.st.OpenDetail(m.v)
	return nil
}

func (a *App) currentMode() mode {
	switch {
	case a.st.Confirm != nil:
		return modeConfirm
	case a.st.Detail != nil:
		return modeDetail
	}
	return a.mode
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.currentMode() {
	case modeConfirm:
		return a.handleConfirmKey(m)
	case modeDetail:
		if key.Matches(m, a.keys.Close) {
			a.st = a.st.CloseDetail()
		}
		return a, nil
	case modeSearch:
		return a.handleSearchKey(m)
	case modeForm:
		return a.handleFormKey(m)
	case modeEditURL:
		return a.handleURLKey(m)
	}
	return a.handleBrowseKey(m)
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(m, k.Quit):
		return a, tea.Quit
	case key.Matches(m, k.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(m, k.NextPanel):
		return a, a.selectPanel(a.offsetPanel(1))
	case key.Matches(m, k.PrevPanel):
		return a, a.selectPanel(a.offsetPanel(-1))
	case key.Matches(m, k.Jump):
		n, err := strconv.Atoi(m.String())
		if err != nil || n < 1 || n > len(state.Panels) {
			return a, nil
		}
		return a, a.selectPanel(state.Panels[n-1])
	case key.Matches(m, k.Refresh):
		a.st = a.st.BeginLoading()
		return a, a.refreshCmd()
	case key.Matches(m, k.Logout):
		if !a.st.SignedIn {
			return a, nil
		}
		return a, a.logoutCmd()
	}

	switch a.st.View.Panel {
	case state.PanelList, state.PanelFavorites:
		return a.handleListKey(m)
	case state.PanelAdd:
		if key.Matches(m, k.Edit) || key.Matches(m, k.Submit) {
			return a, a.focusForm()
		}
	case state.PanelSettings:
		if key.Matches(m, k.Edit) {
			return a, a.focusURL()
		}
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(m, k.Up):
		a.st = a.st.MoveCursor(-1)
	case key.Matches(m, k.Down):
		a.st = a.st.MoveCursor(1)
	case key.Matches(m, k.Search):
		a.mode = modeSearch
		a.st = a.st.FocusSearch(true)
		a.search.SetValue(a.st.View.Search)
		a.search.CursorEnd()
		return a, a.search.Focus()
	case key.Matches(m, k.Filter):
		if a.st.View.Panel != state.PanelList {
			return a, nil
		}
		next := catalog.Filters[(int(a.st.View.Filter)+1)%len(catalog.Filters)]
		a.st = a.st.SetFilter(next).BeginLoading()
		return a, a.refreshCmd()
	}

	v, ok := a.st.Selected()
	if !ok {
		return a, nil
	}
	switch {
	case key.Matches(m, k.Detail):
		a.st = a.st.OpenDetail(v)
		return a, a.detailCmd(v.ID)
	case key.Matches(m, k.Favorite):
		return a, a.toggleCmd(v.ID)
	case key.Matches(m, k.Delete):
		a.st = a.st.AskDelete(v)
	}
	return a, nil
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Confirm):
		id := a.st.Confirm.ID
		a.st = a.st.CancelConfirm()
		return a, a.deleteCmd(id)
	case key.Matches(m, a.keys.Cancel):
		a.st = a.st.CancelConfirm()
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyEsc || m.Type == tea.KeyEnter {
		a.blurAll()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	if term := a.search.Value(); term != a.st.View.Search {
		a.st = a.st.SetSearch(term)
	}
	return a, cmd
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(m, k.Leave):
		a.blurAll()
		return a, nil
	case key.Matches(m, k.NextField):
		return a, a.focusField(a.st.Form.Focus + 1)
	case key.Matches(m, k.PrevField):
		return a, a.focusField(a.st.Form.Focus - 1)
	case key.Matches(m, k.Submit):
		if !a.st.Session.IsAdmin {
			a.st = a.st.WithNotice("Only administrators can add vehicles.", state.NoticeError)
			return a, a.expireCmd()
		}
		return a, a.addCmd(a.formValues())
	}
	i := a.st.Form.Focus
	var cmd tea.Cmd
	a.fields[i], cmd = a.fields[i].Update(m)
	a.st = a.st.SetForm(a.formValues(), i)
	return a, cmd
}

func (a *App) handleURLKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.blurAll()
		return a, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(a.urlInput.Value())
		if err := config.ValidateBaseURL(raw); err != nil {
			a.st = a.st.WithNotice("Invalid backend URL: "+err.Error(), state.NoticeError)
			return a, a.expireCmd()
		}
		return a, a.saveURLCmd(raw)
	}
	var cmd tea.Cmd
	a.urlInput, cmd = a.urlInput.Update(m)
	return a, cmd
}

// handleMouse closes the detail overlay on a click outside it.
func (a *App) handleMouse(m tea.MouseMsg) {
	if a.st.Detail == nil || a.st.Confirm != nil {
		return
	}
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return
	}
	c := a.chrome()
	var screen string
	if c.height <= 0 {
		screen = a.View()
	}
	width, height := canvasSize(c, screen)
	box := popupBounds(drawDetail(view.Render(a.st).Detail), width, height)
	if !box.contains(m.X, m.Y) {
		a.st = a.st.CloseDetail()
	}
}

func (a *App) offsetPanel(delta int) state.Panel {
	n := len(state.Panels)
	return state.Panels[((int(a.st.View.Panel)+delta)%n+n)%n]
}

// selectPanel switches panel and refetches when the panel shows server data.
func (a *App) selectPanel(p state.Panel) tea.Cmd {
	a.blurAll()
	a.st = a.st.SelectPanel(p)
	if p == state.PanelAdd || p == state.PanelSettings {
		return nil
	}
	a.st = a.st.BeginLoading()
	return a.refreshCmd()
}

func (a *App) focusForm() tea.Cmd {
	a.mode = modeForm
	return a.focusField(a.st.Form.Focus)
}

func (a *App) focusField(i int) tea.Cmd {
	n := len(a.fields)
	i = (i%n + n) % n
	for j := range a.fields {
		a.fields[j].Blur()
	}
	a.st = a.st.SetForm(a.formValues(), i)
	return a.fields[i].Focus()
}

func (a *App) focusURL() tea.Cmd {
	a.mode = modeEditURL
	a.urlInput.SetValue(a.cfg.API.BaseURL)
	a.urlInput.CursorEnd()
	return a.urlInput.Focus()
}

func (a *App) blurAll() {
	a.mode = modeBrowse
	a.st = a.st.FocusSearch(false)
	a.search.Blur()
	a.urlInput.Blur()
	for i := range a.fields {
		a.fields[i].Blur()
	}
}

func (a *App) formValues() catalog.Form {
	return catalog.Form{
		Name:     a.fields[0].Value(),
		Category: a.fields[1].Value(),
		Model:    a.fields[2].Value(),
		Year:     a.fields[3].Value(),
	}
}

func (a *App) resetForm() {
	for i := range a.fields {
		a.fields[i].Reset()
	}
	a.st = a.st.SetForm(catalog.Form{}, 0)
	if a.mode == modeForm {
		a.focusField(0)
	}
}

func (a *App) View() string {
	t := view.Render(a.st)
	return draw(t, a.chrome())
}

func (a *App) chrome() chrome {
	c := chrome{
		width:   a.width,
		height:  a.height,
		spinner: a.spinner.View(),
		help: a.help.View(helpKeys{
			k:     a.keys,
			mode:  a.currentMode(),
			panel: a.st.View.Panel,
			admin: a.st.Session.IsAdmin,
			auth:  a.st.SignedIn,
		}),
	}
	switch a.mode {
	case modeSearch:
		c.search = a.search.View()
	case modeForm:
		for _, f := range a.fields {
			c.fields = append(c.fields, f.View())
		}
	case modeEditURL:
		c.url = a.urlInput.View()
	}
	return c
}
