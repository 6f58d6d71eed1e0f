package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/vehicledesk/internal/state"
)

type keyMap struct {
	Quit      key.Binding
	NextPanel key.Binding
	PrevPanel key.Binding
	Jump      key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Logout    key.Binding

	Up       key.Binding
	Down     key.Binding
	Detail   key.Binding
	Favorite key.Binding
	Delete   key.Binding
	Filter   key.Binding
	Search   key.Binding

	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Leave     key.Binding
	Edit      key.Binding

	Close   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextPanel: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next panel")),
		PrevPanel: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev panel")),
		Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "jump")),
		Refresh:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Favorite: key.NewBinding(key.WithKeys("f", " "), key.WithHelp("f", "favorite")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Filter:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle filter")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave")),
		Edit:      key.NewBinding(key.WithKeys("e", "i"), key.WithHelp("e", "edit")),

		Close:   key.NewBinding(key.WithKeys("esc", "enter", "q"), key.WithHelp("esc", "close")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

// mode is which bindings are live.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeEditURL
	modeDetail
	modeConfirm
)

// helpKeys implements help.KeyMap for the current mode.
type helpKeys struct {
	k     keyMap
	mode  mode
	panel state.Panel
	admin bool
	auth  bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	k := h.k
	switch h.mode {
	case modeDetail:
		return []key.Binding{k.Close}
	case modeConfirm:
		return []key.Binding{k.Confirm, k.Cancel}
	case modeSearch:
		return []key.Binding{k.Leave}
	case modeForm:
		return []key.Binding{k.NextField, k.Submit, k.Leave}
	case modeEditURL:
		return []key.Binding{k.Submit, k.Leave}
	}
	out := []key.Binding{k.NextPanel, k.Jump}
	switch h.panel {
	case state.PanelList, state.PanelFavorites:
		out = append(out, k.Up, k.Down, k.Detail, k.Favorite)
		if h.admin {
			out = append(out, k.Delete)
		}
		if h.panel == state.PanelList {
			out = append(out, k.Filter)
		}
		out = append(out, k.Search)
	case state.PanelAdd:
		if h.admin {
			out = append(out, k.Edit)
		}
	case state.PanelSettings:
		out = append(out, k.Edit)
	}
	if h.auth {
		out = append(out, k.Logout)
	}
	return append(out, k.Refresh, k.Help, k.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	short := h.ShortHelp()
	var out [][]key.Binding
	for len(short) > 4 {
		out = append(out, short[:4])
		short = short[4:]
	}
	return append(out, short)
}
