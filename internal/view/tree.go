// Package view turns an AppState into a tree of plain values describing what
// is on screen. Render has no side effects; drawers in other packages decide
// how the tree looks on a terminal or in plain text.
package view

import (
	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/state"
)

// Tree is one full frame. Exactly one body field is set, matching Panel.
type Tree struct {
	Header Header
	Nav    []NavItem
	Panel  state.Panel
	Title  string

	Dashboard  *Dashboard
	List       *List
	Form       *Form
	Statistics *Statistics
	Settings   *Settings

	Detail  *Detail
	Confirm *Confirm
	Notice  *Notice
}

type Header struct {
	Greeting   string
	Admin      bool
	ShowLogout bool
	Backend    string
}

type NavItem struct {
	Panel  state.Panel
	Label  string
	Active bool
}

// StatCard is a labelled number.
type StatCard struct {
	Label string
	Value int
}

type Dashboard struct {
	Cards   []StatCard
	Loading bool
}

type FilterButton struct {
	Filter catalog.Filter
	Label  string
	Active bool
}

// Empty replaces the cards when there is nothing to show.
type Empty struct {
	Reason     string
	Suggestion string
}

type List struct {
	// Filters is nil on the favorites panel, which is fixed to one filter.
	Filters       []FilterButton
	Search        string
	SearchFocused bool
	Loading       bool
	Empty         *Empty
	Cards         []Card
	Summary       string
}

// ActionKind identifies a card control.
type ActionKind int

const (
	ActionDetail ActionKind = iota
	ActionFavorite
	ActionDelete
)

type Action struct {
	Kind  ActionKind
	Label string
}

type Card struct {
	ID       int64
	Title    string
	Category string
	Model    string
	Year     int
	Favorite bool
	Selected bool
	Actions  []Action
}

// Has reports whether the card offers the action.
func (c Card) Has(kind ActionKind) bool {
	for _, a := range c.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

type Field struct {
	Label       string
	Value       string
	Placeholder string
	Focused     bool
}

type Form struct {
	Fields    []Field
	CanSubmit bool
	Hint      string
}

type Statistics struct {
	Cards      []StatCard
	Categories []catalog.Bucket
	Decades    []catalog.Bucket
	Range      string
	Loading    bool
	Empty      *Empty
}

// Row is a label/value line in a settings or detail box.
type Row struct {
	Label string
	Value string
}

type Settings struct {
	Rows      []Row
	CanLogout bool
}

type Detail struct {
	ID    int64
	Title string
	Rows  []Row
}

type Confirm struct {
	ID      int64
	Title   string
	Message string
}

type Notice struct {
	Text  string
	Error bool
}
