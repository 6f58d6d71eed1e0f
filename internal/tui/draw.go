package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/vehicledesk/internal/view"
)

// chrome is the widget output that lives outside the pure view tree.
type chrome struct {
	width   int
	height  int
	spinner string
	help    string
	// Live input views, set only while the matching input has focus.
	search string
	fields []string
	url    string
}

const (
	minWidth   = 40
	cardHeight = 5
)

// canvasSize is the area popups are centred on. Without a known terminal
// height the drawn screen decides.
func canvasSize(c chrome, screen string) (int, int) {
	height := c.height
	if height <= 0 {
		height = lipgloss.Height(screen)
	}
	return max(c.width, minWidth), height
}

func draw(t view.Tree, c chrome) string {
	width := max(c.width, minWidth)

	header := drawHeader(t.Header, width)
	nav := drawNav(t.Nav, width)
	title := titleStyle.Render(t.Title)
	notice := drawNotice(t.Notice, width)
	footer := c.help

	used := lipgloss.Height(header) + lipgloss.Height(nav) + lipgloss.Height(title) +
		lipgloss.Height(notice) + lipgloss.Height(footer)
	bodyHeight := 12
	if c.height > 0 {
		bodyHeight = max(3, c.height-used)
	}
	body := drawBody(t, c, width, bodyHeight)
	body = strings.Join(splitToLines(body, bodyHeight), "\n")

	screen := lipgloss.JoinVertical(lipgloss.Left, header, nav, title, body, notice, footer)
	_, height := canvasSize(c, screen)
	switch {
	case t.Confirm != nil:
		screen = renderPopup(screen, drawConfirm(t.Confirm), width, height)
	case t.Detail != nil:
		screen = renderPopup(screen, drawDetail(t.Detail), width, height)
	}
	return screen
}

func drawBody(t view.Tree, c chrome, width, height int) string {
	switch {
	case t.List != nil:
		return drawList(t.List, c, width, height)
	case t.Form != nil:
		return drawForm(t.Form, c)
	case t.Statistics != nil:
		return drawStatistics(t.Statistics, c, width, height)
	case t.Settings != nil:
		return drawSettings(t.Settings, c)
	case t.Dashboard != nil:
		return drawDashboard(t.Dashboard, c)
	}
	return ""
}

func drawHeader(h view.Header, width int) string {
	left := brandStyle.Render("vehicledesk") + headerBarStyle.Render("  "+h.Greeting)
	right := h.Backend
	if h.ShowLogout {
		right += "  [L] logout"
	}
	right = headerBarStyle.Render(right)
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return headerBarStyle.Width(width).Render(ansi.Truncate(left, width, "…"))
	}
	return left + headerBarStyle.Render(strings.Repeat(" ", gap)) + right
}

func drawNav(items []view.NavItem, width int) string {
	tabs := make([]string, 0, len(items))
	for i, it := range items {
		label := strconv.Itoa(i+1) + " " + it.Label
		if it.Active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), width, "")
}

func drawNotice(n *view.Notice, width int) string {
	if n == nil {
		return ""
	}
	style := noticeOKStyle
	if n.Error {
		style = noticeErrStyle
	}
	return style.Width(width).Render(ansi.Truncate(" "+n.Text, width, "…"))
}

func drawStatCards(cards []view.StatCard) string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		boxes = append(boxes, statCardStyle.Width(18).Render(
			statValueStyle.Render(strconv.Itoa(c.Value))+"\n"+mutedStyle.Render(c.Label),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func drawDashboard(d *view.Dashboard, c chrome) string {
	out := drawStatCards(d.Cards)
	if d.Loading {
		out += "\n" + c.spinner + " Loading..."
	}
	return out
}

func drawList(l *view.List, c chrome, width, height int) string {
	var lines []string

	var top []string
	for _, f := range l.Filters {
		if f.Active {
			top = append(top, activeFilterStyle.Render(f.Label))
		} else {
			top = append(top, inactiveFilterStyle.Render(f.Label))
		}
	}
	search := c.search
	if search == "" {
		if l.Search != "" {
			search = "/ " + l.Search
		} else {
			search = mutedStyle.Render("/ search")
		}
	}
	top = append(top, " "+search)
	lines = append(lines, strings.Join(top, " "))

	if l.Loading {
		lines = append(lines, c.spinner+" Loading...")
	}
	if l.Empty != nil {
		lines = append(lines, "", mutedStyle.Render(l.Empty.Reason))
		if l.Empty.Suggestion != "" {
			lines = append(lines, warnStyle.Render(l.Empty.Suggestion))
		}
		return strings.Join(lines, "\n")
	}
	if len(l.Cards) == 0 {
		return strings.Join(lines, "\n")
	}

	room := max(1, (height-len(lines)-1)/cardHeight)
	start, end := window(selectedIndex(l.Cards), len(l.Cards), room)
	cardWidth := min(width, 72)
	for _, card := range l.Cards[start:end] {
		lines = append(lines, drawCard(card, cardWidth))
	}
	summary := l.Summary
	if start > 0 || end < len(l.Cards) {
		summary += fmt.Sprintf(" (showing %d-%d)", start+1, end)
	}
	lines = append(lines, mutedStyle.Render(summary))
	return strings.Join(lines, "\n")
}

func selectedIndex(cards []view.Card) int {
	for i, c := range cards {
		if c.Selected {
			return i
		}
	}
	return 0
}

// window returns the [start, end) range of size room that keeps sel visible.
func window(sel, n, room int) (int, int) {
	if n <= room {
		return 0, n
	}
	start := max(0, sel-room/2)
	if start+room > n {
		start = n - room
	}
	return start, start + room
}

var actionKeys = map[view.ActionKind]string{
	view.ActionDetail:   "enter",
	view.ActionFavorite: "f",
	view.ActionDelete:   "x",
}

func drawCard(c view.Card, width int) string {
	star := "  "
	if c.Favorite {
		star = favStyle.Render("★ ")
	}
	title := star + lipgloss.NewStyle().Bold(true).Render(c.Title) + mutedStyle.Render("  #"+strconv.FormatInt(c.ID, 10))
	meta := fmt.Sprintf("%s · %s · %d", c.Category, c.Model, c.Year)
	var acts []string
	if c.Selected {
		for _, a := range c.Actions {
			acts = append(acts, keyStyle.Render(actionKeys[a.Kind])+" "+mutedStyle.Render(a.Label))
		}
	}
	style := cardStyle
	if c.Selected {
		style = selectedCardStyle
	}
	inner := width - style.GetHorizontalFrameSize()
	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join([]string{
		ansi.Truncate(title, inner, "…"),
		ansi.Truncate(meta, inner, "…"),
		ansi.Truncate(strings.Join(acts, "  "), inner, ""),
	}, "\n"))
}

func drawForm(f *view.Form, c chrome) string {
	var lines []string
	for i, field := range f.Fields {
		label := fmt.Sprintf("%-9s", field.Label)
		value := field.Value
		switch {
		case i < len(c.fields):
			value = c.fields[i]
		case value == "":
			value = mutedStyle.Render(field.Placeholder)
		}
		marker := "  "
		if field.Focused && len(c.fields) > 0 {
			marker = keyStyle.Render("> ")
		}
		lines = append(lines, marker+label+" "+value)
	}
	lines = append(lines, "")
	if f.CanSubmit {
		lines = append(lines, mutedStyle.Render(f.Hint))
		if len(c.fields) == 0 {
			lines = append(lines, keyStyle.Render("e")+mutedStyle.Render(" to start editing"))
		}
	} else {
		lines = append(lines, warnStyle.Render(f.Hint))
	}
	return strings.Join(lines, "\n")
}

func drawStatistics(s *view.Statistics, c chrome, width, height int) string {
	parts := []string{drawStatCards(s.Cards)}
	if s.Loading {
		parts = append(parts, c.spinner+" Loading...")
	}
	if s.Empty != nil {
		return strings.Join(append(parts, mutedStyle.Render(s.Empty.Reason)), "\n")
	}
	if s.Range != "" {
		parts = append(parts, mutedStyle.Render("Model years "+s.Range))
	}
	used := lipgloss.Height(strings.Join(parts, "\n"))
	chartHeight := min(12, height-used-2)
	if chart := categoryChart(s.Categories, min(width, 80), chartHeight); chart != "" {
		parts = append(parts, keyStyle.Render("By category"), chart)
	}
	var dec []string
	for _, d := range s.Decades {
		dec = append(dec, fmt.Sprintf("%s %d", d.Label, d.Count))
	}
	if len(dec) > 0 {
		parts = append(parts, keyStyle.Render("By decade ")+strings.Join(dec, "  "))
	}
	return strings.Join(parts, "\n")
}

func drawRows(rows []view.Row) []string {
	w := 0
	for _, r := range rows {
		w = max(w, len(r.Label))
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, mutedStyle.Render(fmt.Sprintf("%-*s", w, r.Label))+"  "+r.Value)
	}
	return out
}

func drawSettings(s *view.Settings, c chrome) string {
	lines := drawRows(s.Rows)
	lines = append(lines, "")
	if c.url != "" {
		lines = append(lines, "New backend URL: "+c.url, mutedStyle.Render("enter save · esc cancel"))
	} else {
		lines = append(lines, keyStyle.Render("e")+mutedStyle.Render(" edit backend URL"))
	}
	if s.CanLogout {
		lines = append(lines, keyStyle.Render("L")+mutedStyle.Render(" log out"))
	}
	return strings.Join(lines, "\n")
}

func drawDetail(d *view.Detail) string {
	lines := []string{titleStyle.Render(d.Title), ""}
	lines = append(lines, drawRows(d.Rows)...)
	lines = append(lines, "", mutedStyle.Render("esc close"))
	return strings.Join(lines, "\n")
}

func drawConfirm(c *view.Confirm) string {
	return strings.Join([]string{
		titleStyle.Render(c.Title),
		"",
		c.Message,
		"",
		keyStyle.Render("y") + " delete  " + keyStyle.Render("n") + " cancel",
	}, "\n")
}
