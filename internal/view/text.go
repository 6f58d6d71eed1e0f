package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText draws t without styling, for output that is not a terminal UI.
// Overlays are appended after the body.
func WriteText(w io.Writer, t Tree) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Header.Greeting)
	fmt.Fprintf(&b, "== %s ==\n", t.Title)

	switch {
	case t.Dashboard != nil:
		writeStats(&b, t.Dashboard.Cards)
	case t.List != nil:
		writeList(&b, t.List)
	case t.Form != nil:
		for _, f := range t.Form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
		}
		fmt.Fprintf(&b, "%s\n", t.Form.Hint)
	case t.Statistics != nil:
		writeStatistics(&b, t.Statistics)
	case t.Settings != nil:
		writeRows(&b, t.Settings.Rows)
	}

	if t.Detail != nil {
		fmt.Fprintf(&b, "\n-- %s --\n", t.Detail.Title)
		writeRows(&b, t.Detail.Rows)
	}
	if t.Confirm != nil {
		fmt.Fprintf(&b, "\n%s\n", t.Confirm.Message)
	}
	if t.Notice != nil {
		prefix := "ok"
		if t.Notice.Error {
			prefix = "error"
		}
		fmt.Fprintf(&b, "\n[%s] %s\n", prefix, t.Notice.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeStats(b *strings.Builder, cards []StatCard) {
	for _, c := range cards {
		fmt.Fprintf(b, "%s: %d\n", c.Label, c.Value)
	}
}

func writeList(b *strings.Builder, l *List) {
	if l.Search != "" {
		fmt.Fprintf(b, "search: %s\n", l.Search)
	}
	if l.Loading && len(l.Cards) == 0 {
		b.WriteString("Loading...\n")
		return
	}
	if l.Empty != nil {
		b.WriteString(l.Empty.Reason + "\n")
		if l.Empty.Suggestion != "" {
			b.WriteString(l.Empty.Suggestion + "\n")
		}
		return
	}
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tMODEL\tYEAR\tFAV")
	for _, c := range l.Cards {
		fav := ""
		if c.Favorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", c.ID, c.Title, c.Category, c.Model, c.Year, fav)
	}
	tw.Flush()
	fmt.Fprintf(b, "%s\n", l.Summary)
}

func writeStatistics(b *strings.Builder, s *Statistics) {
	writeStats(b, s.Cards)
	if s.Empty != nil {
		b.WriteString(s.Empty.Reason + "\n")
		return
	}
	if s.Range != "" {
		fmt.Fprintf(b, "Model years: %s\n", s.Range)
	}
	b.WriteString("By category:\n")
	for _, c := range s.Categories {
		fmt.Fprintf(b, "  %s: %d\n", c.Label, c.Count)
	}
	b.WriteString("By decade:\n")
	for _, d := range s.Decades {
		fmt.Fprintf(b, "  %s: %d\n", d.Label, d.Count)
	}
}

func writeRows(b *strings.Builder, rows []Row) {
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r.Label, r.Value)
	}
	tw.Flush()
}
