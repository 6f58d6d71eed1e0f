package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/config"
)

// commands

// refreshCmd refetches for the current panel. The loading flag must already
// be set by the caller.
func (a *App) refreshCmd() tea.Cmd {
	q := a.st.Query()
	return func() tea.Msg {
		m, records, err := a.list.Refresh(a.ctx, q.Filter, q.Search)
		return refreshedMsg{model: m, collection: records, err: err}
	}
}

func (a *App) actionCmd(run func(ctx context.Context, q catalog.Query) catalog.Outcome) tea.Cmd {
	q := a.st.Query()
	a.st = a.st.BeginLoading()
	return func() tea.Msg {
		return actionMsg{outcome: run(a.ctx, q)}
	}
}

func (a *App) addCmd(form catalog.Form) tea.Cmd {
	return a.actionCmd(func(ctx context.Context, q catalog.Query) catalog.Outcome {
		return a.actions.Add(ctx, form, q)
	})
}

func (a *App) toggleCmd(id int64) tea.Cmd {
	return a.actionCmd(func(ctx context.Context, q catalog.Query) catalog.Outcome {
		return a.actions.ToggleFavorite(ctx, id, q)
	})
}

// deleteCmd runs once the user has answered the prompt for id.
func (a *App) deleteCmd(id int64) tea.Cmd {
	return a.actionCmd(func(ctx context.Context, q catalog.Query) catalog.Outcome {
		return a.actions.Delete(ctx, id, catalog.Confirmed, q)
	})
}

func (a *App) detailCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		v, err := a.list.Detail(a.ctx, id)
		return detailMsg{id: id, v: v, err: err}
	}
}

// logoutCmd tells the backend, best effort, then forgets the local session.
func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.backend.Logout(a.ctx); err != nil {
			log.Printf("[tui] logout request failed: %v", err)
		}
		if a.sessions == nil {
			return loggedOutMsg{}
		}
		return loggedOutMsg{err: a.sessions.Clear()}
	}
}

func (a *App) saveURLCmd(raw string) tea.Cmd {
	cfg := a.cfg
	cfg.API.BaseURL = raw
	save := a.save
	return func() tea.Msg {
		if save == nil {
			save = config.Save
		}
		return configSavedMsg{baseURL: raw, err: save(cfg)}
	}
}

// expireCmd dismisses the current notice after the configured delay.
func (a *App) expireCmd() tea.Cmd {
	if a.st.Notice == nil {
		return nil
	}
	seq := a.st.Notice.Seq
	return tea.Tick(a.cfg.UI.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
