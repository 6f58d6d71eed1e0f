package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/catalog"
	"github.com/jask/vehicledesk/internal/config"
	"github.com/jask/vehicledesk/internal/logging"
	"github.com/jask/vehicledesk/internal/session"
	"github.com/jask/vehicledesk/internal/state"
	"github.com/jask/vehicledesk/internal/tui"
	"github.com/jask/vehicledesk/internal/view"
)

const usage = `usage: vehicledesk [command]

commands:
  ui                       interactive console (default)
  login -u USER [-p PASS]  sign in and remember the session
  logout                   forget the session
  list [-filter F] [-search TERM]
                           print vehicles; F is all, favorites or normal
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "vehicledesk: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command needs.
type env struct {
	cfg    config.Config
	client *api.Client
	store  *session.Store
	closer io.Closer
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	closer, err := logging.Setup(cfg.Log.Path)
	if err != nil {
		return nil, err
	}
	client, err := api.New(cfg.API.BaseURL, cfg.API.ResourcePath, api.WithTimeout(cfg.API.Timeout))
	if err != nil {
		closer.Close()
		return nil, err
	}
	store, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		closer.Close()
		return nil, err
	}
	return &env{cfg: cfg, client: client, store: store, closer: closer}, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := "ui"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "ui", "login", "logout", "list":
	case "help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.closer.Close()

	switch cmd {
	case "login":
		return runLogin(ctx, e, args, out)
	case "logout":
		return runLogout(ctx, e, out)
	case "list":
		return runList(ctx, e, args, out)
	}
	return runUI(ctx, e)
}

func runUI(ctx context.Context, e *env) error {
	sess, signedIn, err := e.store.Load()
	if err != nil {
		// fall back to the guest rather than refuse to start
		fmt.Fprintf(os.Stderr, "warn: %v\n", err)
	}
	p := tea.NewProgram(tui.New(ctx, e.client, tui.Options{
		Config:   e.cfg,
		Session:  sess,
		SignedIn: signedIn,
		Sessions: e.store,
	}), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func runLogin(ctx context.Context, e *env, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	user := fs.String("u", "", "username")
	pass := fs.String("p", "", "password (default $VEHICLEDESK_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pass == "" {
		*pass = os.Getenv("VEHICLEDESK_PASSWORD")
	}
	if strings.TrimSpace(*user) == "" || *pass == "" {
		return errors.New("login needs -u and a password")
	}

	res, err := e.client.Login(ctx, api.Credentials{Username: *user, Password: *pass})
	if err != nil {
		return fmt.Errorf("login: %s", api.Message(err, "login failed"))
	}
	if !res.Success || res.User == nil {
		msg := res.Message
		if msg == "" {
			msg = "login failed"
		}
		return fmt.Errorf("login: %s", msg)
	}
	sess := session.Session{DisplayName: res.User.Username, IsAdmin: res.User.Admin}
	if err := e.store.Save(sess); err != nil {
		return err
	}
	role := "user"
	if sess.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(out, "Signed in as %s (%s).\n", sess.DisplayName, role)
	return nil
}

func runLogout(ctx context.Context, e *env, out io.Writer) error {
	if err := e.client.Logout(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warn: backend logout: %s\n", api.Message(err, ""))
	}
	if err := e.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out.")
	return nil
}

func runList(ctx context.Context, e *env, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filterArg := fs.String("filter", "all", "all, favorites or normal")
	search := fs.String("search", "", "case-insensitive search term")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, ok := catalog.ParseFilter(*filterArg)
	if !ok {
		return fmt.Errorf("unknown filter %q", *filterArg)
	}

	sess, signedIn, err := e.store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warn: %v\n", err)
	}
	st := state.New(sess, signedIn, e.cfg.API.BaseURL, e.cfg.UI.ActiveSince).
		SelectPanel(state.PanelList).
		SetFilter(filter).
		SetSearch(*search)

	list := catalog.NewController(e.client)
	q := st.Query()
	model, records, err := list.Refresh(ctx, q.Filter, q.Search)
	if err != nil {
		return fmt.Errorf("could not load vehicles: %s", api.Message(err, ""))
	}
	st = st.ApplyModel(model, records)
	return view.WriteText(out, view.Render(st))
}
