package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/api/apitest"
	"github.com/jask/vehicledesk/internal/session"
)

func setEnv(t *testing.T, srv *apitest.Server) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("VEHICLEDESK_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("VEHICLEDESK_API_BASE_URL", srv.URL)
	sessionPath := filepath.Join(dir, "session.toml")
	t.Setenv("VEHICLEDESK_SESSION_PATH", sessionPath)
	t.Setenv("VEHICLEDESK_PASSWORD", "")
	return sessionPath
}

func TestListPrintsServerFilteredRecords(t *testing.T) {
	srv := apitest.NewServer(t,
		api.Vehicle{ID: 1, Name: "Road Runner", Category: "Truck", Model: "RR-1", Year: 2019},
		api.Vehicle{ID: 2, Name: "Gritter", Category: "Service", Model: "G2", Year: 2022, Favorite: true},
	)
	setEnv(t, srv)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"list", "-filter", "favorites"}, &out))
	require.Contains(t, out.String(), "Gritter")
	require.NotContains(t, out.String(), "Road Runner")
	require.Equal(t, []string{"GET /vehicles?favorite=true"}, srv.Requests())

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"list", "-search", "zzz"}, &out))
	require.Contains(t, out.String(), `No results for "zzz".`)
}

func TestListRejectsUnknownFilter(t *testing.T) {
	srv := apitest.NewServer(t)
	setEnv(t, srv)
	err := run(context.Background(), []string{"list", "-filter", "broken"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "unknown filter")
	require.Empty(t, srv.Requests())
}

func TestLoginThenLogout(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddUser("root", "secret", true)
	path := setEnv(t, srv)
	ctx := context.Background()

	err := run(ctx, []string{"login", "-u", "root", "-p", "wrong"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "invalid username or password")
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"login", "-u", "root", "-p", "secret"}, &out))
	require.Equal(t, "Signed in as root (admin).\n", out.String())

	store, err := session.NewStore(path)
	require.NoError(t, err)
	sess, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.Session{DisplayName: "root", IsAdmin: true}, sess)

	out.Reset()
	require.NoError(t, run(ctx, []string{"logout"}, &out))
	require.Equal(t, "Signed out.\n", out.String())
	_, statErr = os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
	require.Contains(t, srv.Requests(), "POST /logout")
}

func TestLoginNeedsCredentials(t *testing.T) {
	srv := apitest.NewServer(t)
	setEnv(t, srv)
	err := run(context.Background(), []string{"login", "-u", "root"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "needs -u and a password")
}

func TestUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{})
	require.ErrorContains(t, err, `unknown command "frobnicate"`)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"help"}, &out))
	require.Contains(t, out.String(), "usage: vehicledesk")
}
