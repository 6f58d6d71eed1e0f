// Package session persists the signed-in identity between runs. The admin
// flag stored here is trusted by the client for presentation only; the
// backend must authorize every destructive call on its own.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const fileName = "session.toml"

// GuestName is the display name used when nobody is signed in.
const GuestName = "User"

// Session is the identity shown in the header.
type Session struct {
	DisplayName string `toml:"display_name"`
	IsAdmin     bool   `toml:"is_admin"`
}

// Guest is the identity used when no session was persisted.
func Guest() Session {
	return Session{DisplayName: GuestName}
}

type sessionFile struct {
	CurrentUser *Session `toml:"current_user,omitempty"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore uses path, or <UserConfigDir>/vehicledesk/session.toml when path
// is empty.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		path = filepath.Join(dir, "vehicledesk", fileName)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load returns the persisted session. When none is stored it returns Guest()
// and false.
func (s *Store) Load() (Session, bool, error) {
	var f sessionFile
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Guest(), false, nil
		}
		return Guest(), false, fmt.Errorf("read session: %w", err)
	}
	if f.CurrentUser == nil {
		return Guest(), false, nil
	}
	sess := *f.CurrentUser
	if strings.TrimSpace(sess.DisplayName) == "" {
		sess.DisplayName = GuestName
	}
	return sess, true, nil
}

// Save replaces the persisted session.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(sessionFile{CurrentUser: &sess}); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
