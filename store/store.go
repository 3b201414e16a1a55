// Package store persists the console's client-side state: the session
// token, the serialized session user, and the sound preference. Each value
// lives under a fixed key and survives restarts; the sound preference is
// independent of the session and survives logout.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tapsoran/admintui/domain"
)

const (
	keyToken = "session_token"
	keyUser  = "session_user"
	keySound = "sound_enabled"
)

const sqlCreateStateTable = `
CREATE TABLE IF NOT EXISTS app_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec(sqlCreateStateTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO app_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) delete(key string) error {
	_, err := s.db.Exec("DELETE FROM app_state WHERE key = ?", key)
	return err
}

// SaveSession persists the token and user for restoration at next start.
func (s *Store) SaveSession(token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.set(keyToken, token); err != nil {
		return err
	}
	return s.set(keyUser, string(raw))
}

// LoadSession returns the persisted session, or ("", nil, nil) when none is
// stored. A user blob that no longer parses is treated as no session.
func (s *Store) LoadSession() (string, *domain.User, error) {
	token, ok, err := s.get(keyToken)
	if err != nil || !ok || token == "" {
		return "", nil, err
	}
	raw, ok, err := s.get(keyUser)
	if err != nil || !ok {
		return "", nil, err
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, nil
	}
	return token, &user, nil
}

// ClearSession removes the persisted token and user. Safe to call when no
// session is stored.
func (s *Store) ClearSession() error {
	if err := s.delete(keyToken); err != nil {
		return err
	}
	return s.delete(keyUser)
}

func (s *Store) SoundEnabled() bool {
	value, ok, err := s.get(keySound)
	if err != nil || !ok {
		return false
	}
	return value == "1"
}

func (s *Store) SetSoundEnabled(enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return s.set(keySound, value)
}

// HasSoundPreference reports whether the user ever chose a preference, so a
// config default can seed a fresh install without overriding a choice.
func (s *Store) HasSoundPreference() bool {
	_, ok, err := s.get(keySound)
	return err == nil && ok
}
