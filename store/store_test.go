package store

import (
	"path/filepath"
	"testing"

	"github.com/tapsoran/admintui/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	user := &domain.User{
		Id:       "admin-1",
		Role:     domain.RoleSuperAdmin,
		FullName: "Super Admin",
		Email:    "superadmin@tapsoran.az",
	}

	if err := s.SaveSession("tok-abc", user); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	token, loaded, err := s.LoadSession()
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if token != "tok-abc" {
		t.Errorf("Expected token tok-abc, got %q", token)
	}
	if loaded == nil {
		t.Fatal("Expected a user, got nil")
	}
	if loaded.Email != user.Email {
		t.Errorf("Expected email %s, got %s", user.Email, loaded.Email)
	}
	if loaded.Role != domain.RoleSuperAdmin {
		t.Errorf("Expected role SUPER_ADMIN, got %s", loaded.Role)
	}
}

func TestLoadSessionEmptyStore(t *testing.T) {
	s := setupTestStore(t)

	token, user, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if token != "" || user != nil {
		t.Errorf("Expected empty session, got token=%q user=%v", token, user)
	}
}

func TestClearSessionIsIdempotent(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveSession("tok", &domain.User{Id: "u"}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("First clear failed: %v", err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("Second clear failed: %v", err)
	}

	token, user, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if token != "" || user != nil {
		t.Error("Expected session cleared")
	}
}

func TestSoundPreferenceSurvivesSessionClear(t *testing.T) {
	s := setupTestStore(t)

	if s.HasSoundPreference() {
		t.Error("Expected no sound preference on fresh store")
	}
	if s.SoundEnabled() {
		t.Error("Expected sound disabled by default")
	}

	if err := s.SetSoundEnabled(true); err != nil {
		t.Fatalf("Failed to set sound preference: %v", err)
	}
	if err := s.SaveSession("tok", &domain.User{Id: "u"}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("Failed to clear session: %v", err)
	}

	if !s.SoundEnabled() {
		t.Error("Expected sound preference to survive logout")
	}
	if !s.HasSoundPreference() {
		t.Error("Expected sound preference to be recorded")
	}
}
