package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tapsoran/admintui/api"
	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/store"
)

func setupManager(t *testing.T, handler http.Handler) (*Manager, *api.Client, *store.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	client := api.NewClient(srv.URL, 5*time.Second)
	return NewManager(client, st), client, st
}

func loginHandler(role domain.Role) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user": map[string]any{
				"id":       "u-1",
				"role":     string(role),
				"fullName": "Someone",
				"email":    "someone@tapsoran.az",
			},
		})
	})
	return mux
}

func TestLoginRejectsNonSuperAdmin(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller} {
		t.Run(string(role), func(t *testing.T) {
			m, client, st := setupManager(t, loginHandler(role))

			err := m.Login(context.Background(), "someone@tapsoran.az", "pw")
			if err == nil {
				t.Fatal("Expected login to fail for non-super-admin role")
			}

			// No session state may change, regardless of HTTP success.
			if m.LoggedIn() {
				t.Error("Expected no active session")
			}
			if sess := m.Session(); sess.Token != "" || sess.User != nil {
				t.Errorf("Expected empty session, got %+v", sess)
			}
			if client.Token() != "" {
				t.Error("Expected client credential untouched")
			}
			token, user, _ := st.LoadSession()
			if token != "" || user != nil {
				t.Error("Expected nothing persisted")
			}
		})
	}
}

func TestLoginSuperAdminAppliesCredentialSynchronously(t *testing.T) {
	var loginAuth, nextAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		loginAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-fresh",
			"user":  map[string]any{"id": "a-1", "role": "SUPER_ADMIN", "fullName": "SA", "email": "sa@tapsoran.az"},
		})
	})
	mux.HandleFunc("GET /admin/users", func(w http.ResponseWriter, r *http.Request) {
		nextAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	m, client, st := setupManager(t, mux)

	if err := m.Login(context.Background(), "sa@tapsoran.az", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loginAuth != "" {
		t.Errorf("Expected login request without Authorization, got %q", loginAuth)
	}

	// The very next request, issued with no artificial delay, must carry
	// the new bearer token.
	if _, err := client.Users(context.Background()); err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if nextAuth != "Bearer tok-fresh" {
		t.Errorf("Expected 'Bearer tok-fresh', got %q", nextAuth)
	}

	token, user, err := st.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if token != "tok-fresh" || user == nil || user.Role != domain.RoleSuperAdmin {
		t.Errorf("Expected persisted super admin session, got token=%q user=%v", token, user)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	m, client, _ := setupManager(t, loginHandler(domain.RoleSuperAdmin))

	// Logout with no active session must be safe.
	m.Logout()

	if err := m.Login(context.Background(), "sa@tapsoran.az", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	m.Logout()
	m.Logout()

	if m.LoggedIn() {
		t.Error("Expected session cleared")
	}
	if client.Token() != "" {
		t.Error("Expected client credential removed")
	}
}

func TestRestorePersistedSession(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	admin := &domain.User{Id: "a-1", Role: domain.RoleSuperAdmin, FullName: "SA", Email: "sa@tapsoran.az"}
	if err := st.SaveSession("tok-old", admin); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}

	client := api.NewClient("http://localhost:0", time.Second)
	m := NewManager(client, st)
	m.Restore()

	if !m.LoggedIn() {
		t.Fatal("Expected restored session")
	}
	if client.Token() != "tok-old" {
		t.Errorf("Expected client token tok-old, got %q", client.Token())
	}
}

func TestRestoreDiscardsNonSuperAdmin(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	if err := st.SaveSession("tok-old", &domain.User{Id: "u-1", Role: domain.RoleBuyer}); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}

	client := api.NewClient("http://localhost:0", time.Second)
	m := NewManager(client, st)
	m.Restore()

	if m.LoggedIn() {
		t.Error("Expected persisted non-super-admin session to be discarded")
	}
	if client.Token() != "" {
		t.Error("Expected no credential applied")
	}
}
