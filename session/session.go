// Package session owns the login/logout lifecycle. It is the single writer
// of the API client's bearer credential and of the persisted session state.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/tapsoran/admintui/api"
	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/store"
)

// Manager threads the session explicitly to whoever needs it instead of
// going through a package-level singleton.
type Manager struct {
	client *api.Client
	store  *store.Store

	mu      sync.RWMutex
	current domain.Session
}

func NewManager(client *api.Client, st *store.Store) *Manager {
	return &Manager{client: client, store: st}
}

// Restore loads a persisted session at process start and applies its
// credential to the client. Absent or non-super-admin persisted state is
// discarded.
func (m *Manager) Restore() {
	token, user, err := m.store.LoadSession()
	if err != nil {
		log.Printf("Failed to load persisted session: %v", err)
		return
	}
	if token == "" || user == nil || user.Role != domain.RoleSuperAdmin {
		return
	}
	m.mu.Lock()
	m.current = domain.Session{Token: token, User: user}
	m.mu.Unlock()
	m.client.SetToken(token)
}

// Login authenticates against the API and enforces the SUPER_ADMIN role
// check locally: any other role fails even though the HTTP call succeeded,
// and nothing is persisted or applied in that case. On success the client
// credential is updated synchronously, before this method returns, so the
// very next request already carries the new token.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if resp.User.Role != domain.RoleSuperAdmin {
		return &api.AuthError{Message: "this account is not a SUPER_ADMIN; admin console access denied"}
	}

	if err := m.store.SaveSession(resp.Token, resp.User); err != nil {
		// Session still works for this process; it just won't survive a
		// restart.
		log.Printf("Failed to persist session: %v", err)
	}

	m.mu.Lock()
	m.current = domain.Session{Token: resp.Token, User: resp.User}
	m.mu.Unlock()
	m.client.SetToken(resp.Token)
	return nil
}

// Logout clears the in-memory session, the persisted state, and the client
// credential. Idempotent: safe with no active session.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = domain.Session{}
	m.mu.Unlock()

	if err := m.store.ClearSession(); err != nil {
		log.Printf("Failed to clear persisted session: %v", err)
	}
	m.client.SetToken("")
}

func (m *Manager) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// User returns the signed-in super admin, or nil.
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.User
}

func (m *Manager) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token != "" && m.current.User != nil
}
