package users

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
)

type stubBackend struct {
	users     []domain.User
	blockedId string
	reason    string
	deletedId string
}

func (s *stubBackend) Users(ctx context.Context) ([]domain.User, error) {
	return s.users, nil
}

func (s *stubBackend) BlockUser(ctx context.Context, id, reason string) error {
	s.blockedId = id
	s.reason = reason
	return nil
}

func (s *stubBackend) UnblockUser(ctx context.Context, id string) error {
	return nil
}

func (s *stubBackend) DeleteUser(ctx context.Context, id string) error {
	s.deletedId = id
	return nil
}

var (
	self   = domain.User{Id: "admin-1", Role: domain.RoleSuperAdmin, FullName: "Root Admin", Email: "root@tapsoran.com"}
	other  = domain.User{Id: "admin-2", Role: domain.RoleSuperAdmin, FullName: "Second Admin", Email: "second@tapsoran.com"}
	seller = domain.User{Id: "seller-1", Role: domain.RoleSeller, FullName: "Aram Seller", Email: "aram@example.com"}
	buyer  = domain.User{Id: "buyer-1", Role: domain.RoleBuyer, FullName: "Bana Buyer", Email: "bana@example.com", Blocked: true}
)

func loadedModel(api Backend) Model {
	m := InitialModel(api, time.Second, 100, 40)
	m.Self = &self
	m, _ = m.Update(usersLoadedMsg{users: []domain.User{self, other, seller, buyer}})
	return m
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDeleteGuard(t *testing.T) {
	tests := []struct {
		name      string
		selected  int
		wantError string
	}{
		{"self", 0, "cannot delete your own account"},
		{"another super admin", 1, "cannot delete a super admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubBackend{}
			m := loadedModel(api)
			m.Selected = tt.selected

			m, _ = m.Update(key('d'))
			if m.Error != tt.wantError {
				t.Errorf("Expected %q, got %q", tt.wantError, m.Error)
			}
			if m.mode == modeConfirmDelete {
				t.Error("Expected the confirmation to be skipped entirely")
			}
		})
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := &stubBackend{}
	m := loadedModel(api)
	m.Selected = 2

	m, _ = m.Update(key('d'))
	if m.mode != modeConfirmDelete {
		t.Fatal("Expected delete confirmation mode")
	}

	// Anything but y cancels.
	m, cmd := m.Update(key('n'))
	if cmd != nil || m.mode != modeNone {
		t.Error("Expected cancel on a non-confirming key")
	}

	m, _ = m.Update(key('d'))
	_, cmd = m.Update(key('y'))
	if cmd == nil {
		t.Fatal("Expected a delete command after confirmation")
	}
	msg := cmd()
	done, ok := msg.(mutationDoneMsg)
	if !ok || !done.deleted {
		t.Fatalf("Expected a deleted result, got %#v", msg)
	}
	if api.deletedId != seller.Id {
		t.Errorf("Expected %s deleted, got %s", seller.Id, api.deletedId)
	}
}

func TestDeleteBroadcastsInvalidation(t *testing.T) {
	api := &stubBackend{}
	m := loadedModel(api)

	m, cmd := m.Update(mutationDoneMsg{status: "✓ User deleted", deleted: true})
	if cmd == nil {
		t.Fatal("Expected follow-up commands after a delete")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("Expected a command batch, got %T", cmd())
	}

	// The server cascades the delete, so every dependent collection must
	// be told it is stale.
	var inv common.InvalidateMsg
	found := false
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(common.InvalidateMsg); ok {
			inv = msg
			found = true
			break
		}
	}
	if !found {
		t.Fatal("Expected an invalidation broadcast")
	}
	for _, scope := range []common.Scope{
		common.ScopeUsers,
		common.ScopeConversations,
		common.ScopeRequests,
		common.ScopeComplaints,
		common.ScopeStats,
	} {
		if !inv.Has(scope) {
			t.Errorf("Expected scope %v in the broadcast", scope)
		}
	}
	if m.Status == "" {
		t.Error("Expected the status line to confirm the delete")
	}
}

func TestBlockRequiresReason(t *testing.T) {
	api := &stubBackend{}
	m := loadedModel(api)
	m.Selected = 2

	m, _ = m.Update(key('b'))
	if m.mode != modeBlockReason {
		t.Fatal("Expected block reason input")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Error == "" {
		t.Error("Expected an error for an empty reason")
	}
	if m.mode != modeBlockReason {
		t.Error("Expected to stay in the reason input")
	}

	for _, r := range "spam" {
		m, _ = m.Update(key(r))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a block command")
	}
	cmd()
	if api.blockedId != seller.Id || api.reason != "spam" {
		t.Errorf("Expected seller blocked for spam, got %s %q", api.blockedId, api.reason)
	}
}

func TestBlockSkipsAlreadyBlocked(t *testing.T) {
	m := loadedModel(&stubBackend{})
	m.Selected = 3 // buyer, already blocked

	m, _ = m.Update(key('b'))
	if m.mode != modeNone {
		t.Error("Expected no reason prompt for an already blocked user")
	}
}

func TestFilterNarrowsList(t *testing.T) {
	m := loadedModel(&stubBackend{})

	m, _ = m.Update(key('/'))
	if !m.Capturing() {
		t.Fatal("Expected the filter input to capture keys")
	}
	for _, r := range "seller" {
		m, _ = m.Update(key(r))
	}
	if len(m.Filtered) != 1 || m.Filtered[0].Id != seller.Id {
		t.Fatalf("Expected exactly the seller, got %d rows", len(m.Filtered))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Capturing() {
		t.Error("Expected enter to commit the filter")
	}
	if m.Query != "seller" {
		t.Errorf("Expected the query to persist, got %q", m.Query)
	}
}
