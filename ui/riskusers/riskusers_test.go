package riskusers

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/domain"
)

type stubBackend struct {
	rows         []domain.RiskUser
	frozenId     string
	frozenHours  int
	frozenReason string
	unfrozenId   string
}

func (s *stubBackend) RiskUsers(ctx context.Context) ([]domain.RiskUser, error) {
	return s.rows, nil
}

func (s *stubBackend) FreezeUser(ctx context.Context, id string, hours int, reason string) error {
	s.frozenId = id
	s.frozenHours = hours
	s.frozenReason = reason
	return nil
}

func (s *stubBackend) UnfreezeUser(ctx context.Context, id string) error {
	s.unfrozenId = id
	return nil
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func loadedModel(api Backend, rows []domain.RiskUser) Model {
	m := InitialModel(api, time.Second, 100, 40)
	m, _ = m.Update(riskUsersLoadedMsg{rows: rows})
	return m
}

func TestFreezeDefaultsToTwentyFourHours(t *testing.T) {
	api := &stubBackend{}
	m := loadedModel(api, []domain.RiskUser{{Id: "u1", FullName: "Aram", ReportCount: 3}})

	m, _ = m.Update(key('f'))
	if m.mode != modeFreezeHours {
		t.Fatal("Expected the hours prompt")
	}

	// Empty input takes the default.
	m, _ = m.Update(enter())
	if m.mode != modeFreezeReason {
		t.Fatal("Expected the reason prompt")
	}
	_, cmd := m.Update(enter())
	if cmd == nil {
		t.Fatal("Expected a freeze command")
	}
	cmd()
	if api.frozenId != "u1" || api.frozenHours != defaultFreezeHours {
		t.Errorf("Expected u1 frozen for %dh, got %s %dh", defaultFreezeHours, api.frozenId, api.frozenHours)
	}
}

func TestFreezeHoursValidation(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		valid bool
		hours int
	}{
		{"explicit hours", "72", true, 72},
		{"zero", "0", false, 0},
		{"negative", "-5", false, 0},
		{"not a number", "soon", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubBackend{}
			m := loadedModel(api, []domain.RiskUser{{Id: "u1", FullName: "Aram"}})

			m, _ = m.Update(key('f'))
			for _, r := range tt.typed {
				m, _ = m.Update(key(r))
			}
			m, _ = m.Update(enter())

			if !tt.valid {
				if m.mode != modeFreezeHours {
					t.Error("Expected to stay on the hours prompt")
				}
				if m.Error == "" {
					t.Error("Expected a validation error")
				}
				return
			}
			if m.mode != modeFreezeReason {
				t.Fatal("Expected the reason prompt")
			}
			for _, r := range "harassment" {
				m, _ = m.Update(key(r))
			}
			_, cmd := m.Update(enter())
			cmd()
			if api.frozenHours != tt.hours || api.frozenReason != "harassment" {
				t.Errorf("Expected %dh with reason, got %dh %q", tt.hours, api.frozenHours, api.frozenReason)
			}
		})
	}
}

func TestUnfreezeOnlyWhenFrozen(t *testing.T) {
	future := time.Now().Add(2 * time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	tests := []struct {
		name   string
		until  *time.Time
		expect bool
	}{
		{"active freeze", &future, true},
		{"expired freeze", &past, false},
		{"never frozen", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubBackend{}
			m := loadedModel(api, []domain.RiskUser{{Id: "u1", FullName: "Aram", ChatFrozenUntil: tt.until}})

			_, cmd := m.Update(key('u'))
			if tt.expect {
				if cmd == nil {
					t.Fatal("Expected an unfreeze command")
				}
				cmd()
				if api.unfrozenId != "u1" {
					t.Errorf("Expected u1 unfrozen, got %q", api.unfrozenId)
				}
			} else if cmd != nil {
				t.Error("Expected no unfreeze command")
			}
		})
	}
}

func TestFilterMatchesRole(t *testing.T) {
	rows := []domain.RiskUser{
		{Id: "u1", FullName: "Aram", Email: "aram@example.com", Role: domain.RoleSeller},
		{Id: "u2", FullName: "Bana", Email: "bana@example.com", Role: domain.RoleBuyer},
	}
	m := loadedModel(&stubBackend{}, rows)

	m, _ = m.Update(key('/'))
	for _, r := range "buyer" {
		m, _ = m.Update(key(r))
	}
	if len(m.Filtered) != 1 || m.Filtered[0].Id != "u2" {
		t.Fatalf("Expected only the buyer, got %d rows", len(m.Filtered))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("Expected esc to leave the filter input")
	}
}
