package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tapsoran/admintui/domain"
)

// mockBackend implements cli.Backend for testing
type mockBackend struct {
	stats         *domain.Stats
	users         []domain.User
	categories    []domain.Category
	requests      []domain.RequestRow
	complaints    []domain.Complaint
	riskUsers     []domain.RiskUser
	notifications []domain.Notification

	complaintsStatus string
	readAllCalled    bool
	readTypeArg      domain.NotificationType
	err              error
}

func (m *mockBackend) Stats(ctx context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}

func (m *mockBackend) Users(ctx context.Context) ([]domain.User, error) {
	return m.users, m.err
}

func (m *mockBackend) Categories(ctx context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *mockBackend) Requests(ctx context.Context) ([]domain.RequestRow, error) {
	return m.requests, m.err
}

func (m *mockBackend) Complaints(ctx context.Context, status string) ([]domain.Complaint, error) {
	m.complaintsStatus = status
	return m.complaints, m.err
}

func (m *mockBackend) RiskUsers(ctx context.Context) ([]domain.RiskUser, error) {
	return m.riskUsers, m.err
}

func (m *mockBackend) Notifications(ctx context.Context) ([]domain.Notification, error) {
	return m.notifications, m.err
}

func (m *mockBackend) MarkAllNotificationsRead(ctx context.Context) error {
	m.readAllCalled = true
	return m.err
}

func (m *mockBackend) MarkNotificationTypeRead(ctx context.Context, t domain.NotificationType) error {
	m.readTypeArg = t
	return m.err
}

func runCommand(t *testing.T, backend *mockBackend, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	h := NewHandler(&buf, backend, nil)
	if err := h.Execute(context.Background(), args); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return buf.String()
}

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     []string
		wantJSON bool
	}{
		{"no flags", []string{"stats"}, []string{"stats"}, false},
		{"json long", []string{"--json", "stats"}, []string{"stats"}, true},
		{"json short", []string{"stats", "-j"}, []string{"stats"}, true},
		{"empty", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, jsonMode := parseGlobalFlags(tt.args)
			if jsonMode != tt.wantJSON {
				t.Errorf("Expected jsonMode %v, got %v", tt.wantJSON, jsonMode)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d args, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected arg %q, got %q", tt.want[i], got[i])
				}
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &mockBackend{}, nil)
	err := h.Execute(context.Background(), []string{"bogus"})
	if err == nil {
		t.Fatal("Expected an error for an unknown command")
	}
	if !strings.Contains(buf.String(), "unknown command") {
		t.Errorf("Expected error output, got %q", buf.String())
	}
}

func TestStatsText(t *testing.T) {
	backend := &mockBackend{stats: &domain.Stats{Users: 7, Categories: 3, Requests: 12}}
	out := runCommand(t, backend, "stats")
	if !strings.Contains(out, "Users:      7") {
		t.Errorf("Expected user count in output, got %q", out)
	}
	if !strings.Contains(out, "Requests:   12") {
		t.Errorf("Expected request count in output, got %q", out)
	}
}

func TestStatsJSON(t *testing.T) {
	backend := &mockBackend{stats: &domain.Stats{Users: 7, Categories: 3, Requests: 12}}
	out := runCommand(t, backend, "--json", "stats")

	var resp StatsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if resp.Users != 7 {
		t.Errorf("Expected 7 users, got %d", resp.Users)
	}
}

func TestUsersFilter(t *testing.T) {
	backend := &mockBackend{users: []domain.User{
		{Id: "1", Role: domain.RoleBuyer, FullName: "Aysel Quliyeva", Email: "aysel@example.az"},
		{Id: "2", Role: domain.RoleSeller, FullName: "Rashad Mammadov", Email: "rashad@example.az"},
	}}

	out := runCommand(t, backend, "--json", "users", "aysel")

	var resp UsersResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("Expected 1 filtered user, got %d", resp.Count)
	}
	if resp.Users[0].FullName != "Aysel Quliyeva" {
		t.Errorf("Expected Aysel Quliyeva, got %s", resp.Users[0].FullName)
	}
}

func TestComplaintsStatusArg(t *testing.T) {
	backend := &mockBackend{}

	runCommand(t, backend, "complaints", "open")
	if backend.complaintsStatus != "OPEN" {
		t.Errorf("Expected status OPEN passed to backend, got %q", backend.complaintsStatus)
	}

	var buf bytes.Buffer
	h := NewHandler(&buf, backend, nil)
	if err := h.Execute(context.Background(), []string{"complaints", "bogus"}); err == nil {
		t.Error("Expected an error for an unknown status")
	}
}

func TestRequestsText(t *testing.T) {
	backend := &mockBackend{requests: []domain.RequestRow{
		{
			Id:        "r1",
			Title:     "Kondisioner təmiri",
			Scope:     domain.ScopeAllSellers,
			CreatedAt: time.Now().Add(-2 * time.Hour),
			Buyer:     &domain.UserRef{Id: "1", FullName: "Aysel Quliyeva"},
		},
	}}
	out := runCommand(t, backend, "requests")
	if !strings.Contains(out, "Kondisioner təmiri") {
		t.Errorf("Expected request title in output, got %q", out)
	}
	if !strings.Contains(out, "(1 total)") {
		t.Errorf("Expected total line, got %q", out)
	}
}

func TestBackendErrorPropagates(t *testing.T) {
	backend := &mockBackend{err: errors.New("connection refused")}
	var buf bytes.Buffer
	h := NewHandler(&buf, backend, nil)

	err := h.Execute(context.Background(), []string{"users"})
	if err == nil {
		t.Fatal("Expected the backend error to propagate")
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("Expected error in output, got %q", buf.String())
	}
}

func TestHelp(t *testing.T) {
	out := runCommand(t, &mockBackend{}, "help")
	if !strings.Contains(out, "risk-users") {
		t.Errorf("Expected command list in help, got %q", out)
	}

	out = runCommand(t, &mockBackend{}, "--json", "help")
	var resp HelpResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to decode JSON help: %v", err)
	}
	if len(resp.Commands) == 0 {
		t.Error("Expected commands in JSON help")
	}
}
