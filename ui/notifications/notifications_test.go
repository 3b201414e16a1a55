package notifications

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/alert"
	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
)

type stubBackend struct {
	rows          []domain.Notification
	markedAll     bool
	markedType    domain.NotificationType
	hasMarkedType bool
}

func (s *stubBackend) Notifications(ctx context.Context) ([]domain.Notification, error) {
	return s.rows, nil
}

func (s *stubBackend) MarkAllNotificationsRead(ctx context.Context) error {
	s.markedAll = true
	return nil
}

func (s *stubBackend) MarkNotificationTypeRead(ctx context.Context, t domain.NotificationType) error {
	s.markedType = t
	s.hasMarkedType = true
	return nil
}

func unreadRows(count int, t domain.NotificationType) []domain.Notification {
	rows := make([]domain.Notification, count)
	for i := range rows {
		rows[i] = domain.Notification{
			Id:        "n" + string(rune('a'+i)),
			Type:      t,
			Title:     "report",
			CreatedAt: time.Now(),
		}
	}
	return rows
}

func startedModel(api Backend, alerter *alert.Alerter) Model {
	m := InitialModel(api, alerter, time.Minute, time.Second, 100, 40)
	m, _ = m.Start()
	return m
}

func TestAlertFiresOnlyOnStrictIncrease(t *testing.T) {
	var buf bytes.Buffer
	alerter := alert.New(&buf, func() bool { return true })
	alerter.Prime()

	m := startedModel(&stubBackend{}, alerter)

	m, _ = m.Update(loadedMsg{generation: m.generation, notifications: unreadRows(3, domain.NotificationAdminReport)})
	if m.UnreadCount != 3 {
		t.Errorf("Expected unread count 3, got %d", m.UnreadCount)
	}
	if buf.Len() != 1 {
		t.Errorf("Expected one alert after first increase, got %d bytes", buf.Len())
	}

	m, _ = m.Update(loadedMsg{generation: m.generation, notifications: unreadRows(5, domain.NotificationAdminReport)})
	if buf.Len() != 2 {
		t.Errorf("Expected a second alert on the increase to 5, got %d bytes", buf.Len())
	}

	m, _ = m.Update(loadedMsg{generation: m.generation, notifications: unreadRows(2, domain.NotificationAdminReport)})
	if m.UnreadCount != 2 {
		t.Errorf("Expected unread count 2, got %d", m.UnreadCount)
	}
	if buf.Len() != 2 {
		t.Errorf("Expected no alert on a decrease, got %d bytes", buf.Len())
	}

	m, _ = m.Update(loadedMsg{generation: m.generation, notifications: unreadRows(2, domain.NotificationAdminReport)})
	if buf.Len() != 2 {
		t.Errorf("Expected no alert on an unchanged count, got %d bytes", buf.Len())
	}
}

func TestAlertSilentWithoutPrimeOrPreference(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		prime   bool
	}{
		{"preference off", false, true},
		{"never primed", true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			alerter := alert.New(&buf, func() bool { return c.enabled })
			if c.prime {
				alerter.Prime()
			}

			m := startedModel(&stubBackend{}, alerter)
			m, _ = m.Update(loadedMsg{generation: m.generation, notifications: unreadRows(4, domain.NotificationAdminSafety)})
			if m.UnreadCount != 4 {
				t.Errorf("Expected the badge to update regardless, got %d", m.UnreadCount)
			}
			if buf.Len() != 0 {
				t.Errorf("Expected silence, got %d bytes", buf.Len())
			}
		})
	}
}

func TestStaleResponsesAreDroppedAfterStop(t *testing.T) {
	var buf bytes.Buffer
	alerter := alert.New(&buf, func() bool { return true })
	alerter.Prime()

	m := startedModel(&stubBackend{}, alerter)
	stale := m.generation
	m = m.Stop()

	m, cmd := m.Update(loadedMsg{generation: stale, notifications: unreadRows(6, domain.NotificationAdminVulgar)})
	if m.UnreadCount != 0 {
		t.Errorf("Expected stale response to be dropped, got count %d", m.UnreadCount)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no alert from a stale response, got %d bytes", buf.Len())
	}
	if cmd != nil {
		t.Error("Expected no follow-up tick from a stale response")
	}

	m, cmd = m.Update(pollTickMsg{generation: stale})
	if cmd != nil {
		t.Error("Expected a stale tick to end the chain")
	}
}

func TestDirectLoadsDoNotStackPollChains(t *testing.T) {
	m := startedModel(&stubBackend{}, alert.New(nil, nil))

	// First chain established by Start.
	m, _ = m.Update(loadedMsg{generation: m.generation})
	chain1 := m.generation

	// A view activation loads directly. It must orphan the first chain
	// instead of spawning a second one next to it.
	m, cmd := m.Update(common.ActivateViewMsg{})
	if cmd == nil {
		t.Fatal("Expected a direct load on activation")
	}
	if m.generation == chain1 {
		t.Fatal("Expected the direct load to advance the generation")
	}

	_, cmd = m.Update(pollTickMsg{generation: chain1})
	if cmd != nil {
		t.Error("Expected the orphaned chain's tick to die")
	}

	// The direct load's completion continues as the single chain.
	m, cmd = m.Update(loadedMsg{generation: m.generation})
	if cmd == nil {
		t.Error("Expected the surviving chain to schedule its next tick")
	}

	// Same contract for invalidation and the manual reload key.
	before := m.generation
	m, _ = m.Update(common.InvalidateMsg{Scopes: []common.Scope{common.ScopeNotifications}})
	if m.generation == before {
		t.Error("Expected invalidation to advance the generation")
	}
	before = m.generation
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.generation == before {
		t.Error("Expected the reload key to advance the generation")
	}
}

func TestNoTickAfterStop(t *testing.T) {
	m := startedModel(&stubBackend{}, alert.New(nil, nil))
	m = m.Stop()

	// Even a response carrying the current generation must not schedule a
	// tick once polling is off.
	_, cmd := m.Update(loadedMsg{generation: m.generation})
	if cmd != nil {
		t.Error("Expected no tick while stopped")
	}
}

func TestRestartBumpsGeneration(t *testing.T) {
	m := startedModel(&stubBackend{}, alert.New(nil, nil))
	first := m.generation
	m = m.Stop()
	m, _ = m.Start()
	if m.generation <= first {
		t.Errorf("Expected restart to advance the generation past %d, got %d", first, m.generation)
	}
	if !m.polling {
		t.Error("Expected polling after restart")
	}
}

func TestBadgeCountsAdminTypesOnly(t *testing.T) {
	rows := unreadRows(2, domain.NotificationAdminComplaint)
	rows = append(rows, domain.Notification{Id: "x", Type: "CHAT_MESSAGE", Title: "hi", CreatedAt: time.Now()})
	read := time.Now()
	rows = append(rows, domain.Notification{Id: "y", Type: domain.NotificationAdminReport, ReadAt: &read, CreatedAt: time.Now()})

	m := startedModel(&stubBackend{}, alert.New(nil, nil))
	m, _ = m.Update(loadedMsg{generation: m.generation, notifications: rows})
	if m.UnreadCount != 2 {
		t.Errorf("Expected badge 2, got %d", m.UnreadCount)
	}
}

func TestTabCyclingAndTypeMark(t *testing.T) {
	api := &stubBackend{}
	m := startedModel(api, alert.New(nil, nil))
	m, _ = m.Update(common.ActivateViewMsg{})

	// On the ALL tab 't' has nothing to mark.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if cmd != nil {
		t.Error("Expected no mark command on the ALL tab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if tabs[m.Tab] != domain.NotificationAdminVulgar {
		t.Errorf("Expected VULGAR tab, got %s", tabs[m.Tab])
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if cmd == nil {
		t.Fatal("Expected a mark command on a typed tab")
	}
	cmd()
	if !api.hasMarkedType || api.markedType != domain.NotificationAdminVulgar {
		t.Errorf("Expected ADMIN_VULGAR marked read, got %q", api.markedType)
	}
}

func TestKeysIgnoredWithoutFocus(t *testing.T) {
	api := &stubBackend{}
	m := startedModel(api, alert.New(nil, nil))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if cmd != nil {
		t.Error("Expected keys to be ignored while another view has focus")
	}
}

func TestVisibleFiltersByTab(t *testing.T) {
	rows := unreadRows(2, domain.NotificationAdminReport)
	rows = append(rows, unreadRows(1, domain.NotificationAdminSafety)...)

	m := startedModel(&stubBackend{}, alert.New(nil, nil))
	m, _ = m.Update(loadedMsg{generation: m.generation, notifications: rows})

	if got := len(m.visible()); got != 3 {
		t.Errorf("Expected 3 rows on the ALL tab, got %d", got)
	}
	for m.Tab = range tabs {
		if tabs[m.Tab] == domain.NotificationAdminSafety {
			break
		}
	}
	if got := len(m.visible()); got != 1 {
		t.Errorf("Expected 1 SAFETY row, got %d", got)
	}
}
