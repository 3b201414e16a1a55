package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/alert"
	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

// Backend covers the notification operations.
type Backend interface {
	Notifications(ctx context.Context) ([]domain.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) error
	MarkNotificationTypeRead(ctx context.Context, t domain.NotificationType) error
}

var tabs = []domain.NotificationType{
	"", // all
	domain.NotificationAdminVulgar,
	domain.NotificationAdminSafety,
	domain.NotificationAdminReport,
	domain.NotificationAdminComplaint,
}

func tabLabel(t domain.NotificationType) string {
	if t == "" {
		return "ALL"
	}
	return strings.TrimPrefix(string(t), "ADMIN_")
}

type Model struct {
	Width         int
	Height        int
	Notifications []domain.Notification
	Selected      int
	Offset        int
	Tab           int
	UnreadCount   int
	Status        string
	Error         string

	api      Backend
	alerter  *alert.Alerter
	interval time.Duration
	timeout  time.Duration

	// generation invalidates in-flight polls. A response tagged with an
	// old generation is dropped entirely so a stale count can neither
	// repaint the badge nor trigger the sound after a stop or restart.
	generation int
	polling    bool
	focused    bool
}

type loadedMsg struct {
	generation    int
	notifications []domain.Notification
	err           error
}

type pollTickMsg struct {
	generation int
}

type mutationDoneMsg struct {
	status string
	err    error
}

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func InitialModel(api Backend, alerter *alert.Alerter, interval, timeout time.Duration, width, height int) Model {
	return Model{
		Width:    width,
		Height:   height,
		api:      api,
		alerter:  alerter,
		interval: interval,
		timeout:  timeout,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Start begins the badge poll loop. It runs for the whole session,
// independent of which view is focused.
func (m Model) Start() (Model, tea.Cmd) {
	m.generation++
	m.polling = true
	return m, load(m.api, m.timeout, m.generation)
}

// Stop invalidates the poll loop. In-flight responses are discarded.
func (m Model) Stop() Model {
	m.generation++
	m.polling = false
	return m
}

func load(api Backend, timeout time.Duration, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rows, err := api.Notifications(ctx)
		if err != nil {
			log.Printf("Failed to load notifications: %v", err)
		}
		return loadedMsg{generation: generation, notifications: rows, err: err}
	}
}

// reload fetches immediately on a fresh generation. Bumping first orphans
// the previous chain's pending tick, so direct loads (view activation,
// invalidation, manual refresh) never stack a second poll chain on top of
// the running one.
func (m *Model) reload() tea.Cmd {
	m.generation++
	return load(m.api, m.timeout, m.generation)
}

func (m Model) tickPoll() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return pollTickMsg{generation: generation}
	})
}

func markAll(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.MarkAllNotificationsRead(ctx); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ All notifications marked read"}
	}
}

func markType(api Backend, timeout time.Duration, t domain.NotificationType) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.MarkNotificationTypeRead(ctx, t); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("✓ %s marked read", t)}
	}
}

// visible filters the cached rows by the selected tab.
func (m Model) visible() []domain.Notification {
	t := tabs[m.Tab]
	if t == "" {
		return m.Notifications
	}
	var out []domain.Notification
	for _, n := range m.Notifications {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.focused = true
		// The poll keeps the list fresh, but a direct load makes the
		// view current immediately on open.
		if m.polling {
			return m, m.reload()
		}
		return m, nil

	case common.DeactivateViewMsg:
		// Stay polling for the header badge, only drop view focus.
		m.focused = false
		return m, nil

	case common.InvalidateMsg:
		if m.polling && msg.Has(common.ScopeNotifications) {
			return m, m.reload()
		}
		return m, nil

	case loadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		if !m.polling {
			return m, nil
		}
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, m.tickPoll()
		}
		m.Error = ""
		m.Notifications = msg.notifications

		count := domain.UnreadAdminCount(msg.notifications)
		// Sound only on a strict increase. A shrinking or unchanged
		// count (reads, deletions elsewhere) stays silent.
		if count > m.UnreadCount {
			m.alerter.Play()
		}
		m.UnreadCount = count

		if m.Selected >= len(m.visible()) {
			m.Selected = len(m.visible()) - 1
		}
		if m.Selected < 0 {
			m.Selected = 0
		}
		return m, m.tickPoll()

	case pollTickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		return m, load(m.api, m.timeout, m.generation)

	case mutationDoneMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.Status = ""
		} else {
			m.Status = msg.status
			m.Error = ""
		}
		return m, tea.Batch(m.reload(), clearStatusAfter(3*time.Second))

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		visible := m.visible()
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				if m.Selected < m.Offset {
					m.Offset = m.Selected
				}
			}
		case "down", "j":
			if m.Selected < len(visible)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "right", "l":
			m.Tab = (m.Tab + 1) % len(tabs)
			m.Selected = 0
			m.Offset = 0
		case "left", "h":
			m.Tab = (m.Tab + len(tabs) - 1) % len(tabs)
			m.Selected = 0
			m.Offset = 0
		case "a":
			return m, markAll(m.api, m.timeout)
		case "t":
			if tabs[m.Tab] != "" {
				return m, markType(m.api, m.timeout, tabs[m.Tab])
			}
		case "r":
			return m, m.reload()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("🔔 Notifications (%d unread)", m.UnreadCount)))
	s.WriteString("\n")

	var tabLine []string
	for i, t := range tabs {
		label := tabLabel(t)
		if i == m.Tab {
			tabLine = append(tabLine, common.ListItemSelectedStyle.Render("["+label+"]"))
		} else {
			tabLine = append(tabLine, common.ListBadgeStyle.Render(" "+label+" "))
		}
	}
	s.WriteString(strings.Join(tabLine, " "))
	s.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No notifications in this tab."))
	} else {
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(visible))
		for i := start; i < end; i++ {
			n := visible[i]
			marker := "  "
			if n.Unread() {
				marker = "● "
			}
			line := marker + fmt.Sprintf("[%s] %s", n.Type, util.Truncate(n.Title, 50))
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
			}
			s.WriteString("  " + common.ListBadgeStyle.Render(util.FormatTimeAgo(n.CreatedAt)))
			s.WriteString("\n")
			if i == m.Selected && n.Body != "" {
				s.WriteString("    " + common.ListBadgeStyle.Render(util.Truncate(n.Body, 70)))
				s.WriteString("\n")
			}
		}
		if len(visible) > common.DefaultItemsPerPage {
			s.WriteString("\n" + common.ListBadgeStyle.Render(
				fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(visible))))
		}
	}

	if m.Status != "" {
		s.WriteString("\n" + common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("←/→: type • a: mark all read • t: mark type read • r: reload"))
	return s.String()
}
