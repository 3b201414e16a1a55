package riskusers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

// defaultFreezeHours is the chat freeze applied when no duration is given.
const defaultFreezeHours = 24

// Backend covers the safety view operations.
type Backend interface {
	RiskUsers(ctx context.Context) ([]domain.RiskUser, error)
	FreezeUser(ctx context.Context, id string, hours int, reason string) error
	UnfreezeUser(ctx context.Context, id string) error
}

type inputMode int

const (
	modeNone inputMode = iota
	modeFilter
	modeFreezeHours
	modeFreezeReason
)

type Model struct {
	Width    int
	Height   int
	Rows     []domain.RiskUser
	Filtered []domain.RiskUser
	Selected int
	Offset   int
	Query    string
	Status   string
	Error    string

	api     Backend
	timeout time.Duration
	active  bool

	mode         inputMode
	input        textinput.Model
	pendingId    string
	pendingHours int
}

type riskUsersLoadedMsg struct {
	rows []domain.RiskUser
	err  error
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

func InitialModel(api Backend, timeout time.Duration, width, height int) Model {
	input := textinput.New()
	input.CharLimit = 100

	return Model{
		Width:   width,
		Height:  height,
		api:     api,
		timeout: timeout,
		input:   input,
	}
}

// Capturing reports whether a text input currently owns the keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeNone
}

func (m Model) Init() tea.Cmd {
	return nil
}

func loadRiskUsers(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rows, err := api.RiskUsers(ctx)
		if err != nil {
			log.Printf("Failed to load risk users: %v", err)
		}
		return riskUsersLoadedMsg{rows: rows, err: err}
	}
}

func freezeUser(api Backend, timeout time.Duration, id string, hours int, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.FreezeUser(ctx, id, hours, reason); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("✓ Chat frozen for %dh", hours)}
	}
}

func unfreezeUser(api Backend, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.UnfreezeUser(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ Chat unfrozen"}
	}
}

func (m *Model) applyFilter() {
	m.Filtered = domain.FilterRiskUsers(m.Rows, m.Query)
	if m.Selected >= len(m.Filtered) {
		m.Selected = len(m.Filtered) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
	m.Offset = 0
}

func (m *Model) selectedRow() *domain.RiskUser {
	if m.Selected < len(m.Filtered) {
		return &m.Filtered[m.Selected]
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadRiskUsers(m.api, m.timeout)

	case common.DeactivateViewMsg:
		m.active = false
		m.mode = modeNone
		m.input.Blur()
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeRiskUsers) {
			return m, loadRiskUsers(m.api, m.timeout)
		}
		return m, nil

	case riskUsersLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Rows = msg.rows
		m.applyFilter()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.Status = ""
		} else {
			m.Status = msg.status
			m.Error = ""
		}
		return m, tea.Batch(loadRiskUsers(m.api, m.timeout), clearStatusAfter(3*time.Second))

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			switch msg.String() {
			case "esc", "enter":
				m.mode = modeNone
				m.input.Blur()
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			m.Query = m.input.Value()
			m.applyFilter()
			return m, cmd

		case modeFreezeHours:
			switch msg.String() {
			case "esc":
				m.mode = modeNone
				m.input.Blur()
				return m, nil
			case "enter":
				hours := defaultFreezeHours
				if v := strings.TrimSpace(m.input.Value()); v != "" {
					parsed, err := strconv.Atoi(v)
					if err != nil || parsed <= 0 {
						m.Error = "hours must be a positive number"
						return m, nil
					}
					hours = parsed
				}
				m.pendingHours = hours
				m.mode = modeFreezeReason
				m.input.Placeholder = "Freeze reason (optional)"
				m.input.SetValue("")
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case modeFreezeReason:
			switch msg.String() {
			case "esc":
				m.mode = modeNone
				m.input.Blur()
				return m, nil
			case "enter":
				reason := strings.TrimSpace(m.input.Value())
				m.mode = modeNone
				m.input.Blur()
				return m, freezeUser(m.api, m.timeout, m.pendingId, m.pendingHours, reason)
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				if m.Selected < m.Offset {
					m.Offset = m.Selected
				}
			}
		case "down", "j":
			if m.Selected < len(m.Filtered)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "/":
			m.mode = modeFilter
			m.input.Placeholder = "name, email or role"
			m.input.SetValue(m.Query)
			m.input.Focus()
			return m, textinput.Blink
		case "f":
			if row := m.selectedRow(); row != nil {
				m.mode = modeFreezeHours
				m.pendingId = row.Id
				m.input.Placeholder = fmt.Sprintf("Hours (default %d)", defaultFreezeHours)
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
		case "u":
			if row := m.selectedRow(); row != nil && row.Frozen(time.Now()) {
				return m, unfreezeUser(m.api, m.timeout, row.Id)
			}
		case "r":
			return m, loadRiskUsers(m.api, m.timeout)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	caption := fmt.Sprintf("Risk users (%d)", len(m.Filtered))
	if m.Query != "" {
		caption = fmt.Sprintf("Risk users (%d of %d)", len(m.Filtered), len(m.Rows))
	}
	s.WriteString(common.CaptionStyle.Render(caption))
	s.WriteString("\n\n")

	if m.mode == modeFreezeHours || m.mode == modeFreezeReason {
		label := "Freeze chat: duration in hours"
		if m.mode == modeFreezeReason {
			label = "Freeze chat: reason"
		}
		s.WriteString(common.ListItemStyle.Render(label))
		s.WriteString("\n")
		s.WriteString(m.input.View())
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("enter: continue • esc: cancel"))
		return s.String()
	}

	if m.mode == modeFilter || m.Query != "" {
		s.WriteString(common.ListItemStyle.Render("Filter: "))
		if m.mode == modeFilter {
			s.WriteString(m.input.View())
		} else {
			s.WriteString(m.Query)
		}
		s.WriteString("\n\n")
	}

	if len(m.Filtered) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No flagged users."))
	} else {
		now := time.Now()
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(m.Filtered))
		for i := start; i < end; i++ {
			row := m.Filtered[i]
			line := fmt.Sprintf("%-26s reports:%d strikes:%d",
				util.Truncate(row.FullName, 26), row.ReportCount, row.ModerationStrikes)
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
			}
			if row.Blocked {
				s.WriteString("  " + common.ListErrorStyle.Render("BLOCKED"))
			}
			if row.Frozen(now) {
				s.WriteString("  " + common.ListBadgeStyle.Render(
					"frozen until "+row.ChatFrozenUntil.Format(util.DateTimeFormat())))
			}
			s.WriteString("\n")
		}
		if len(m.Filtered) > common.DefaultItemsPerPage {
			s.WriteString("\n" + common.ListBadgeStyle.Render(
				fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Filtered))))
		}
	}

	if m.Status != "" {
		s.WriteString("\n" + common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("/: filter • f: freeze chat • u: unfreeze • r: reload"))
	return s.String()
}
