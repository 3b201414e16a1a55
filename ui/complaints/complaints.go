package complaints

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

// defaultBlockDays is how long a block issued from a complaint lasts.
const defaultBlockDays = 7

// Backend covers the complaint moderation operations.
type Backend interface {
	Complaints(ctx context.Context, status string) ([]domain.Complaint, error)
	SetComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) error
	BlockFromComplaint(ctx context.Context, id, reason, blockedUntil string) error
}

var tabs = []string{"ALL", "OPEN", "RESOLVED", "DISMISSED"}

type Model struct {
	Width      int
	Height     int
	Complaints []domain.Complaint
	Selected   int
	Offset     int
	Tab        int
	Status     string
	Error      string

	api     Backend
	timeout time.Duration
	active  bool

	blocking    bool
	reasonInput textinput.Model
	pendingId   string
}

type complaintsLoadedMsg struct {
	complaints []domain.Complaint
	err        error
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
	input.Placeholder = "Block reason"
	input.CharLimit = 200

	return Model{
		Width:       width,
		Height:      height,
		api:         api,
		timeout:     timeout,
		reasonInput: input,
	}
}

// Capturing reports whether the block reason input owns the keyboard.
func (m Model) Capturing() bool {
	return m.blocking
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) currentStatus() string {
	if m.Tab == 0 {
		return ""
	}
	return tabs[m.Tab]
}

func loadComplaints(api Backend, timeout time.Duration, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		complaints, err := api.Complaints(ctx, status)
		if err != nil {
			log.Printf("Failed to load complaints: %v", err)
		}
		return complaintsLoadedMsg{complaints: complaints, err: err}
	}
}

func setStatus(api Backend, timeout time.Duration, id string, status domain.ComplaintStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.SetComplaintStatus(ctx, id, status); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("✓ Complaint %s", strings.ToLower(string(status)))}
	}
}

func blockTarget(api Backend, timeout time.Duration, id, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		until := time.Now().AddDate(0, 0, defaultBlockDays).Format(time.RFC3339)
		if err := api.BlockFromComplaint(ctx, id, reason, until); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ Target user blocked"}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadComplaints(m.api, m.timeout, m.currentStatus())

	case common.DeactivateViewMsg:
		m.active = false
		m.blocking = false
		m.reasonInput.Blur()
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeComplaints) {
			return m, loadComplaints(m.api, m.timeout, m.currentStatus())
		}
		return m, nil

	case complaintsLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Complaints = msg.complaints
		if m.Selected >= len(m.Complaints) {
			m.Selected = len(m.Complaints) - 1
		}
		if m.Selected < 0 {
			m.Selected = 0
		}
		return m, nil

	case mutationDoneMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.Status = ""
		} else {
			m.Status = msg.status
			m.Error = ""
			// Blocking or resolving touches user and risk views too.
			cmds = append(cmds, func() tea.Msg {
				return common.InvalidateMsg{Scopes: []common.Scope{
					common.ScopeUsers,
					common.ScopeRiskUsers,
				}}
			})
		}
		cmds = append(cmds,
			loadComplaints(m.api, m.timeout, m.currentStatus()),
			clearStatusAfter(3*time.Second),
		)
		return m, tea.Batch(cmds...)

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.KeyMsg:
		if m.blocking {
			switch msg.String() {
			case "esc":
				m.blocking = false
				m.reasonInput.Blur()
				return m, nil
			case "enter":
				reason := strings.TrimSpace(m.reasonInput.Value())
				if reason == "" {
					m.Error = "a block reason is required"
					return m, nil
				}
				m.blocking = false
				m.reasonInput.Blur()
				return m, blockTarget(m.api, m.timeout, m.pendingId, reason)
			}
			m.reasonInput, cmd = m.reasonInput.Update(msg)
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
			if m.Selected < len(m.Complaints)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "right", "l":
			m.Tab = (m.Tab + 1) % len(tabs)
			m.Selected = 0
			m.Offset = 0
			return m, loadComplaints(m.api, m.timeout, m.currentStatus())
		case "left", "h":
			m.Tab = (m.Tab + len(tabs) - 1) % len(tabs)
			m.Selected = 0
			m.Offset = 0
			return m, loadComplaints(m.api, m.timeout, m.currentStatus())
		case "s":
			if m.Selected < len(m.Complaints) {
				return m, setStatus(m.api, m.timeout, m.Complaints[m.Selected].Id, domain.ComplaintResolved)
			}
		case "x":
			if m.Selected < len(m.Complaints) {
				return m, setStatus(m.api, m.timeout, m.Complaints[m.Selected].Id, domain.ComplaintDismissed)
			}
		case "o":
			if m.Selected < len(m.Complaints) {
				return m, setStatus(m.api, m.timeout, m.Complaints[m.Selected].Id, domain.ComplaintOpen)
			}
		case "b":
			if m.Selected < len(m.Complaints) {
				m.blocking = true
				m.pendingId = m.Complaints[m.Selected].Id
				m.reasonInput.SetValue(m.Complaints[m.Selected].Reason)
				m.reasonInput.Focus()
				return m, textinput.Blink
			}
		case "r":
			return m, loadComplaints(m.api, m.timeout, m.currentStatus())
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("Complaints (%d)", len(m.Complaints))))
	s.WriteString("\n")

	var tabLine []string
	for i, tab := range tabs {
		if i == m.Tab {
			tabLine = append(tabLine, common.ListItemSelectedStyle.Render("["+tab+"]"))
		} else {
			tabLine = append(tabLine, common.ListBadgeStyle.Render(" "+tab+" "))
		}
	}
	s.WriteString(strings.Join(tabLine, " "))
	s.WriteString("\n\n")

	if m.blocking {
		var target string
		for _, c := range m.Complaints {
			if c.Id == m.pendingId {
				target = c.TargetUser.FullName
			}
		}
		s.WriteString(common.ListItemStyle.Render(
			fmt.Sprintf("Block %s for %d days", target, defaultBlockDays)))
		s.WriteString("\n")
		s.WriteString(m.reasonInput.View())
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("enter: block • esc: cancel"))
		return s.String()
	}

	if len(m.Complaints) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No complaints in this tab."))
	} else {
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(m.Complaints))
		for i := start; i < end; i++ {
			c := m.Complaints[i]
			line := fmt.Sprintf("[%s] %s → %s: %s",
				c.Status, util.Truncate(c.Reporter.FullName, 18),
				util.Truncate(c.TargetUser.FullName, 18), util.Truncate(c.Reason, 30))
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
			}
			s.WriteString("  " + common.ListBadgeStyle.Render(util.FormatTimeAgo(c.CreatedAt)))
			s.WriteString("\n")
			if i == m.Selected && c.Details != "" {
				s.WriteString("  " + common.ListBadgeStyle.Render("\""+util.Truncate(c.Details, 60)+"\""))
				s.WriteString("\n")
			}
		}
		if len(m.Complaints) > common.DefaultItemsPerPage {
			s.WriteString("\n" + common.ListBadgeStyle.Render(
				fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Complaints))))
		}
	}

	if m.Status != "" {
		s.WriteString("\n" + common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("←/→: status • s: resolve • x: dismiss • o: reopen • b: block target • r: reload"))
	return s.String()
}
