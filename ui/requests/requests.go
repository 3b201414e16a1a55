package requests

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

// Backend covers the request feed operations.
type Backend interface {
	Requests(ctx context.Context) ([]domain.RequestRow, error)
	DeleteRequest(ctx context.Context, id string) error
	DeleteAllRequests(ctx context.Context) error
}

type confirmMode int

const (
	confirmNone confirmMode = iota
	confirmOne
	confirmAll
)

type Model struct {
	Width    int
	Height   int
	Requests []domain.RequestRow
	Selected int
	Offset   int
	Status   string
	Error    string

	api     Backend
	timeout time.Duration
	active  bool
	confirm confirmMode
}

type requestsLoadedMsg struct {
	requests []domain.RequestRow
	err      error
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
	return Model{
		Width:   width,
		Height:  height,
		api:     api,
		timeout: timeout,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func loadRequests(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		requests, err := api.Requests(ctx)
		if err != nil {
			log.Printf("Failed to load requests: %v", err)
		}
		return requestsLoadedMsg{requests: requests, err: err}
	}
}

func deleteRequest(api Backend, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.DeleteRequest(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ Request deleted"}
	}
}

func deleteAllRequests(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.DeleteAllRequests(ctx); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ All requests deleted"}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadRequests(m.api, m.timeout)

	case common.DeactivateViewMsg:
		m.active = false
		m.confirm = confirmNone
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeRequests) {
			return m, loadRequests(m.api, m.timeout)
		}
		return m, nil

	case requestsLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Requests = msg.requests
		if m.Selected >= len(m.Requests) {
			m.Selected = len(m.Requests) - 1
		}
		if m.Selected < 0 {
			m.Selected = 0
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.Status = ""
		} else {
			m.Status = msg.status
			m.Error = ""
		}
		return m, tea.Batch(
			loadRequests(m.api, m.timeout),
			func() tea.Msg { return common.InvalidateMsg{Scopes: []common.Scope{common.ScopeStats}} },
			clearStatusAfter(3*time.Second),
		)

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.KeyMsg:
		if m.confirm != confirmNone {
			switch msg.String() {
			case "y", "Y":
				confirm := m.confirm
				m.confirm = confirmNone
				if confirm == confirmAll {
					return m, deleteAllRequests(m.api, m.timeout)
				}
				if m.Selected < len(m.Requests) {
					return m, deleteRequest(m.api, m.timeout, m.Requests[m.Selected].Id)
				}
			default:
				m.confirm = confirmNone
			}
			return m, nil
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
			if m.Selected < len(m.Requests)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "d":
			if m.Selected < len(m.Requests) {
				m.confirm = confirmOne
			}
		case "D":
			if len(m.Requests) > 0 {
				m.confirm = confirmAll
			}
		case "r":
			return m, loadRequests(m.api, m.timeout)
		}
	}
	return m, nil
}

func scopeLabel(scope domain.RequestScope) string {
	if scope == domain.ScopeCategorySellers {
		return "category"
	}
	return "all sellers"
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("Requests (%d)", len(m.Requests))))
	s.WriteString("\n\n")

	if m.confirm == confirmOne && m.Selected < len(m.Requests) {
		s.WriteString(common.ListErrorStyle.Render(
			fmt.Sprintf("Delete request %q?", m.Requests[m.Selected].Title)))
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("y: delete • any other key: cancel"))
		return s.String()
	}
	if m.confirm == confirmAll {
		s.WriteString(common.ListErrorStyle.Render(
			fmt.Sprintf("Delete ALL %d requests? This cannot be undone.", len(m.Requests))))
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("y: delete all • any other key: cancel"))
		return s.String()
	}

	if len(m.Requests) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No requests in the feed."))
	} else {
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(m.Requests))
		for i := start; i < end; i++ {
			r := m.Requests[i]
			buyer := "-"
			if r.Buyer != nil {
				buyer = r.Buyer.FullName
			}
			category := scopeLabel(r.Scope)
			if r.Category != nil {
				category = r.Category.Name
			}
			line := fmt.Sprintf("%-32s %-16s %-20s %s",
				util.Truncate(r.Title, 32), util.Truncate(category, 16),
				util.Truncate(buyer, 20), util.FormatTimeAgo(r.CreatedAt))
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
			}
			s.WriteString("\n")
		}
		if len(m.Requests) > common.DefaultItemsPerPage {
			s.WriteString("\n" + common.ListBadgeStyle.Render(
				fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Requests))))
		}
	}

	if m.Status != "" {
		s.WriteString("\n" + common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("d: delete • D: delete all • r: reload"))
	return s.String()
}
