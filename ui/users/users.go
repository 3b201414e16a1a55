package users

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

// Backend covers the user management operations.
type Backend interface {
	Users(ctx context.Context) ([]domain.User, error)
	BlockUser(ctx context.Context, id, reason string) error
	UnblockUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

type inputMode int

const (
	modeNone inputMode = iota
	modeFilter
	modeBlockReason
	modeConfirmDelete
)

type Model struct {
	Width    int
	Height   int
	Users    []domain.User // full collection, fetched once per activation
	Filtered []domain.User
	Selected int
	Offset   int
	Query    string
	Status   string
	Error    string

	Self *domain.User // the signed-in admin, for the delete guard

	api     Backend
	timeout time.Duration
	active  bool

	mode        inputMode
	input       textinput.Model
	pendingUser *domain.User
}

type usersLoadedMsg struct {
	users []domain.User
	err   error
}

type mutationDoneMsg struct {
	status  string
	deleted bool
	err     error
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
	return m.mode == modeFilter || m.mode == modeBlockReason
}

func (m Model) Init() tea.Cmd {
	return nil
}

func loadUsers(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		users, err := api.Users(ctx)
		if err != nil {
			log.Printf("Failed to load users: %v", err)
		}
		return usersLoadedMsg{users: users, err: err}
	}
}

func blockUser(api Backend, timeout time.Duration, id, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.BlockUser(ctx, id, reason); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ User blocked"}
	}
}

func unblockUser(api Backend, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.UnblockUser(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ User unblocked"}
	}
}

func deleteUser(api Backend, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.DeleteUser(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "✓ User deleted", deleted: true}
	}
}

// applyFilter recomputes the visible slice from the cached collection.
func (m *Model) applyFilter() {
	m.Filtered = domain.FilterUsers(m.Users, m.Query)
	if m.Selected >= len(m.Filtered) {
		m.Selected = len(m.Filtered) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
	m.Offset = 0
}

func (m *Model) selectedUser() *domain.User {
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
		return m, loadUsers(m.api, m.timeout)

	case common.DeactivateViewMsg:
		m.active = false
		m.mode = modeNone
		m.input.Blur()
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeUsers) {
			return m, loadUsers(m.api, m.timeout)
		}
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Users = msg.users
		m.applyFilter()
		return m, nil

	case mutationDoneMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.Status = ""
		} else {
			m.Status = msg.status
			m.Error = ""
			if msg.deleted {
				// The server cascades the delete to the user's requests,
				// conversations and complaints, so those views are stale too.
				cmds = append(cmds, func() tea.Msg {
					return common.InvalidateMsg{Scopes: []common.Scope{
						common.ScopeUsers,
						common.ScopeConversations,
						common.ScopeRequests,
						common.ScopeComplaints,
						common.ScopeStats,
					}}
				})
			}
		}
		cmds = append(cmds, loadUsers(m.api, m.timeout), clearStatusAfter(3*time.Second))
		return m, tea.Batch(cmds...)

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			switch msg.String() {
			case "esc":
				m.mode = modeNone
				m.input.Blur()
				return m, nil
			case "enter":
				m.mode = modeNone
				m.input.Blur()
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			m.Query = m.input.Value()
			m.applyFilter()
			return m, cmd

		case modeBlockReason:
			switch msg.String() {
			case "esc":
				m.mode = modeNone
				m.pendingUser = nil
				m.input.Blur()
				return m, nil
			case "enter":
				reason := strings.TrimSpace(m.input.Value())
				if reason == "" {
					m.Error = "a block reason is required"
					return m, nil
				}
				user := m.pendingUser
				m.mode = modeNone
				m.pendingUser = nil
				m.input.Blur()
				return m, blockUser(m.api, m.timeout, user.Id, reason)
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case modeConfirmDelete:
			switch msg.String() {
			case "y", "Y":
				user := m.pendingUser
				m.mode = modeNone
				m.pendingUser = nil
				return m, deleteUser(m.api, m.timeout, user.Id)
			default:
				m.mode = modeNone
				m.pendingUser = nil
				return m, nil
			}
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
		case "b":
			if user := m.selectedUser(); user != nil && !user.Blocked {
				m.mode = modeBlockReason
				m.pendingUser = user
				m.input.Placeholder = "Block reason"
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
		case "u":
			if user := m.selectedUser(); user != nil && user.Blocked {
				return m, unblockUser(m.api, m.timeout, user.Id)
			}
		case "d":
			if user := m.selectedUser(); user != nil {
				// Guard locally, the request is never sent for self or
				// another super admin.
				if err := domain.CanDeleteUser(m.Self, user); err != nil {
					m.Error = err.Error()
					return m, clearStatusAfter(3 * time.Second)
				}
				m.mode = modeConfirmDelete
				m.pendingUser = user
			}
		case "r":
			return m, loadUsers(m.api, m.timeout)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	caption := fmt.Sprintf("Users (%d)", len(m.Filtered))
	if m.Query != "" {
		caption = fmt.Sprintf("Users (%d of %d)", len(m.Filtered), len(m.Users))
	}
	s.WriteString(common.CaptionStyle.Render(caption))
	s.WriteString("\n\n")

	if m.mode == modeFilter || m.Query != "" {
		s.WriteString(common.ListItemStyle.Render("Filter: "))
		if m.mode == modeFilter {
			s.WriteString(m.input.View())
		} else {
			s.WriteString(m.Query)
		}
		s.WriteString("\n\n")
	}

	if m.mode == modeBlockReason && m.pendingUser != nil {
		s.WriteString(common.ListItemStyle.Render(fmt.Sprintf("Block %s", m.pendingUser.FullName)))
		s.WriteString("\n")
		s.WriteString(m.input.View())
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("enter: block • esc: cancel"))
		return s.String()
	}

	if m.mode == modeConfirmDelete && m.pendingUser != nil {
		s.WriteString(common.ListErrorStyle.Render(
			fmt.Sprintf("Delete %s and all their data?", m.pendingUser.FullName)))
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("y: delete • any other key: cancel"))
		return s.String()
	}

	if len(m.Filtered) == 0 {
		if m.Query != "" {
			s.WriteString(common.ListEmptyStyle.Render("No users match the filter."))
		} else {
			s.WriteString(common.ListEmptyStyle.Render("No users."))
		}
	} else {
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(m.Filtered))
		for i := start; i < end; i++ {
			u := m.Filtered[i]
			line := fmt.Sprintf("%-12s %-26s %s", u.Role, util.Truncate(u.FullName, 26), u.Email)
			if u.Blocked {
				line += "  " + common.ListErrorStyle.Render("BLOCKED")
			}
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
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
	s.WriteString(common.InstructionStyle.Render("/: filter • b: block • u: unblock • d: delete • r: reload"))
	return s.String()
}
