package conversations

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

// Backend lists the conversations visible to moderation.
type Backend interface {
	Conversations(ctx context.Context) ([]domain.Conversation, error)
}

type Model struct {
	Width         int
	Height        int
	Conversations []domain.Conversation
	Selected      int
	Offset        int
	Error         string

	api     Backend
	timeout time.Duration
	active  bool
}

type conversationsLoadedMsg struct {
	conversations []domain.Conversation
	err           error
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

func loadConversations(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		conversations, err := api.Conversations(ctx)
		if err != nil {
			log.Printf("Failed to load conversations: %v", err)
		}
		return conversationsLoadedMsg{conversations: conversations, err: err}
	}
}

func title(c *domain.Conversation) string {
	a, b := c.UserAId, c.UserBId
	if c.UserA != nil {
		a = c.UserA.FullName
	}
	if c.UserB != nil {
		b = c.UserB.FullName
	}
	return fmt.Sprintf("%s ↔ %s", a, b)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadConversations(m.api, m.timeout)

	case common.DeactivateViewMsg:
		m.active = false
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeConversations) {
			return m, loadConversations(m.api, m.timeout)
		}
		return m, nil

	case conversationsLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Conversations = msg.conversations
		if m.Selected >= len(m.Conversations) {
			m.Selected = len(m.Conversations) - 1
		}
		if m.Selected < 0 {
			m.Selected = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				if m.Selected < m.Offset {
					m.Offset = m.Selected
				}
			}
		case "down", "j":
			if m.Selected < len(m.Conversations)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "enter":
			if m.Selected < len(m.Conversations) {
				c := m.Conversations[m.Selected]
				return m, func() tea.Msg {
					return common.ViewChatMsg{ConversationId: c.Id, Title: title(&c)}
				}
			}
		case "r":
			return m, loadConversations(m.api, m.timeout)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("Conversations (%d)", len(m.Conversations))))
	s.WriteString("\n\n")

	if len(m.Conversations) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No conversations."))
	} else {
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(m.Conversations))
		for i := start; i < end; i++ {
			c := m.Conversations[i]
			line := fmt.Sprintf("%-44s %s", util.Truncate(title(&c), 44), util.FormatTimeAgo(c.CreatedAt))
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
			}
			s.WriteString("\n")
			if c.AcceptedRequest != nil && c.AcceptedRequest.Request != nil {
				s.WriteString("  " + common.ListBadgeStyle.Render(
					"request: "+util.Truncate(c.AcceptedRequest.Request.Title, 50)))
				s.WriteString("\n")
			}
		}
		if len(m.Conversations) > common.DefaultItemsPerPage {
			s.WriteString("\n" + common.ListBadgeStyle.Render(
				fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Conversations))))
		}
	}

	if m.Error != "" {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("enter: open chat • r: reload"))
	return s.String()
}
