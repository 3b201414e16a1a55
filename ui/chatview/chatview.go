package chatview

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

var (
	senderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_USERNAME)).
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Italic(true)

	mediaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SUCCESS)).
			Underline(true)
)

// Backend loads one conversation's message history.
type Backend interface {
	ConversationMessages(ctx context.Context, id string) (*domain.ConversationDetail, error)
	BaseURL() string
}

type Model struct {
	Width  int
	Height int
	Title  string
	Detail *domain.ConversationDetail
	Offset int
	Error  string

	api     Backend
	timeout time.Duration

	conversationId string
}

type chatLoadedMsg struct {
	detail *domain.ConversationDetail
	err    error
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

func loadChat(api Backend, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		detail, err := api.ConversationMessages(ctx, id)
		if err != nil {
			log.Printf("Failed to load conversation %s: %v", id, err)
		}
		return chatLoadedMsg{detail: detail, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.ViewChatMsg:
		m.conversationId = msg.ConversationId
		m.Title = msg.Title
		m.Detail = nil
		m.Offset = 0
		m.Error = ""
		return m, loadChat(m.api, m.timeout, msg.ConversationId)

	case chatLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Detail = msg.detail
		// Start at the bottom, the newest messages matter most here.
		if m.Detail != nil {
			m.Offset = max(len(m.Detail.Messages)-m.pageSize(), 0)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			if m.Detail != nil && m.Offset < len(m.Detail.Messages)-m.pageSize() {
				m.Offset++
			}
		case "esc", "backspace":
			return m, func() tea.Msg { return common.BackToConversationsMsg{} }
		case "r":
			if m.conversationId != "" {
				return m, loadChat(m.api, m.timeout, m.conversationId)
			}
		}
	}
	return m, nil
}

func (m Model) pageSize() int {
	size := m.Height - 8
	if size < 4 {
		size = 4
	}
	return size
}

// renderMessage formats one message line by type. Relative media paths
// are resolved against the API origin so they are usable outside the app.
func (m Model) renderMessage(msg *domain.Message) string {
	sender := msg.SenderId
	if msg.Sender != nil {
		sender = msg.Sender.FullName
	}
	prefix := senderStyle.Render(sender) + " " +
		common.ListBadgeStyle.Render(util.FormatTimeAgo(msg.CreatedAt)) + "\n  "

	switch msg.Type {
	case domain.MessageImage:
		line := mediaStyle.Render("[image] " + util.ResolveMediaURL(m.api.BaseURL(), msg.MediaUrl))
		if msg.Text != "" {
			line += "\n  " + msg.Text
		}
		return prefix + line
	case domain.MessageAudio:
		return prefix + mediaStyle.Render("[audio] "+util.ResolveMediaURL(m.api.BaseURL(), msg.MediaUrl))
	case domain.MessageSystem:
		return systemStyle.Render("· " + msg.Text)
	default:
		return prefix + msg.Text
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("Chat: " + m.Title))
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("esc: back • r: retry"))
		return s.String()
	}
	if m.Detail == nil {
		s.WriteString(common.ListEmptyStyle.Render("Loading messages..."))
		return s.String()
	}
	if len(m.Detail.Messages) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No messages in this conversation."))
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("esc: back"))
		return s.String()
	}

	start := m.Offset
	end := min(start+m.pageSize(), len(m.Detail.Messages))
	for i := start; i < end; i++ {
		s.WriteString(m.renderMessage(&m.Detail.Messages[i]))
		s.WriteString("\n")
	}

	if len(m.Detail.Messages) > m.pageSize() {
		s.WriteString("\n" + common.ListBadgeStyle.Render(
			fmt.Sprintf("Messages %d-%d of %d", start+1, end, len(m.Detail.Messages))))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("esc: back • r: reload"))
	return s.String()
}
