package login

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SECONDARY))

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(common.COLOR_ACCENT)).
				Bold(true)
)

// Authenticator establishes a super admin session from credentials.
type Authenticator interface {
	Login(ctx context.Context, email, password string) error
	User() *domain.User
}

type Model struct {
	Width   int
	Height  int
	Error   string
	Busy    bool
	auth    Authenticator
	timeout time.Duration

	emailInput    textinput.Model
	passwordInput textinput.Model
	focusIndex    int
}

type loginResultMsg struct {
	err error
}

func InitialModel(auth Authenticator, timeout time.Duration, width, height int) Model {
	email := textinput.New()
	email.Placeholder = "admin@example.com"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		Width:         width,
		Height:        height,
		auth:          auth,
		timeout:       timeout,
		emailInput:    email,
		passwordInput: password,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func loginCmd(auth Authenticator, timeout time.Duration, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loginResultMsg{err: auth.Login(ctx, email, password)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loginResultMsg:
		m.Busy = false
		if msg.err != nil {
			m.Error = msg.err.Error()
			m.passwordInput.SetValue("")
			return m, nil
		}
		m.Error = ""
		user := m.auth.User()
		return m, func() tea.Msg { return common.LoggedInMsg{User: user} }

	case tea.KeyMsg:
		// Ignore keystrokes while the login request is in flight. The
		// submit is single-flight, a second enter must not race it.
		if m.Busy {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focusIndex = (m.focusIndex + 1) % 2
			if m.focusIndex == 0 {
				m.emailInput.Focus()
				m.passwordInput.Blur()
			} else {
				m.emailInput.Blur()
				m.passwordInput.Focus()
			}
			return m, textinput.Blink

		case "enter":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.emailInput.Blur()
				m.passwordInput.Focus()
				return m, textinput.Blink
			}
			email := strings.TrimSpace(m.emailInput.Value())
			password := m.passwordInput.Value()
			if email == "" || password == "" {
				m.Error = "email and password are required"
				return m, nil
			}
			m.Busy = true
			m.Error = ""
			return m, loginCmd(m.auth, m.timeout, email, password)
		}
	}

	if m.focusIndex == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("Admin sign in"))
	s.WriteString("\n\n")

	emailLabel := labelStyle
	passwordLabel := labelStyle
	if m.focusIndex == 0 {
		emailLabel = focusedLabelStyle
	} else {
		passwordLabel = focusedLabelStyle
	}

	s.WriteString(emailLabel.Render("Email"))
	s.WriteString("\n")
	s.WriteString(m.emailInput.View())
	s.WriteString("\n\n")
	s.WriteString(passwordLabel.Render("Password"))
	s.WriteString("\n")
	s.WriteString(m.passwordInput.View())
	s.WriteString("\n\n")

	if m.Busy {
		s.WriteString(common.ListStatusStyle.Render("Signing in..."))
		s.WriteString("\n")
	}
	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(common.InstructionStyle.Render("enter: submit • tab: switch field • ctrl+c: quit"))

	return s.String()
}
