package legal

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

var contentStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(common.COLOR_DIM)).
	Padding(0, 1)

// Backend loads and saves the legal pages.
type Backend interface {
	LegalPage(ctx context.Context, t domain.LegalType) (*domain.LegalPage, error)
	SaveLegalPage(ctx context.Context, t domain.LegalType, title, content string) error
}

var pageTypes = []domain.LegalType{domain.LegalPrivacy, domain.LegalTerms}

type Model struct {
	Width   int
	Height  int
	Tab     int
	Page    *domain.LegalPage
	Editing bool
	Status  string
	Error   string

	api     Backend
	timeout time.Duration
	active  bool

	titleInput   textinput.Model
	contentInput textarea.Model
}

type pageLoadedMsg struct {
	page *domain.LegalPage
	err  error
}

type savedMsg struct {
	err error
}

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func InitialModel(api Backend, timeout time.Duration, width, height int) Model {
	title := textinput.New()
	title.Placeholder = "Page title"
	title.CharLimit = 120

	content := textarea.New()
	content.Placeholder = "Page content"
	content.SetWidth(width - 10)
	content.SetHeight(height - 14)

	return Model{
		Width:        width,
		Height:       height,
		api:          api,
		timeout:      timeout,
		titleInput:   title,
		contentInput: content,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) currentType() domain.LegalType {
	return pageTypes[m.Tab]
}

func loadPage(api Backend, timeout time.Duration, t domain.LegalType) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := api.LegalPage(ctx, t)
		if err != nil {
			log.Printf("Failed to load legal page %s: %v", t, err)
		}
		return pageLoadedMsg{page: page, err: err}
	}
}

func savePage(api Backend, timeout time.Duration, t domain.LegalType, title, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return savedMsg{err: api.SaveLegalPage(ctx, t, title, content)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadPage(m.api, m.timeout, m.currentType())

	case common.DeactivateViewMsg:
		m.active = false
		m.Editing = false
		m.titleInput.Blur()
		m.contentInput.Blur()
		return m, nil

	case pageLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Page = msg.page
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, clearStatusAfter(3 * time.Second)
		}
		m.Status = "✓ Page saved"
		m.Error = ""
		m.Editing = false
		m.titleInput.Blur()
		m.contentInput.Blur()
		return m, tea.Batch(loadPage(m.api, m.timeout, m.currentType()), clearStatusAfter(3*time.Second))

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.contentInput.SetWidth(msg.Width - 10)
		m.contentInput.SetHeight(msg.Height - 14)
		return m, nil

	case tea.KeyMsg:
		if m.Editing {
			switch msg.String() {
			case "esc":
				m.Editing = false
				m.titleInput.Blur()
				m.contentInput.Blur()
				return m, nil
			case "ctrl+s":
				title := strings.TrimSpace(m.titleInput.Value())
				if title == "" {
					m.Error = "a title is required"
					return m, nil
				}
				return m, savePage(m.api, m.timeout, m.currentType(), title, m.contentInput.Value())
			case "tab":
				if m.titleInput.Focused() {
					m.titleInput.Blur()
					cmd = m.contentInput.Focus()
				} else {
					m.contentInput.Blur()
					m.titleInput.Focus()
					cmd = textinput.Blink
				}
				return m, cmd
			}
			if m.titleInput.Focused() {
				m.titleInput, cmd = m.titleInput.Update(msg)
			} else {
				m.contentInput, cmd = m.contentInput.Update(msg)
			}
			return m, cmd
		}

		switch msg.String() {
		case "right", "l", "left", "h":
			m.Tab = (m.Tab + 1) % len(pageTypes)
			m.Page = nil
			return m, loadPage(m.api, m.timeout, m.currentType())
		case "e":
			m.Editing = true
			if m.Page != nil {
				m.titleInput.SetValue(m.Page.Title)
				m.contentInput.SetValue(m.Page.Content)
			} else {
				m.titleInput.SetValue("")
				m.contentInput.SetValue("")
			}
			m.titleInput.Focus()
			return m, textinput.Blink
		case "r":
			return m, loadPage(m.api, m.timeout, m.currentType())
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	var tabLine []string
	for i, t := range pageTypes {
		if i == m.Tab {
			tabLine = append(tabLine, common.ListItemSelectedStyle.Render("["+string(t)+"]"))
		} else {
			tabLine = append(tabLine, common.ListBadgeStyle.Render(" "+string(t)+" "))
		}
	}
	s.WriteString(common.CaptionStyle.Render("Legal pages"))
	s.WriteString("  ")
	s.WriteString(strings.Join(tabLine, " "))
	s.WriteString("\n\n")

	if m.Editing {
		s.WriteString(common.ListItemStyle.Render("Title"))
		s.WriteString("\n")
		s.WriteString(m.titleInput.View())
		s.WriteString("\n\n")
		s.WriteString(m.contentInput.View())
		s.WriteString("\n\n")
		if m.Error != "" {
			s.WriteString(common.ListErrorStyle.Render(m.Error))
			s.WriteString("\n")
		}
		s.WriteString(common.InstructionStyle.Render("ctrl+s: save • tab: switch field • esc: cancel"))
		return s.String()
	}

	if m.Page == nil {
		s.WriteString(common.ListEmptyStyle.Render("Loading page..."))
	} else {
		s.WriteString(common.ListItemSelectedStyle.Render(m.Page.Title))
		if m.Page.UpdatedAt != nil {
			s.WriteString("  " + common.ListBadgeStyle.Render(
				"updated "+m.Page.UpdatedAt.Format(util.DateTimeFormat())))
		}
		s.WriteString("\n\n")
		width := m.Width - 8
		if width < 40 {
			width = 40
		}
		s.WriteString(contentStyle.Width(width).Render(m.Page.Content))
	}

	if m.Status != "" {
		s.WriteString("\n" + common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" && !m.Editing {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("←/→: switch page • e: edit • r: reload"))
	return s.String()
}
