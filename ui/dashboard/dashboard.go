package dashboard

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
)

var (
	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_DIM)).
			Padding(0, 2).
			MarginRight(2)

	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true)
)

// Fetcher loads the dashboard aggregate.
type Fetcher interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

type Model struct {
	Width   int
	Height  int
	Stats   *domain.Stats
	Error   string
	api     Fetcher
	timeout time.Duration
	active  bool
}

type statsLoadedMsg struct {
	stats *domain.Stats
	err   error
}

func InitialModel(api Fetcher, timeout time.Duration, width, height int) Model {
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

func loadStats(api Fetcher, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		stats, err := api.Stats(ctx)
		if err != nil {
			log.Printf("Failed to load stats: %v", err)
		}
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadStats(m.api, m.timeout)

	case common.DeactivateViewMsg:
		m.active = false
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeStats) {
			return m, loadStats(m.api, m.timeout)
		}
		return m, nil

	case statsLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Stats = msg.stats
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, loadStats(m.api, m.timeout)
		}
	}
	return m, nil
}

func card(label string, value int) string {
	return cardStyle.Render(fmt.Sprintf("%s\n%s", label, numberStyle.Render(fmt.Sprintf("%d", value))))
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("Dashboard"))
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		return s.String()
	}
	if m.Stats == nil {
		s.WriteString(common.ListEmptyStyle.Render("Loading stats..."))
		return s.String()
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Users", m.Stats.Users),
		card("Categories", m.Stats.Categories),
		card("Requests", m.Stats.Requests),
	)
	s.WriteString(cards)
	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("r: reload"))

	return s.String()
}
