package settings

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapsoran/admintui/alert"
	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
)

// Preferences is the persisted settings slice this view edits.
type Preferences interface {
	SoundEnabled() bool
	SetSoundEnabled(enabled bool) error
}

type item int

const (
	itemSound item = iota
	itemLogout
)

type Model struct {
	Width    int
	Height   int
	User     *domain.User
	Selected item

	prefs   Preferences
	alerter *alert.Alerter
	confirm bool
}

func InitialModel(prefs Preferences, alerter *alert.Alerter, width, height int) Model {
	return Model{
		Width:   width,
		Height:  height,
		prefs:   prefs,
		alerter: alerter,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.DeactivateViewMsg:
		m.confirm = false
		return m, nil

	case tea.KeyMsg:
		if m.confirm {
			switch msg.String() {
			case "y", "Y":
				m.confirm = false
				return m, func() tea.Msg { return common.LogoutMsg{} }
			default:
				m.confirm = false
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.Selected > itemSound {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < itemLogout {
				m.Selected++
			}
		case "enter", " ":
			switch m.Selected {
			case itemSound:
				enabled := !m.prefs.SoundEnabled()
				if err := m.prefs.SetSoundEnabled(enabled); err != nil {
					log.Printf("Failed to save sound preference: %v", err)
					return m, nil
				}
				if enabled {
					// Priming must happen inside the keypress that
					// enables sound, it cannot be done from the poller.
					m.alerter.Prime()
				}
			case itemLogout:
				m.confirm = true
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("Settings"))
	s.WriteString("\n\n")

	if m.User != nil {
		s.WriteString(common.ListItemStyle.Render(fmt.Sprintf("Signed in as %s (%s)", m.User.FullName, m.User.Email)))
		s.WriteString("\n\n")
	}

	if m.confirm {
		s.WriteString(common.ListErrorStyle.Render("Sign out and clear the stored session?"))
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("y: sign out • any other key: cancel"))
		return s.String()
	}

	sound := "off"
	if m.prefs.SoundEnabled() {
		sound = "on"
	}
	lines := []string{
		fmt.Sprintf("Notification sound: %s", sound),
		"Sign out",
	}
	for i, line := range lines {
		if item(i) == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(common.InstructionStyle.Render("enter: toggle/select"))
	return s.String()
}
