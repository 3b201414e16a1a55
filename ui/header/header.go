package header

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tapsoran/admintui/domain"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true).
			MarginLeft(1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_USERNAME))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM))
)

type Model struct {
	Width  int
	User   *domain.User
	Unread int
}

func (m Model) View() string {
	left := titleStyle.Render(util.GetNameAndVersion())

	var right string
	if m.User != nil {
		right = userStyle.Render(m.User.FullName)
	}
	if m.Unread > 0 {
		badge := common.BadgeStyle.Render(fmt.Sprintf("%d", m.Unread))
		if right != "" {
			right = badge + " " + right
		} else {
			right = badge
		}
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right + "\n" +
		dimStyle.Render(strings.Repeat("─", max(m.Width-1, 1)))
}
