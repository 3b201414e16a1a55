package common

import (
	"github.com/charmbracelet/lipgloss"
)

// SessionState identifies the currently focused view.
type SessionState int

const (
	LoginView SessionState = iota
	DashboardView
	CategoriesView
	UsersView
	RequestsView
	ConversationsView
	ChatView
	ComplaintsView
	RiskUsersView
	LegalView
	NotificationsView
	SettingsView
)

const (
	COLOR_ACCENT    = "205"
	COLOR_SECONDARY = "252"
	COLOR_DIM       = "241"
	COLOR_ERROR     = "196"
	COLOR_SUCCESS   = "78"
	COLOR_USERNAME  = "81"
	COLOR_BADGE     = "203"
)

const (
	DefaultItemsPerPage = 14
	MinWindowWidth      = 80
	MinWindowHeight     = 24
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ACCENT)).
			Bold(true)

	ListEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Italic(true)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SECONDARY))

	ListItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_ACCENT)).
				Bold(true)

	ListBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM))

	ListStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SUCCESS))

	ListErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ERROR))

	InstructionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_DIM))

	BadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color(COLOR_BADGE)).
			Padding(0, 1).
			Bold(true)
)

const (
	ListSelectedPrefix   = "> "
	ListUnselectedPrefix = "  "
)

// DefaultWindowWidth clamps a reported width to a usable minimum.
func DefaultWindowWidth(width int) int {
	if width < MinWindowWidth {
		return MinWindowWidth
	}
	return width
}

// DefaultWindowHeight clamps a reported height to a usable minimum.
func DefaultWindowHeight(height int) int {
	if height < MinWindowHeight {
		return MinWindowHeight
	}
	return height
}
