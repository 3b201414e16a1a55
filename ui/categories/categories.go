package categories

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
)

// Backend covers the category CRUD operations.
type Backend interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// editMode tracks whether the name input targets a new or existing row.
type editMode int

const (
	modeNone editMode = iota
	modeCreate
	modeRename
)

type Model struct {
	Width      int
	Height     int
	Categories []domain.Category
	Selected   int
	Offset     int
	Status     string
	Error      string

	api     Backend
	timeout time.Duration
	active  bool

	mode      editMode
	nameInput textinput.Model
}

type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
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
	input := textinput.New()
	input.Placeholder = "Category name"
	input.CharLimit = 60

	return Model{
		Width:     width,
		Height:    height,
		api:       api,
		timeout:   timeout,
		nameInput: input,
	}
}

// Capturing reports whether a text input currently owns the keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeNone
}

func (m Model) Init() tea.Cmd {
	return nil
}

func loadCategories(api Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		categories, err := api.Categories(ctx)
		if err != nil {
			log.Printf("Failed to load categories: %v", err)
		}
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func createCategory(api Backend, timeout time.Duration, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := api.CreateCategory(ctx, name); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("✓ Created %q", name)}
	}
}

func renameCategory(api Backend, timeout time.Duration, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := api.UpdateCategory(ctx, id, name); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("✓ Renamed to %q", name)}
	}
}

func deleteCategory(api Backend, timeout time.Duration, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := api.DeleteCategory(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("✓ Deleted %q", name)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.ActivateViewMsg:
		m.active = true
		return m, loadCategories(m.api, m.timeout)

	case common.DeactivateViewMsg:
		m.active = false
		m.mode = modeNone
		m.nameInput.Blur()
		return m, nil

	case common.InvalidateMsg:
		if m.active && msg.Has(common.ScopeCategories) {
			return m, loadCategories(m.api, m.timeout)
		}
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.Categories = msg.categories
		if m.Selected >= len(m.Categories) {
			m.Selected = len(m.Categories) - 1
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
			loadCategories(m.api, m.timeout),
			func() tea.Msg { return common.InvalidateMsg{Scopes: []common.Scope{common.ScopeStats}} },
			clearStatusAfter(3*time.Second),
		)

	case clearStatusMsg:
		m.Status = ""
		m.Error = ""
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNone {
			switch msg.String() {
			case "esc":
				m.mode = modeNone
				m.nameInput.Blur()
				return m, nil
			case "enter":
				name := strings.TrimSpace(m.nameInput.Value())
				if name == "" {
					m.Error = "name must not be empty"
					return m, nil
				}
				mode := m.mode
				m.mode = modeNone
				m.nameInput.Blur()
				if mode == modeCreate {
					return m, createCategory(m.api, m.timeout, name)
				}
				return m, renameCategory(m.api, m.timeout, m.Categories[m.Selected].Id, name)
			}
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
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
			if m.Selected < len(m.Categories)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "n":
			m.mode = modeCreate
			m.nameInput.SetValue("")
			m.nameInput.Focus()
			return m, textinput.Blink
		case "e":
			if m.Selected < len(m.Categories) {
				m.mode = modeRename
				m.nameInput.SetValue(m.Categories[m.Selected].Name)
				m.nameInput.Focus()
				return m, textinput.Blink
			}
		case "d":
			if m.Selected < len(m.Categories) {
				c := m.Categories[m.Selected]
				return m, deleteCategory(m.api, m.timeout, c.Id, c.Name)
			}
		case "r":
			return m, loadCategories(m.api, m.timeout)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("Categories (%d)", len(m.Categories))))
	s.WriteString("\n\n")

	if m.mode != modeNone {
		label := "New category"
		if m.mode == modeRename {
			label = "Rename category"
		}
		s.WriteString(common.ListItemStyle.Render(label))
		s.WriteString("\n")
		s.WriteString(m.nameInput.View())
		s.WriteString("\n\n")
		s.WriteString(common.InstructionStyle.Render("enter: save • esc: cancel"))
		return s.String()
	}

	if len(m.Categories) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No categories yet. Press n to create one."))
	} else {
		start := m.Offset
		end := min(start+common.DefaultItemsPerPage, len(m.Categories))
		for i := start; i < end; i++ {
			c := m.Categories[i]
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(c.Name))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(c.Name))
			}
			s.WriteString("\n")
		}
		if len(m.Categories) > common.DefaultItemsPerPage {
			s.WriteString("\n" + common.ListBadgeStyle.Render(
				fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Categories))))
		}
	}

	if m.Status != "" {
		s.WriteString("\n" + common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n" + common.ListErrorStyle.Render(m.Error))
	}

	s.WriteString("\n\n")
	s.WriteString(common.InstructionStyle.Render("n: new • e: rename • d: delete • r: reload"))
	return s.String()
}
