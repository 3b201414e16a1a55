package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tapsoran/admintui/alert"
	"github.com/tapsoran/admintui/api"
	"github.com/tapsoran/admintui/session"
	"github.com/tapsoran/admintui/store"
	"github.com/tapsoran/admintui/ui/categories"
	"github.com/tapsoran/admintui/ui/chatview"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/ui/complaints"
	"github.com/tapsoran/admintui/ui/conversations"
	"github.com/tapsoran/admintui/ui/dashboard"
	"github.com/tapsoran/admintui/ui/header"
	"github.com/tapsoran/admintui/ui/legal"
	"github.com/tapsoran/admintui/ui/login"
	"github.com/tapsoran/admintui/ui/notifications"
	"github.com/tapsoran/admintui/ui/requests"
	"github.com/tapsoran/admintui/ui/riskusers"
	"github.com/tapsoran/admintui/ui/settings"
	"github.com/tapsoran/admintui/ui/users"
	"github.com/tapsoran/admintui/util"
)

var contentStyle = lipgloss.NewStyle().
	Padding(1, 2)

// tabOrder is the tab/shift+tab cycle. Login and the chat detail view
// are reached through their own transitions and are not part of it.
var tabOrder = []common.SessionState{
	common.DashboardView,
	common.CategoriesView,
	common.UsersView,
	common.RequestsView,
	common.ConversationsView,
	common.ComplaintsView,
	common.RiskUsersView,
	common.LegalView,
	common.NotificationsView,
	common.SettingsView,
}

var tabTitles = map[common.SessionState]string{
	common.DashboardView:     "dashboard",
	common.CategoriesView:    "categories",
	common.UsersView:         "users",
	common.RequestsView:      "requests",
	common.ConversationsView: "chats",
	common.ComplaintsView:    "complaints",
	common.RiskUsersView:     "risk",
	common.LegalView:         "legal",
	common.NotificationsView: "alerts",
	common.SettingsView:      "settings",
}

type MainModel struct {
	width  int
	height int
	config *util.AppConfig

	client  *api.Client
	sess    *session.Manager
	alerter *alert.Alerter

	state       common.SessionState
	headerModel header.Model

	loginModel         login.Model
	dashboardModel     dashboard.Model
	categoriesModel    categories.Model
	usersModel         users.Model
	requestsModel      requests.Model
	conversationsModel conversations.Model
	chatModel          chatview.Model
	complaintsModel    complaints.Model
	riskUsersModel     riskusers.Model
	legalModel         legal.Model
	notificationsModel notifications.Model
	settingsModel      settings.Model
}

func NewModel(client *api.Client, sess *session.Manager, st *store.Store, alerter *alert.Alerter, config *util.AppConfig, width, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	timeout := config.RequestTimeout()

	m := MainModel{
		width:   width,
		height:  height,
		config:  config,
		client:  client,
		sess:    sess,
		alerter: alerter,
		state:   common.LoginView,
	}

	m.loginModel = login.InitialModel(sess, timeout, width, height)
	m.dashboardModel = dashboard.InitialModel(client, timeout, width, height)
	m.categoriesModel = categories.InitialModel(client, timeout, width, height)
	m.usersModel = users.InitialModel(client, timeout, width, height)
	m.requestsModel = requests.InitialModel(client, timeout, width, height)
	m.conversationsModel = conversations.InitialModel(client, timeout, width, height)
	m.chatModel = chatview.InitialModel(client, timeout, width, height)
	m.complaintsModel = complaints.InitialModel(client, timeout, width, height)
	m.riskUsersModel = riskusers.InitialModel(client, timeout, width, height)
	m.legalModel = legal.InitialModel(client, timeout, width, height)
	m.notificationsModel = notifications.InitialModel(client, alerter, config.PollInterval(), timeout, width, height)
	m.settingsModel = settings.InitialModel(st, alerter, width, height)
	m.headerModel = header.Model{Width: width}

	if sess.LoggedIn() {
		m.enterSession()
	}
	return m
}

// enterSession wires the signed-in user into the views that need it.
func (m *MainModel) enterSession() {
	user := m.sess.User()
	m.state = common.DashboardView
	m.headerModel.User = user
	m.usersModel.Self = user
	m.settingsModel.User = user
}

// startPollMsg kicks off the notification poll loop. Init cannot mutate
// the model, so the restored-session path goes through Update.
type startPollMsg struct{}

func (m MainModel) Init() tea.Cmd {
	if m.state == common.LoginView {
		return m.loginModel.Init()
	}
	return tea.Batch(
		func() tea.Msg { return startPollMsg{} },
		func() tea.Msg { return common.ActivateViewMsg{} },
	)
}

// activeUpdate routes a message to the model owning the current view.
func (m MainModel) activeUpdate(msg tea.Msg) (MainModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case common.LoginView:
		m.loginModel, cmd = m.loginModel.Update(msg)
	case common.DashboardView:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case common.CategoriesView:
		m.categoriesModel, cmd = m.categoriesModel.Update(msg)
	case common.UsersView:
		m.usersModel, cmd = m.usersModel.Update(msg)
	case common.RequestsView:
		m.requestsModel, cmd = m.requestsModel.Update(msg)
	case common.ConversationsView:
		m.conversationsModel, cmd = m.conversationsModel.Update(msg)
	case common.ChatView:
		m.chatModel, cmd = m.chatModel.Update(msg)
	case common.ComplaintsView:
		m.complaintsModel, cmd = m.complaintsModel.Update(msg)
	case common.RiskUsersView:
		m.riskUsersModel, cmd = m.riskUsersModel.Update(msg)
	case common.LegalView:
		m.legalModel, cmd = m.legalModel.Update(msg)
	case common.NotificationsView:
		m.notificationsModel, cmd = m.notificationsModel.Update(msg)
	case common.SettingsView:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

// capturing reports whether the focused view has a text input open.
func (m MainModel) capturing() bool {
	switch m.state {
	case common.CategoriesView:
		return m.categoriesModel.Capturing()
	case common.UsersView:
		return m.usersModel.Capturing()
	case common.ComplaintsView:
		return m.complaintsModel.Capturing()
	case common.RiskUsersView:
		return m.riskUsersModel.Capturing()
	case common.LegalView:
		return m.legalModel.Editing
	}
	return false
}

// switchTo deactivates the old view, activates the new one and returns
// the load command of the target.
func (m MainModel) switchTo(state common.SessionState) (MainModel, tea.Cmd) {
	if state == m.state {
		return m, nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m, cmd = m.activeUpdate(common.DeactivateViewMsg{})
	cmds = append(cmds, cmd)

	m.state = state
	m, cmd = m.activeUpdate(common.ActivateViewMsg{})
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// broadcastInvalidate delivers a scope invalidation to every data view.
// Each model decides on its own whether the scopes concern it.
func (m MainModel) broadcastInvalidate(msg common.InvalidateMsg) (MainModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	cmds = append(cmds, cmd)
	m.categoriesModel, cmd = m.categoriesModel.Update(msg)
	cmds = append(cmds, cmd)
	m.usersModel, cmd = m.usersModel.Update(msg)
	cmds = append(cmds, cmd)
	m.requestsModel, cmd = m.requestsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.conversationsModel, cmd = m.conversationsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.complaintsModel, cmd = m.complaintsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.riskUsersModel, cmd = m.riskUsersModel.Update(msg)
	cmds = append(cmds, cmd)
	m.notificationsModel, cmd = m.notificationsModel.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerModel.Width = msg.Width
		m.loginModel.Width = msg.Width
		m.loginModel.Height = msg.Height
		m.dashboardModel.Width = msg.Width
		m.dashboardModel.Height = msg.Height
		m.categoriesModel.Width = msg.Width
		m.categoriesModel.Height = msg.Height
		m.usersModel.Width = msg.Width
		m.usersModel.Height = msg.Height
		m.requestsModel.Width = msg.Width
		m.requestsModel.Height = msg.Height
		m.conversationsModel.Width = msg.Width
		m.conversationsModel.Height = msg.Height
		m.chatModel.Width = msg.Width
		m.chatModel.Height = msg.Height
		m.complaintsModel.Width = msg.Width
		m.complaintsModel.Height = msg.Height
		m.riskUsersModel.Width = msg.Width
		m.riskUsersModel.Height = msg.Height
		m.notificationsModel.Width = msg.Width
		m.notificationsModel.Height = msg.Height
		m.settingsModel.Width = msg.Width
		m.settingsModel.Height = msg.Height
		m.legalModel, cmd = m.legalModel.Update(msg)
		return m, cmd

	case startPollMsg:
		m.notificationsModel, cmd = m.notificationsModel.Start()
		return m, cmd

	case common.LoggedInMsg:
		m.enterSession()
		m.notificationsModel, cmd = m.notificationsModel.Start()
		cmds = append(cmds, cmd)
		m, cmd = m.activeUpdate(common.ActivateViewMsg{})
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case common.LogoutMsg:
		m.sess.Logout()
		m.notificationsModel = m.notificationsModel.Stop()
		m.headerModel.User = nil
		m.usersModel.Self = nil
		m.settingsModel.User = nil
		m.state = common.LoginView
		m.loginModel = login.InitialModel(m.sess, m.config.RequestTimeout(), m.width, m.height)
		return m, m.loginModel.Init()

	case common.ViewChatMsg:
		m, cmd = m.activeUpdate(common.DeactivateViewMsg{})
		cmds = append(cmds, cmd)
		m.state = common.ChatView
		m.chatModel, cmd = m.chatModel.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case common.BackToConversationsMsg:
		m.state = common.ConversationsView
		m.conversationsModel, cmd = m.conversationsModel.Update(common.ActivateViewMsg{})
		return m, cmd

	case common.InvalidateMsg:
		return m.broadcastInvalidate(msg)

	case common.ActivateViewMsg, common.DeactivateViewMsg:
		return m.activeUpdate(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			if m.state != common.LoginView && m.state != common.NotificationsView {
				return m.switchTo(common.NotificationsView)
			}
		case "tab", "shift+tab":
			// A view with an open text input keeps the key.
			if m.capturing() {
				return m.activeUpdate(msg)
			}
			if m.state == common.LoginView || m.state == common.ChatView {
				return m.activeUpdate(msg)
			}
			idx := 0
			for i, state := range tabOrder {
				if state == m.state {
					idx = i
					break
				}
			}
			if msg.String() == "tab" {
				idx = (idx + 1) % len(tabOrder)
			} else {
				idx = (idx + len(tabOrder) - 1) % len(tabOrder)
			}
			return m.switchTo(tabOrder[idx])
		}
		return m.activeUpdate(msg)

	default:
		// Async results (loads, ticks, status clears) carry package
		// private types; deliver them to every model, each one ignores
		// what it does not know.
		m.loginModel, cmd = m.loginModel.Update(msg)
		cmds = append(cmds, cmd)
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
		cmds = append(cmds, cmd)
		m.categoriesModel, cmd = m.categoriesModel.Update(msg)
		cmds = append(cmds, cmd)
		m.usersModel, cmd = m.usersModel.Update(msg)
		cmds = append(cmds, cmd)
		m.requestsModel, cmd = m.requestsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.conversationsModel, cmd = m.conversationsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.chatModel, cmd = m.chatModel.Update(msg)
		cmds = append(cmds, cmd)
		m.complaintsModel, cmd = m.complaintsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.riskUsersModel, cmd = m.riskUsersModel.Update(msg)
		cmds = append(cmds, cmd)
		m.legalModel, cmd = m.legalModel.Update(msg)
		cmds = append(cmds, cmd)
		m.notificationsModel, cmd = m.notificationsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.settingsModel, cmd = m.settingsModel.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
}

func (m MainModel) tabBar() string {
	var parts []string
	for _, state := range tabOrder {
		title := tabTitles[state]
		current := state == m.state ||
			(state == common.ConversationsView && m.state == common.ChatView)
		if current {
			parts = append(parts, common.ListItemSelectedStyle.Render(title))
		} else {
			parts = append(parts, common.InstructionStyle.Render(title))
		}
	}
	return " " + strings.Join(parts, common.InstructionStyle.Render(" · "))
}

func (m MainModel) View() string {
	if m.state == common.LoginView {
		return contentStyle.Render(m.loginModel.View())
	}

	m.headerModel.Unread = m.notificationsModel.UnreadCount

	var body string
	switch m.state {
	case common.DashboardView:
		body = m.dashboardModel.View()
	case common.CategoriesView:
		body = m.categoriesModel.View()
	case common.UsersView:
		body = m.usersModel.View()
	case common.RequestsView:
		body = m.requestsModel.View()
	case common.ConversationsView:
		body = m.conversationsModel.View()
	case common.ChatView:
		body = m.chatModel.View()
	case common.ComplaintsView:
		body = m.complaintsModel.View()
	case common.RiskUsersView:
		body = m.riskUsersModel.View()
	case common.LegalView:
		body = m.legalModel.View()
	case common.NotificationsView:
		body = m.notificationsModel.View()
	case common.SettingsView:
		body = m.settingsModel.View()
	}

	return m.headerModel.View() + "\n" + m.tabBar() + "\n" + contentStyle.Render(body)
}
