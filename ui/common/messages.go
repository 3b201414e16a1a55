package common

import "github.com/tapsoran/admintui/domain"

// ActivateViewMsg tells a view it became visible and should load data.
type ActivateViewMsg struct{}

// DeactivateViewMsg tells a view it is no longer visible. Background
// pollers ignore it and keep ticking for the header badge.
type DeactivateViewMsg struct{}

// Scope names a cached collection that a mutation may have invalidated.
type Scope int

const (
	ScopeStats Scope = iota
	ScopeCategories
	ScopeUsers
	ScopeRequests
	ScopeConversations
	ScopeComplaints
	ScopeRiskUsers
	ScopeNotifications
)

// InvalidateMsg is broadcast by the shell after a mutation. Each view
// reloads only when one of the scopes matches its collection, and only
// while it is the visible view. Hidden views pick up fresh data on their
// next activation instead.
type InvalidateMsg struct {
	Scopes []Scope
}

// Has reports whether the message names the given scope.
func (m InvalidateMsg) Has(s Scope) bool {
	for _, sc := range m.Scopes {
		if sc == s {
			return true
		}
	}
	return false
}

// LoggedInMsg is sent by the login view once a super admin session is
// established.
type LoggedInMsg struct {
	User *domain.User
}

// LogoutMsg requests session teardown and a return to the login view.
type LogoutMsg struct{}

// ViewChatMsg opens the message history of one conversation.
type ViewChatMsg struct {
	ConversationId string
	Title          string
}

// BackToConversationsMsg returns from the chat view to the list.
type BackToConversationsMsg struct{}
