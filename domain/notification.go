package domain

import "time"

type NotificationType string

const (
	NotificationAdminVulgar    NotificationType = "ADMIN_VULGAR"
	NotificationAdminSafety    NotificationType = "ADMIN_SAFETY"
	NotificationAdminReport    NotificationType = "ADMIN_REPORT"
	NotificationAdminComplaint NotificationType = "ADMIN_COMPLAINT"
)

// adminTypes is the fixed subset that counts toward the badge.
var adminTypes = map[NotificationType]bool{
	NotificationAdminVulgar:    true,
	NotificationAdminSafety:    true,
	NotificationAdminReport:    true,
	NotificationAdminComplaint: true,
}

// Notification is a read/ack-only projection of server state: this console
// never creates or deletes rows, it only marks them read.
type Notification struct {
	Id        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"createdAt"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
}

func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}

// AdminRelevant reports whether the type belongs to the badge subset.
func (n *Notification) AdminRelevant() bool {
	return adminTypes[n.Type]
}

// UnreadAdminCount derives the badge count: unread rows whose type is in
// the admin-relevant subset. Recomputed on every poll, never persisted.
func UnreadAdminCount(rows []Notification) int {
	count := 0
	for i := range rows {
		if rows[i].AdminRelevant() && rows[i].Unread() {
			count++
		}
	}
	return count
}

// UnreadCountByType derives the unread count for a single type.
func UnreadCountByType(rows []Notification, t NotificationType) int {
	count := 0
	for i := range rows {
		if rows[i].Type == t && rows[i].Unread() {
			count++
		}
	}
	return count
}
