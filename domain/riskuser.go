package domain

import (
	"strings"
	"time"
)

// RiskUser is the safety view of a user: report counters, strikes, and the
// time-bounded chat freeze distinct from a full block.
type RiskUser struct {
	Id                string     `json:"id"`
	Role              Role       `json:"role"`
	FullName          string     `json:"fullName"`
	Email             string     `json:"email"`
	Blocked           bool       `json:"blocked"`
	BlockedReason     string     `json:"blockedReason,omitempty"`
	BlockedAt         *time.Time `json:"blockedAt,omitempty"`
	ReportCount       int        `json:"reportCount"`
	ModerationStrikes int        `json:"moderationStrikes"`
	ChatFrozenUntil   *time.Time `json:"chatFrozenUntil,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// Frozen reports whether the chat freeze is still in effect at now.
func (r *RiskUser) Frozen(now time.Time) bool {
	return r.ChatFrozenUntil != nil && r.ChatFrozenUntil.After(now)
}

// FilterRiskUsers matches query against name, email and role,
// case-insensitively. Same contract as FilterUsers.
func FilterRiskUsers(rows []RiskUser, query string) []RiskUser {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	var out []RiskUser
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.FullName), q) ||
			strings.Contains(strings.ToLower(r.Email), q) ||
			strings.Contains(strings.ToLower(string(r.Role)), q) {
			out = append(out, r)
		}
	}
	return out
}
