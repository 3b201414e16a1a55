package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleBuyer      Role = "BUYER"
	RoleSeller     Role = "SELLER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// User is a platform account as returned by the admin API.
type User struct {
	Id            string     `json:"id"`
	Role          Role       `json:"role"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	Tip           string     `json:"tip,omitempty"`
	CategoryId    string     `json:"categoryId,omitempty"`
	Blocked       bool       `json:"blocked"`
	BlockedReason string     `json:"blockedReason,omitempty"`
	BlockedAt     *time.Time `json:"blockedAt,omitempty"`
	BlockedUntil  *time.Time `json:"blockedUntil,omitempty"`
}

func (u *User) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tRole: %s \n\tFullName: %s \n\tEmail: %s)", u.Id, u.Role, u.FullName, u.Email)
}

// CanDeleteUser reports whether the signed-in admin may delete target.
// Deleting yourself or another super admin is rejected before any network
// call is made.
func CanDeleteUser(self *User, target *User) error {
	if self == nil || target == nil {
		return fmt.Errorf("no user selected")
	}
	if target.Id == self.Id {
		return fmt.Errorf("cannot delete your own account")
	}
	if target.Role == RoleSuperAdmin {
		return fmt.Errorf("cannot delete a super admin")
	}
	return nil
}

// FilterUsers returns the users whose name, email or role contains the
// query, case-insensitively. An empty query returns the input unchanged.
// Pure function over the in-memory collection, never triggers a fetch.
func FilterUsers(users []User, query string) []User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	var out []User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.FullName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(string(u.Role)), q) {
			out = append(out, u)
		}
	}
	return out
}
