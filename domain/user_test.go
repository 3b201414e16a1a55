package domain

import (
	"testing"
)

func TestCanDeleteUser(t *testing.T) {
	self := &User{Id: "admin-1", Role: RoleSuperAdmin, FullName: "Admin", Email: "admin@tapsoran.az"}

	tests := []struct {
		name    string
		target  *User
		wantErr bool
	}{
		{
			name:    "regular buyer can be deleted",
			target:  &User{Id: "u-1", Role: RoleBuyer},
			wantErr: false,
		},
		{
			name:    "regular seller can be deleted",
			target:  &User{Id: "u-2", Role: RoleSeller},
			wantErr: false,
		},
		{
			name:    "deleting self is rejected",
			target:  &User{Id: "admin-1", Role: RoleSuperAdmin},
			wantErr: true,
		},
		{
			name:    "deleting another super admin is rejected",
			target:  &User{Id: "admin-2", Role: RoleSuperAdmin},
			wantErr: true,
		},
		{
			name:    "nil target is rejected",
			target:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanDeleteUser(self, tt.target)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestFilterUsers(t *testing.T) {
	users := []User{
		{Id: "1", FullName: "Aysel Quliyeva", Email: "aysel@example.az", Role: RoleBuyer},
		{Id: "2", FullName: "Rashad Mammadov", Email: "rashad@tapsoran.az", Role: RoleSeller},
		{Id: "3", FullName: "Leyla Huseynova", Email: "leyla@example.az", Role: RoleBuyer},
	}

	t.Run("empty query returns all", func(t *testing.T) {
		got := FilterUsers(users, "")
		if len(got) != 3 {
			t.Errorf("Expected 3 users, got %d", len(got))
		}
	})

	t.Run("matches email only, case-insensitively", func(t *testing.T) {
		got := FilterUsers(users, "TAPSORAN")
		if len(got) != 1 {
			t.Fatalf("Expected 1 user, got %d", len(got))
		}
		if got[0].Id != "2" {
			t.Errorf("Expected user 2, got %s", got[0].Id)
		}
	})

	t.Run("matches role tag", func(t *testing.T) {
		got := FilterUsers(users, "seller")
		if len(got) != 1 {
			t.Errorf("Expected 1 user, got %d", len(got))
		}
	})

	t.Run("stable when re-applied without re-fetch", func(t *testing.T) {
		first := FilterUsers(users, "example")
		second := FilterUsers(users, "example")
		if len(first) != len(second) {
			t.Fatalf("Expected same result size, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i].Id != second[i].Id {
				t.Errorf("Expected stable ordering at %d: %s vs %s", i, first[i].Id, second[i].Id)
			}
		}
	})

	t.Run("no match yields empty", func(t *testing.T) {
		got := FilterUsers(users, "nobody")
		if len(got) != 0 {
			t.Errorf("Expected 0 users, got %d", len(got))
		}
	})
}
