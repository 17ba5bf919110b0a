package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"admin", RoleAdmin, true},
		{"engineer", RoleEngineer, true},
		{"customer", RoleCustomer, true},
		{"manager", RoleManager, true},
		{"agent", RoleAgent, true},
		{"Admin", Role("Admin"), false},
		{"superuser", Role("superuser"), false},
		{"", RoleNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEnrollableRolesExcludeAdmin(t *testing.T) {
	for _, role := range EnrollableRoles {
		if role == RoleAdmin {
			t.Fatal("admin must not be enrollable")
		}
		if !role.Valid() {
			t.Errorf("enrollable role %q is not valid", role)
		}
	}
}
