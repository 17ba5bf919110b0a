package domain

// Role enumerates the five identities a console user can act as.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAgent    Role = "agent"
)

// RoleNone is the zero role; list filters treat it as "all roles".
const RoleNone Role = ""

// Roles lists every role in the order the login screen offers them.
var Roles = []Role{RoleAdmin, RoleEngineer, RoleCustomer, RoleManager, RoleAgent}

// EnrollableRoles are the roles an admin may create accounts for.
var EnrollableRoles = []Role{RoleCustomer, RoleEngineer, RoleManager, RoleAgent}

// Valid reports whether r is one of the five enumerated roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a server or user supplied role string.
func ParseRole(value string) (Role, bool) {
	role := Role(value)
	return role, role.Valid()
}
