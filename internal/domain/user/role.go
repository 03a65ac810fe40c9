package user

import (
	"strings"

	"charide/internal/general/errs"
)

// Role is a user role as stored in the `users.user_type` column.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes (lowercases+trims) and validates a role string.
// An empty input defaults to passenger.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if role == "" {
		return RolePassenger, nil
	}
	if role.Valid() {
		return role, nil
	}
	return "", errs.Validationf("unknown role %q", s)
}

// Valid reports whether role is one of the allowed role constants.
func (role Role) Valid() bool {
	switch role {
	case RolePassenger, RoleDriver, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Role.
func (role Role) String() string {
	return string(role)
}

// Convenience helpers.
func (role Role) IsPassenger() bool { return role == RolePassenger }
func (role Role) IsDriver() bool    { return role == RoleDriver }
func (role Role) IsAdmin() bool     { return role == RoleAdmin }
