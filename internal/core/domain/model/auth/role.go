package auth

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Role identifies the access level attached to an authenticated principal.
// It is a closed enumeration: the platform recognises customers, couriers,
// administrators and analysts, and nothing else. Policy decisions compare
// Role values directly instead of matching role-name strings.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleUser is a regular customer placing orders.
	RoleUser

	// RoleCourier is a delivery agent completing orders.
	RoleCourier

	// RoleAdmin has unrestricted access, including product management.
	RoleAdmin

	// RoleAnalyst has read access to the full order history.
	RoleAnalyst
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		RoleUser:    "USER",
		RoleCourier: "COURIER",
		RoleAdmin:   "ADMIN",
		RoleAnalyst: "ANALYST",
	}
}

// RoleFromString parses the wire representation of a role as carried
// in token claims ("USER", "COURIER", "ADMIN", "ANALYST").
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// String returns the canonical upper-case name of the role.
// Implements fmt.Stringer; safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Role is one of the recognised values.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleCourier, RoleAdmin, RoleAnalyst:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
}
