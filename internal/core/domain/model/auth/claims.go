// Package auth provides the identity model consumed by every operation:
// the Role enumeration and the Claims value object resolved from a bearer
// credential by the external auth service. Claims are immutable for the
// lifetime of a request.
package auth

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

// ErrClaimsAreNotConstructed is returned when Claims were not created
// through the NewClaims factory method.
var ErrClaimsAreNotConstructed = errors.New("Claims must be created via NewClaims constructor")

// Claims carries the resolved identity of the caller: who they are and
// which role they hold. The transport layer builds Claims once per request;
// the core treats them as a given input and never re-resolves them.
type Claims struct {
	userID kernel.UUID
	role   Role

	guard kernel.ConstructorGuard
}

// NewClaims creates validated Claims from a resolved user id and role.
func NewClaims(userID kernel.UUID, role Role) (Claims, error) {
	if err := userID.Validate(); err != nil {
		return Claims{}, err
	}
	if err := role.Validate(); err != nil {
		return Claims{}, err
	}

	return Claims{
		userID: userID,
		role:   role,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Claims instance was properly constructed through NewClaims.
func (c Claims) Validate() error {
	return c.guard.Validate(ErrClaimsAreNotConstructed)
}

// UserID returns the authenticated principal's identifier.
func (c Claims) UserID() kernel.UUID {
	return c.userID
}

// Role returns the authenticated principal's role.
func (c Claims) Role() Role {
	return c.role
}
