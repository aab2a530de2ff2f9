package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)

	// ErrAddressIsRequired is returned when checkout is attempted without
	// a delivery address.
	ErrAddressIsRequired = errors.New("address is required")
)

// CreateOrderCommand represents a checkout request: turn the user's bucket
// into a placed order delivered to the given address.
type CreateOrderCommand struct {
	claims  auth.Claims
	userID  kernel.UUID
	address string

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a checkout command for the given user.
// Validates that claims were resolved, the user id is valid and the
// address is not empty.
func NewCreateOrderCommand(claims auth.Claims, userID kernel.UUID, address string) (CreateOrderCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		userID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if address == "" {
		return CreateOrderCommand{}, ErrAddressIsRequired
	}

	return CreateOrderCommand{
		claims:  claims,
		userID:  userID,
		address: address,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c CreateOrderCommand) Claims() auth.Claims {
	return c.claims
}

// UserID returns the id of the user checking out.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}
