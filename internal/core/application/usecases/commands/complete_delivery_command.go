package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a courier's request to mark an order
// as delivered.
type CompleteDeliveryCommand struct {
	claims  auth.Claims
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a completion command for the given order.
func NewCompleteDeliveryCommand(claims auth.Claims, orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		orderID.Validate(),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		claims:  claims,
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c CompleteDeliveryCommand) Claims() auth.Claims {
	return c.claims
}

// OrderID returns the id of the order being completed.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
