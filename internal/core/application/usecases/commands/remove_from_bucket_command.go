package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrRemoveFromBucketCommandIsNotConstructed = errors.New(
	"RemoveFromBucketCommand must be created via NewRemoveFromBucketCommand constructor",
)

// RemoveFromBucketCommand represents a request to drop every row of one
// product from the caller's bucket.
type RemoveFromBucketCommand struct {
	claims    auth.Claims
	userID    kernel.UUID
	productID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewRemoveFromBucketCommand creates a bucket-remove command.
func NewRemoveFromBucketCommand(
	claims auth.Claims,
	userID kernel.UUID,
	productID kernel.UUID,
) (RemoveFromBucketCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		userID.Validate(),
		productID.Validate(),
	); err != nil {
		return RemoveFromBucketCommand{}, err
	}

	return RemoveFromBucketCommand{
		claims:    claims,
		userID:    userID,
		productID: productID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveFromBucketCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromBucketCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c RemoveFromBucketCommand) Claims() auth.Claims {
	return c.claims
}

// UserID returns the bucket owner's id.
func (c RemoveFromBucketCommand) UserID() kernel.UUID {
	return c.userID
}

// ProductID returns the product being removed.
func (c RemoveFromBucketCommand) ProductID() kernel.UUID {
	return c.productID
}
