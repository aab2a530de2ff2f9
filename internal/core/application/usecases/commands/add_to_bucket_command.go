package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrAddToBucketCommandIsNotConstructed = errors.New(
	"AddToBucketCommand must be created via NewAddToBucketCommand constructor",
)

// AddToBucketCommand represents a request to put a product into the
// caller's bucket. Repeated adds of the same product append rows; they are
// not merged.
type AddToBucketCommand struct {
	claims    auth.Claims
	userID    kernel.UUID
	productID kernel.UUID
	amount    int

	guard kernel.ConstructorGuard
}

// NewAddToBucketCommand creates a bucket-add command.
func NewAddToBucketCommand(
	claims auth.Claims,
	userID kernel.UUID,
	productID kernel.UUID,
	amount int,
) (AddToBucketCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		userID.Validate(),
		productID.Validate(),
	); err != nil {
		return AddToBucketCommand{}, err
	}

	if amount <= 0 {
		return AddToBucketCommand{}, errs.NewValueIsInvalidError("amount")
	}

	return AddToBucketCommand{
		claims:    claims,
		userID:    userID,
		productID: productID,
		amount:    amount,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddToBucketCommand) Validate() error {
	return c.guard.Validate(ErrAddToBucketCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c AddToBucketCommand) Claims() auth.Claims {
	return c.claims
}

// UserID returns the bucket owner's id.
func (c AddToBucketCommand) UserID() kernel.UUID {
	return c.userID
}

// ProductID returns the product being added.
func (c AddToBucketCommand) ProductID() kernel.UUID {
	return c.productID
}

// Amount returns the requested quantity.
func (c AddToBucketCommand) Amount() int {
	return c.amount
}
