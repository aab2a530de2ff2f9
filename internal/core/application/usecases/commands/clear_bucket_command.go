package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrClearBucketCommandIsNotConstructed = errors.New(
	"ClearBucketCommand must be created via NewClearBucketCommand constructor",
)

// ClearBucketCommand represents a request to empty the caller's bucket.
type ClearBucketCommand struct {
	claims auth.Claims
	userID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewClearBucketCommand creates a bucket-clear command.
func NewClearBucketCommand(claims auth.Claims, userID kernel.UUID) (ClearBucketCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		userID.Validate(),
	); err != nil {
		return ClearBucketCommand{}, err
	}

	return ClearBucketCommand{
		claims: claims,
		userID: userID,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearBucketCommand) Validate() error {
	return c.guard.Validate(ErrClearBucketCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c ClearBucketCommand) Claims() auth.Claims {
	return c.claims
}

// UserID returns the bucket owner's id.
func (c ClearBucketCommand) UserID() kernel.UUID {
	return c.userID
}
