package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

var ErrEstimateDeliveryCommandIsNotConstructed = errors.New(
	"EstimateDeliveryCommand must be created via NewEstimateDeliveryCommand constructor",
)

// EstimateDeliveryCommand represents a user's request to rate a finished
// delivery.
type EstimateDeliveryCommand struct {
	claims  auth.Claims
	orderID kernel.UUID
	rating  int

	guard kernel.ConstructorGuard
}

// NewEstimateDeliveryCommand creates a rating command. The rating must be
// within the order model's allowed range.
func NewEstimateDeliveryCommand(claims auth.Claims, orderID kernel.UUID, rating int) (EstimateDeliveryCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		orderID.Validate(),
	); err != nil {
		return EstimateDeliveryCommand{}, err
	}

	if rating < order.MinRating || rating > order.MaxRating {
		return EstimateDeliveryCommand{}, errs.NewValueIsOutOfRangeError(
			"rating", rating, order.MinRating, order.MaxRating,
		)
	}

	return EstimateDeliveryCommand{
		claims:  claims,
		orderID: orderID,
		rating:  rating,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EstimateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEstimateDeliveryCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c EstimateDeliveryCommand) Claims() auth.Claims {
	return c.claims
}

// OrderID returns the id of the order being rated.
func (c EstimateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rating returns the submitted rating value.
func (c EstimateDeliveryCommand) Rating() int {
	return c.rating
}
