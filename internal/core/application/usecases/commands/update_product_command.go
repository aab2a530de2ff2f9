package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand represents an admin request to change catalog
// fields of one product. Nil fields are left untouched.
type UpdateProductCommand struct {
	claims      auth.Claims
	productID   kernel.UUID
	name        *string
	price       *float64
	productType *string
	restaurant  *string

	guard kernel.ConstructorGuard
}

// NewUpdateProductCommand creates a product-update command.
func NewUpdateProductCommand(
	claims auth.Claims,
	productID kernel.UUID,
	name *string,
	price *float64,
	productType, restaurant *string,
) (UpdateProductCommand, error) {
	if err := errors.Join(
		claims.Validate(),
		productID.Validate(),
	); err != nil {
		return UpdateProductCommand{}, err
	}

	return UpdateProductCommand{
		claims:      claims,
		productID:   productID,
		name:        name,
		price:       price,
		productType: productType,
		restaurant:  restaurant,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c UpdateProductCommand) Claims() auth.Claims {
	return c.claims
}

// ProductID returns the id of the product being updated.
func (c UpdateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the replacement name, or nil to keep the current one.
func (c UpdateProductCommand) Name() *string {
	return c.name
}

// Price returns the replacement price, or nil to keep the current one.
func (c UpdateProductCommand) Price() *float64 {
	return c.price
}

// ProductType returns the replacement category, or nil to keep the current one.
func (c UpdateProductCommand) ProductType() *string {
	return c.productType
}

// Restaurant returns the replacement restaurant, or nil to keep the current one.
func (c UpdateProductCommand) Restaurant() *string {
	return c.restaurant
}
