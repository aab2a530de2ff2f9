package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents an admin request to add a catalog product.
type CreateProductCommand struct {
	claims      auth.Claims
	name        string
	price       float64
	productType string
	restaurant  string

	guard kernel.ConstructorGuard
}

// NewCreateProductCommand creates a product-creation command. Field
// validation beyond claims is delegated to the product constructor.
func NewCreateProductCommand(
	claims auth.Claims,
	name string,
	price float64,
	productType, restaurant string,
) (CreateProductCommand, error) {
	if err := claims.Validate(); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		claims:      claims,
		name:        name,
		price:       price,
		productType: productType,
		restaurant:  restaurant,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (c CreateProductCommand) Claims() auth.Claims {
	return c.claims
}

// Name returns the new product's display name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Price returns the new product's price.
func (c CreateProductCommand) Price() float64 {
	return c.price
}

// ProductType returns the new product's category.
func (c CreateProductCommand) ProductType() string {
	return c.productType
}

// Restaurant returns the restaurant offering the product.
func (c CreateProductCommand) Restaurant() string {
	return c.restaurant
}
