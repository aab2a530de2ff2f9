// Package product provides the catalog entity sold through the platform.
// Products are created and updated by administrators only; every other role
// reads them when browsing the catalog or inspecting buckets and orders.
package product

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product was not created
	// via NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrNameIsRequired is returned when a product is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrRestaurantIsRequired is returned when a product is created without a restaurant.
	ErrRestaurantIsRequired = errs.NewValueIsRequiredError("restaurant")
)

// Product is a catalog item offered by a restaurant.
type Product struct {
	id          kernel.UUID
	name        string
	price       float64
	productType string
	restaurant  string
	createdAt   time.Time
	updatedAt   time.Time

	guard kernel.ConstructorGuard
}

// NewProduct creates a validated catalog item with fresh timestamps.
func NewProduct(id kernel.UUID, name string, price float64, productType, restaurant string) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if restaurant == "" {
		return nil, ErrRestaurantIsRequired
	}
	if price < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%f is negative", price))
	}

	now := time.Now().UTC()
	return &Product{
		id:          id,
		name:        name,
		price:       price,
		productType: productType,
		restaurant:  restaurant,
		createdAt:   now,
		updatedAt:   now,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(
	id kernel.UUID,
	name string,
	price float64,
	productType, restaurant string,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	p, err := NewProduct(id, name, price, productType, restaurant)
	if err != nil {
		return nil, err
	}

	p.createdAt = createdAt
	p.updatedAt = updatedAt
	return p, nil
}

// Validate ensures the Product was created through a factory method.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the product's price.
func (p *Product) Price() float64 {
	return p.price
}

// ProductType returns the product's category. Read models expose this
// field to admins and analysts only.
func (p *Product) ProductType() string {
	return p.productType
}

// Restaurant returns the restaurant offering the product.
func (p *Product) Restaurant() string {
	return p.restaurant
}

// CreatedAt returns when the product was added to the catalog.
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the product last changed.
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// Apply updates the mutable fields from an admin change request.
// Nil pointers leave the corresponding field untouched.
func (p *Product) Apply(name *string, price *float64, productType, restaurant *string) error {
	if name != nil {
		if *name == "" {
			return ErrNameIsRequired
		}
		p.name = *name
	}
	if price != nil {
		if *price < 0 {
			return errs.NewValueIsInvalidErrorWithCause("price",
				fmt.Errorf("%f is negative", *price))
		}
		p.price = *price
	}
	if productType != nil {
		p.productType = *productType
	}
	if restaurant != nil {
		if *restaurant == "" {
			return ErrRestaurantIsRequired
		}
		p.restaurant = *restaurant
	}

	p.updatedAt = time.Now().UTC()
	return nil
}
