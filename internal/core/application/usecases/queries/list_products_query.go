package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrListProductsQueryIsNotConstructed = errors.New(
	"ListProductsQuery must be created via NewListProductsQuery constructor",
)

// PriceOrder selects the ordering of a catalog listing.
type PriceOrder string

const (
	// PriceOrderNone keeps the default alphabetical order.
	PriceOrderNone PriceOrder = ""

	// PriceOrderCheapFirst orders by ascending price.
	PriceOrderCheapFirst PriceOrder = "CHEAP_FIRST"

	// PriceOrderExpensiveFirst orders by descending price.
	PriceOrderExpensiveFirst PriceOrder = "EXPENSIVE_FIRST"
)

// ListProductsQuery retrieves catalog products matching optional filters:
// name substring, category, restaurant. Nil filters mean "no restriction"
// on that column.
type ListProductsQuery struct {
	claims      auth.Claims
	name        *string
	productType *string
	restaurant  *string
	priceOrder  PriceOrder

	guard kernel.ConstructorGuard
}

// NewListProductsQuery creates a catalog-listing query.
func NewListProductsQuery(
	claims auth.Claims,
	name, productType, restaurant *string,
	priceOrder PriceOrder,
) (ListProductsQuery, error) {
	if err := claims.Validate(); err != nil {
		return ListProductsQuery{}, err
	}

	switch priceOrder {
	case PriceOrderNone, PriceOrderCheapFirst, PriceOrderExpensiveFirst:
	default:
		return ListProductsQuery{}, errs.NewValueIsInvalidError("priceOrder")
	}

	return ListProductsQuery{
		claims:      claims,
		name:        name,
		productType: productType,
		restaurant:  restaurant,
		priceOrder:  priceOrder,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q ListProductsQuery) Claims() auth.Claims {
	return q.claims
}

// Name returns the name substring filter, or nil for no restriction.
func (q ListProductsQuery) Name() *string {
	return q.name
}

// ProductType returns the category filter, or nil for no restriction.
func (q ListProductsQuery) ProductType() *string {
	return q.productType
}

// Restaurant returns the restaurant filter, or nil for no restriction.
func (q ListProductsQuery) Restaurant() *string {
	return q.restaurant
}

// PriceOrder returns the requested price ordering.
func (q ListProductsQuery) PriceOrder() PriceOrder {
	return q.priceOrder
}
