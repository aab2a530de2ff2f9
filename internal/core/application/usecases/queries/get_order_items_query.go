package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrGetOrderItemsQueryIsNotConstructed = errors.New(
	"GetOrderItemsQuery must be created via NewGetOrderItemsQuery constructor",
)

// GetOrderItemsQuery retrieves the item snapshot of one order. Readable by
// the order's user, its courier, and roles that may inspect any order's
// items.
type GetOrderItemsQuery struct {
	claims  auth.Claims
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetOrderItemsQuery creates a query for an order's items.
func NewGetOrderItemsQuery(claims auth.Claims, orderID kernel.UUID) (GetOrderItemsQuery, error) {
	if err := errors.Join(
		claims.Validate(),
		orderID.Validate(),
	); err != nil {
		return GetOrderItemsQuery{}, err
	}

	return GetOrderItemsQuery{
		claims:  claims,
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderItemsQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q GetOrderItemsQuery) Claims() auth.Claims {
	return q.claims
}

// OrderID returns the id of the order whose items are requested.
func (q GetOrderItemsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one row of an order's item snapshot.
type OrderItemResponse struct {
	OrderID   kernel.UUID
	ProductID kernel.UUID
	Amount    int
}
