package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order by id. Readable by the order's user,
// its courier, and roles that may browse all orders.
type GetOrderQuery struct {
	claims  auth.Claims
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(claims auth.Claims, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(
		claims.Validate(),
		orderID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		claims:  claims,
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q GetOrderQuery) Claims() auth.Claims {
	return q.claims
}

// OrderID returns the requested order's id.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderResponse is the flat order read model returned by order queries.
type OrderResponse struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	CourierID kernel.UUID
	Rating    *int
	Status    string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
