package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrFilterOrdersQueryIsNotConstructed = errors.New(
	"FilterOrdersQuery must be created via NewFilterOrdersQuery constructor",
)

// FilterOrdersQuery retrieves orders matching any combination of order,
// courier, user, and address filters. Analysts and admins may use any
// combination including none; couriers may filter on their own courier id;
// users on their own user id.
type FilterOrdersQuery struct {
	claims    auth.Claims
	orderID   *kernel.UUID
	courierID *kernel.UUID
	userID    *kernel.UUID
	address   *string

	guard kernel.ConstructorGuard
}

// NewFilterOrdersQuery creates an order-listing query. Nil filters mean
// "no restriction" on that column.
func NewFilterOrdersQuery(
	claims auth.Claims,
	orderID, courierID, userID *kernel.UUID,
	address *string,
) (FilterOrdersQuery, error) {
	if err := claims.Validate(); err != nil {
		return FilterOrdersQuery{}, err
	}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return FilterOrdersQuery{}, err
		}
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return FilterOrdersQuery{}, err
		}
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return FilterOrdersQuery{}, err
		}
	}
	if address != nil && *address == "" {
		return FilterOrdersQuery{}, errs.NewValueIsRequiredError("address")
	}

	return FilterOrdersQuery{
		claims:    claims,
		orderID:   orderID,
		courierID: courierID,
		userID:    userID,
		address:   address,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q FilterOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFilterOrdersQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q FilterOrdersQuery) Claims() auth.Claims {
	return q.claims
}

// OrderID returns the order filter, or nil for no restriction.
func (q FilterOrdersQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// CourierID returns the courier filter, or nil for no restriction.
func (q FilterOrdersQuery) CourierID() *kernel.UUID {
	return q.courierID
}

// UserID returns the user filter, or nil for no restriction.
func (q FilterOrdersQuery) UserID() *kernel.UUID {
	return q.userID
}

// Address returns the address filter, or nil for no restriction.
func (q FilterOrdersQuery) Address() *string {
	return q.address
}
