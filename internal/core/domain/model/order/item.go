package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line: a product and its quantity, snapshotted from
// the user's bucket at checkout. Items are immutable once created and only
// ever inserted in bulk alongside their order.
type Item struct {
	orderID   kernel.UUID
	productID kernel.UUID
	amount    int

	guard kernel.ConstructorGuard
}

// NewItem creates a validated order line. Amount must be positive.
func NewItem(orderID, productID kernel.UUID, amount int) (Item, error) {
	if err := errors.Join(
		orderID.Validate(),
		productID.Validate(),
	); err != nil {
		return Item{}, err
	}

	if amount <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return Item{
		orderID:   orderID,
		productID: productID,
		amount:    amount,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (i Item) OrderID() kernel.UUID {
	return i.orderID
}

// ProductID returns the ordered product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Amount returns the ordered quantity.
func (i Item) Amount() int {
	return i.amount
}
