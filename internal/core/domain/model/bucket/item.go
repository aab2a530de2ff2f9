// Package bucket provides the shopping-bucket model: the products a user
// has picked but not yet checked out. Bucket items are plain rows keyed by
// user; adding the same product twice intentionally produces two rows
// rather than merging amounts, matching the storage schema the checkout
// snapshot is built from.
package bucket

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("bucket Item must be created via NewItem constructor")

// Item is one bucket row: a product with a quantity in a user's bucket.
type Item struct {
	userID    kernel.UUID
	productID kernel.UUID
	amount    int

	guard kernel.ConstructorGuard
}

// NewItem creates a validated bucket row. Amount must be positive.
func NewItem(userID, productID kernel.UUID, amount int) (Item, error) {
	if err := errors.Join(
		userID.Validate(),
		productID.Validate(),
	); err != nil {
		return Item{}, err
	}

	if amount <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return Item{
		userID:    userID,
		productID: productID,
		amount:    amount,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// UserID returns the bucket owner's identifier.
func (i Item) UserID() kernel.UUID {
	return i.userID
}

// ProductID returns the picked product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Amount returns the picked quantity.
func (i Item) Amount() int {
	return i.amount
}
