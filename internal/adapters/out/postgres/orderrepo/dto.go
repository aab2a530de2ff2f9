// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status is stored as its string form so raw read-model
// queries and the conditional status update stay legible.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	CourierID uuid.UUID `gorm:"type:uuid;index"`
	Rating    *int16    `gorm:"type:smallint"`
	Status    string    `gorm:"type:varchar(16);index"`
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line of an order's item snapshot. Rows are
// written once at checkout and never updated. A surrogate key is used
// because bucket rows are not merged, so one order may snapshot the same
// product more than once.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Amount    int
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var rating *int16
	if r := aggregate.Rating(); r != nil {
		value := int16(*r)
		rating = &value
	}

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID().Bytes(),
		CourierID: aggregate.CourierID().Bytes(),
		Rating:    rating,
		Status:    aggregate.Status().String(),
		Address:   aggregate.Address(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var rating *int
	if dto.Rating != nil {
		value := int(*dto.Rating)
		rating = &value
	}

	return order.RestoreOrder(
		id, userID, courierID,
		rating, status, dto.Address,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

// itemFromDomain converts an order line to its database representation.
func itemFromDomain(item order.Item) OrderItemDTO {
	return OrderItemDTO{
		OrderID:   item.OrderID().Bytes(),
		ProductID: item.ProductID().Bytes(),
		Amount:    item.Amount(),
	}
}

// itemToDomain converts a database row back to an order line.
func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Item{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(orderID, productID, dto.Amount)
}
