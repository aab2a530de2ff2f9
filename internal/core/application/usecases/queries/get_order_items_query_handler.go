package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderItemsQueryHandler reads the item snapshot of one order.
type GetOrderItemsQueryHandler struct {
	db           *gorm.DB
	policyEngine *services.PolicyEngine
}

// NewGetOrderItemsQueryHandler creates a handler for order-item lookups.
func NewGetOrderItemsQueryHandler(db *gorm.DB, policyEngine *services.PolicyEngine) GetOrderItemsQueryHandler {
	return GetOrderItemsQueryHandler{db: db, policyEngine: policyEngine}
}

// Handle executes the lookup. The order must exist; access is granted to
// its user, its courier, and inspect-capable roles.
func (h GetOrderItemsQueryHandler) Handle(ctx context.Context, query GetOrderItemsQuery) ([]OrderItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	owner, err := scanOrderRow(h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			courier_id,
			rating,
			status,
			address,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", query.OrderID())
		}
		return nil, err
	}

	if err = h.policyEngine.HasAccessToOrder(
		services.CapabilityInspectOrderItems, query.Claims(), owner.UserID, owner.CourierID,
	); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			amount
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item               OrderItemResponse
			orderID, productID uuid.UUID
		)

		if err = rows.Scan(&orderID, &productID, &item.Amount); err != nil {
			return nil, err
		}

		if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
