package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order from the database.
type GetOrderQueryHandler struct {
	db           *gorm.DB
	policyEngine *services.PolicyEngine
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(db *gorm.DB, policyEngine *services.PolicyEngine) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policyEngine: policyEngine}
}

// Handle executes the lookup. The existence check runs before the access
// check so a missing order reports not-found to everyone; an existing
// order a caller may not see reports forbidden.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	resp, err := scanOrderRow(h.db.WithContext(ctx).Raw(`
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
			return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
		}
		return OrderResponse{}, err
	}

	if err = h.policyEngine.HasAccessToOrder(
		services.CapabilityBrowseAllOrders, query.Claims(), resp.UserID, resp.CourierID,
	); err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}

// scanOrderRow scans a single order row from a raw query into the read model.
func scanOrderRow(tx *gorm.DB) (OrderResponse, error) {
	rows, err := tx.Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, gorm.ErrRecordNotFound
	}

	resp, err := scanOrder(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	return resp, rows.Err()
}

// scanOrder reads the current row of an order result set.
func scanOrder(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp                  OrderResponse
		id, userID, courierID uuid.UUID
		rating                sql.NullInt64
	)

	if err := rows.Scan(
		&id,
		&userID,
		&courierID,
		&rating,
		&resp.Status,
		&resp.Address,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	); err != nil {
		return OrderResponse{}, err
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return OrderResponse{}, err
	}

	if rating.Valid {
		value := int(rating.Int64)
		resp.Rating = &value
	}

	return resp, nil
}
