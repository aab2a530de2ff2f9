package queries

import (
	"context"

	"orderflow/internal/core/domain/services"

	"gorm.io/gorm"
)

// FilterOrdersQueryHandler lists orders matching the query's filters.
type FilterOrdersQueryHandler struct {
	db           *gorm.DB
	policyEngine *services.PolicyEngine
}

// NewFilterOrdersQueryHandler creates a handler for order listings.
func NewFilterOrdersQueryHandler(db *gorm.DB, policyEngine *services.PolicyEngine) FilterOrdersQueryHandler {
	return FilterOrdersQueryHandler{db: db, policyEngine: policyEngine}
}

// Handle executes the listing. Results come back newest first.
func (h FilterOrdersQueryHandler) Handle(ctx context.Context, query FilterOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policyEngine.HasAccessToFilters(
		query.Claims(), query.CourierID(), query.UserID(),
	); err != nil {
		return nil, err
	}

	sqlQuery := `
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
		WHERE 1 = 1
	`
	args := make([]any, 0, 4)

	if query.OrderID() != nil {
		sqlQuery += " AND id = ?"
		args = append(args, query.OrderID().String())
	}
	if query.CourierID() != nil {
		sqlQuery += " AND courier_id = ?"
		args = append(args, query.CourierID().String())
	}
	if query.UserID() != nil {
		sqlQuery += " AND user_id = ?"
		args = append(args, query.UserID().String())
	}
	if query.Address() != nil {
		sqlQuery += " AND address = ?"
		args = append(args, *query.Address())
	}

	sqlQuery += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
