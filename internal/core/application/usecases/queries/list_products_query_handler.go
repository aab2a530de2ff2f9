package queries

import (
	"context"

	"orderflow/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListProductsQueryHandler lists catalog products matching the query's
// filters.
type ListProductsQueryHandler struct {
	db           *gorm.DB
	policyEngine *services.PolicyEngine
}

// NewListProductsQueryHandler creates a handler for catalog listings.
func NewListProductsQueryHandler(db *gorm.DB, policyEngine *services.PolicyEngine) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db, policyEngine: policyEngine}
}

// Handle executes the listing. Without a price ordering, results come back
// alphabetically by name. The product_type field is masked for roles
// without the view-product-types capability; filtering by it still works,
// the filter value just never echoes back.
func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			name,
			price,
			product_type,
			restaurant,
			created_at,
			updated_at
		FROM products
		WHERE 1 = 1
	`
	args := make([]any, 0, 3)

	if query.Name() != nil {
		sqlQuery += " AND name LIKE ?"
		args = append(args, "%"+*query.Name()+"%")
	}
	if query.ProductType() != nil {
		sqlQuery += " AND product_type = ?"
		args = append(args, *query.ProductType())
	}
	if query.Restaurant() != nil {
		sqlQuery += " AND restaurant = ?"
		args = append(args, *query.Restaurant())
	}

	switch query.PriceOrder() {
	case PriceOrderCheapFirst:
		sqlQuery += " ORDER BY price"
	case PriceOrderExpensiveFirst:
		sqlQuery += " ORDER BY price DESC"
	default:
		sqlQuery += " ORDER BY name"
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showTypes := h.policyEngine.HasAccess(services.CapabilityViewProductTypes, query.Claims())

	products := make([]ProductResponse, 0)
	for rows.Next() {
		resp, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		if !showTypes {
			resp.ProductType = nil
		}
		products = append(products, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
