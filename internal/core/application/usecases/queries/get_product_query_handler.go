package queries

import (
	"context"
	"database/sql"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProductQueryHandler reads one catalog product.
type GetProductQueryHandler struct {
	db           *gorm.DB
	policyEngine *services.PolicyEngine
}

// NewGetProductQueryHandler creates a handler for single-product lookups.
func NewGetProductQueryHandler(db *gorm.DB, policyEngine *services.PolicyEngine) GetProductQueryHandler {
	return GetProductQueryHandler{db: db, policyEngine: policyEngine}
}

// Handle executes the lookup. Any authenticated role may read products.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			price,
			product_type,
			restaurant,
			created_at,
			updated_at
		FROM products
		WHERE id = ?
	`, query.ProductID().String()).Rows()
	if err != nil {
		return ProductResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ProductResponse{}, err
		}
		return ProductResponse{}, errs.NewObjectNotFoundError("productID", query.ProductID())
	}

	resp, err := scanProduct(rows)
	if err != nil {
		return ProductResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return ProductResponse{}, err
	}

	h.maskProductType(query.Claims(), &resp)

	return resp, nil
}

// maskProductType clears the product_type field for roles that may not see it.
func (h GetProductQueryHandler) maskProductType(claims auth.Claims, resp *ProductResponse) {
	if !h.policyEngine.HasAccess(services.CapabilityViewProductTypes, claims) {
		resp.ProductType = nil
	}
}

// scanProduct reads the current row of a product result set.
func scanProduct(rows *sql.Rows) (ProductResponse, error) {
	var (
		resp        ProductResponse
		id          uuid.UUID
		productType string
	)

	if err := rows.Scan(
		&id,
		&resp.Name,
		&resp.Price,
		&productType,
		&resp.Restaurant,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	); err != nil {
		return ProductResponse{}, err
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ProductResponse{}, err
	}
	resp.ProductType = &productType

	return resp, nil
}
