package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// GetProductQuery retrieves one catalog product by id. Readable by every
// authenticated role; the product_type field is masked for roles without
// the view-product-types capability.
type GetProductQuery struct {
	claims    auth.Claims
	productID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetProductQuery creates a query for a single product.
func NewGetProductQuery(claims auth.Claims, productID kernel.UUID) (GetProductQuery, error) {
	if err := errors.Join(
		claims.Validate(),
		productID.Validate(),
	); err != nil {
		return GetProductQuery{}, err
	}

	return GetProductQuery{
		claims:    claims,
		productID: productID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q GetProductQuery) Claims() auth.Claims {
	return q.claims
}

// ProductID returns the requested product's id.
func (q GetProductQuery) ProductID() kernel.UUID {
	return q.productID
}

// ProductResponse is the catalog read model. ProductType is nil when the
// caller's role does not expose the field.
type ProductResponse struct {
	ID          kernel.UUID
	Name        string
	Price       float64
	ProductType *string
	Restaurant  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
