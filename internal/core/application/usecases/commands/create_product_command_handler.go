package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/domain/services"
)

// CreateProductCommandHandler adds a product to the catalog.
type CreateProductCommandHandler struct {
	uowFactory   ProductUoWFactory
	policyEngine *services.PolicyEngine
}

// NewCreateProductCommandHandler creates a handler for product creation.
func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory,
	policyEngine *services.PolicyEngine,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory:   uowFactory,
		policyEngine: policyEngine,
	}
}

// Handle processes the product-creation command and returns the new
// product. Restricted to roles holding the manage-products capability.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.policyEngine.HasAccess(services.CapabilityManageProducts, cmd.Claims()) {
		return nil, services.ErrForbidden
	}

	productID := kernel.NewUUID()

	newProduct, err := product.NewProduct(
		productID, cmd.Name(), cmd.Price(), cmd.ProductType(), cmd.Restaurant(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, newProduct); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newProduct, nil
}
