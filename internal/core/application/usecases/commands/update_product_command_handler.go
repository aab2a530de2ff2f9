package commands

import (
	"context"

	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/domain/services"
)

// UpdateProductCommandHandler applies partial changes to a catalog product.
type UpdateProductCommandHandler struct {
	uowFactory   ProductUoWFactory
	policyEngine *services.PolicyEngine
}

// NewUpdateProductCommandHandler creates a handler for product updates.
func NewUpdateProductCommandHandler(
	uowFactory ProductUoWFactory,
	policyEngine *services.PolicyEngine,
) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory:   uowFactory,
		policyEngine: policyEngine,
	}
}

// Handle processes the product-update command and returns the updated
// product. Restricted to roles holding the manage-products capability.
func (h *UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.policyEngine.HasAccess(services.CapabilityManageProducts, cmd.Claims()) {
		return nil, services.ErrForbidden
	}

	uow := h.uowFactory.Create()
	productRepo := uow.ProductRepository()

	existing, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if err = existing.Apply(cmd.Name(), cmd.Price(), cmd.ProductType(), cmd.Restaurant()); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Update(ctx, existing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}
