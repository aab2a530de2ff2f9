package commands

import (
	"context"

	"orderflow/internal/core/domain/services"
)

// RemoveFromBucketCommandHandler deletes all rows of one product from the
// caller's bucket. Removing a product that is not in the bucket is a no-op.
type RemoveFromBucketCommandHandler struct {
	uowFactory   BucketUoWFactory
	policyEngine *services.PolicyEngine
}

// NewRemoveFromBucketCommandHandler creates a handler for bucket removals.
func NewRemoveFromBucketCommandHandler(
	uowFactory BucketUoWFactory,
	policyEngine *services.PolicyEngine,
) RemoveFromBucketCommandHandler {
	return RemoveFromBucketCommandHandler{
		uowFactory:   uowFactory,
		policyEngine: policyEngine,
	}
}

// Handle processes the bucket-remove command. Users may only modify their
// own bucket.
func (h *RemoveFromBucketCommandHandler) Handle(ctx context.Context, cmd RemoveFromBucketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policyEngine.HasAccessByIdentity(cmd.Claims(), cmd.UserID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.BucketRepository().RemoveItem(ctx, cmd.UserID(), cmd.ProductID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
