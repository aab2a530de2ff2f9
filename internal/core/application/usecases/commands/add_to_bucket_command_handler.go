package commands

import (
	"context"

	"orderflow/internal/core/domain/model/bucket"
	"orderflow/internal/core/domain/services"
)

// AddToBucketCommandHandler appends a product row to the caller's bucket.
type AddToBucketCommandHandler struct {
	uowFactory   BucketUoWFactory
	policyEngine *services.PolicyEngine
}

// NewAddToBucketCommandHandler creates a handler for bucket additions.
func NewAddToBucketCommandHandler(
	uowFactory BucketUoWFactory,
	policyEngine *services.PolicyEngine,
) AddToBucketCommandHandler {
	return AddToBucketCommandHandler{
		uowFactory:   uowFactory,
		policyEngine: policyEngine,
	}
}

// Handle processes the bucket-add command. Users may only modify their own
// bucket.
func (h *AddToBucketCommandHandler) Handle(ctx context.Context, cmd AddToBucketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policyEngine.HasAccessByIdentity(cmd.Claims(), cmd.UserID()); err != nil {
		return err
	}

	item, err := bucket.NewItem(cmd.UserID(), cmd.ProductID(), cmd.Amount())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BucketRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
