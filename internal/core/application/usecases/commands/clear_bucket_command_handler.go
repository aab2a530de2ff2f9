package commands

import (
	"context"

	"orderflow/internal/core/domain/services"
)

// ClearBucketCommandHandler empties the caller's bucket. Clearing an
// already empty bucket succeeds.
type ClearBucketCommandHandler struct {
	uowFactory   BucketUoWFactory
	policyEngine *services.PolicyEngine
}

// NewClearBucketCommandHandler creates a handler for bucket clearing.
func NewClearBucketCommandHandler(
	uowFactory BucketUoWFactory,
	policyEngine *services.PolicyEngine,
) ClearBucketCommandHandler {
	return ClearBucketCommandHandler{
		uowFactory:   uowFactory,
		policyEngine: policyEngine,
	}
}

// Handle processes the bucket-clear command. Users may only clear their
// own bucket.
func (h *ClearBucketCommandHandler) Handle(ctx context.Context, cmd ClearBucketCommand) error {
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

	if err := uow.BucketRepository().Clear(ctx, cmd.UserID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
