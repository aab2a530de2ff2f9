package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CompleteDeliveryCommandHandler marks an order as delivered.
//
// The status check runs before the access check: a finished order reports
// ErrAlreadyFinished even to callers who would otherwise be denied. The
// persisted transition is a conditional update on the current status, so a
// concurrent completion of the same order loses the race and also gets
// ErrAlreadyFinished.
type CompleteDeliveryCommandHandler struct {
	uowFactory   OrderUoWFactory
	policyEngine *services.PolicyEngine
	publisher    ports.OrderEventPublisher
	logger       *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	policyEngine *services.PolicyEngine,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory:   uowFactory,
		policyEngine: policyEngine,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle processes the completion command and returns the updated order.
//
// Only the order's assigned courier may complete it. Returns
// order.ErrAlreadyFinished when the order is not in progress.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if existing.Status() != order.StatusInProgress {
		return nil, order.ErrAlreadyFinished
	}

	if err = h.policyEngine.HasAccessByIdentity(cmd.Claims(), existing.CourierID()); err != nil {
		return nil, err
	}

	if err = existing.Complete(); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Complete(ctx, cmd.OrderID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishChanged(ctx, existing)

	return existing, nil
}

func (h *CompleteDeliveryCommandHandler) publishChanged(ctx context.Context, o *order.Order) {
	event := ports.OrderChangedEvent{
		OrderID:    o.ID(),
		UserID:     o.UserID(),
		CourierID:  o.CourierID(),
		Status:     o.Status(),
		Rating:     o.Rating(),
		OccurredAt: time.Now().UTC(),
	}

	if err := h.publisher.PublishOrderChanged(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order-changed event",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err),
		)
	}
}
