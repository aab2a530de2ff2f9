package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// ErrEmptyBucket is returned when checkout is attempted with no items in
// the user's bucket. Nothing is persisted and no courier is requested.
var ErrEmptyBucket = errors.New("bucket is empty")

// CreateOrderCommandHandler handles checkout: converts the user's bucket
// into an order assigned to a free courier.
//
// The flow is deliberately split around the courier RPC. The bucket is read
// and the matching service is called before any transaction starts, so a
// queued or failed matching attempt leaves the bucket untouched. Only after
// a courier is assigned does the handler open a transaction that persists
// the order, snapshots the bucket rows into order items and drains the
// bucket, all atomically.
type CreateOrderCommandHandler struct {
	uowFactory    CheckoutUoWFactory
	policyEngine  *services.PolicyEngine
	courierClient ports.CourierClient
	publisher     ports.OrderEventPublisher
	logger        *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	policyEngine *services.PolicyEngine,
	courierClient ports.CourierClient,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		policyEngine:  policyEngine,
		courierClient: courierClient,
		publisher:     publisher,
		logger:        logger,
	}
}

// Handle processes the checkout command and returns the created order.
//
// Returns ErrEmptyBucket when the bucket holds no rows,
// ports.ErrAddedToQueue when the matching service queued the user instead
// of assigning a courier, and services.ErrForbidden when the caller is not
// the bucket owner.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policyEngine.HasAccessByIdentity(cmd.Claims(), cmd.UserID()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	bucketItems, err := uow.BucketRepository().GetByUser(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if len(bucketItems) == 0 {
		return nil, ErrEmptyBucket
	}

	courierID, err := h.courierClient.FindCourier(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	orderID := kernel.NewUUID()

	newOrder, err := order.NewOrder(orderID, cmd.UserID(), courierID, cmd.Address())
	if err != nil {
		return nil, err
	}

	orderItems := make([]order.Item, 0, len(bucketItems))
	for _, bucketItem := range bucketItems {
		orderItem, err := order.NewItem(orderID, bucketItem.ProductID(), bucketItem.Amount())
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, orderItem)
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().AddItems(ctx, orderItems); err != nil {
		return nil, err
	}

	if err = uow.BucketRepository().Clear(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishChanged(ctx, newOrder)

	return newOrder, nil
}

func (h *CreateOrderCommandHandler) publishChanged(ctx context.Context, o *order.Order) {
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
