package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// ErrRatingWindowExpired is returned when a rating arrives for an order
// that is still in progress or whose rating window has closed.
var ErrRatingWindowExpired = errors.New("rating window expired")

// EstimateDeliveryCommandHandler records a delivery rating and pushes the
// courier's recomputed reputation to the matching service.
//
// Check order matters and mirrors the externally observable behavior: an
// already-rated order reports ErrAlreadyRated before ownership is checked,
// so a non-owner probing a rated order learns it is rated, not that it is
// someone else's. The stored write is a conditional update on rating IS
// NULL, so a concurrent duplicate rating loses the race and also gets
// ErrAlreadyRated.
type EstimateDeliveryCommandHandler struct {
	uowFactory    OrderUoWFactory
	policyEngine  *services.PolicyEngine
	aggregator    *services.RatingAggregator
	courierClient ports.CourierClient
	publisher     ports.OrderEventPublisher
	ratingWindow  time.Duration
	logger        *slog.Logger
}

// NewEstimateDeliveryCommandHandler creates a handler for delivery rating.
// ratingWindow bounds how long after completion an order stays ratable.
func NewEstimateDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	policyEngine *services.PolicyEngine,
	aggregator *services.RatingAggregator,
	courierClient ports.CourierClient,
	publisher ports.OrderEventPublisher,
	ratingWindow time.Duration,
	logger *slog.Logger,
) EstimateDeliveryCommandHandler {
	return EstimateDeliveryCommandHandler{
		uowFactory:    uowFactory,
		policyEngine:  policyEngine,
		aggregator:    aggregator,
		courierClient: courierClient,
		publisher:     publisher,
		ratingWindow:  ratingWindow,
		logger:        logger,
	}
}

// Handle processes the rating command and returns the updated order.
//
// Only the user who placed the order may rate it, only once, and only
// while the order is finished and within the rating window.
func (h *EstimateDeliveryCommandHandler) Handle(ctx context.Context, cmd EstimateDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if existing.Rating() != nil {
		return nil, order.ErrAlreadyRated
	}

	if err = h.policyEngine.HasAccessByIdentity(cmd.Claims(), existing.UserID()); err != nil {
		return nil, err
	}

	// Elapsed time must be strictly inside the window; exact expiry rejects.
	if existing.Status() != order.StatusFinished ||
		time.Since(existing.UpdatedAt()) >= h.ratingWindow {
		return nil, ErrRatingWindowExpired
	}

	if err = existing.Rate(cmd.Rating()); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().SetRating(ctx, cmd.OrderID(), cmd.Rating()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	ratings, err := orderRepo.RecentCourierRatings(ctx, existing.CourierID(), services.MaxRatingHistory)
	if err != nil {
		return nil, err
	}

	courierRating := h.aggregator.WeightedRating(ratings)
	if err = h.courierClient.UpdateCourierRating(ctx, existing.CourierID(), courierRating); err != nil {
		return nil, err
	}

	h.publishChanged(ctx, existing)

	return existing, nil
}

func (h *EstimateDeliveryCommandHandler) publishChanged(ctx context.Context, o *order.Order) {
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
