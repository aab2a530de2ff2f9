package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderChangedEvent is emitted whenever an order is created, completed or
// rated. Consumers outside this service (analytics, notifications) read it
// from the order-changed topic.
type OrderChangedEvent struct {
	OrderID    kernel.UUID
	UserID     kernel.UUID
	CourierID  kernel.UUID
	Status     order.Status
	Rating     *int
	OccurredAt time.Time
}

// OrderEventPublisher publishes order lifecycle events to the message bus.
// Publishing is best-effort from the caller's point of view: use case
// handlers log failures and never fail the request over them.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
}
